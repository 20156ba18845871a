package models

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// Member roles
const (
	RoleStudent   = "Student"
	RoleTeamLead  = "Team Lead"
	RoleMember    = "Member"
	RoleDeveloper = "Developer"
	RoleDesigner  = "Designer"
)

// Member statuses
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
	StatusAlumni   = "Alumni"
)

// Project statuses
const (
	ProjectPending    = "Pending"
	ProjectInProgress = "In Progress"
	ProjectCompleted  = "Completed"
	ProjectOnHold     = "On Hold"
)

// Project categories. Self projects are internal and never shown publicly.
const (
	CategoryFreelance = "freelance"
	CategorySelf      = "self"
)

var (
	MemberRoles       = []string{RoleStudent, RoleTeamLead, RoleMember, RoleDeveloper, RoleDesigner}
	StudentRoles      = []string{RoleStudent, RoleTeamLead, RoleMember}
	MemberStatuses    = []string{StatusActive, StatusInactive, StatusAlumni}
	ProjectStatuses   = []string{ProjectPending, ProjectInProgress, ProjectCompleted, ProjectOnHold}
	ProjectCategories = []string{CategoryFreelance, CategorySelf}
)

// Contains reports whether v is one of values.
func Contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

// NewID returns a fresh row id.
func NewID() string {
	return uuid.NewString()
}

// IsValidID reports whether s parses as a UUID.
func IsValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// StringList is a list column (skills, tags, images). It is stored as JSON;
// Postgres array literals such as {a,b} are also accepted when scanning.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(value interface{}) error {
	var raw string
	switch v := value.(type) {
	case nil:
		*l = StringList{}
		return nil
	case []byte:
		raw = string(v)
	case string:
		raw = v
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}

	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		*l = StringList{}
		return nil
	}

	if strings.HasPrefix(raw, "{") && strings.HasSuffix(raw, "}") {
		*l = parsePGArray(raw)
		return nil
	}

	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return fmt.Errorf("scan StringList: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	*l = out
	return nil
}

// GormDBDataType stores the list as jsonb on Postgres and text elsewhere.
func (StringList) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "jsonb"
	}
	return "text"
}

// GormValue casts the JSON literal for jsonb columns.
func (l StringList) GormValue(_ context.Context, db *gorm.DB) clause.Expr {
	v, _ := l.Value()
	if db.Dialector.Name() == "postgres" {
		return clause.Expr{SQL: "?::jsonb", Vars: []interface{}{v}}
	}
	return clause.Expr{SQL: "?", Vars: []interface{}{v}}
}

func parsePGArray(raw string) StringList {
	body := strings.TrimSuffix(strings.TrimPrefix(raw, "{"), "}")
	out := StringList{}
	if body == "" {
		return out
	}
	for _, part := range strings.Split(body, ",") {
		part = strings.Trim(strings.TrimSpace(part), `"`)
		if part != "" && part != "NULL" {
			out = append(out, part)
		}
	}
	return out
}
