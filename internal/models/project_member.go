package models

import "time"

// ProjectMember assigns a team member to a project. The pair is the primary
// key, so an assignment cannot be stored twice.
type ProjectMember struct {
	ProjectID string      `gorm:"type:uuid;primaryKey" json:"project_id"`
	MemberID  string      `gorm:"type:uuid;primaryKey;index" json:"member_id"`
	Project   *Project    `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"project,omitempty"`
	Member    *TeamMember `gorm:"foreignKey:MemberID;constraint:OnDelete:CASCADE" json:"member,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

func (ProjectMember) TableName() string { return "project_members" }
