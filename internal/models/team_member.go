package models

import (
	"time"

	"gorm.io/gorm"
)

// TeamMember is a person on the DevXtra roster. Only Active members are
// listed on the public site.
type TeamMember struct {
	ID           string     `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string     `gorm:"size:200;not null;index" json:"name"`
	Email        string     `gorm:"size:255;not null" json:"email"`
	Phone        *string    `gorm:"size:50" json:"phone"`
	EnrollmentNo *string    `gorm:"column:enrollment_no;size:100" json:"enrollment_no"`
	Role         string     `gorm:"size:50;not null;default:Member" json:"role"`
	Status       string     `gorm:"size:20;not null;default:Active;index" json:"status"`
	JoinedDate   *time.Time `gorm:"type:date" json:"joined_date"`
	Avatar       string     `gorm:"size:1000" json:"avatar"`
	Bio          *string    `gorm:"type:text" json:"bio"`
	Skills       StringList `json:"skills"`
	GithubURL    *string    `gorm:"column:github_url;size:500" json:"github_url"`
	LinkedinURL  *string    `gorm:"column:linkedin_url;size:500" json:"linkedin_url"`
	PortfolioURL *string    `gorm:"column:portfolio_url;size:500" json:"portfolio_url"`
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (TeamMember) TableName() string { return "team" }

func (m *TeamMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = NewID()
	}
	return nil
}

// JoinedAt returns the join date, falling back to the row creation time.
func (m *TeamMember) JoinedAt() time.Time {
	if m.JoinedDate != nil && !m.JoinedDate.IsZero() {
		return *m.JoinedDate
	}
	return m.CreatedAt
}
