package models

import (
	"time"

	"gorm.io/gorm"
)

// Project is a portfolio entry ("work").
type Project struct {
	ID          string     `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string     `gorm:"size:300;not null" json:"title"`
	Description *string    `gorm:"type:text" json:"description"`
	Status      string     `gorm:"size:20;not null;default:Pending;index" json:"status"`
	StartDate   *time.Time `json:"start_date"`
	DueDate     *time.Time `json:"due_date"`
	Tags        StringList `json:"tags"`
	Link        *string    `gorm:"size:1000" json:"link"`
	Images      StringList `json:"images"`
	Metrics     *string    `gorm:"size:500" json:"metrics"`
	Category    *string    `gorm:"size:20;default:freelance;index" json:"category"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Project) TableName() string { return "projects" }

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = NewID()
	}
	return nil
}

// IsSelf reports whether the project is internal.
func (p *Project) IsSelf() bool {
	return p.Category != nil && *p.Category == CategorySelf
}

// StartedAt returns the start date, falling back to the row creation time.
func (p *Project) StartedAt() time.Time {
	if p.StartDate != nil && !p.StartDate.IsZero() {
		return *p.StartDate
	}
	return p.CreatedAt
}
