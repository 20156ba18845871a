package models

import (
	"time"

	"gorm.io/gorm"
)

// Student is an enrollment record managed from the admin area.
type Student struct {
	ID           string     `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string     `gorm:"size:200;not null" json:"name"`
	Email        string     `gorm:"size:255;not null" json:"email"`
	Phone        *string    `gorm:"size:50" json:"phone"`
	EnrollmentNo *string    `gorm:"column:enrollment_no;size:100" json:"enrollment_no"`
	Role         string     `gorm:"size:50;not null;default:Student" json:"role"`
	Status       string     `gorm:"size:20;not null;default:Active" json:"status"`
	JoinedDate   *time.Time `gorm:"type:date" json:"joined_date"`
	Avatar       *string    `gorm:"size:1000" json:"avatar"`
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (Student) TableName() string { return "students" }

func (s *Student) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = NewID()
	}
	return nil
}
