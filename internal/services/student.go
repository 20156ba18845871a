package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mastrovia/devxtra-team/internal/models"
)

type StudentForm struct {
	ID           string `json:"id" form:"id"`
	Name         string `json:"name" form:"name" binding:"required"`
	Email        string `json:"email" form:"email" binding:"required,email"`
	Phone        string `json:"phone" form:"phone"`
	Role         string `json:"role" form:"role" binding:"omitempty,student_role"`
	Status       string `json:"status" form:"status" binding:"omitempty,member_status"`
	EnrollmentNo string `json:"enrollmentNo" form:"enrollmentNo"`
}

func (f *StudentForm) normalize() error {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	if f.Name == "" || f.Email == "" {
		return invalidf("Name and email are required")
	}
	if f.Role == "" {
		f.Role = models.RoleStudent
	}
	if f.Status == "" {
		f.Status = models.StatusActive
	}
	if !models.Contains(models.StudentRoles, f.Role) {
		return invalidf("Invalid role: %s", f.Role)
	}
	if !models.Contains(models.MemberStatuses, f.Status) {
		return invalidf("Invalid status: %s", f.Status)
	}
	return nil
}

type StudentService struct {
	db          *gorm.DB
	revalidator *Revalidator
}

func NewStudentService(db *gorm.DB, revalidator *Revalidator) *StudentService {
	return &StudentService{db: db, revalidator: revalidator}
}

func (s *StudentService) List(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

func (s *StudentService) Create(ctx context.Context, form *StudentForm) (*models.Student, error) {
	if err := form.normalize(); err != nil {
		return nil, err
	}

	avatar := DefaultAvatar(form.Name)
	today := truncateDay(time.Now())
	student := models.Student{
		Name:         form.Name,
		Email:        form.Email,
		Phone:        nullable(form.Phone),
		EnrollmentNo: nullable(form.EnrollmentNo),
		Role:         form.Role,
		Status:       form.Status,
		JoinedDate:   &today,
		Avatar:       &avatar,
	}
	if err := s.db.WithContext(ctx).Create(&student).Error; err != nil {
		return nil, err
	}

	s.revalidator.RevalidatePath(ctx, "/admin/students")
	return &student, nil
}

// Update edits name, email, phone, role and status.
func (s *StudentService) Update(ctx context.Context, form *StudentForm) (*models.Student, error) {
	if err := form.normalize(); err != nil {
		return nil, err
	}

	result := s.db.WithContext(ctx).Model(&models.Student{}).Where("id = ?", form.ID).Updates(map[string]interface{}{
		"name":   form.Name,
		"email":  form.Email,
		"phone":  nullable(form.Phone),
		"role":   form.Role,
		"status": form.Status,
	})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrStudentNotFound
	}

	s.revalidator.RevalidatePath(ctx, "/admin/students")

	var student models.Student
	if err := s.db.WithContext(ctx).First(&student, "id = ?", form.ID).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *StudentService) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&models.Student{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStudentNotFound
	}
	s.revalidator.RevalidatePath(ctx, "/admin/students")
	return nil
}

// Get returns one student.
func (s *StudentService) Get(ctx context.Context, id string) (*models.Student, error) {
	var student models.Student
	if err := s.db.WithContext(ctx).First(&student, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return &student, nil
}
