package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mastrovia/devxtra-team/internal/models"
)

// TeamMemberForm is the admin create/edit form. List fields are comma
// separated, as submitted by the admin UI.
type TeamMemberForm struct {
	ID           string `json:"id" form:"id"`
	Name         string `json:"name" form:"name" binding:"required"`
	Email        string `json:"email" form:"email" binding:"required,email"`
	Phone        string `json:"phone" form:"phone"`
	Role         string `json:"role" form:"role" binding:"omitempty,member_role"`
	Status       string `json:"status" form:"status" binding:"omitempty,member_status"`
	EnrollmentNo string `json:"enrollmentNo" form:"enrollmentNo"`
	Avatar       string `json:"avatar" form:"avatar"`
	Bio          string `json:"bio" form:"bio"`
	Skills       string `json:"skills" form:"skills"`
	GithubURL    string `json:"githubUrl" form:"githubUrl"`
	LinkedinURL  string `json:"linkedinUrl" form:"linkedinUrl"`
	PortfolioURL string `json:"portfolioUrl" form:"portfolioUrl"`
	JoinedDate   string `json:"joinedDate" form:"joinedDate"`
}

func (f *TeamMemberForm) normalize() error {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	if f.Name == "" || f.Email == "" {
		return invalidf("Name and email are required")
	}
	if f.Role == "" {
		f.Role = models.RoleMember
	}
	if f.Status == "" {
		f.Status = models.StatusActive
	}
	if !models.Contains(models.MemberRoles, f.Role) {
		return invalidf("Invalid role: %s", f.Role)
	}
	if !models.Contains(models.MemberStatuses, f.Status) {
		return invalidf("Invalid status: %s", f.Status)
	}
	return nil
}

type TeamService struct {
	db           *gorm.DB
	queue        TaskQueue
	revalidator  *Revalidator
	avatarBucket string
}

func NewTeamService(db *gorm.DB, queue TaskQueue, revalidator *Revalidator, avatarBucket string) *TeamService {
	return &TeamService{db: db, queue: queue, revalidator: revalidator, avatarBucket: avatarBucket}
}

// revalidate clears every page that shows members, project details included.
func (s *TeamService) revalidate(ctx context.Context) {
	s.revalidator.RevalidatePath(ctx, "/admin/team", "/team", "/", "/works")
}

// List returns every member, newest first.
func (s *TeamService) List(ctx context.Context) ([]models.TeamMember, error) {
	var members []models.TeamMember
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (s *TeamService) Get(ctx context.Context, id string) (*models.TeamMember, error) {
	var member models.TeamMember
	if err := s.db.WithContext(ctx).First(&member, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (s *TeamService) Create(ctx context.Context, form *TeamMemberForm) (*models.TeamMember, error) {
	if err := form.normalize(); err != nil {
		return nil, err
	}
	joined, err := parseDate(form.JoinedDate)
	if err != nil {
		return nil, invalidf("Invalid joined date")
	}

	avatar := strings.TrimSpace(form.Avatar)
	if avatar == "" {
		avatar = DefaultAvatar(form.Name)
	}

	member := models.TeamMember{
		Name:         form.Name,
		Email:        form.Email,
		Phone:        nullable(form.Phone),
		EnrollmentNo: nullable(form.EnrollmentNo),
		Role:         form.Role,
		Status:       form.Status,
		JoinedDate:   joined,
		Avatar:       avatar,
		Bio:          nullable(form.Bio),
		Skills:       splitList(form.Skills),
		GithubURL:    nullable(form.GithubURL),
		LinkedinURL:  nullable(form.LinkedinURL),
		PortfolioURL: nullable(form.PortfolioURL),
	}
	if member.JoinedDate == nil {
		today := truncateDay(time.Now())
		member.JoinedDate = &today
	}

	if err := s.db.WithContext(ctx).Create(&member).Error; err != nil {
		return nil, err
	}

	s.revalidate(ctx)
	return &member, nil
}

// Update edits a member. The enrollment number is fixed after creation and
// the avatar is only replaced when a new one is given.
func (s *TeamService) Update(ctx context.Context, form *TeamMemberForm) (*models.TeamMember, error) {
	if err := form.normalize(); err != nil {
		return nil, err
	}

	member, err := s.Get(ctx, form.ID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"name":          form.Name,
		"email":         form.Email,
		"phone":         nullable(form.Phone),
		"role":          form.Role,
		"status":        form.Status,
		"bio":           nullable(form.Bio),
		"skills":        models.StringList(splitList(form.Skills)),
		"github_url":    nullable(form.GithubURL),
		"linkedin_url":  nullable(form.LinkedinURL),
		"portfolio_url": nullable(form.PortfolioURL),
	}
	if form.JoinedDate != "" {
		joined, err := parseDate(form.JoinedDate)
		if err != nil {
			return nil, invalidf("Invalid joined date")
		}
		updates["joined_date"] = joined
	}

	oldAvatar := member.Avatar
	newAvatar := strings.TrimSpace(form.Avatar)
	if newAvatar != "" {
		updates["avatar"] = newAvatar
	}

	if err := s.db.WithContext(ctx).Model(member).Updates(updates).Error; err != nil {
		return nil, err
	}

	if newAvatar != "" && newAvatar != oldAvatar {
		s.cleanupAvatar(oldAvatar)
	}

	s.revalidate(ctx)
	return s.Get(ctx, form.ID)
}

// Delete removes the member and their project assignments.
func (s *TeamService) Delete(ctx context.Context, id string) error {
	var member models.TeamMember
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&member, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMemberNotFound
			}
			return err
		}
		if err := tx.Where("member_id = ?", id).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.TeamMember{}, "id = ?", id).Error
	})
	if err != nil {
		return err
	}

	s.cleanupAvatar(member.Avatar)
	s.revalidate(ctx)
	return nil
}

func (s *TeamService) cleanupAvatar(avatar string) {
	if IsStorageURL(avatar, s.avatarBucket) {
		enqueue(s.queue, TaskTypeStorageCleanup, StorageCleanupTask{Bucket: s.avatarBucket, URLs: []string{avatar}})
	}
}
