package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/gotrue-go/types"

	"github.com/mastrovia/devxtra-team/internal/utils"
	"github.com/mastrovia/devxtra-team/pkg/logger"
)

// banDuration is effectively permanent (about 100 years).
const banDuration = 876000 * time.Hour

const tempPasswordLength = 16

// AuthAdmin is the subset of the auth admin API used here.
type AuthAdmin interface {
	InviteUser(email string) error
	CreateUser(email, password string) (*types.User, error)
	ListUsers() ([]types.User, error)
	DeleteUser(id uuid.UUID) error
	SetBan(id uuid.UUID, d time.Duration) error
}

type AdminUser struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	LastSignInAt *time.Time `json:"last_sign_in_at"`
	BannedUntil  *time.Time `json:"banned_until"`
	CreatedAt    time.Time  `json:"created_at"`
	InvitedAt    *time.Time `json:"invited_at"`
	Banned       bool       `json:"banned"`
}

type InviteRequest struct {
	Email     string `json:"email" form:"email" binding:"required,email"`
	DirectAdd bool   `json:"directAdd" form:"directAdd"`
}

type InviteResult struct {
	Message      string `json:"message"`
	TempPassword string `json:"tempPassword,omitempty"`
}

// AdminUserService manages the accounts allowed into the admin area. All
// methods require the service role key.
type AdminUserService struct {
	admin AuthAdmin
	now   func() time.Time
}

// NewAdminUserService accepts a nil admin client; every call then fails
// with ErrServiceRoleRequired.
func NewAdminUserService(admin AuthAdmin) *AdminUserService {
	return &AdminUserService{admin: admin, now: time.Now}
}

func (s *AdminUserService) Available() bool {
	return s.admin != nil
}

func (s *AdminUserService) Invite(ctx context.Context, req *InviteRequest) (*InviteResult, error) {
	if s.admin == nil {
		return nil, ErrServiceRoleRequired
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return nil, invalidf("Email is required")
	}

	if !req.DirectAdd {
		if err := s.admin.InviteUser(email); err != nil {
			return nil, err
		}
		logger.Info().Str("email", email).Msg("admin invitation sent")
		return &InviteResult{Message: "Invitation sent successfully."}, nil
	}

	password, err := utils.GenerateTempPassword(tempPasswordLength)
	if err != nil {
		return nil, err
	}
	if _, err := s.admin.CreateUser(email, password); err != nil {
		return nil, err
	}
	logger.Info().Str("email", email).Msg("admin user created")
	return &InviteResult{
		Message:      "User created. Share the temporary password securely.",
		TempPassword: password,
	}, nil
}

// List returns the first page of admin users.
func (s *AdminUserService) List(ctx context.Context) ([]AdminUser, error) {
	if s.admin == nil {
		return nil, ErrServiceRoleRequired
	}
	users, err := s.admin.ListUsers()
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]AdminUser, 0, len(users))
	for _, u := range users {
		out = append(out, AdminUser{
			ID:           u.ID.String(),
			Email:        u.Email,
			LastSignInAt: u.LastSignInAt,
			BannedUntil:  u.BannedUntil,
			CreatedAt:    u.CreatedAt,
			InvitedAt:    u.InvitedAt,
			Banned:       u.BannedUntil != nil && u.BannedUntil.After(now),
		})
	}
	return out, nil
}

// Delete removes a user. actorID is the caller, who may not delete themself.
func (s *AdminUserService) Delete(ctx context.Context, id, actorID string) error {
	if s.admin == nil {
		return ErrServiceRoleRequired
	}
	uid, err := s.target(id, actorID)
	if err != nil {
		return err
	}
	return s.admin.DeleteUser(uid)
}

// ToggleBan bans or unbans a user.
func (s *AdminUserService) ToggleBan(ctx context.Context, id, actorID string, banned bool) error {
	if s.admin == nil {
		return ErrServiceRoleRequired
	}
	uid, err := s.target(id, actorID)
	if err != nil {
		return err
	}
	d := time.Duration(0)
	if banned {
		d = banDuration
	}
	return s.admin.SetBan(uid, d)
}

func (s *AdminUserService) target(id, actorID string) (uuid.UUID, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, invalidf("Invalid user id")
	}
	if actorID != "" && strings.EqualFold(id, actorID) {
		return uuid.Nil, ErrSelfAction
	}
	return uid, nil
}
