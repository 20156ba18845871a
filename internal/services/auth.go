package services

import (
	"context"
	"strings"
	"time"

	"github.com/supabase-community/gotrue-go/types"

	"github.com/mastrovia/devxtra-team/pkg/logger"
)

// SessionAuth is the subset of the auth API used for admin sign in.
type SessionAuth interface {
	SignIn(email, password string) (*types.Session, error)
	Refresh(refreshToken string) (*types.Session, error)
	ExchangeCode(code, verifier string) (*types.Session, error)
	SignOut(accessToken string) error
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Session is the token pair returned to the admin UI.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresIn    int       `json:"expires_in"`
	ExpiresAt    time.Time `json:"expires_at"`
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
}

type AuthService struct {
	auth SessionAuth
	now  func() time.Time
}

// NewAuthService accepts a nil client; calls then fail with
// ErrAuthUnavailable.
func NewAuthService(auth SessionAuth) *AuthService {
	return &AuthService{auth: auth, now: time.Now}
}

func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*Session, error) {
	if s.auth == nil {
		return nil, ErrAuthUnavailable
	}
	sess, err := s.auth.SignIn(strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		logger.Warn().Err(err).Str("email", req.Email).Msg("admin sign in failed")
		return nil, ErrInvalidCredentials
	}
	return s.toSession(sess), nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	if s.auth == nil {
		return nil, ErrAuthUnavailable
	}
	if refreshToken == "" {
		return nil, invalidf("refresh token required")
	}
	sess, err := s.auth.Refresh(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.toSession(sess), nil
}

// ExchangeCode completes the PKCE flow started by the auth callback.
func (s *AuthService) ExchangeCode(ctx context.Context, code, verifier string) (*Session, error) {
	if s.auth == nil {
		return nil, ErrAuthUnavailable
	}
	if code == "" || verifier == "" {
		return nil, invalidf("auth code and verifier required")
	}
	sess, err := s.auth.ExchangeCode(code, verifier)
	if err != nil {
		return nil, err
	}
	return s.toSession(sess), nil
}

// Logout revokes the session. Failures are logged; the caller always
// clears its cookies.
func (s *AuthService) Logout(ctx context.Context, accessToken string) {
	if s.auth == nil || accessToken == "" {
		return
	}
	if err := s.auth.SignOut(accessToken); err != nil {
		logger.Warn().Err(err).Msg("sign out failed")
	}
}

func (s *AuthService) toSession(sess *types.Session) *Session {
	out := &Session{
		AccessToken:  sess.AccessToken,
		RefreshToken: sess.RefreshToken,
		ExpiresIn:    sess.ExpiresIn,
		UserID:       sess.User.ID.String(),
		Email:        sess.User.Email,
	}
	if sess.ExpiresAt > 0 {
		out.ExpiresAt = time.Unix(sess.ExpiresAt, 0)
	} else {
		out.ExpiresAt = s.now().Add(time.Duration(sess.ExpiresIn) * time.Second)
	}
	return out
}

// SafeRedirect returns next when it is a local path, else fallback.
// Control characters are refused since browsers strip them, turning
// "/\t/host" into "//host".
func SafeRedirect(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return fallback
	}
	for i := 0; i < len(next); i++ {
		if next[i] < 0x20 || next[i] == 0x7f {
			return fallback
		}
	}
	return next
}
