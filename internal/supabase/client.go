// Package supabase builds the BaaS clients used by the service layer: the
// public (anon key) auth client, the service-role auth admin client and the
// object storage client.
package supabase

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	supa "github.com/supabase-community/supabase-go"
	"github.com/supabase-community/gotrue-go"
	"github.com/supabase-community/gotrue-go/types"
	storage_go "github.com/supabase-community/storage-go"

	"github.com/mastrovia/devxtra-team/internal/config"
)

var ErrNotConfigured = errors.New("supabase is not configured")

// Clients groups the adapters built from one project configuration. Admin is
// nil when no service role key is configured.
type Clients struct {
	Auth    *Auth
	Admin   *AuthAdmin
	Storage *Storage
}

// New builds the clients for cfg.
func New(cfg *config.SupabaseConfig) (*Clients, error) {
	if cfg.URL == "" || cfg.AnonKey == "" {
		return nil, ErrNotConfigured
	}

	client, err := supa.NewClient(cfg.URL, cfg.AnonKey, nil)
	if err != nil {
		return nil, fmt.Errorf("init supabase client: %w", err)
	}

	out := &Clients{Auth: &Auth{client: client.Auth}}

	storageKey := cfg.AnonKey
	if cfg.ServiceRoleKey != "" {
		storageKey = cfg.ServiceRoleKey
		admin := gotrue.New(projectRef(cfg.URL), cfg.ServiceRoleKey).
			WithCustomGoTrueURL(cfg.URL + "/auth/v1").
			WithToken(cfg.ServiceRoleKey)
		out.Admin = &AuthAdmin{client: admin}
	}
	out.Storage = &Storage{
		client:  storage_go.NewClient(cfg.URL+"/storage/v1", storageKey, nil),
		baseURL: cfg.URL,
	}
	return out, nil
}

// projectRef extracts "abc" from https://abc.supabase.co.
func projectRef(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return rawURL
	}
	return strings.Split(u.Hostname(), ".")[0]
}

// Auth wraps the anon-key auth client used for sign in and session refresh.
type Auth struct {
	client gotrue.Client
}

func (a *Auth) SignIn(email, password string) (*types.Session, error) {
	resp, err := a.client.SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, err
	}
	return &resp.Session, nil
}

func (a *Auth) Refresh(refreshToken string) (*types.Session, error) {
	resp, err := a.client.RefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}
	return &resp.Session, nil
}

// ExchangeCode trades a PKCE auth code for a session.
func (a *Auth) ExchangeCode(code, verifier string) (*types.Session, error) {
	resp, err := a.client.Token(types.TokenRequest{
		GrantType:    "pkce",
		Code:         code,
		CodeVerifier: verifier,
	})
	if err != nil {
		return nil, err
	}
	return &resp.Session, nil
}

// SignOut revokes the session that owns accessToken.
func (a *Auth) SignOut(accessToken string) error {
	return a.client.WithToken(accessToken).Logout()
}

// AuthAdmin wraps the service-role auth client.
type AuthAdmin struct {
	client gotrue.Client
}

func (a *AuthAdmin) InviteUser(email string) error {
	_, err := a.client.Invite(types.InviteRequest{Email: email})
	return err
}

func (a *AuthAdmin) CreateUser(email, password string) (*types.User, error) {
	resp, err := a.client.AdminCreateUser(types.AdminCreateUserRequest{
		Email:        email,
		Password:     &password,
		EmailConfirm: true,
	})
	if err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// ListUsers returns the first page of users.
func (a *AuthAdmin) ListUsers() ([]types.User, error) {
	resp, err := a.client.AdminListUsers()
	if err != nil {
		return nil, err
	}
	return resp.Users, nil
}

func (a *AuthAdmin) DeleteUser(id uuid.UUID) error {
	return a.client.AdminDeleteUser(types.AdminDeleteUserRequest{UserID: id})
}

// SetBan bans the user for d, or lifts the ban when d is zero.
func (a *AuthAdmin) SetBan(id uuid.UUID, d time.Duration) error {
	duration := types.BanDurationNone()
	if d > 0 {
		duration = types.BanDurationTime(d)
	}
	_, err := a.client.AdminUpdateUser(types.AdminUpdateUserRequest{
		UserID:      id,
		BanDuration: &duration,
	})
	return err
}

// Storage wraps the object storage client.
type Storage struct {
	client  *storage_go.Client
	baseURL string
}

func (s *Storage) Upload(bucket, path string, body io.Reader, contentType string) error {
	cacheControl := "3600"
	upsert := false
	_, err := s.client.UploadFile(bucket, path, body, storage_go.FileOptions{
		CacheControl: &cacheControl,
		ContentType:  &contentType,
		Upsert:       &upsert,
	})
	return err
}

func (s *Storage) PublicURL(bucket, path string) string {
	resp := s.client.GetPublicUrl(bucket, path)
	if resp.SignedURL != "" {
		return resp.SignedURL
	}
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, bucket, path)
}

func (s *Storage) Remove(bucket string, paths []string) error {
	_, err := s.client.RemoveFile(bucket, paths)
	return err
}
