package services

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/supabase-community/gotrue-go/types"
)

func TestAdminUserService_RequiresServiceRole(t *testing.T) {
	svc := NewAdminUserService(nil)

	if svc.Available() {
		t.Error("service should report unavailable")
	}
	if _, err := svc.Invite(bg, &InviteRequest{Email: "a@b.c"}); !errors.Is(err, ErrServiceRoleRequired) {
		t.Errorf("Invite: expected ErrServiceRoleRequired, got %v", err)
	}
	if _, err := svc.List(bg); !errors.Is(err, ErrServiceRoleRequired) {
		t.Errorf("List: expected ErrServiceRoleRequired, got %v", err)
	}
	if err := svc.Delete(bg, uuid.NewString(), ""); !errors.Is(err, ErrServiceRoleRequired) {
		t.Errorf("Delete: expected ErrServiceRoleRequired, got %v", err)
	}
	if err := svc.ToggleBan(bg, uuid.NewString(), "", true); !errors.Is(err, ErrServiceRoleRequired) {
		t.Errorf("ToggleBan: expected ErrServiceRoleRequired, got %v", err)
	}
}

func TestAdminUserService_InviteByEmail(t *testing.T) {
	admin := newFakeAuthAdmin()
	svc := NewAdminUserService(admin)

	res, err := svc.Invite(bg, &InviteRequest{Email: " new@devxtra.dev "})
	if err != nil {
		t.Fatalf("Invite() error: %v", err)
	}
	if len(admin.invited) != 1 || admin.invited[0] != "new@devxtra.dev" {
		t.Errorf("invited = %v", admin.invited)
	}
	if res.TempPassword != "" {
		t.Error("invite flow should not return a password")
	}
}

func TestAdminUserService_DirectAddReturnsPasswordOnce(t *testing.T) {
	admin := newFakeAuthAdmin()
	svc := NewAdminUserService(admin)

	res, err := svc.Invite(bg, &InviteRequest{Email: "new@devxtra.dev", DirectAdd: true})
	if err != nil {
		t.Fatalf("Invite() error: %v", err)
	}
	if len(res.TempPassword) != 16 {
		t.Errorf("temp password length = %d, expected 16", len(res.TempPassword))
	}
	if admin.created["new@devxtra.dev"] != res.TempPassword {
		t.Error("returned password should be the one the user was created with")
	}
	if len(admin.invited) != 0 {
		t.Error("direct add must not send an invite")
	}
}

func TestAdminUserService_InviteSurfacesError(t *testing.T) {
	admin := newFakeAuthAdmin()
	admin.err = errors.New("A user with this email address has already been registered")
	svc := NewAdminUserService(admin)

	_, err := svc.Invite(bg, &InviteRequest{Email: "dup@devxtra.dev"})
	if err == nil || err.Error() != admin.err.Error() {
		t.Errorf("expected upstream message, got %v", err)
	}
}

func TestAdminUserService_ListDerivesBanned(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	admin := newFakeAuthAdmin()
	admin.users = []types.User{
		{ID: uuid.New(), Email: "banned@devxtra.dev", BannedUntil: &future},
		{ID: uuid.New(), Email: "expired@devxtra.dev", BannedUntil: &past},
		{ID: uuid.New(), Email: "ok@devxtra.dev"},
	}
	svc := NewAdminUserService(admin)
	svc.now = func() time.Time { return now }

	users, err := svc.List(bg)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	want := map[string]bool{"banned@devxtra.dev": true, "expired@devxtra.dev": false, "ok@devxtra.dev": false}
	for _, u := range users {
		if u.Banned != want[u.Email] {
			t.Errorf("%s: banned = %v, expected %v", u.Email, u.Banned, want[u.Email])
		}
	}
}

func TestAdminUserService_ToggleBan(t *testing.T) {
	admin := newFakeAuthAdmin()
	svc := NewAdminUserService(admin)
	id := uuid.New()

	if err := svc.ToggleBan(bg, id.String(), "", true); err != nil {
		t.Fatalf("ban: %v", err)
	}
	if admin.bans[id] != 876000*time.Hour {
		t.Errorf("ban duration = %v, expected 876000h", admin.bans[id])
	}

	if err := svc.ToggleBan(bg, id.String(), "", false); err != nil {
		t.Fatalf("unban: %v", err)
	}
	if admin.bans[id] != 0 {
		t.Errorf("unban should lift the ban, got %v", admin.bans[id])
	}
}

func TestAdminUserService_RefusesSelf(t *testing.T) {
	admin := newFakeAuthAdmin()
	svc := NewAdminUserService(admin)
	me := uuid.NewString()

	if err := svc.Delete(bg, me, me); !errors.Is(err, ErrSelfAction) {
		t.Errorf("Delete self: expected ErrSelfAction, got %v", err)
	}
	if err := svc.ToggleBan(bg, me, me, true); !errors.Is(err, ErrSelfAction) {
		t.Errorf("Ban self: expected ErrSelfAction, got %v", err)
	}
	if len(admin.deleted) != 0 || len(admin.bans) != 0 {
		t.Error("no upstream call expected")
	}
}

func TestAdminUserService_InvalidID(t *testing.T) {
	svc := NewAdminUserService(newFakeAuthAdmin())

	var ve *ValidationError
	if err := svc.Delete(bg, "nope", ""); !errors.As(err, &ve) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}
