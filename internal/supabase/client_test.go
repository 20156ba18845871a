package supabase

import (
	"errors"
	"testing"

	"github.com/mastrovia/devxtra-team/internal/config"
)

func TestProjectRef(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://abcd1234.supabase.co", "abcd1234"},
		{"http://localhost:54321", "localhost"},
	}
	for _, tt := range tests {
		if got := projectRef(tt.in); got != tt.want {
			t.Errorf("projectRef(%q) = %q, expected %q", tt.in, got, tt.want)
		}
	}
}

func TestNew_RequiresURLAndKey(t *testing.T) {
	_, err := New(&config.SupabaseConfig{URL: "https://x.supabase.co"})
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}

func TestNew_AdminOnlyWithServiceRole(t *testing.T) {
	clients, err := New(&config.SupabaseConfig{URL: "https://x.supabase.co", AnonKey: "anon"})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if clients.Admin != nil {
		t.Error("admin client should be nil without a service role key")
	}

	clients, err = New(&config.SupabaseConfig{URL: "https://x.supabase.co", AnonKey: "anon", ServiceRoleKey: "service"})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if clients.Admin == nil {
		t.Error("admin client should be built with a service role key")
	}
}
