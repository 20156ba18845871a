package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Storage.MaxUploadBytes != 5*1024*1024 {
		t.Errorf("MaxUploadBytes = %d, expected 5MB", cfg.Storage.MaxUploadBytes)
	}
	if cfg.Storage.AvatarBucket != "avatars" {
		t.Errorf("AvatarBucket = %q, expected %q", cfg.Storage.AvatarBucket, "avatars")
	}
	if cfg.Storage.ProjectImageBucket != "project-images" {
		t.Errorf("ProjectImageBucket = %q, expected %q", cfg.Storage.ProjectImageBucket, "project-images")
	}
	if cfg.HasServiceRole() {
		t.Error("default config should not have a service role key")
	}
}

func TestParseRedisURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.parseRedisURL("redis://:s3cret@cache.internal:6380/2")

	if cfg.Redis.Addr != "cache.internal:6380" {
		t.Errorf("Addr = %q, expected %q", cfg.Redis.Addr, "cache.internal:6380")
	}
	if cfg.Redis.Password != "s3cret" {
		t.Errorf("Password = %q, expected %q", cfg.Redis.Password, "s3cret")
	}
	if cfg.Redis.DB != 2 {
		t.Errorf("DB = %d, expected 2", cfg.Redis.DB)
	}
}

func TestOverrideFromEnv_Supabase(t *testing.T) {
	t.Setenv("NEXT_PUBLIC_SUPABASE_URL", "https://abc.supabase.co/")
	t.Setenv("NEXT_PUBLIC_SUPABASE_PUBLISHABLE_DEFAULT_KEY", "anon")
	t.Setenv("SUPABASE_SERVICE_ROLE_KEY", "service")
	t.Setenv("DATABASE_URL", "postgres://u:p@db.abc.supabase.co:5432/postgres")

	cfg := DefaultConfig()
	cfg.overrideFromEnv()

	if cfg.Supabase.URL != "https://abc.supabase.co" {
		t.Errorf("URL = %q, trailing slash should be trimmed", cfg.Supabase.URL)
	}
	if cfg.Supabase.AnonKey != "anon" {
		t.Errorf("AnonKey = %q, expected %q", cfg.Supabase.AnonKey, "anon")
	}
	if !cfg.HasServiceRole() {
		t.Error("HasServiceRole should be true")
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("Driver = %q, DATABASE_URL should force postgres", cfg.Database.Driver)
	}
}

func TestOverrideFromEnv_SMTPEnablesEmail(t *testing.T) {
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_RECIPIENTS", "a@example.com, b@example.com,")

	cfg := DefaultConfig()
	cfg.overrideFromEnv()

	if !cfg.Email.Enabled {
		t.Error("Email should be enabled when SMTP_HOST is set")
	}
	if len(cfg.Email.Recipients) != 2 {
		t.Errorf("Recipients = %v, expected 2 entries", cfg.Email.Recipients)
	}
}

func TestLoad_YAMLKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yml := "server:\n  port: \"9090\"\nsupabase:\n  url: https://xyz.supabase.co\n"
	if err := os.WriteFile(path, []byte(yml), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ENV_FILE", filepath.Join(dir, "missing.env"))

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("Port = %q, expected %q", cfg.Server.Port, "9090")
	}
	if cfg.Storage.AvatarBucket != "avatars" {
		t.Errorf("AvatarBucket = %q, defaults should survive partial YAML", cfg.Storage.AvatarBucket)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("SUPABASE_JWT_SECRET=from-dotenv\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ENV_FILE", envPath)
	t.Setenv("SUPABASE_JWT_SECRET", "")
	os.Unsetenv("SUPABASE_JWT_SECRET")

	cfg, err := Load(filepath.Join(dir, "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Supabase.JWTSecret != "from-dotenv" {
		t.Errorf("JWTSecret = %q, expected value from .env", cfg.Supabase.JWTSecret)
	}
}
