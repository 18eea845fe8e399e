package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/msomdec/carousel-admin/internal/config"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func lookup(env map[string]string) func(string) string {
	return func(key string) string { return env[key] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := config.FromEnv(lookup(map[string]string{
		"JWT_SECRET":     testSecret,
		"ADMIN_PASSWORD": "admin123",
	}))
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}

	if cfg.Port != "3000" {
		t.Fatalf("expected port 3000, got %s", cfg.Port)
	}
	if cfg.Backend != config.BackendFilesystem {
		t.Fatalf("expected filesystem backend, got %s", cfg.Backend)
	}
	if cfg.UploadsDir != "uploads" || cfg.CarouselFile != "carousel_data.json" {
		t.Fatalf("unexpected storage paths %q %q", cfg.UploadsDir, cfg.CarouselFile)
	}
	if cfg.AdminUser != "admin" {
		t.Fatalf("expected admin user, got %q", cfg.AdminUser)
	}
	if !cfg.CookieSecure {
		t.Fatal("expected secure cookies by default")
	}
	if cfg.BcryptCost != 12 {
		t.Fatalf("expected bcrypt cost 12, got %d", cfg.BcryptCost)
	}
	if cfg.MaxUploadBytes != 0 || cfg.AllowedContentTypes != nil {
		t.Fatal("expected validator defaults to be left to the service")
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := config.FromEnv(lookup(map[string]string{
		"JWT_SECRET":            testSecret,
		"ADMIN_PASSWORD_HASH":   "$2a$04$hash",
		"STORAGE_BACKEND":       "sqlite",
		"MAX_UPLOAD_BYTES":      "1048576",
		"ALLOWED_CONTENT_TYPES": "image/png, video/webm ,",
		"COOKIE_SECURE":         "false",
		"BCRYPT_COST":           "4",
	}))
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}

	if cfg.Backend != config.BackendSQLite {
		t.Fatalf("expected sqlite backend, got %s", cfg.Backend)
	}
	if cfg.MaxUploadBytes != 1<<20 {
		t.Fatalf("expected 1MB limit, got %d", cfg.MaxUploadBytes)
	}
	if strings.Join(cfg.AllowedContentTypes, "|") != "image/png|video/webm" {
		t.Fatalf("unexpected allow-list %v", cfg.AllowedContentTypes)
	}
	if cfg.CookieSecure {
		t.Fatal("expected insecure cookies when COOKIE_SECURE=false")
	}
}

func TestFromEnv_Invalid(t *testing.T) {
	base := map[string]string{"JWT_SECRET": testSecret, "ADMIN_PASSWORD": "pw"}

	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"missing secret", "JWT_SECRET", ""},
		{"short secret", "JWT_SECRET", "short"},
		{"bad cost", "BCRYPT_COST", "abc"},
		{"cost out of range", "BCRYPT_COST", "20"},
		{"bad size", "MAX_UPLOAD_BYTES", "5MB"},
		{"negative size", "MAX_UPLOAD_BYTES", "-1"},
		{"unknown backend", "STORAGE_BACKEND", "s3"},
		{"no password", "ADMIN_PASSWORD", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := make(map[string]string, len(base)+1)
			for k, v := range base {
				env[k] = v
			}
			env[tc.key] = tc.val

			if _, err := config.FromEnv(lookup(env)); err == nil {
				t.Fatalf("expected error for %s=%q", tc.key, tc.val)
			}
		})
	}
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "JWT_SECRET=" + testSecret + "\nADMIN_PASSWORD=from-file\nPORT=4321\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	for _, key := range []string{"JWT_SECRET", "ADMIN_PASSWORD", "PORT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "4321" || cfg.AdminPassword != "from-file" {
		t.Fatalf("expected values from .env, got port=%s password=%s", cfg.Port, cfg.AdminPassword)
	}
}

func TestLoad_MissingEnvFileIsFine(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("ADMIN_PASSWORD", "pw")

	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("Load: %v", err)
	}
}
