// Package config loads runtime configuration from an optional .env file and
// the process environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	BackendFilesystem = "filesystem"
	BackendSQLite     = "sqlite"
)

// Config holds all runtime configuration for the server.
type Config struct {
	Port string

	// Storage
	Backend      string // "filesystem" or "sqlite"
	UploadsDir   string
	CarouselFile string
	DatabasePath string

	// Upload validation
	MaxUploadBytes      int64
	AllowedContentTypes []string // nil means the validator defaults

	// Admin session
	AdminUser         string
	AdminPasswordHash string
	AdminPassword     string // hashed at startup when no hash is given
	JWTSecret         string
	BcryptCost        int
	CookieSecure      bool
}

// Load reads .env files (when present) and then the environment.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from the given lookup function and validates it.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, fallback string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return fallback
	}

	cfg := &Config{
		Port:              get("PORT", "3000"),
		Backend:           get("STORAGE_BACKEND", BackendFilesystem),
		UploadsDir:        get("UPLOADS_DIR", "uploads"),
		CarouselFile:      get("CAROUSEL_FILE", "carousel_data.json"),
		DatabasePath:      get("DATABASE_PATH", "carousel.db"),
		AdminUser:         get("ADMIN_USER", "admin"),
		AdminPasswordHash: getenv("ADMIN_PASSWORD_HASH"),
		AdminPassword:     getenv("ADMIN_PASSWORD"),
		JWTSecret:         getenv("JWT_SECRET"),
		// Default to secure cookies; disable only for local development.
		CookieSecure: getenv("COOKIE_SECURE") != "false",
		BcryptCost:   12,
	}

	if v := getenv("BCRYPT_COST"); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
		}
		cfg.BcryptCost = cost
	}

	if v := getenv("MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_UPLOAD_BYTES: %w", err)
		}
		cfg.MaxUploadBytes = n
	}

	if v := getenv("ALLOWED_CONTENT_TYPES"); v != "" {
		for _, ct := range strings.Split(v, ",") {
			if ct = strings.TrimSpace(ct); ct != "" {
				cfg.AllowedContentTypes = append(cfg.AllowedContentTypes, ct)
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that have no safe default.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET environment variable is required")
	}
	if len(c.JWTSecret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 characters for HMAC-SHA256 security")
	}
	if c.AdminPasswordHash == "" && c.AdminPassword == "" {
		return errors.New("ADMIN_PASSWORD_HASH or ADMIN_PASSWORD is required")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 14 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", c.BcryptCost)
	}
	if c.MaxUploadBytes < 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must not be negative, got %d", c.MaxUploadBytes)
	}
	switch c.Backend {
	case BackendFilesystem, BackendSQLite:
	default:
		return fmt.Errorf("STORAGE_BACKEND must be %q or %q, got %q", BackendFilesystem, BackendSQLite, c.Backend)
	}
	return nil
}
