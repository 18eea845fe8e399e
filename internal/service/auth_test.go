package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/msomdec/carousel-admin/internal/domain"
	"github.com/msomdec/carousel-admin/internal/service"
)

const testSigningKey = "test-secret-key-for-unit-tests-0123456789"

// Verify that *service.AuthService implements domain.Authenticator at compile time.
var _ domain.Authenticator = (*service.AuthService)(nil)

func newTestAuthService(t *testing.T) *service.AuthService {
	t.Helper()
	// Use cost 4 for fast tests.
	hash, err := service.HashPassword("admin123", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	return service.NewAuthService(service.AdminCredentials{
		Username:     "admin",
		PasswordHash: hash,
		SigningKey:   testSigningKey,
	})
}

func TestAuthService_Verify(t *testing.T) {
	auth := newTestAuthService(t)

	tests := []struct {
		name     string
		username string
		password string
		want     bool
	}{
		{"correct", "admin", "admin123", true},
		{"wrong password", "admin", "admin124", false},
		{"wrong username", "root", "admin123", false},
		{"empty", "", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := auth.Verify(tc.username, tc.password); got != tc.want {
				t.Fatalf("Verify(%q, %q) = %v, want %v", tc.username, tc.password, got, tc.want)
			}
		})
	}
}

func TestAuthService_LoginAndValidate(t *testing.T) {
	auth := newTestAuthService(t)

	token, err := auth.Login("admin", "admin123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	username, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if username != "admin" {
		t.Fatalf("expected admin, got %q", username)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	auth := newTestAuthService(t)

	_, err := auth.Login("admin", "nope")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthService_TokensAreUnique(t *testing.T) {
	auth := newTestAuthService(t)

	a, err := auth.Login("admin", "admin123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	b, err := auth.Login("admin", "admin123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if a == b {
		t.Fatal("expected distinct tokens for separate logins")
	}
}

func TestAuthService_ValidateToken_Invalid(t *testing.T) {
	auth := newTestAuthService(t)

	if _, err := auth.ValidateToken("not-a-valid-jwt"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthService_ValidateToken_Tampered(t *testing.T) {
	auth := newTestAuthService(t)

	token, err := auth.Login("admin", "admin123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	tampered := token[:len(token)-5] + "XXXXX"
	if _, err := auth.ValidateToken(tampered); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for tampered token, got %v", err)
	}
}

func TestAuthService_ValidateToken_WrongSecret(t *testing.T) {
	auth := newTestAuthService(t)
	token, err := auth.Login("admin", "admin123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	other := service.NewAuthService(service.AdminCredentials{
		Username:   "admin",
		SigningKey: "a-completely-different-signing-key-value",
	})
	if _, err := other.ValidateToken(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for wrong secret, got %v", err)
	}
}

func TestAuthService_ValidateToken_Expired(t *testing.T) {
	auth := newTestAuthService(t)

	past := time.Now().Add(-48 * time.Hour)
	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(past),
		ExpiresAt: jwt.NewNumericDate(past.Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSigningKey))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := auth.ValidateToken(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for expired token, got %v", err)
	}
}

func TestAuthService_ValidateToken_OtherSubject(t *testing.T) {
	auth := newTestAuthService(t)

	claims := jwt.RegisteredClaims{
		Subject:   "intruder",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSigningKey))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := auth.ValidateToken(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for foreign subject, got %v", err)
	}
}
