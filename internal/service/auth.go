package service

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/msomdec/carousel-admin/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

const sessionTTL = 24 * time.Hour

// AdminCredentials describes the single administrator account.
type AdminCredentials struct {
	Username     string
	PasswordHash string // bcrypt
	SigningKey   string // HMAC key for session tokens
}

// AuthService verifies the admin login and issues JWT session tokens.
type AuthService struct {
	username     string
	passwordHash []byte
	signingKey   []byte
}

// NewAuthService creates a new AuthService.
func NewAuthService(creds AdminCredentials) *AuthService {
	return &AuthService{
		username:     creds.Username,
		passwordHash: []byte(creds.PasswordHash),
		signingKey:   []byte(creds.SigningKey),
	}
}

// HashPassword returns a bcrypt hash for use in AdminCredentials.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether username and password match the admin account.
func (s *AuthService) Verify(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	// Always run bcrypt so a wrong username costs the same as a wrong password.
	passOK := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)) == nil
	return userOK && passOK
}

// Login verifies credentials and returns a signed session token.
func (s *AuthService) Login(username, password string) (string, error) {
	if !s.Verify(username, password) {
		return "", domain.ErrUnauthorized
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   s.username,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return token, nil
}

// ValidateToken parses a session token and returns the admin username.
func (s *AuthService) ValidateToken(tokenString string) (string, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil || !token.Valid {
		return "", domain.ErrUnauthorized
	}

	if claims.Subject != s.username {
		return "", domain.ErrUnauthorized
	}
	return claims.Subject, nil
}

// SessionTTL is how long an issued token stays valid.
func (s *AuthService) SessionTTL() time.Duration {
	return sessionTTL
}
