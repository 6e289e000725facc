package services

//go:generate mockgen -source=auth.go -destination=auth_mock_test.go -package=services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wrap-credits/internal/logger"
	"github.com/sbilibin2017/gw-wrap-credits/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
}

// SessionStore persists login sessions by token hash.
type SessionStore interface {
	GetUserByTokenHash(ctx context.Context, tokenHash string) (*models.SessionUser, error)
	Create(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time, ip, userAgent *string) error
	DeleteByTokenHash(ctx context.Context, tokenHash string) error
}

// AuthService handles login, logout and session resolution.
type AuthService struct {
	reader   UserReader
	sessions SessionStore
	ttl      time.Duration
	now      func() time.Time
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, sessions SessionStore, ttl time.Duration) *AuthService {
	return &AuthService{
		reader:   reader,
		sessions: sessions,
		ttl:      ttl,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// HashToken returns the hex sha256 of a session token. Only the hash is stored.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func newSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// Login checks the credentials and opens a session.
// Returns the raw session token and its expiry.
func (svc *AuthService) Login(ctx context.Context, email, password, ip, userAgent string) (string, time.Time, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", time.Time{}, ErrInvalidCredentials
	}

	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return "", time.Time{}, err
	}
	if user == nil {
		logger.Log.Infow("login for unknown email", "email", email)
		return "", time.Time{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Infow("invalid credentials", "email", email)
		return "", time.Time{}, ErrInvalidCredentials
	}

	token, err := newSessionToken()
	if err != nil {
		logger.Log.Errorw("failed to generate session token", "err", err)
		return "", time.Time{}, err
	}

	expiresAt := svc.now().Add(svc.ttl)
	if err := svc.sessions.Create(ctx, user.UserID, HashToken(token), expiresAt, optional(ip), optional(userAgent)); err != nil {
		logger.Log.Errorw("failed to create session", "err", err)
		return "", time.Time{}, err
	}

	return token, expiresAt, nil
}

// ResolveSession returns the user behind a session token, or nil when the
// token is empty, unknown or expired.
func (svc *AuthService) ResolveSession(ctx context.Context, token string) (*models.SessionUser, error) {
	if token == "" {
		return nil, nil
	}
	user, err := svc.sessions.GetUserByTokenHash(ctx, HashToken(token))
	if err != nil {
		logger.Log.Errorw("failed to resolve session", "err", err)
		return nil, err
	}
	return user, nil
}

// Logout deletes the session. Unknown tokens are ignored.
func (svc *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := svc.sessions.DeleteByTokenHash(ctx, HashToken(token)); err != nil {
		logger.Log.Errorw("failed to delete session", "err", err)
		return err
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
