package models

import (
	"time"

	"github.com/google/uuid"
)

// Roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// UserDB represents a user record in the database
type UserDB struct {
	UserID       uuid.UUID `json:"id" db:"id"`                     // Primary key
	Email        string    `json:"email" db:"email"`               // Login email
	DisplayName  *string   `json:"display_name" db:"display_name"` // Optional display name
	PasswordHash string    `json:"-" db:"password_hash"`           // bcrypt hash
	Role         string    `json:"role" db:"role"`                 // user or admin
	CreatedAt    time.Time `json:"created_at" db:"created_at"`     // Creation timestamp
}

// SessionUser is the identity resolved from a session cookie.
type SessionUser struct {
	UserID      uuid.UUID `json:"id" db:"id"`
	Email       *string   `json:"email" db:"email"`
	DisplayName *string   `json:"display_name" db:"display_name"`
	Role        string    `json:"role" db:"role"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *SessionUser) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// SessionDB represents a sessions row. Only the token hash is persisted.
type SessionDB struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	TokenHash string    `db:"token_hash"`
	ExpiresAt time.Time `db:"expires_at"`
	IPAddress *string   `db:"ip_address"`
	UserAgent *string   `db:"user_agent"`
	CreatedAt time.Time `db:"created_at"`
}
