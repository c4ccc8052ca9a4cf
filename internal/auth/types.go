package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role is the coarse authorization tier attached to every user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is an identity record. Username is the immutable identity column; for
// OAuth-created accounts it holds the normalized provider email.
// PasswordHash is empty for OAuth-only accounts, which can never pass
// password login.
type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// UserStore is the persistence interface the auth core depends on. The
// implementation must enforce uniqueness on the username column and map a
// violation to ErrUsernameTaken, and absence to ErrUserNotFound.
type UserStore interface {
	Create(ctx context.Context, user *User) error
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
}

// NormalizeUsername canonicalizes an identity string. Usernames and provider
// emails share the identity column, so both go through the same trim and
// lowercase.
func NormalizeUsername(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
