package auth

import (
	"context"

	"github.com/google/uuid"
)

// Guard decides whether a resolved identity may perform a requested
// operation. It is the single place role checks live; handlers never inspect
// roles themselves.
type Guard struct {
	tokens *TokenService
	users  UserStore
}

// NewGuard creates an access control guard.
func NewGuard(tokens *TokenService, users UserStore) *Guard {
	return &Guard{
		tokens: tokens,
		users:  users,
	}
}

// RequireAuthenticated resolves a bearer token to its user record. Every
// verification failure (missing, expired, malformed token, unknown subject)
// collapses into ErrUnauthenticated for the caller.
func (g *Guard) RequireAuthenticated(ctx context.Context, token string) (*User, error) {
	claims, err := g.tokens.Verify(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	user, err := g.users.GetByUsername(ctx, claims.Subject)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	return user, nil
}

// RequireAdmin passes only for users holding the admin role.
func (g *Guard) RequireAdmin(user *User) error {
	if !user.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

// AuthorizeUserDelete checks an admin-only delete-user operation. An admin
// deleting their own account is rejected with ErrSelfDelete, which maps to a
// 400-class response rather than 403.
func (g *Guard) AuthorizeUserDelete(caller *User, target uuid.UUID) error {
	if err := g.RequireAdmin(caller); err != nil {
		return err
	}
	if caller.ID == target {
		return ErrSelfDelete
	}
	return nil
}
