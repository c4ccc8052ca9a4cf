package handler

import (
	"context"

	"github.com/habittrack/habittrack/internal/auth"
)

type contextKey struct{ name string }

var userContextKey = contextKey{"user"}

func setUser(ctx context.Context, user *auth.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// userFrom returns the authenticated user injected by the Authenticate
// middleware, or nil outside an authenticated route group.
func userFrom(ctx context.Context) *auth.User {
	user, _ := ctx.Value(userContextKey).(*auth.User)
	return user
}
