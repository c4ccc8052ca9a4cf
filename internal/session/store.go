// Package session stores OAuth state nonces for the duration of a single
// login round trip. Each nonce is keyed by the caller's session and is
// consumed exactly once at callback validation.
package session

import (
	"context"
	"errors"
	"time"
)

var ErrStateNotFound = errors.New("session: state not found or expired")

// StateStore persists a single state nonce per session key.
type StateStore interface {
	// Put stores state under key, replacing any previous value. The entry
	// expires after ttl.
	Put(ctx context.Context, key, state string, ttl time.Duration) error

	// Pop atomically retrieves and removes the state stored under key.
	// Returns ErrStateNotFound if no live entry exists. The removal happens
	// regardless of what the caller does with the value, so a captured
	// callback URL cannot be replayed.
	Pop(ctx context.Context, key string) (string, error)
}
