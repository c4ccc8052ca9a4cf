package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/habittrack/habittrack/internal/logger"
	"github.com/habittrack/habittrack/internal/session"
)

// ProviderProfile is the normalized identity a provider adapter extracts from
// a completed authorization-code exchange.
type ProviderProfile struct {
	Email         string
	EmailVerified bool
}

// ProviderAdapter isolates everything provider-specific: building the
// authorization URL and turning an authorization code into a profile.
type ProviderAdapter interface {
	ProviderID() string
	AuthURL(state string) string
	ResolveProfile(ctx context.Context, code string) (ProviderProfile, error)
}

// OAuthService drives the authorization-code flow for one provider:
// state-nonce CSRF protection, code exchange, profile normalization and
// identity resolution.
type OAuthService struct {
	users    UserStore
	states   session.StateStore
	adapter  ProviderAdapter
	stateTTL time.Duration
	logger   *slog.Logger
}

type OAuthOption func(*OAuthService)

// WithOAuthLogger sets a custom logger for the service.
func WithOAuthLogger(l *slog.Logger) OAuthOption {
	return func(s *OAuthService) {
		s.logger = l
	}
}

// WithStateTTL sets how long a stored state nonce stays valid.
func WithStateTTL(ttl time.Duration) OAuthOption {
	return func(s *OAuthService) {
		s.stateTTL = ttl
	}
}

// NewOAuthService creates an OAuth service for a single provider.
func NewOAuthService(users UserStore, states session.StateStore, adapter ProviderAdapter, opts ...OAuthOption) *OAuthService {
	s := &OAuthService{
		users:    users,
		states:   states,
		adapter:  adapter,
		stateTTL: 10 * time.Minute,
		logger:   logger.NewDiscard(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ProviderID returns the adapter's provider identifier.
func (s *OAuthService) ProviderID() string {
	return s.adapter.ProviderID()
}

// Begin starts a login attempt: it generates a state nonce, stores it keyed
// to the caller's session, and returns the provider authorization URL
// embedding the state.
func (s *OAuthService) Begin(ctx context.Context, sessionKey string) (string, error) {
	state, err := generateState()
	if err != nil {
		return "", fmt.Errorf("generate state: %w", err)
	}

	if err := s.states.Put(ctx, s.stateKey(sessionKey), state, s.stateTTL); err != nil {
		return "", fmt.Errorf("store state: %w", err)
	}

	return s.adapter.AuthURL(state), nil
}

// Callback completes a login attempt. The stored nonce is consumed before
// comparison, so a mismatching or replayed callback burns the attempt either
// way and a fresh Begin is required. A mismatch or absent nonce yields
// ErrStateMismatch with no token exchange attempted.
func (s *OAuthService) Callback(ctx context.Context, sessionKey, code, state string) (*User, error) {
	stored, err := s.states.Pop(ctx, s.stateKey(sessionKey))
	if err != nil {
		if errors.Is(err, session.ErrStateNotFound) {
			return nil, ErrStateMismatch
		}
		return nil, fmt.Errorf("pop state: %w", err)
	}

	if state == "" || subtle.ConstantTimeCompare([]byte(stored), []byte(state)) != 1 {
		return nil, ErrStateMismatch
	}

	profile, err := s.adapter.ResolveProfile(ctx, code)
	if err != nil {
		return nil, err
	}

	email := NormalizeUsername(profile.Email)
	if email == "" || !profile.EmailVerified {
		return nil, ErrEmailUnavailable
	}

	return s.resolveUser(ctx, email)
}

// resolveUser maps a verified provider email to a user record, creating one
// with role user and an empty password hash on first login. Idempotent across
// repeated logins with the same email.
func (s *OAuthService) resolveUser(ctx context.Context, email string) (*User, error) {
	user, err := s.users.GetByUsername(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	user = &User{
		ID:        uuid.New(),
		Username:  email,
		Role:      RoleUser,
		CreatedAt: time.Now(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		// Concurrent first logins race on the unique index; the loser
		// re-reads the row the winner inserted.
		if errors.Is(err, ErrUsernameTaken) {
			return s.users.GetByUsername(ctx, email)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.InfoContext(ctx, "user created from oauth login",
		logger.UserID(user.ID.String()),
		logger.Provider(s.adapter.ProviderID()),
		logger.Component("oauth"),
	)

	return user, nil
}

func (s *OAuthService) stateKey(sessionKey string) string {
	return s.adapter.ProviderID() + ":" + sessionKey
}

func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
