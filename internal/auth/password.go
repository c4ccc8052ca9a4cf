package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/habittrack/habittrack/internal/logger"
)

// HashPassword produces a salted bcrypt digest. Each call salts freshly, so
// hashing the same plaintext twice yields different digests.
//
// A hashing failure means the process cannot produce credentials safely and
// is not recoverable by the caller.
func HashPassword(plaintext string, cost int) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(digest), nil
}

// VerifyPassword reports whether plaintext matches digest. A malformed or
// empty digest is a plain false, never an error.
func VerifyPassword(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

// PasswordService handles username/password registration and login.
type PasswordService struct {
	users      UserStore
	bcryptCost int
	logger     *slog.Logger
}

type PasswordOption func(*PasswordService)

// WithPasswordLogger sets a custom logger for the service.
func WithPasswordLogger(l *slog.Logger) PasswordOption {
	return func(s *PasswordService) {
		s.logger = l
	}
}

// WithBcryptCost sets the bcrypt cost for password hashing. Tests lower it to
// keep hashing off the critical path.
func WithBcryptCost(cost int) PasswordOption {
	return func(s *PasswordService) {
		s.bcryptCost = cost
	}
}

// NewPasswordService creates a password authentication service.
func NewPasswordService(users UserStore, opts ...PasswordOption) *PasswordService {
	s := &PasswordService{
		users:      users,
		bcryptCost: bcrypt.DefaultCost,
		logger:     logger.NewDiscard(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Register creates a new user with the given username and password.
// Returns ErrUsernameTaken when the username is already in use; uniqueness is
// enforced by the store, not by a read-then-write check.
func (s *PasswordService) Register(ctx context.Context, username, password string) (*User, error) {
	username = NormalizeUsername(username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}

	hash, err := HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hash,
		Role:         RoleUser,
		CreatedAt:    time.Now(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered",
		logger.UserID(user.ID.String()),
		logger.Component("password"),
	)

	return user, nil
}

// Authenticate verifies username and password and returns the user record.
// Every failure is the same ErrInvalidCredentials: a missing username, a
// wrong password and an OAuth-only account are indistinguishable to the
// caller, which prevents user enumeration.
func (s *PasswordService) Authenticate(ctx context.Context, username, password string) (*User, error) {
	username = NormalizeUsername(username)

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	// OAuth-only accounts carry an empty hash sentinel.
	if user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
