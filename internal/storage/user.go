// Package storage implements Postgres persistence for users and habits on
// top of a pgx connection pool. Uniqueness and ownership rules live in the
// schema; this package translates constraint violations and missing rows into
// domain errors.
package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/habittrack/habittrack/internal/auth"
	"github.com/habittrack/habittrack/internal/pg"
)

// UserStore persists user records. Implements auth.UserStore.
type UserStore struct {
	db *pgxpool.Pool
}

func NewUserStore(db *pgxpool.Pool) *UserStore {
	return &UserStore{db: db}
}

// Create inserts a user. The unique index on username is the race guard for
// concurrent registrations and first OAuth logins; a violation surfaces as
// auth.ErrUsernameTaken.
func (s *UserStore) Create(ctx context.Context, user *auth.User) error {
	const op = "storage.UserStore.Create"

	_, err := s.db.Exec(ctx,
		`INSERT INTO users (id, username, password_hash, role, created_at) VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Username, user.PasswordHash, user.Role, user.CreatedAt,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return auth.ErrUsernameTaken
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (*auth.User, error) {
	const op = "storage.UserStore.GetByUsername"

	var user auth.User
	err := s.db.QueryRow(ctx,
		`SELECT id, username, password_hash, role, created_at FROM users WHERE username = $1`,
		username,
	).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role, &user.CreatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &user, nil
}

func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	const op = "storage.UserStore.GetByID"

	var user auth.User
	err := s.db.QueryRow(ctx,
		`SELECT id, username, password_hash, role, created_at FROM users WHERE id = $1`,
		id,
	).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role, &user.CreatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &user, nil
}

func (s *UserStore) List(ctx context.Context) ([]auth.User, error) {
	const op = "storage.UserStore.List"

	rows, err := s.db.Query(ctx,
		`SELECT id, username, password_hash, role, created_at FROM users ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var users []auth.User
	for rows.Next() {
		var user auth.User
		if err := rows.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return users, nil
}

// Delete removes a user; habits cascade in the schema.
func (s *UserStore) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "storage.UserStore.Delete"

	tag, err := s.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return auth.ErrUserNotFound
	}

	return nil
}
