package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/habittrack/habittrack/internal/pg"
)

var ErrHabitNotFound = errors.New("storage: habit not found")

// Habit is a tracked habit owned by a single user.
type Habit struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Description string
	Completed   bool
	CreatedAt   time.Time
}

// HabitStore persists habits. Every read and write is scoped to the owning
// user, so one user can never see or touch another's habits.
type HabitStore struct {
	db *pgxpool.Pool
}

func NewHabitStore(db *pgxpool.Pool) *HabitStore {
	return &HabitStore{db: db}
}

func (s *HabitStore) Create(ctx context.Context, habit *Habit) error {
	const op = "storage.HabitStore.Create"

	_, err := s.db.Exec(ctx,
		`INSERT INTO habits (id, user_id, name, description, completed, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		habit.ID, habit.UserID, habit.Name, habit.Description, habit.Completed, habit.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *HabitStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]Habit, error) {
	const op = "storage.HabitStore.ListByUser"

	rows, err := s.db.Query(ctx,
		`SELECT id, user_id, name, description, completed, created_at FROM habits WHERE user_id = $1 ORDER BY created_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var habits []Habit
	for rows.Next() {
		var habit Habit
		if err := rows.Scan(&habit.ID, &habit.UserID, &habit.Name, &habit.Description, &habit.Completed, &habit.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		habits = append(habits, habit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return habits, nil
}

func (s *HabitStore) GetForUser(ctx context.Context, userID, habitID uuid.UUID) (*Habit, error) {
	const op = "storage.HabitStore.GetForUser"

	var habit Habit
	err := s.db.QueryRow(ctx,
		`SELECT id, user_id, name, description, completed, created_at FROM habits WHERE id = $1 AND user_id = $2`,
		habitID, userID,
	).Scan(&habit.ID, &habit.UserID, &habit.Name, &habit.Description, &habit.Completed, &habit.CreatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrHabitNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &habit, nil
}

// Update writes name, description and completed. The WHERE clause re-checks
// ownership, so a habit moved or deleted concurrently reports ErrHabitNotFound.
func (s *HabitStore) Update(ctx context.Context, habit *Habit) error {
	const op = "storage.HabitStore.Update"

	tag, err := s.db.Exec(ctx,
		`UPDATE habits SET name = $1, description = $2, completed = $3 WHERE id = $4 AND user_id = $5`,
		habit.Name, habit.Description, habit.Completed, habit.ID, habit.UserID,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrHabitNotFound
	}

	return nil
}

func (s *HabitStore) DeleteForUser(ctx context.Context, userID, habitID uuid.UUID) error {
	const op = "storage.HabitStore.DeleteForUser"

	tag, err := s.db.Exec(ctx, `DELETE FROM habits WHERE id = $1 AND user_id = $2`, habitID, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrHabitNotFound
	}

	return nil
}
