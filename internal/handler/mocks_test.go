package handler

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/habittrack/habittrack/internal/auth"
	"github.com/habittrack/habittrack/internal/storage"
)

// fakeUserStore backs both the auth core (auth.UserStore) and the admin
// directory (UserDirectory) in end-to-end handler tests.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*auth.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*auth.User)}
}

func (s *fakeUserStore) Create(_ context.Context, user *auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == user.Username {
			return auth.ErrUsernameTaken
		}
	}
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *fakeUserStore) GetByUsername(_ context.Context, username string) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, auth.ErrUserNotFound
}

func (s *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *fakeUserStore) List(_ context.Context) ([]auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]auth.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out, nil
}

func (s *fakeUserStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return auth.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

// fakeHabitStore is an in-memory HabitRepository.
type fakeHabitStore struct {
	mu     sync.Mutex
	habits map[uuid.UUID]*storage.Habit
}

func newFakeHabitStore() *fakeHabitStore {
	return &fakeHabitStore{habits: make(map[uuid.UUID]*storage.Habit)}
}

func (s *fakeHabitStore) Create(_ context.Context, habit *storage.Habit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *habit
	s.habits[habit.ID] = &copied
	return nil
}

func (s *fakeHabitStore) ListByUser(_ context.Context, userID uuid.UUID) ([]storage.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]storage.Habit, 0)
	for _, h := range s.habits {
		if h.UserID == userID {
			out = append(out, *h)
		}
	}
	return out, nil
}

func (s *fakeHabitStore) GetForUser(_ context.Context, userID, habitID uuid.UUID) (*storage.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.habits[habitID]
	if !ok || h.UserID != userID {
		return nil, storage.ErrHabitNotFound
	}
	copied := *h
	return &copied, nil
}

func (s *fakeHabitStore) Update(_ context.Context, habit *storage.Habit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.habits[habit.ID]
	if !ok || existing.UserID != habit.UserID {
		return storage.ErrHabitNotFound
	}
	copied := *habit
	s.habits[habit.ID] = &copied
	return nil
}

func (s *fakeHabitStore) DeleteForUser(_ context.Context, userID, habitID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.habits[habitID]
	if !ok || h.UserID != userID {
		return storage.ErrHabitNotFound
	}
	delete(s.habits, habitID)
	return nil
}

// stubAdapter is a canned auth.ProviderAdapter for handler-level OAuth tests.
type stubAdapter struct {
	id      string
	profile auth.ProviderProfile
	err     error

	mu        sync.Mutex
	lastState string
}

func (a *stubAdapter) ProviderID() string { return a.id }

func (a *stubAdapter) AuthURL(state string) string {
	a.mu.Lock()
	a.lastState = state
	a.mu.Unlock()
	return "https://provider.example/authorize?state=" + state
}

func (a *stubAdapter) ResolveProfile(context.Context, string) (auth.ProviderProfile, error) {
	return a.profile, a.err
}

func (a *stubAdapter) issuedState() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastState
}
