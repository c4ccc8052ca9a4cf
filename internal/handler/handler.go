// Package handler wires the HTTP surface: routing, middleware, request
// decoding and the mapping from domain errors to status codes. All
// correctness-sensitive decisions are delegated to internal/auth.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/habittrack/habittrack/internal/auth"
	"github.com/habittrack/habittrack/internal/logger"
	"github.com/habittrack/habittrack/internal/storage"
)

// Config holds the handler-level settings sourced from the environment.
type Config struct {
	FrontendURL        string   `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
	SessionCookieName  string   `env:"OAUTH_SESSION_COOKIE" envDefault:"oauth_session"`
}

// UserDirectory is the admin-facing view of the user store.
type UserDirectory interface {
	List(ctx context.Context) ([]auth.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// HabitRepository is the owner-scoped habit store consumed by the CRUD
// handlers.
type HabitRepository interface {
	Create(ctx context.Context, habit *storage.Habit) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]storage.Habit, error)
	GetForUser(ctx context.Context, userID, habitID uuid.UUID) (*storage.Habit, error)
	Update(ctx context.Context, habit *storage.Habit) error
	DeleteForUser(ctx context.Context, userID, habitID uuid.UUID) error
}

// Handler bundles the dependencies of all HTTP endpoints.
type Handler struct {
	cfg         Config
	log         *slog.Logger
	guard       *auth.Guard
	passwords   *auth.PasswordService
	tokens      *auth.TokenService
	oauth       map[string]*auth.OAuthService
	users       UserDirectory
	habits      HabitRepository
	healthcheck func(context.Context) error
}

type Option func(*Handler)

// WithHealthcheck registers a dependency probe reported by GET /health.
func WithHealthcheck(fn func(context.Context) error) Option {
	return func(h *Handler) {
		h.healthcheck = fn
	}
}

// New creates a Handler. The oauth map is keyed by provider ID; providers
// without configured credentials are simply absent.
func New(
	cfg Config,
	log *slog.Logger,
	guard *auth.Guard,
	passwords *auth.PasswordService,
	tokens *auth.TokenService,
	oauth map[string]*auth.OAuthService,
	users UserDirectory,
	habits HabitRepository,
	opts ...Option,
) *Handler {
	h := &Handler{
		cfg:       cfg,
		log:       log,
		guard:     guard,
		passwords: passwords,
		tokens:    tokens,
		oauth:     oauth,
		users:     users,
		habits:    habits,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Router assembles the route tree.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.cors)

	r.Get("/health", h.Health)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/refresh", h.Refresh)

		r.Get("/{provider}/login", h.OAuthBegin)
		r.Get("/{provider}/callback", h.OAuthCallback)

		r.Group(func(r chi.Router) {
			r.Use(h.Authenticate)
			r.Get("/me", h.Me)
		})
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(h.Authenticate, h.AdminOnly)
		r.Get("/", h.ListUsers)
		r.Delete("/{id}", h.DeleteUser)
	})

	r.Route("/habits", func(r chi.Router) {
		r.Use(h.Authenticate)
		r.Get("/", h.ListHabits)
		r.Post("/", h.CreateHabit)
		r.Get("/{id}", h.GetHabit)
		r.Put("/{id}", h.UpdateHabit)
		r.Delete("/{id}", h.DeleteHabit)
	})

	return r
}

// Health reports process liveness and, when a probe is registered,
// dependency readiness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if h.healthcheck != nil {
		if err := h.healthcheck(r.Context()); err != nil {
			h.log.ErrorContext(r.Context(), "healthcheck failed",
				logger.Error(err),
				logger.Component("handler"),
			)
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
