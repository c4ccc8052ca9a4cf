package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/habittrack/habittrack/internal/auth"
	"github.com/habittrack/habittrack/internal/config"
	"github.com/habittrack/habittrack/internal/handler"
	"github.com/habittrack/habittrack/internal/httpserver"
	"github.com/habittrack/habittrack/internal/logger"
	"github.com/habittrack/habittrack/internal/pg"
	"github.com/habittrack/habittrack/internal/session"
	"github.com/habittrack/habittrack/internal/storage"
)

type appConfig struct {
	Logger  logger.Config
	DB      pg.Config
	Tokens  auth.TokenConfig
	Google  auth.GoogleOAuthConfig
	GitHub  auth.GitHubOAuthConfig
	Handler handler.Config
	Server  httpserver.Config
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.New(cfg.Logger)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("server exited with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	pool, err := pg.Connect(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, cfg.DB, log); err != nil {
		return err
	}

	users := storage.NewUserStore(pool)
	habits := storage.NewHabitStore(pool)

	tokens, err := auth.NewTokenService(cfg.Tokens)
	if err != nil {
		return err
	}

	passwords := auth.NewPasswordService(users, auth.WithPasswordLogger(log))
	guard := auth.NewGuard(tokens, users)

	states := session.NewMemoryStore(time.Minute)
	defer states.Close()

	// Providers without configured credentials stay off the route table.
	oauth := make(map[string]*auth.OAuthService)
	if cfg.Google.ClientID != "" {
		oauth[auth.ProviderGoogle] = auth.NewOAuthService(
			users, states, auth.NewGoogleAdapter(cfg.Google),
			auth.WithOAuthLogger(log), auth.WithStateTTL(cfg.Google.StateTTL),
		)
	}
	if cfg.GitHub.ClientID != "" {
		oauth[auth.ProviderGithub] = auth.NewOAuthService(
			users, states, auth.NewGitHubAdapter(cfg.GitHub),
			auth.WithOAuthLogger(log), auth.WithStateTTL(cfg.GitHub.StateTTL),
		)
	}

	h := handler.New(cfg.Handler, log, guard, passwords, tokens, oauth, users, habits,
		handler.WithHealthcheck(pg.Healthcheck(pool)))

	return httpserver.New(cfg.Server, log).Run(ctx, h.Router())
}
