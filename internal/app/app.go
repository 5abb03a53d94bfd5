package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/server"
	"github.com/gokatarajesh/trivia-api/internal/trivia"
)

// Application aggregates shared infrastructure (DB, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	db   *sql.DB
	http *http.Server
}

// New bootstraps config, logger, the database and the HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Str("driver", cfg.Database.Driver).Msg("starting application bootstrap")

	handle, err := db.Open(ctx, db.Driver(cfg.Database.Driver), cfg.Database.ConnString())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	questionRepo := repository.NewQuestionRepository(handle)
	categoryRepo := repository.NewCategoryRepository(handle)

	svc := trivia.NewService(questionRepo, categoryRepo, trivia.ServiceOptions{})
	handlers := trivia.NewHTTPHandlers(svc, logger)

	apiServer := server.NewHTTPServer(cfg, logger, handlers)

	return &Application{
		cfg:    cfg,
		logger: logger,
		db:     handle,
		http:   apiServer,
	}, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error().Err(err).Msg("database shutdown error")
	}

	a.logger.Info().Msg("shutdown complete")
	return nil
}
