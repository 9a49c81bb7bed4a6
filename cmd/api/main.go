package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/portfolio-site/portfolio-api/internal/api"
	"github.com/portfolio-site/portfolio-api/internal/core/service"
	"github.com/portfolio-site/portfolio-api/internal/infrastructure/db/postgres"
	redisdb "github.com/portfolio-site/portfolio-api/internal/infrastructure/db/redis"
	"github.com/portfolio-site/portfolio-api/internal/pkg/config"
	"github.com/portfolio-site/portfolio-api/pkg/logger"
)

// @title                       Portfolio API
// @version                     1.0
// @description                 Portfolio projects with public reads and owner-only writes.
// @host                        localhost:8080
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
// @securityDefinitions.apikey  SessionCookie
// @in                          cookie
// @name                        better-auth.session_token
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "portfolio-api",
		Env:     cfg.Env,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("server exited with error")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Stores ---
	db, err := postgres.Connect(ctx, postgres.Config{
		URL:             cfg.Postgres.URL,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.Postgres.AutoMigrate {
		if err := postgres.Migrate(ctx, db, logger.Component("migrate")); err != nil {
			return err
		}
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	// --- Services ---
	projectService := service.NewProjectService(postgres.NewProjectRepository(db), logger.Component("projects"))
	sessionService := service.NewSessionService(
		postgres.NewSessionRepository(db),
		redisdb.NewSessionCache(rdb),
		cfg.Auth.JWTSecret,
		cfg.Auth.SessionCacheTTL,
		logger.Component("sessions"),
	)
	if cfg.Auth.JWTSecret == "" {
		log.Info().Msg("JWT_SECRET not set, bearer tokens disabled")
	}

	e := api.NewRouter(api.Dependencies{
		Projects:      projectService,
		Sessions:      sessionService,
		SessionCookie: cfg.Auth.SessionCookie,
		CORSOrigins:   cfg.CORSOrigins,
		DB:            db,
		Redis:         rdb,
		Log:           logger.Component("http"),
	})

	// --- Serve until signalled ---
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	log.Info().Dur("timeout", cfg.ShutdownTimeout).Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}
