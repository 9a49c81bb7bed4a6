// Command seed-admin creates the admin account that owns portfolio projects,
// or refreshes its name and password when it already exists.
//
// Usage:
//
//	seed-admin -email admin@example.com -password '...'
//
// Flags fall back to ADMIN_EMAIL, ADMIN_NAME and ADMIN_PASSWORD.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/portfolio-site/portfolio-api/internal/core/service"
	"github.com/portfolio-site/portfolio-api/internal/infrastructure/db/postgres"
	"github.com/portfolio-site/portfolio-api/internal/pkg/config"
	"github.com/portfolio-site/portfolio-api/pkg/logger"
)

func main() {
	email := flag.String("email", "", "admin email address (env ADMIN_EMAIL)")
	name := flag.String("name", "", "display name, defaults to the email's local part (env ADMIN_NAME)")
	password := flag.String("password", "", "admin password, at least 8 characters (env ADMIN_PASSWORD)")
	flag.Parse()

	// Load also reads .env, so the fallbacks below can come from it.
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "seed-admin"})

	fallback(email, "ADMIN_EMAIL")
	fallback(name, "ADMIN_NAME")
	fallback(password, "ADMIN_PASSWORD")
	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "seed-admin: -email and -password (or ADMIN_EMAIL and ADMIN_PASSWORD) are required")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(cfg, log, *email, *name, *password); err != nil {
		log.Error().Err(err).Msg("failed to seed admin")
		os.Exit(1)
	}
}

func run(cfg *config.Config, log zerolog.Logger, email, name, password string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := postgres.Connect(ctx, postgres.Config{URL: cfg.Postgres.URL, MaxOpenConns: 2, MaxIdleConns: 1})
	if err != nil {
		return err
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db, log); err != nil {
		return err
	}

	accounts := service.NewAccountService(postgres.NewUserRepository(db))
	user, err := accounts.EnsureAdmin(ctx, email, name, password)
	if err != nil {
		return err
	}

	log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("admin account ready")
	return nil
}

func fallback(v *string, key string) {
	if *v == "" {
		*v = os.Getenv(key)
	}
}
