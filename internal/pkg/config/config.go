package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port            string        `env:"PORT,             default=8080"`
	Env             string        `env:"ENV,              default=development"`
	LogLevel        string        `env:"LOG_LEVEL,        default=info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`
	CORSOrigins     []string      `env:"CORS_ORIGINS"`

	Auth     AuthConfig
	Postgres PostgresConfig
	Redis    RedisConfig
}

type AuthConfig struct {
	// JWTSecret verifies bearer tokens. Empty disables bearer authentication.
	JWTSecret       string        `env:"JWT_SECRET"`
	SessionCookie   string        `env:"SESSION_COOKIE,    default=better-auth.session_token"`
	SessionCacheTTL time.Duration `env:"SESSION_CACHE_TTL, default=5m"`
}

type PostgresConfig struct {
	URL             string        `env:"DATABASE_URL,         required"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS,    default=10"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS,    default=5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME, default=30m"`
	AutoMigrate     bool          `env:"DB_AUTO_MIGRATE,      default=true"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
// A .env file in the working directory is loaded first when present; real
// environment variables take precedence over it.
func Load() *Config {
	_ = godotenv.Load()

	cfg, err := load(envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

func load(l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, err
	}
	return &cfg, nil
}
