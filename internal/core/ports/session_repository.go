package ports

import (
	"context"
	"time"

	"github.com/portfolio-site/portfolio-api/internal/core/domain"
)

// SessionRepository reads sessions written by the auth provider.
type SessionRepository interface {
	// FindByToken returns domain.ErrUnauthorized when no session has token.
	FindByToken(ctx context.Context, token string) (*domain.Session, error)
}

// SessionCache keeps recently resolved sessions close to the API.
// Get returns (nil, nil) on a miss.
type SessionCache interface {
	Get(ctx context.Context, token string) (*domain.Session, error)
	Set(ctx context.Context, s *domain.Session, ttl time.Duration) error
}
