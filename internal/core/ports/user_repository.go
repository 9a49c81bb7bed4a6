package ports

import (
	"context"

	"github.com/portfolio-site/portfolio-api/internal/core/domain"
)

// UserRepository defines persistence for the accounts that own projects.
type UserRepository interface {
	// Upsert inserts user or, when the email already exists, refreshes its
	// name and password hash. The stored row is returned.
	Upsert(ctx context.Context, user *domain.User) (*domain.User, error)
}

// AccountService provisions owner accounts.
type AccountService interface {
	EnsureAdmin(ctx context.Context, email, name, password string) (*domain.User, error)
}
