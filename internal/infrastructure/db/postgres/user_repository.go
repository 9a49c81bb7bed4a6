package postgres

import (
	"context"
	"database/sql"

	"github.com/portfolio-site/portfolio-api/internal/core/domain"
)

const queryUpsertUser = `
	INSERT INTO users (id, email, name, password_hash, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (email) DO UPDATE SET
		name = EXCLUDED.name,
		password_hash = EXCLUDED.password_hash,
		updated_at = EXCLUDED.updated_at
	RETURNING id, email, name, password_hash, created_at, updated_at`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Upsert keeps the existing id when the email is already registered so the
// projects it owns stay attached.
func (r *UserRepository) Upsert(ctx context.Context, u *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var (
		stored domain.User
		hash   sql.NullString
	)
	err := r.db.QueryRowContext(ctx, queryUpsertUser,
		u.ID, u.Email, u.Name, u.PasswordHash, u.CreatedAt, u.UpdatedAt,
	).Scan(&stored.ID, &stored.Email, &stored.Name, &hash, &stored.CreatedAt, &stored.UpdatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	stored.PasswordHash = hash.String
	return &stored, nil
}
