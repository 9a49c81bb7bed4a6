package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/portfolio-site/portfolio-api/internal/core/domain"
)

const queryFindSession = `SELECT token, user_id, expires_at FROM sessions WHERE token = $1`

// SessionRepository reads the sessions table maintained by the auth provider.
type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) FindByToken(ctx context.Context, token string) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var s domain.Session
	err := r.db.QueryRowContext(ctx, queryFindSession, token).Scan(&s.Token, &s.UserID, &s.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	return &s, nil
}
