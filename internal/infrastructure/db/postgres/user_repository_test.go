package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portfolio-site/portfolio-api/internal/core/domain"
)

func TestUserRepository_Upsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	created := now.Add(-24 * time.Hour)

	in := &domain.User{
		ID: "new-id", Email: "admin@example.com", Name: "Admin", PasswordHash: "hash",
		CreatedAt: now, UpdatedAt: now,
	}

	mock.ExpectQuery("INSERT INTO users .* ON CONFLICT \\(email\\) DO UPDATE").
		WithArgs("new-id", "admin@example.com", "Admin", "hash", now, now).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "password_hash", "created_at", "updated_at"}).
			AddRow("existing-id", "admin@example.com", "Admin", "hash", created, now))

	u, err := repo.Upsert(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "existing-id", u.ID)
	assert.Equal(t, created, u.CreatedAt)
	assert.Equal(t, "hash", u.PasswordHash)

	require.NoError(t, mock.ExpectationsWereMet())
}
