package postgres

import (
	"context"
	"errors"
	"io/fs"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFiles_ArePaired(t *testing.T) {
	ups, err := fs.Glob(migrationFiles, "migrations/*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(migrationFiles, "migrations/*.down.sql")
	require.NoError(t, err)

	require.NotEmpty(t, ups)
	assert.Equal(t, len(ups), len(downs))

	body, err := fs.ReadFile(migrationFiles, "migrations/0001_init.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(body), "REFERENCES users (id) ON DELETE CASCADE")
	assert.Contains(t, string(body), "projects (created_at DESC)")
}

func expectVersion(mock sqlmock.Sqlmock, version int) {
	mock.ExpectQuery(`SELECT version, dirty FROM "public"."schema_migrations" LIMIT 1`).
		WillReturnRows(sqlmock.NewRows([]string{"version", "dirty"}).AddRow(version, false))
}

func TestMigrate_UpToDateKeepsPoolOpen(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// driver setup
	mock.ExpectQuery(`SELECT CURRENT_DATABASE\(\)`).
		WillReturnRows(sqlmock.NewRows([]string{"current_database"}).AddRow("portfolio"))
	mock.ExpectQuery(`SELECT CURRENT_SCHEMA\(\)`).
		WillReturnRows(sqlmock.NewRows([]string{"current_schema"}).AddRow("public"))
	mock.ExpectExec(`SELECT pg_advisory_lock`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT COUNT\(1\) FROM information_schema.tables`).
		WithArgs("public", "schema_migrations").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectExec(`SELECT pg_advisory_unlock`).WillReturnResult(sqlmock.NewResult(0, 0))

	// up: already at the latest version
	mock.ExpectExec(`SELECT pg_advisory_lock`).WillReturnResult(sqlmock.NewResult(0, 0))
	expectVersion(mock, 1)
	mock.ExpectExec(`SELECT pg_advisory_unlock`).WillReturnResult(sqlmock.NewResult(0, 0))
	expectVersion(mock, 1)

	require.NoError(t, Migrate(context.Background(), db, zerolog.Nop()))

	// The repositories share db after start-up migrations.
	require.NoError(t, db.Ping())
	mock.ExpectQuery(`SELECT 1`).WillReturnRows(sqlmock.NewRows([]string{"one"}).AddRow(1))
	var one int
	require.NoError(t, db.QueryRow("SELECT 1").Scan(&one))
	assert.Equal(t, 1, one)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate_DriverFailureKeepsPoolOpen(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT CURRENT_DATABASE\(\)`).WillReturnError(errors.New("connection reset"))

	err = Migrate(context.Background(), db, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration driver")

	require.NoError(t, db.Ping())
	assert.NoError(t, mock.ExpectationsWereMet())
}
