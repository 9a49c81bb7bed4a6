package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/portfolio-site/portfolio-api/internal/core/domain"
	"github.com/portfolio-site/portfolio-api/internal/core/ports"
)

const projectColumns = `id, title, description, image_url, project_link, technologies, created_at, updated_at, user_id`

const (
	queryListProjects = `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at DESC, id DESC`

	queryFindProject = `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`

	queryInsertProject = `
		INSERT INTO projects (title, description, image_url, project_link, technologies, created_at, updated_at, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + projectColumns

	queryDeleteProject = `DELETE FROM projects WHERE id = $1 AND user_id = $2`

	queryProjectStats = `
		SELECT
			COUNT(*),
			COUNT(NULLIF(project_link, '')),
			COUNT(*) FILTER (WHERE created_at >= $1)
		FROM projects`
)

type ProjectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	var imageURL, link, technologies sql.NullString
	if err := row.Scan(
		&p.ID, &p.Title, &p.Description, &imageURL, &link, &technologies,
		&p.CreatedAt, &p.UpdatedAt, &p.UserID,
	); err != nil {
		return nil, err
	}
	p.ImageURL = stringPtr(imageURL)
	p.ProjectLink = stringPtr(link)
	p.Technologies = stringPtr(technologies)
	return &p, nil
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

// List returns every project, newest first. Ties on created_at fall back to
// the id so the order is stable.
func (r *ProjectRepository) List(ctx context.Context) ([]*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, queryListProjects)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()

	projects := make([]*domain.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return projects, nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id int64) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	p, err := scanProject(r.db.QueryRowContext(ctx, queryFindProject, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	return p, nil
}

// Create inserts p and returns the stored row with its assigned id.
func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	created, err := scanProject(r.db.QueryRowContext(ctx, queryInsertProject,
		p.Title, p.Description, p.ImageURL, p.ProjectLink, p.Technologies,
		p.CreatedAt, p.UpdatedAt, p.UserID,
	))
	if err != nil {
		return nil, translateError(err)
	}
	return created, nil
}

// UpdateOwned applies patch in a single conditional statement so that the
// ownership check and the write cannot interleave with a concurrent change.
// No row matching both id and owner yields domain.ErrProjectNotFound.
func (r *ProjectRepository) UpdateOwned(ctx context.Context, id int64, userID string, patch ports.ProjectPatch, now time.Time) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	query, args := buildUpdate(id, userID, patch, now)
	p, err := scanProject(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, translateError(err)
	}
	return p, nil
}

// buildUpdate renders the UPDATE for the fields present in patch. updated_at
// always moves forward, even when now does not.
func buildUpdate(id int64, userID string, patch ports.ProjectPatch, now time.Time) (string, []interface{}) {
	var (
		sets []string
		args []interface{}
	)
	set := func(column string, v ports.OptionalString) {
		if !v.Set {
			return
		}
		args = append(args, v.Value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	set("title", patch.Title)
	set("description", patch.Description)
	set("image_url", patch.ImageURL)
	set("project_link", patch.ProjectLink)
	set("technologies", patch.Technologies)

	args = append(args, now)
	sets = append(sets, fmt.Sprintf("updated_at = GREATEST($%d, updated_at + interval '1 microsecond')", len(args)))

	args = append(args, id, userID)
	query := fmt.Sprintf(
		"UPDATE projects SET %s WHERE id = $%d AND user_id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args)-1, len(args), projectColumns,
	)
	return query, args
}

// DeleteOwned removes the project only when userID owns it.
func (r *ProjectRepository) DeleteOwned(ctx context.Context, id int64, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, queryDeleteProject, id, userID)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if n == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) Stats(ctx context.Context, since time.Time) (*domain.ProjectStats, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var s domain.ProjectStats
	if err := r.db.QueryRowContext(ctx, queryProjectStats, since).Scan(&s.Total, &s.Published, &s.Recent); err != nil {
		return nil, fmt.Errorf("project stats: %w", err)
	}
	return &s, nil
}
