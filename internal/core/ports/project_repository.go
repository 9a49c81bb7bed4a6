package ports

import (
	"context"
	"time"

	"github.com/portfolio-site/portfolio-api/internal/core/domain"
)

// ProjectRepository defines persistence operations for projects.
// Writes that need ownership take the owner and apply it in the same
// statement, so the check and the write cannot interleave with other requests.
type ProjectRepository interface {
	// List returns every project, newest first.
	List(ctx context.Context) ([]*domain.Project, error)
	FindByID(ctx context.Context, id int64) (*domain.Project, error)
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	// UpdateOwned applies patch to the project identified by id when it belongs
	// to userID. It returns domain.ErrProjectNotFound otherwise.
	UpdateOwned(ctx context.Context, id int64, userID string, patch ProjectPatch, now time.Time) (*domain.Project, error)
	// DeleteOwned removes the project identified by id when it belongs to
	// userID. It returns domain.ErrProjectNotFound otherwise.
	DeleteOwned(ctx context.Context, id int64, userID string) error
	// Stats counts all projects, published ones, and those created after since.
	Stats(ctx context.Context, since time.Time) (*domain.ProjectStats, error)
}
