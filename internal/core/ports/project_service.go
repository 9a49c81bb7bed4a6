package ports

import (
	"context"

	"github.com/portfolio-site/portfolio-api/internal/core/domain"
)

// OptionalString carries a field of a partial update. Set is false when the
// caller did not mention the field; Value is nil when it was sent as null.
type OptionalString struct {
	Set   bool
	Value *string
}

// Some returns a set OptionalString holding v.
func Some(v string) OptionalString {
	return OptionalString{Set: true, Value: &v}
}

// Null returns a set OptionalString that clears the field.
func Null() OptionalString {
	return OptionalString{Set: true}
}

// ProjectPatch lists the mutable project fields. Unset fields are left as they are.
type ProjectPatch struct {
	Title        OptionalString
	Description  OptionalString
	ImageURL     OptionalString
	ProjectLink  OptionalString
	Technologies OptionalString
}

// CreateProjectInput carries all data needed to create a project.
// UserID is the caller's resolved identity; empty means no session.
type CreateProjectInput struct {
	UserID       string
	Title        string
	Description  string
	ImageURL     *string
	ProjectLink  *string
	Technologies *string
}

// UpdateProjectInput carries a partial update. ID is the raw path value.
type UpdateProjectInput struct {
	ID     string
	UserID string
	Patch  ProjectPatch
}

// DeleteProjectInput identifies the project to remove and the caller.
type DeleteProjectInput struct {
	ID     string
	UserID string
}

// ProjectService defines use-case operations for projects.
type ProjectService interface {
	ListProjects(ctx context.Context) ([]*domain.Project, error)
	GetProject(ctx context.Context, id string) (*domain.Project, error)
	CreateProject(ctx context.Context, input CreateProjectInput) (*domain.Project, error)
	UpdateProject(ctx context.Context, input UpdateProjectInput) (*domain.Project, error)
	DeleteProject(ctx context.Context, input DeleteProjectInput) error
	Stats(ctx context.Context) (*domain.ProjectStats, error)
}
