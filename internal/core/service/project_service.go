package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/portfolio-site/portfolio-api/internal/core/domain"
	"github.com/portfolio-site/portfolio-api/internal/core/ports"
)

const recentWindow = 7 * 24 * time.Hour

type ProjectService struct {
	repo   ports.ProjectRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewProjectService(repo ports.ProjectRepository, logger zerolog.Logger) *ProjectService {
	return &ProjectService{repo: repo, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

// ListProjects returns every project, newest first.
func (s *ProjectService) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// GetProject returns a single project. Reads are public.
func (s *ProjectService) GetProject(ctx context.Context, rawID string) (*domain.Project, error) {
	id, err := domain.ParseProjectID(rawID)
	if err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, domain.ErrProjectNotFound
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get project %d: %w", id, err)
	}
	return p, nil
}

// CreateProject stores a new project owned by the caller.
func (s *ProjectService) CreateProject(ctx context.Context, input ports.CreateProjectInput) (*domain.Project, error) {
	if input.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := validateRequired("title", &input.Title, domain.MaxTitleLength); err != nil {
		return nil, err
	}
	if err := validateRequired("description", &input.Description, 0); err != nil {
		return nil, err
	}
	if err := validateOptional("imageUrl", input.ImageURL, domain.MaxURLLength); err != nil {
		return nil, err
	}
	if err := validateOptional("projectLink", input.ProjectLink, domain.MaxURLLength); err != nil {
		return nil, err
	}

	now := s.now()
	project := &domain.Project{
		Title:        strings.TrimSpace(input.Title),
		Description:  input.Description,
		ImageURL:     input.ImageURL,
		ProjectLink:  input.ProjectLink,
		Technologies: input.Technologies,
		CreatedAt:    now,
		UpdatedAt:    now,
		UserID:       input.UserID,
	}

	created, err := s.repo.Create(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	s.logger.Info().Int64("project_id", created.ID).Str("user_id", input.UserID).Msg("project created")
	return created, nil
}

// UpdateProject applies a partial update on behalf of the owner. Checks run in
// a fixed order: identifier, session, payload, then ownership. A project that
// does not exist and one owned by someone else produce the same error.
func (s *ProjectService) UpdateProject(ctx context.Context, input ports.UpdateProjectInput) (*domain.Project, error) {
	id, err := domain.ParseProjectID(input.ID)
	if err != nil {
		return nil, err
	}
	if input.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := validatePatch(&input.Patch); err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, domain.ErrProjectNotFound
	}

	updated, err := s.repo.UpdateOwned(ctx, id, input.UserID, input.Patch, s.now())
	if err != nil {
		return nil, fmt.Errorf("update project %d: %w", id, err)
	}

	s.logger.Info().Int64("project_id", id).Str("user_id", input.UserID).Msg("project updated")
	return updated, nil
}

// DeleteProject removes a project on behalf of its owner.
func (s *ProjectService) DeleteProject(ctx context.Context, input ports.DeleteProjectInput) error {
	id, err := domain.ParseProjectID(input.ID)
	if err != nil {
		return err
	}
	if input.UserID == "" {
		return domain.ErrUnauthorized
	}
	if id <= 0 {
		return domain.ErrProjectNotFound
	}

	if err := s.repo.DeleteOwned(ctx, id, input.UserID); err != nil {
		return fmt.Errorf("delete project %d: %w", id, err)
	}

	s.logger.Info().Int64("project_id", id).Str("user_id", input.UserID).Msg("project deleted")
	return nil
}

// Stats summarises the catalogue for the admin dashboard.
func (s *ProjectService) Stats(ctx context.Context) (*domain.ProjectStats, error) {
	stats, err := s.repo.Stats(ctx, s.now().Add(-recentWindow))
	if err != nil {
		return nil, fmt.Errorf("project stats: %w", err)
	}
	return stats, nil
}

func validateRequired(field string, v *string, max int) error {
	if strings.TrimSpace(*v) == "" {
		return domain.ValidationError("%s is required", field)
	}
	if max > 0 && utf8.RuneCountInString(*v) > max {
		return domain.ValidationError("%s must be at most %d characters", field, max)
	}
	return nil
}

func validateOptional(field string, v *string, max int) error {
	if v != nil && utf8.RuneCountInString(*v) > max {
		return domain.ValidationError("%s must be at most %d characters", field, max)
	}
	return nil
}

func validatePatch(p *ports.ProjectPatch) error {
	if p.Title.Set {
		if p.Title.Value == nil {
			return domain.ValidationError("title cannot be null")
		}
		if err := validateRequired("title", p.Title.Value, domain.MaxTitleLength); err != nil {
			return err
		}
		trimmed := strings.TrimSpace(*p.Title.Value)
		p.Title.Value = &trimmed
	}
	if p.Description.Set {
		if p.Description.Value == nil {
			return domain.ValidationError("description cannot be null")
		}
		if err := validateRequired("description", p.Description.Value, 0); err != nil {
			return err
		}
	}
	if err := validateOptional("imageUrl", p.ImageURL.Value, domain.MaxURLLength); err != nil {
		return err
	}
	return validateOptional("projectLink", p.ProjectLink.Value, domain.MaxURLLength)
}
