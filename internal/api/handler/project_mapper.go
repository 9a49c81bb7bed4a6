package handler

import (
	"github.com/portfolio-site/portfolio-api/internal/core/domain"
	"github.com/portfolio-site/portfolio-api/internal/core/ports"
)

func toProjectResponse(p *domain.Project) projectResponse {
	techs := p.TechnologyList()
	if techs == nil {
		techs = []string{}
	}
	return projectResponse{
		ID:             p.ID,
		Title:          p.Title,
		Description:    p.Description,
		ImageURL:       p.ImageURL,
		ProjectLink:    p.ProjectLink,
		Technologies:   p.Technologies,
		TechnologyList: techs,
		Status:         string(p.Status()),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
		UserID:         p.UserID,
	}
}

func toProjectResponses(projects []*domain.Project) []projectResponse {
	out := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, toProjectResponse(p))
	}
	return out
}

func toCreateInput(userID string, req createProjectRequest) ports.CreateProjectInput {
	return ports.CreateProjectInput{
		UserID:       userID,
		Title:        req.Title,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		ProjectLink:  req.ProjectLink,
		Technologies: req.Technologies,
	}
}

func toProjectPatch(req updateProjectRequest) ports.ProjectPatch {
	return ports.ProjectPatch{
		Title:        toOptional(req.Title),
		Description:  toOptional(req.Description),
		ImageURL:     toOptional(req.ImageURL),
		ProjectLink:  toOptional(req.ProjectLink),
		Technologies: toOptional(req.Technologies),
	}
}

func toOptional(o optionalString) ports.OptionalString {
	return ports.OptionalString{Set: o.set, Value: o.value}
}

func toStatsResponse(s *domain.ProjectStats) statsResponse {
	return statsResponse{Total: s.Total, Published: s.Published, Recent: s.Recent}
}
