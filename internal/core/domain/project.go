package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ProjectStatus is the presentation label derived from a project's link.
// It is never stored.
type ProjectStatus string

const (
	StatusDraft     ProjectStatus = "draft"
	StatusPublished ProjectStatus = "published"
)

// Column limits of the projects table.
const (
	MaxTitleLength = 255
	MaxURLLength   = 500
)

var ErrValidation = errors.New("validation failed")
var ErrInvalidProjectID = fmt.Errorf("%w: invalid project ID", ErrValidation)
var ErrProjectNotFound = errors.New("project not found")
var ErrUnauthorized = errors.New("unauthorized")

// Project is a single portfolio work item owned by one user.
type Project struct {
	ID           int64
	Title        string
	Description  string
	ImageURL     *string
	ProjectLink  *string
	Technologies *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	UserID       string
}

// Status reports whether the project is published. A project counts as
// published once it carries a non-empty link; whitespace counts.
func (p *Project) Status() ProjectStatus {
	if p.ProjectLink != nil && *p.ProjectLink != "" {
		return StatusPublished
	}
	return StatusDraft
}

// TechnologyList splits the comma-separated technologies field, dropping
// blank entries. Entries are not otherwise normalised.
func (p *Project) TechnologyList() []string {
	if p.Technologies == nil {
		return nil
	}
	parts := strings.Split(*p.Technologies, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ParseProjectID parses a path identifier. Anything that is not a base-10
// integer yields ErrInvalidProjectID. Non-positive values parse fine; no
// record can carry them, so lookups report ErrProjectNotFound.
func ParseProjectID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, ErrInvalidProjectID
	}
	return id, nil
}

// ValidationError builds an error that matches ErrValidation.
func ValidationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// ProjectStats is the admin dashboard summary.
type ProjectStats struct {
	Total     int64
	Published int64
	Recent    int64
}
