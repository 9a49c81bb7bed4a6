package ports

import (
	"context"

	"github.com/portfolio-site/portfolio-api/internal/core/domain"
)

// Credentials are the raw request credentials extracted by the transport layer.
type Credentials struct {
	SessionToken string
	BearerToken  string
}

// Empty reports whether the request carried no credential at all.
func (c Credentials) Empty() bool {
	return c.SessionToken == "" && c.BearerToken == ""
}

// SessionResolver turns request credentials into the caller's identity.
// It returns (nil, nil) when the credentials do not identify anyone and an
// error only when resolution itself failed.
type SessionResolver interface {
	Resolve(ctx context.Context, creds Credentials) (*domain.Identity, error)
}
