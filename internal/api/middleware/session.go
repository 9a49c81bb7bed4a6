package middleware

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/portfolio-site/portfolio-api/internal/api/metrics"
	"github.com/portfolio-site/portfolio-api/internal/core/domain"
	"github.com/portfolio-site/portfolio-api/internal/core/ports"
)

const (
	identityKey  = "identity"
	authErrorKey = "auth_error"
)

// Session resolves the request credentials (session cookie or bearer token)
// and stores the caller's identity in the context. It never rejects a
// request: public routes stay reachable for anonymous callers, and routes
// that need an identity check for it themselves.
//
// When the resolver itself fails the error is kept in the context so that
// protected operations report it instead of a misleading 401.
func Session(resolver ports.SessionResolver, cookieName string, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			creds := credentialsFrom(c.Request(), cookieName)
			if creds.Empty() {
				return next(c)
			}

			source := string(domain.SourceCookie)
			if creds.SessionToken == "" {
				source = string(domain.SourceBearer)
			}

			identity, err := resolver.Resolve(c.Request().Context(), creds)
			switch {
			case err != nil:
				metrics.SessionResolutionsTotal.WithLabelValues(source, metrics.ResultError).Inc()
				log.Warn().Err(err).Str("path", c.Path()).Msg("session resolution failed")
				c.Set(authErrorKey, fmt.Errorf("resolve session: %w", err))
			case identity == nil:
				metrics.SessionResolutionsTotal.WithLabelValues(source, metrics.ResultUnauthorized).Inc()
			default:
				metrics.SessionResolutionsTotal.WithLabelValues(string(identity.Source), metrics.ResultSuccess).Inc()
				SetIdentity(c, identity)
			}

			return next(c)
		}
	}
}

// credentialsFrom extracts the session token and bearer token from r. The
// session cookie value is "<token>.<signature>"; only the token is kept.
func credentialsFrom(r *http.Request, cookieName string) ports.Credentials {
	var creds ports.Credentials

	if ck, err := r.Cookie(cookieName); err == nil && ck.Value != "" {
		value := ck.Value
		if unescaped, err := url.QueryUnescape(value); err == nil {
			value = unescaped
		}
		token, _, _ := strings.Cut(value, ".")
		creds.SessionToken = strings.TrimSpace(token)
	}

	if header := r.Header.Get(echo.HeaderAuthorization); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			creds.BearerToken = strings.TrimSpace(parts[1])
		}
	}

	return creds
}

// SetIdentity stores the caller's identity in c.
func SetIdentity(c echo.Context, identity *domain.Identity) {
	c.Set(identityKey, identity)
}

// Identity returns the identity resolved by Session, or nil for anonymous
// callers.
func Identity(c echo.Context) *domain.Identity {
	identity, _ := c.Get(identityKey).(*domain.Identity)
	return identity
}

// AuthError returns the resolver failure recorded by Session, if any.
func AuthError(c echo.Context) error {
	err, _ := c.Get(authErrorKey).(error)
	return err
}

// CallerID returns the caller's user ID, "" for anonymous callers, or the
// recorded resolver failure.
func CallerID(c echo.Context) (string, error) {
	if err := AuthError(c); err != nil {
		return "", err
	}
	if identity := Identity(c); identity != nil {
		return identity.UserID, nil
	}
	return "", nil
}
