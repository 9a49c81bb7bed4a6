package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/portfolio-site/portfolio-api/internal/core/domain"
	"github.com/portfolio-site/portfolio-api/internal/core/ports"
)

const defaultSessionCacheTTL = 5 * time.Minute

// SessionService resolves request credentials issued by the external auth
// provider. Cookie sessions are looked up in the shared sessions table through
// a cache; bearer tokens are HS256 JWTs whose subject is the user ID.
type SessionService struct {
	repo      ports.SessionRepository
	cache     ports.SessionCache
	jwtSecret string
	cacheTTL  time.Duration
	log       zerolog.Logger
	now       func() time.Time
}

// NewSessionService returns a resolver. cache may be nil. An empty jwtSecret
// disables bearer tokens.
func NewSessionService(
	repo ports.SessionRepository,
	cache ports.SessionCache,
	jwtSecret string,
	cacheTTL time.Duration,
	log zerolog.Logger,
) *SessionService {
	if cacheTTL <= 0 {
		cacheTTL = defaultSessionCacheTTL
	}
	return &SessionService{
		repo:      repo,
		cache:     cache,
		jwtSecret: jwtSecret,
		cacheTTL:  cacheTTL,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Resolve prefers the session cookie and falls back to the bearer token.
func (s *SessionService) Resolve(ctx context.Context, creds ports.Credentials) (*domain.Identity, error) {
	if creds.SessionToken != "" {
		identity, err := s.resolveCookie(ctx, creds.SessionToken)
		if err != nil || identity != nil {
			return identity, err
		}
	}
	if creds.BearerToken != "" {
		return s.resolveBearer(creds.BearerToken), nil
	}
	return nil, nil
}

func (s *SessionService) resolveCookie(ctx context.Context, token string) (*domain.Identity, error) {
	now := s.now()

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, token)
		if err != nil {
			s.log.Warn().Err(err).Msg("session cache read failed, falling back to store")
		} else if cached != nil && !cached.Expired(now) {
			return &domain.Identity{UserID: cached.UserID, Source: domain.SourceCookie}, nil
		}
	}

	session, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return nil, nil
		}
		return nil, err
	}
	if session.Expired(now) {
		return nil, nil
	}

	if s.cache != nil {
		ttl := s.cacheTTL
		if remaining := session.ExpiresAt.Sub(now); remaining < ttl {
			ttl = remaining
		}
		if err := s.cache.Set(ctx, session, ttl); err != nil {
			s.log.Warn().Err(err).Str("user_id", session.UserID).Msg("failed to cache session")
		}
	}

	return &domain.Identity{UserID: session.UserID, Source: domain.SourceCookie}, nil
}

func (s *SessionService) resolveBearer(raw string) *domain.Identity {
	if s.jwtSecret == "" {
		return nil
	}

	claims := jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !tkn.Valid || claims.Subject == "" {
		s.log.Debug().Err(err).Msg("bearer token rejected")
		return nil
	}

	return &domain.Identity{UserID: claims.Subject, Source: domain.SourceBearer}
}
