package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/portfolio-site/portfolio-api/internal/core/domain"
)

// RequireAuth rejects requests without a resolved identity. It must run after
// Session.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, err := CallerID(c)
			if err != nil {
				return err
			}
			if userID == "" {
				return domain.ErrUnauthorized
			}
			return next(c)
		}
	}
}
