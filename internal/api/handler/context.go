package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/portfolio-site/portfolio-api/internal/api/middleware"
	"github.com/portfolio-site/portfolio-api/internal/core/domain"
)

// ctxCaller returns the caller resolved by the Session middleware. An empty
// user ID means the request is anonymous; the service decides whether that
// is acceptable. A resolver failure is returned as is so it surfaces as a
// 500 rather than a 401.
func ctxCaller(c echo.Context) (string, error) {
	return middleware.CallerID(c)
}

// ownerCaller is ctxCaller for routes addressing a project by id. A malformed
// id is reported first, even when the session could not be resolved.
func ownerCaller(c echo.Context) (string, error) {
	if _, err := domain.ParseProjectID(c.Param("id")); err != nil {
		return "", err
	}
	return ctxCaller(c)
}

// bindFailure ranks a malformed body after the identifier and the session,
// matching the order the service checks in.
func bindFailure(c echo.Context, userID string, checkID bool) error {
	if checkID {
		if _, err := domain.ParseProjectID(c.Param("id")); err != nil {
			return err
		}
	}
	if userID == "" {
		return domain.ErrUnauthorized
	}
	return domain.ValidationError("invalid payload")
}
