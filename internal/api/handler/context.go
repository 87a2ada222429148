package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/davsiu2102/clinical-records-api/internal/api/middleware"
	"github.com/davsiu2102/clinical-records-api/internal/core/domain"
)

// currentUser extracts the user injected by the Auth middleware. A missing
// value means the route was wired without the guard; fail closed with 401
// rather than proceed unauthenticated.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(middleware.UserContextKey).(*domain.User)
	if !ok || user == nil {
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}
