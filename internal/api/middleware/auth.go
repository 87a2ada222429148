package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/davsiu2102/clinical-records-api/internal/api/metrics"
	"github.com/davsiu2102/clinical-records-api/internal/core/domain"
	"github.com/davsiu2102/clinical-records-api/internal/core/ports"
	"github.com/davsiu2102/clinical-records-api/internal/pkg/token"
)

// UserContextKey is the echo context key under which Auth stores the
// resolved *domain.User.
const UserContextKey = "current_user"

// Auth is the session guard: it extracts the bearer token, verifies it with
// the codec, resolves the subject against the user store and enforces the
// account is active. The user is looked up freshly on every request, so a
// deactivated account is rejected even while its tokens are still signed and
// unexpired.
//
// Missing or invalid credentials yield 401 with a WWW-Authenticate: Bearer
// hint; an inactive account yields 403.
func Auth(codec *token.Codec, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return unauthorized(c, "missing_credential", "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return unauthorized(c, "invalid_credential", "invalid authorization header")
			}

			claims, err := codec.Decode(parts[1])
			if err != nil {
				return unauthorized(c, "invalid_credential", "invalid or expired token")
			}

			user, err := users.FindByUsername(c.Request().Context(), claims.Subject)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return unauthorized(c, "invalid_credential", "invalid or expired token")
				}
				return err
			}

			if !user.Active {
				metrics.TokenRejectionsTotal.WithLabelValues("inactive_account").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "inactive user")
			}

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}

func unauthorized(c echo.Context, reason, msg string) error {
	metrics.TokenRejectionsTotal.WithLabelValues(reason).Inc()
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return echo.NewHTTPError(http.StatusUnauthorized, msg)
}
