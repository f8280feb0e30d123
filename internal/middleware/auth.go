package middleware

import (
	"net/http"
	"strings"

	"github.com/bookeasy/ticketing/internal/models"
	"github.com/bookeasy/ticketing/internal/service"
	"github.com/labstack/echo/v4"
)

const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
	ContextRole     = "role"
)

// RequireAuth validates the bearer token and stashes the caller's identity
// on the echo context.
func RequireAuth(auth service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authorization header must be a bearer token")
			}

			claims, err := auth.ParseToken(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set(ContextUserID, claims.UserID)
			c.Set(ContextUsername, claims.Username)
			c.Set(ContextRole, claims.Role)
			return next(c)
		}
	}
}

// RequireRole gates a route to one role. Admins may not reserve tickets and
// ordinary users may not mutate the catalog, so both directions matter.
func RequireRole(role models.UserRole) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if got, ok := c.Get(ContextRole).(models.UserRole); !ok || got != role {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
			}
			return next(c)
		}
	}
}

// CallerID returns the authenticated user's id set by RequireAuth.
func CallerID(c echo.Context) uint {
	id, _ := c.Get(ContextUserID).(uint)
	return id
}
