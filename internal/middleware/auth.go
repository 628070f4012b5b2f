package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmoreira/asset-admin/internal/utils"
)

// Auth returns an Echo middleware that validates the x-access-token header
// and injects the parsed claims into the request context. A missing token
// answers 401 and a token that fails validation answers 403, each with a
// plain message string.
func Auth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get("x-access-token")
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, "Token must be provided")
			}
			claims, err := utils.ParseToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusForbidden, "Invalid token")
			}
			c.Set(utils.ActorKey, claims)
			return next(c)
		}
	}
}
