package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health answers GET /api without authentication so load balancers and
// monitoring systems can verify the service is up.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "asset admin api")
}
