package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/dmoreira/asset-admin/internal/handler"
	"github.com/dmoreira/asset-admin/internal/middleware"
)

// Resource is the uniform handler surface every CRUD resource exposes.
// Every resource answers the same six routes: creation uses PUT on the
// collection and updates use POST on the record.
type Resource interface {
	Get(c echo.Context) error
	Filter(c echo.Context) error
	GetByID(c echo.Context) error
	Create(c echo.Context) error
	Update(c echo.Context) error
	Remove(c echo.Context) error
}

// Handlers bundles everything the router mounts.
type Handlers struct {
	Company *handler.CompanyHandler
	Unit    *handler.UnitHandler
	User    *handler.UserHandler
	Asset   *handler.AssetHandler
	Report  *handler.ReportHandler
}

// Register mounts all routes on the Echo instance. The liveness endpoint
// and login are open; everything under /api/v1 requires a token and runs
// through the extra middleware (cache, rate limit) when provided.
func Register(e *echo.Echo, h Handlers, jwtSecret string, extra ...echo.MiddlewareFunc) {
	e.GET("/api", handler.Health)
	e.POST("/login", h.User.Login)

	mw := append([]echo.MiddlewareFunc{middleware.Auth(jwtSecret)}, extra...)
	g := e.Group("/api/v1", mw...)

	mount(g, "/companies", h.Company)
	mount(g, "/units", h.Unit)
	mount(g, "/users", h.User)
	mount(g, "/assets", h.Asset)
	g.GET("/reports", h.Report.Get)
}

func mount(g *echo.Group, prefix string, r Resource) {
	g.GET(prefix, r.Get)
	g.POST(prefix+"/filter", r.Filter)
	g.GET(prefix+"/:id", r.GetByID)
	g.PUT(prefix, r.Create)
	g.POST(prefix+"/:id", r.Update)
	g.DELETE(prefix+"/:id", r.Remove)
}
