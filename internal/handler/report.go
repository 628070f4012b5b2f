package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmoreira/asset-admin/internal/repository"
	"github.com/dmoreira/asset-admin/internal/service"
)

// ReportHandler serves health aggregations over assets. Rows are grouped
// by status plus any groupField query parameters, under the same tenant
// constraints as the assets resource.
type ReportHandler struct {
	svc *service.ReportService
}

// NewReportHandler constructs a ReportHandler.
func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// Get handles GET /api/v1/reports.
func (h *ReportHandler) Get(c echo.Context) error {
	f := repository.Filter{}
	if unit := c.QueryParam("unit"); unit != "" {
		id, err := parseNumber("unit", unit, -1)
		if err != nil {
			return respondError(c, err)
		}
		f = f.With("unit", id)
	}
	if user := c.QueryParam("user"); user != "" {
		id, err := parseNumber("user", user, -1)
		if err != nil {
			return respondError(c, err)
		}
		f = f.With("user", id)
	}
	f, err := assetScope(currentActor(c), c.QueryParam("company"), f)
	if err != nil {
		return respondError(c, err)
	}
	rows, err := h.svc.GetAvgHealth(c.Request().Context(), c.QueryParams()["groupField"], f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}
