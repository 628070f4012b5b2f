package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmoreira/asset-admin/internal/model"
	"github.com/dmoreira/asset-admin/internal/repository"
	"github.com/dmoreira/asset-admin/internal/service"
)

// UnitHandler serves the units resource.
type UnitHandler struct {
	svc *service.UnitService
}

// NewUnitHandler constructs a UnitHandler.
func NewUnitHandler(svc *service.UnitService) *UnitHandler {
	return &UnitHandler{svc: svc}
}

// Get handles GET /api/v1/units.
func (h *UnitHandler) Get(c echo.Context) error {
	page, size, err := pagination(c)
	if err != nil {
		return respondError(c, err)
	}
	f, err := companyScope(currentActor(c), "company", c.QueryParam("company"), repository.Filter{})
	if err != nil {
		return respondError(c, err)
	}
	result, err := h.svc.Get(c.Request().Context(), page, size, f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// Filter handles POST /api/v1/units/filter.
func (h *UnitHandler) Filter(c echo.Context) error {
	page, size, err := pagination(c)
	if err != nil {
		return respondError(c, err)
	}
	body, err := bindChanges(c)
	if err != nil {
		return respondError(c, err)
	}
	f, err := companyScope(currentActor(c), "company", c.QueryParam("company"), repository.Filter(body))
	if err != nil {
		return respondError(c, err)
	}
	result, err := h.svc.Get(c.Request().Context(), page, size, f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// GetByID handles GET /api/v1/units/:id.
func (h *UnitHandler) GetByID(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	unit, err := h.svc.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return emptyObject(c)
		}
		return respondError(c, err)
	}
	if !visibleCompany(currentActor(c), unit.Company) {
		return emptyObject(c)
	}
	return c.JSON(http.StatusOK, unit)
}

// Create handles PUT /api/v1/units.
func (h *UnitHandler) Create(c echo.Context) error {
	var unit model.Unit
	if err := c.Bind(&unit); err != nil {
		return respondError(c, &model.ValidationError{Field: "body", Msg: "must be a JSON object"})
	}
	unit.ID = 0
	if err := h.svc.Create(c.Request().Context(), &unit); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, "unit created")
}

// Update handles POST /api/v1/units/:id.
func (h *UnitHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	changes, err := bindChanges(c)
	if err != nil {
		return respondError(c, err)
	}
	unit, err := h.svc.Update(c.Request().Context(), id, changes)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return emptyObject(c)
		}
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, unit)
}

// Remove handles DELETE /api/v1/units/:id.
func (h *UnitHandler) Remove(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	unit, err := h.svc.Remove(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return emptyObject(c)
		}
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, unit)
}
