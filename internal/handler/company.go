package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmoreira/asset-admin/internal/model"
	"github.com/dmoreira/asset-admin/internal/repository"
	"github.com/dmoreira/asset-admin/internal/service"
)

// CompanyHandler serves the companies resource. The tenant constraint for
// this resource is the company's own id: an actor bound to a company only
// ever sees that one record.
type CompanyHandler struct {
	svc *service.CompanyService
}

// NewCompanyHandler constructs a CompanyHandler.
func NewCompanyHandler(svc *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{svc: svc}
}

// Get handles GET /api/v1/companies.
func (h *CompanyHandler) Get(c echo.Context) error {
	page, size, err := pagination(c)
	if err != nil {
		return respondError(c, err)
	}
	f, err := companyScope(currentActor(c), "id", c.QueryParam("company"), repository.Filter{})
	if err != nil {
		return respondError(c, err)
	}
	result, err := h.svc.Get(c.Request().Context(), page, size, f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// Filter handles POST /api/v1/companies/filter: same as Get, with the
// filter taken from the request body.
func (h *CompanyHandler) Filter(c echo.Context) error {
	page, size, err := pagination(c)
	if err != nil {
		return respondError(c, err)
	}
	body, err := bindChanges(c)
	if err != nil {
		return respondError(c, err)
	}
	f, err := companyScope(currentActor(c), "id", c.QueryParam("company"), repository.Filter(body))
	if err != nil {
		return respondError(c, err)
	}
	result, err := h.svc.Get(c.Request().Context(), page, size, f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// GetByID handles GET /api/v1/companies/:id. Missing and out-of-scope
// records both answer 200 with an empty object.
func (h *CompanyHandler) GetByID(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	company, err := h.svc.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return emptyObject(c)
		}
		return respondError(c, err)
	}
	if !visibleCompany(currentActor(c), company.ID) {
		return emptyObject(c)
	}
	return c.JSON(http.StatusOK, company)
}

// Create handles PUT /api/v1/companies.
func (h *CompanyHandler) Create(c echo.Context) error {
	var company model.Company
	if err := c.Bind(&company); err != nil {
		return respondError(c, &model.ValidationError{Field: "body", Msg: "must be a JSON object"})
	}
	company.ID = 0
	if err := h.svc.Create(c.Request().Context(), &company); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, "company created")
}

// Update handles POST /api/v1/companies/:id.
func (h *CompanyHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	changes, err := bindChanges(c)
	if err != nil {
		return respondError(c, err)
	}
	company, err := h.svc.Update(c.Request().Context(), id, changes)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return emptyObject(c)
		}
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, company)
}

// Remove handles DELETE /api/v1/companies/:id.
func (h *CompanyHandler) Remove(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	company, err := h.svc.Remove(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return emptyObject(c)
		}
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, company)
}
