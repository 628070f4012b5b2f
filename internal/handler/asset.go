package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmoreira/asset-admin/internal/model"
	"github.com/dmoreira/asset-admin/internal/repository"
	"github.com/dmoreira/asset-admin/internal/service"
)

// AssetHandler serves the assets resource. On top of the company
// constraint, employees are pinned to their own assets.
type AssetHandler struct {
	svc *service.AssetService
}

// NewAssetHandler constructs an AssetHandler.
func NewAssetHandler(svc *service.AssetService) *AssetHandler {
	return &AssetHandler{svc: svc}
}

func (h *AssetHandler) scopedFilter(c echo.Context, f repository.Filter) (repository.Filter, error) {
	if unit := c.QueryParam("unit"); unit != "" {
		id, err := parseNumber("unit", unit, -1)
		if err != nil {
			return nil, err
		}
		f = f.With("unit", id)
	}
	if user := c.QueryParam("user"); user != "" {
		id, err := parseNumber("user", user, -1)
		if err != nil {
			return nil, err
		}
		f = f.With("user", id)
	}
	return assetScope(currentActor(c), c.QueryParam("company"), f)
}

// Get handles GET /api/v1/assets.
func (h *AssetHandler) Get(c echo.Context) error {
	page, size, err := pagination(c)
	if err != nil {
		return respondError(c, err)
	}
	f, err := h.scopedFilter(c, repository.Filter{})
	if err != nil {
		return respondError(c, err)
	}
	result, err := h.svc.Get(c.Request().Context(), page, size, f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// Filter handles POST /api/v1/assets/filter.
func (h *AssetHandler) Filter(c echo.Context) error {
	page, size, err := pagination(c)
	if err != nil {
		return respondError(c, err)
	}
	body, err := bindChanges(c)
	if err != nil {
		return respondError(c, err)
	}
	f, err := h.scopedFilter(c, repository.Filter(body))
	if err != nil {
		return respondError(c, err)
	}
	result, err := h.svc.Get(c.Request().Context(), page, size, f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// GetByID handles GET /api/v1/assets/:id.
func (h *AssetHandler) GetByID(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	asset, err := h.svc.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return emptyObject(c)
		}
		return respondError(c, err)
	}
	actor := currentActor(c)
	if !visibleCompany(actor, asset.Company) {
		return emptyObject(c)
	}
	if actor != nil && actor.Role == model.RoleEmployee && asset.User != actor.UserID {
		return emptyObject(c)
	}
	return c.JSON(http.StatusOK, asset)
}

// Create handles PUT /api/v1/assets. The image field carries the payload
// as "<mime>,<base64>" and is split into type and bytes by the store.
func (h *AssetHandler) Create(c echo.Context) error {
	var asset model.Asset
	if err := c.Bind(&asset); err != nil {
		return respondError(c, &model.ValidationError{Field: "body", Msg: "must be a JSON object"})
	}
	asset.ID = 0
	if err := h.svc.Create(c.Request().Context(), &asset); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, "asset created")
}

// Update handles POST /api/v1/assets/:id.
func (h *AssetHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	changes, err := bindChanges(c)
	if err != nil {
		return respondError(c, err)
	}
	asset, err := h.svc.Update(c.Request().Context(), id, changes)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return emptyObject(c)
		}
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, asset)
}

// Remove handles DELETE /api/v1/assets/:id.
func (h *AssetHandler) Remove(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	asset, err := h.svc.Remove(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return emptyObject(c)
		}
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, asset)
}
