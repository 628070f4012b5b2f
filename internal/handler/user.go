package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dmoreira/asset-admin/internal/config"
	"github.com/dmoreira/asset-admin/internal/model"
	"github.com/dmoreira/asset-admin/internal/repository"
	"github.com/dmoreira/asset-admin/internal/service"
	"github.com/dmoreira/asset-admin/internal/utils"
)

// UserHandler serves the users resource and the login endpoint. The users
// resource is not tenant scoped: any authenticated actor can manage users
// across companies.
type UserHandler struct {
	svc *service.UserService
	cfg *config.Config
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(svc *service.UserService, cfg *config.Config) *UserHandler {
	return &UserHandler{svc: svc, cfg: cfg}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse serializes the user's fields flat at the top level next to
// the token, via the embedded struct.
type loginResponse struct {
	*model.User
	Token string `json:"token"`
}

// Login handles POST /login. The username field also matches by email.
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, &model.ValidationError{Field: "body", Msg: "must be a JSON object"})
	}
	user, err := h.svc.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	if user == nil {
		return c.JSON(http.StatusUnauthorized, "username or password incorrect")
	}
	token, err := utils.NewToken(h.cfg.JWTSecret, user.ID, user.Name, user.Role, user.Company, h.cfg.TokenTTLHours)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, loginResponse{User: user, Token: token})
}

// Get handles GET /api/v1/users.
func (h *UserHandler) Get(c echo.Context) error {
	page, size, err := pagination(c)
	if err != nil {
		return respondError(c, err)
	}
	f := repository.Filter{}
	if company := c.QueryParam("company"); company != "" {
		id, err := parseNumber("company", company, -1)
		if err != nil {
			return respondError(c, err)
		}
		f = f.With("company", id)
	}
	if role := c.QueryParam("role"); role != "" {
		f = f.With("role", role)
	}
	result, err := h.svc.Get(c.Request().Context(), page, size, f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// Filter handles POST /api/v1/users/filter.
func (h *UserHandler) Filter(c echo.Context) error {
	page, size, err := pagination(c)
	if err != nil {
		return respondError(c, err)
	}
	body, err := bindChanges(c)
	if err != nil {
		return respondError(c, err)
	}
	delete(body, "password")
	result, err := h.svc.Get(c.Request().Context(), page, size, repository.Filter(body))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// GetByID handles GET /api/v1/users/:id.
func (h *UserHandler) GetByID(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	user, err := h.svc.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return emptyObject(c)
		}
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

type userBody struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Username string `json:"username"`
	Password string `json:"password"`
	Company  *int64 `json:"company"`
}

// Create handles PUT /api/v1/users. The plain password is hashed before it
// reaches the store.
func (h *UserHandler) Create(c echo.Context) error {
	var body userBody
	if err := c.Bind(&body); err != nil {
		return respondError(c, &model.ValidationError{Field: "body", Msg: "must be a JSON object"})
	}
	user := model.User{
		Name:     body.Name,
		Email:    body.Email,
		Role:     body.Role,
		Username: body.Username,
		Company:  body.Company,
	}
	if body.Password != "" {
		hash, err := utils.HashPassword(body.Password, h.cfg.BcryptCost)
		if err != nil {
			return respondError(c, err)
		}
		user.PasswordHash = hash
	}
	if err := h.svc.Create(c.Request().Context(), &user); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, "user created")
}

// Update handles POST /api/v1/users/:id. The password is rehashed only
// when the request carries a non-empty one.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	changes, err := bindChanges(c)
	if err != nil {
		return respondError(c, err)
	}
	if raw, ok := changes["password"]; ok {
		plain, _ := raw.(string)
		if plain == "" {
			delete(changes, "password")
		} else {
			hash, err := utils.HashPassword(plain, h.cfg.BcryptCost)
			if err != nil {
				return respondError(c, err)
			}
			changes["password"] = hash
		}
	}
	user, err := h.svc.Update(c.Request().Context(), id, changes)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return emptyObject(c)
		}
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// Remove handles DELETE /api/v1/users/:id.
func (h *UserHandler) Remove(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err)
	}
	user, err := h.svc.Remove(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return emptyObject(c)
		}
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}
