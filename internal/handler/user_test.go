package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmoreira/asset-admin/internal/config"
	"github.com/dmoreira/asset-admin/internal/model"
	"github.com/dmoreira/asset-admin/internal/repository"
	"github.com/dmoreira/asset-admin/internal/service"
	"github.com/dmoreira/asset-admin/internal/utils"
)

// fakeUsers is an in-memory service.UserStore.
type fakeUsers struct {
	records map[int64]*model.User
	nextID  int64
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{records: map[int64]*model.User{}}
}

func (s *fakeUsers) Create(_ context.Context, u *model.User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	s.nextID++
	u.ID = s.nextID
	cp := *u
	s.records[u.ID] = &cp
	return nil
}

func (s *fakeUsers) GetByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := s.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *fakeUsers) FindByLogin(_ context.Context, login string) (*model.User, error) {
	for _, u := range s.records {
		if u.Username == login || u.Email == login {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeUsers) Find(_ context.Context, _ repository.Filter, _, _ int) ([]*model.User, error) {
	out := []*model.User{}
	for _, u := range s.records {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (s *fakeUsers) Count(_ context.Context, _ repository.Filter) (int64, error) {
	return int64(len(s.records)), nil
}

func (s *fakeUsers) Update(_ context.Context, id int64, changes map[string]any) (*model.User, error) {
	u, ok := s.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if v, ok := changes["password"].(string); ok {
		u.PasswordHash = v
	}
	if v, ok := changes["name"].(string); ok {
		u.Name = v
	}
	cp := *u
	return &cp, nil
}

func (s *fakeUsers) Delete(_ context.Context, id int64) (*model.User, error) {
	u, ok := s.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(s.records, id)
	return u, nil
}

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "test-secret", TokenTTLHours: 1, BcryptCost: 4}
}

func newUserHandler(t *testing.T) (*UserHandler, *fakeUsers) {
	t.Helper()
	store := newFakeUsers()
	return NewUserHandler(service.NewUserService(store), testConfig()), store
}

func seedUser(t *testing.T, store *fakeUsers, username, password string, company *int64) *model.User {
	t.Helper()
	hash, err := utils.HashPassword(password, 4)
	require.NoError(t, err)
	u := &model.User{
		Name:         "Test User",
		Email:        username + "@acme.io",
		Role:         model.RoleManager,
		Username:     username,
		PasswordHash: hash,
		Company:      company,
	}
	require.NoError(t, store.Create(context.Background(), u))
	return u
}

func TestLoginReturnsUserAndToken(t *testing.T) {
	h, store := newUserHandler(t)
	companyID := int64(7)
	seedUser(t, store, "jane", "s3cret", &companyID)

	rec := perform(t, h.Login, http.MethodPost, "/login",
		`{"username":"jane","password":"s3cret"}`, nil)

	require.Equal(t, http.StatusOK, rec.Code)

	// User fields sit flat at the top level next to the token.
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "jane", resp["username"])
	assert.Equal(t, model.RoleManager, resp["role"])
	assert.Equal(t, float64(7), resp["company"])
	assert.NotContains(t, resp, "user")
	assert.NotContains(t, resp, "password")

	token, _ := resp["token"].(string)
	require.NotEmpty(t, token)
	claims, err := utils.ParseToken("test-secret", token)
	require.NoError(t, err)
	assert.Equal(t, int64(resp["id"].(float64)), claims.UserID)
	assert.Equal(t, model.RoleManager, claims.Role)
	assert.Equal(t, int64(7), claims.Company)
}

func TestLoginBadCredentials(t *testing.T) {
	h, store := newUserHandler(t)
	seedUser(t, store, "jane", "s3cret", nil)

	rec := perform(t, h.Login, http.MethodPost, "/login",
		`{"username":"jane","password":"wrong"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `"username or password incorrect"`, rec.Body.String())

	rec = perform(t, h.Login, http.MethodPost, "/login",
		`{"username":"nobody","password":"s3cret"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserCreateHashesPassword(t *testing.T) {
	h, store := newUserHandler(t)

	rec := perform(t, h.Create, http.MethodPut, "/api/v1/users",
		`{"email":"joe@acme.io","role":"employee","username":"joe","password":"hunter2"}`, nil)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `"user created"`, rec.Body.String())

	u, err := store.FindByLogin(context.Background(), "joe")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", u.PasswordHash)
	assert.True(t, utils.VerifyPassword(u.PasswordHash, "hunter2"))
}

func TestUserCreateMissingPassword(t *testing.T) {
	h, _ := newUserHandler(t)

	rec := perform(t, h.Create, http.MethodPut, "/api/v1/users",
		`{"email":"joe@acme.io","role":"employee","username":"joe"}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `"password is required"`, rec.Body.String())
}

func TestUserUpdateRehashesOnlySuppliedPassword(t *testing.T) {
	h, store := newUserHandler(t)
	u := seedUser(t, store, "jane", "s3cret", nil)
	originalHash := u.PasswordHash

	// No password in the payload keeps the stored hash.
	perform(t, h.Update, http.MethodPost, "/api/v1/users/1",
		`{"name":"Jane D."}`, nil, "id", "1")
	stored, err := store.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, originalHash, stored.PasswordHash)
	assert.Equal(t, "Jane D.", stored.Name)

	// An empty password is treated as absent.
	perform(t, h.Update, http.MethodPost, "/api/v1/users/1",
		`{"password":""}`, nil, "id", "1")
	stored, err = store.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, originalHash, stored.PasswordHash)

	// A real password is rehashed.
	perform(t, h.Update, http.MethodPost, "/api/v1/users/1",
		`{"password":"brand-new"}`, nil, "id", "1")
	stored, err = store.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.NotEqual(t, originalHash, stored.PasswordHash)
	assert.True(t, utils.VerifyPassword(stored.PasswordHash, "brand-new"))
}

func TestUserPasswordHashNeverSerialized(t *testing.T) {
	h, store := newUserHandler(t)
	seedUser(t, store, "jane", "s3cret", nil)

	rec := perform(t, h.GetByID, http.MethodGet, "/api/v1/users/1", "", nil, "id", "1")
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "$2a$")
}
