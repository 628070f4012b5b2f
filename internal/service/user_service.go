package service

import (
	"context"
	"errors"

	"github.com/dmoreira/asset-admin/internal/model"
	"github.com/dmoreira/asset-admin/internal/repository"
	"github.com/dmoreira/asset-admin/internal/utils"
)

// UserService wraps the user repository with pagination and owns the
// credential check behind login.
type UserService struct {
	store UserStore
}

// NewUserService constructs a UserService.
func NewUserService(store UserStore) *UserService {
	return &UserService{store: store}
}

// Get returns one page of users.
func (s *UserService) Get(ctx context.Context, page, size int, f repository.Filter) (*model.Page, error) {
	total, err := s.store.Count(ctx, f)
	if err != nil {
		return nil, err
	}
	content, err := s.store.Find(ctx, f, size, page*size)
	if err != nil {
		return nil, err
	}
	return &model.Page{Content: content, Total: total, Page: page, Size: size}, nil
}

// GetByID fetches one user; repository.ErrNotFound when absent.
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return s.store.GetByID(ctx, id)
}

// Create persists a user. The caller must have hashed the password into
// PasswordHash already.
func (s *UserService) Create(ctx context.Context, u *model.User) error {
	return s.store.Create(ctx, u)
}

// Update applies a partial update and returns the updated user.
func (s *UserService) Update(ctx context.Context, id int64, changes map[string]any) (*model.User, error) {
	return s.store.Update(ctx, id, changes)
}

// Remove deletes a user and returns the removed record.
func (s *UserService) Remove(ctx context.Context, id int64) (*model.User, error) {
	return s.store.Delete(ctx, id)
}

// Login returns the user matching the given username or e-mail when the
// password verifies against the stored hash. Bad credentials yield
// (nil, nil), not an error: the handler turns that into a 401.
func (s *UserService) Login(ctx context.Context, username, password string) (*model.User, error) {
	u, err := s.store.FindByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return nil, nil
	}
	return u, nil
}
