package service

import (
	"context"

	"github.com/dmoreira/asset-admin/internal/model"
	"github.com/dmoreira/asset-admin/internal/repository"
)

// UnitService wraps the unit repository with pagination.
type UnitService struct {
	store UnitStore
}

// NewUnitService constructs a UnitService.
func NewUnitService(store UnitStore) *UnitService {
	return &UnitService{store: store}
}

// Get returns one page of units.
func (s *UnitService) Get(ctx context.Context, page, size int, f repository.Filter) (*model.Page, error) {
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

// GetByID fetches one unit; repository.ErrNotFound when absent.
func (s *UnitService) GetByID(ctx context.Context, id int64) (*model.Unit, error) {
	return s.store.GetByID(ctx, id)
}

// Create persists a unit, propagating validation errors unchanged.
func (s *UnitService) Create(ctx context.Context, u *model.Unit) error {
	return s.store.Create(ctx, u)
}

// Update applies a partial update and returns the updated unit.
func (s *UnitService) Update(ctx context.Context, id int64, changes map[string]any) (*model.Unit, error) {
	return s.store.Update(ctx, id, changes)
}

// Remove deletes a unit and returns the removed record.
func (s *UnitService) Remove(ctx context.Context, id int64) (*model.Unit, error) {
	return s.store.Delete(ctx, id)
}
