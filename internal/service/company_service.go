package service

import (
	"context"

	"github.com/dmoreira/asset-admin/internal/model"
	"github.com/dmoreira/asset-admin/internal/repository"
)

// CompanyService wraps the company repository with pagination.
type CompanyService struct {
	store CompanyStore
}

// NewCompanyService constructs a CompanyService.
func NewCompanyService(store CompanyStore) *CompanyService {
	return &CompanyService{store: store}
}

// Get returns one page of companies: total counts every match, content
// holds at most size records starting at page*size, ordered by id.
func (s *CompanyService) Get(ctx context.Context, page, size int, f repository.Filter) (*model.Page, error) {
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

// GetByID fetches one company; repository.ErrNotFound when absent.
func (s *CompanyService) GetByID(ctx context.Context, id int64) (*model.Company, error) {
	return s.store.GetByID(ctx, id)
}

// Create persists a company, propagating validation errors unchanged.
func (s *CompanyService) Create(ctx context.Context, c *model.Company) error {
	return s.store.Create(ctx, c)
}

// Update applies a partial update and returns the updated company.
func (s *CompanyService) Update(ctx context.Context, id int64, changes map[string]any) (*model.Company, error) {
	return s.store.Update(ctx, id, changes)
}

// Remove deletes a company and returns the removed record.
func (s *CompanyService) Remove(ctx context.Context, id int64) (*model.Company, error) {
	return s.store.Delete(ctx, id)
}
