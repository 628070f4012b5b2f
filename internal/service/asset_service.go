package service

import (
	"context"

	"github.com/dmoreira/asset-admin/internal/model"
	"github.com/dmoreira/asset-admin/internal/queue"
	"github.com/dmoreira/asset-admin/internal/repository"
)

// AssetEvents publishes asset lifecycle events to the message broker.
// *queue.Publisher satisfies it; a nil publisher disables events.
type AssetEvents interface {
	AssetCreated(ctx context.Context, e queue.AssetCreatedEvent) error
	AssetStatusChanged(ctx context.Context, e queue.AssetStatusChangedEvent) error
}

// AssetService wraps the asset repository with pagination and publishes
// lifecycle events on successful writes. Publishing is fire-and-forget:
// broker failures are logged by the publisher and never fail the request.
type AssetService struct {
	store  AssetStore
	events AssetEvents
}

// NewAssetService constructs an AssetService. events may be nil.
func NewAssetService(store AssetStore, events AssetEvents) *AssetService {
	return &AssetService{store: store, events: events}
}

// Get returns one page of assets.
func (s *AssetService) Get(ctx context.Context, page, size int, f repository.Filter) (*model.Page, error) {
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

// GetByID fetches one asset; repository.ErrNotFound when absent.
func (s *AssetService) GetByID(ctx context.Context, id int64) (*model.Asset, error) {
	return s.store.GetByID(ctx, id)
}

// Create persists an asset and announces it on the broker.
func (s *AssetService) Create(ctx context.Context, a *model.Asset) error {
	if err := s.store.Create(ctx, a); err != nil {
		return err
	}
	if s.events != nil {
		_ = s.events.AssetCreated(ctx, queue.AssetCreatedEvent{
			AssetID:     a.ID,
			Name:        a.Name,
			Status:      a.Status,
			Healthscore: deref(a.Healthscore),
			Unit:        a.Unit,
			Company:     a.Company,
			User:        a.User,
		})
	}
	return nil
}

// Update applies a partial update and returns the updated asset. A status
// transition is announced on the broker.
func (s *AssetService) Update(ctx context.Context, id int64, changes map[string]any) (*model.Asset, error) {
	var previous string
	if _, ok := changes["status"]; ok && s.events != nil {
		if before, err := s.store.GetByID(ctx, id); err == nil {
			previous = before.Status
		}
	}
	a, err := s.store.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}
	if s.events != nil && previous != "" && previous != a.Status {
		_ = s.events.AssetStatusChanged(ctx, queue.AssetStatusChangedEvent{
			AssetID:     a.ID,
			Name:        a.Name,
			From:        previous,
			To:          a.Status,
			Healthscore: deref(a.Healthscore),
			Company:     a.Company,
		})
	}
	return a, nil
}

// Remove deletes an asset and returns the removed record.
func (s *AssetService) Remove(ctx context.Context, id int64) (*model.Asset, error) {
	return s.store.Delete(ctx, id)
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
