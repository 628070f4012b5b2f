// Package service holds the thin business layer between handlers and
// repositories: it owns the Page envelope construction and a handful of
// operations that are more than pass-throughs (login, reporting, asset
// events). Services depend on store interfaces so tests can run against
// in-memory fakes.
package service

import (
	"context"

	"github.com/dmoreira/asset-admin/internal/model"
	"github.com/dmoreira/asset-admin/internal/repository"
)

// CompanyStore is the persistence contract the company service needs.
// *repository.CompanyRepo satisfies it.
type CompanyStore interface {
	Create(ctx context.Context, c *model.Company) error
	GetByID(ctx context.Context, id int64) (*model.Company, error)
	Find(ctx context.Context, f repository.Filter, limit, offset int) ([]*model.Company, error)
	Count(ctx context.Context, f repository.Filter) (int64, error)
	Update(ctx context.Context, id int64, changes map[string]any) (*model.Company, error)
	Delete(ctx context.Context, id int64) (*model.Company, error)
}

// UnitStore is the persistence contract the unit service needs.
type UnitStore interface {
	Create(ctx context.Context, u *model.Unit) error
	GetByID(ctx context.Context, id int64) (*model.Unit, error)
	Find(ctx context.Context, f repository.Filter, limit, offset int) ([]*model.Unit, error)
	Count(ctx context.Context, f repository.Filter) (int64, error)
	Update(ctx context.Context, id int64, changes map[string]any) (*model.Unit, error)
	Delete(ctx context.Context, id int64) (*model.Unit, error)
}

// UserStore is the persistence contract the user service needs.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	FindByLogin(ctx context.Context, login string) (*model.User, error)
	Find(ctx context.Context, f repository.Filter, limit, offset int) ([]*model.User, error)
	Count(ctx context.Context, f repository.Filter) (int64, error)
	Update(ctx context.Context, id int64, changes map[string]any) (*model.User, error)
	Delete(ctx context.Context, id int64) (*model.User, error)
}

// AssetStore is the persistence contract the asset and report services need.
type AssetStore interface {
	Create(ctx context.Context, a *model.Asset) error
	GetByID(ctx context.Context, id int64) (*model.Asset, error)
	Find(ctx context.Context, f repository.Filter, limit, offset int) ([]*model.Asset, error)
	Count(ctx context.Context, f repository.Filter) (int64, error)
	Update(ctx context.Context, id int64, changes map[string]any) (*model.Asset, error)
	Delete(ctx context.Context, id int64) (*model.Asset, error)
	AvgHealth(ctx context.Context, groupFields []string, f repository.Filter) ([]model.ReportRow, error)
}
