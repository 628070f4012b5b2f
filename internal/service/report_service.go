package service

import (
	"context"
	"math"

	"github.com/dmoreira/asset-admin/internal/model"
	"github.com/dmoreira/asset-admin/internal/repository"
)

// ReportService exposes the grouped average-health aggregation over assets.
type ReportService struct {
	store AssetStore
}

// NewReportService constructs a ReportService.
func NewReportService(store AssetStore) *ReportService {
	return &ReportService{store: store}
}

// GetAvgHealth returns one row per distinct combination of status and the
// requested grouping fields, each carrying the group's asset count and its
// mean healthscore rounded to 2 decimals. With no grouping fields the
// result is the global per-status summary.
func (s *ReportService) GetAvgHealth(ctx context.Context, groupFields []string, f repository.Filter) ([]model.ReportRow, error) {
	rows, err := s.store.AvgHealth(ctx, groupFields, f)
	if err != nil {
		return nil, err
	}
	// The SQL aggregation already rounds; enforcing it here keeps the
	// 2-decimal contract independent of the store.
	for i := range rows {
		rows[i].AverageHealth = math.Round(rows[i].AverageHealth*100) / 100
	}
	return rows, nil
}
