package repository

import (
	"context"

	"github.com/nasma-hq/nasma-insights-api/internal/models"
	"github.com/nasma-hq/nasma-insights-api/pkg/config"
	"github.com/nasma-hq/nasma-insights-api/pkg/supabase"
)

// MetricRepository reads session metric events from the hosted store.
type MetricRepository struct {
	client   *supabase.Client
	table    string
	pageSize int
}

// NewMetricRepository constructs the repository.
func NewMetricRepository(client *supabase.Client, cfg config.SupabaseConfig) *MetricRepository {
	return &MetricRepository{client: client, table: cfg.MetricTable, pageSize: cfg.PageSize}
}

// ListEvents returns every metric event inside the window.
func (r *MetricRepository) ListEvents(ctx context.Context, window models.TimeRange) ([]models.MetricEvent, error) {
	return ScanAll(ctx, r.pageSize, func(ctx context.Context, offset, limit int) ([]models.MetricEvent, error) {
		query := r.client.From(r.table).Select("user_name, metric_type, thread_id, created_at")
		query = applyWindow(query, window)

		var batch []models.MetricEvent
		if err := query.Range(offset, offset+limit-1).Execute(ctx, &batch); err != nil {
			return nil, err
		}
		return batch, nil
	})
}

// ListEventsByTypes returns metric events restricted to the given types.
func (r *MetricRepository) ListEventsByTypes(ctx context.Context, types []string, window models.TimeRange) ([]models.MetricEvent, error) {
	return ScanAll(ctx, r.pageSize, func(ctx context.Context, offset, limit int) ([]models.MetricEvent, error) {
		query := r.client.From(r.table).
			Select("user_name, metric_type, thread_id, created_at").
			In("metric_type", types)
		query = applyWindow(query, window)

		var batch []models.MetricEvent
		if err := query.Range(offset, offset+limit-1).Execute(ctx, &batch); err != nil {
			return nil, err
		}
		return batch, nil
	})
}

// ListUserNames returns just the user_name column for the window, used to
// build the set of names with any usage signal.
func (r *MetricRepository) ListUserNames(ctx context.Context, window models.TimeRange) ([]string, error) {
	type row struct {
		UserName string `json:"user_name"`
	}
	rows, err := ScanAll(ctx, r.pageSize, func(ctx context.Context, offset, limit int) ([]row, error) {
		query := r.client.From(r.table).Select("user_name")
		query = applyWindow(query, window)

		var batch []row
		if err := query.Range(offset, offset+limit-1).Execute(ctx, &batch); err != nil {
			return nil, err
		}
		return batch, nil
	})
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(rows))
	for _, r := range rows {
		names = append(names, r.UserName)
	}
	return names, nil
}
