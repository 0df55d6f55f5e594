package repository

import (
	"context"

	"github.com/nasma-hq/nasma-insights-api/internal/models"
	"github.com/nasma-hq/nasma-insights-api/pkg/config"
	"github.com/nasma-hq/nasma-insights-api/pkg/supabase"
)

// EmployeeRepository reads the employee reference roster. The table has
// shipped with more than one column naming; decoding in the model layer
// tolerates every known shape, so the query selects all columns.
type EmployeeRepository struct {
	client   *supabase.Client
	table    string
	pageSize int
}

// NewEmployeeRepository constructs the repository.
func NewEmployeeRepository(client *supabase.Client, cfg config.SupabaseConfig) *EmployeeRepository {
	return &EmployeeRepository{client: client, table: cfg.EmployeeTable, pageSize: cfg.PageSize}
}

// ListEmployees returns the full roster.
func (r *EmployeeRepository) ListEmployees(ctx context.Context) ([]models.EmployeeRecord, error) {
	return ScanAll(ctx, r.pageSize, func(ctx context.Context, offset, limit int) ([]models.EmployeeRecord, error) {
		var batch []models.EmployeeRecord
		if err := r.client.From(r.table).Select("*").Range(offset, offset+limit-1).Execute(ctx, &batch); err != nil {
			return nil, err
		}
		return batch, nil
	})
}
