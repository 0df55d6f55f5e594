package repository

import (
	"context"

	"github.com/nasma-hq/nasma-insights-api/internal/models"
	"github.com/nasma-hq/nasma-insights-api/pkg/config"
	"github.com/nasma-hq/nasma-insights-api/pkg/supabase"
)

// TokenRepository reads refresh tokens, the "has ever authenticated"
// adoption signal.
type TokenRepository struct {
	client   *supabase.Client
	table    string
	pageSize int
}

// NewTokenRepository constructs the repository.
func NewTokenRepository(client *supabase.Client, cfg config.SupabaseConfig) *TokenRepository {
	return &TokenRepository{client: client, table: cfg.TokenTable, pageSize: cfg.PageSize}
}

// ListTokens returns refresh tokens inside the window.
func (r *TokenRepository) ListTokens(ctx context.Context, window models.TimeRange) ([]models.RefreshToken, error) {
	return ScanAll(ctx, r.pageSize, func(ctx context.Context, offset, limit int) ([]models.RefreshToken, error) {
		query := r.client.From(r.table).Select("username, created_at")
		query = applyWindow(query, window)

		var batch []models.RefreshToken
		if err := query.Range(offset, offset+limit-1).Execute(ctx, &batch); err != nil {
			return nil, err
		}
		return batch, nil
	})
}
