package repository

import (
	"context"

	"github.com/nasma-hq/nasma-insights-api/internal/models"
	"github.com/nasma-hq/nasma-insights-api/pkg/config"
	"github.com/nasma-hq/nasma-insights-api/pkg/supabase"
)

// MessageRepository reads chat messages from the hosted store.
type MessageRepository struct {
	client   *supabase.Client
	table    string
	pageSize int
}

// NewMessageRepository constructs the repository.
func NewMessageRepository(client *supabase.Client, cfg config.SupabaseConfig) *MessageRepository {
	return &MessageRepository{client: client, table: cfg.MessageTable, pageSize: cfg.PageSize}
}

// ListUserMessages returns user-authored messages inside the window.
func (r *MessageRepository) ListUserMessages(ctx context.Context, window models.TimeRange) ([]models.ChatMessage, error) {
	return ScanAll(ctx, r.pageSize, func(ctx context.Context, offset, limit int) ([]models.ChatMessage, error) {
		query := r.client.From(r.table).
			Select("metadata, created_at, role").
			Eq("role", "user")
		query = applyWindow(query, window)

		var batch []models.ChatMessage
		if err := query.Range(offset, offset+limit-1).Execute(ctx, &batch); err != nil {
			return nil, err
		}
		return batch, nil
	})
}

// ListUserMessagesMatching returns user-authored messages whose content
// matches the case-insensitive pattern (SQL-style % wildcards).
func (r *MessageRepository) ListUserMessagesMatching(ctx context.Context, pattern string, window models.TimeRange) ([]models.ChatMessage, error) {
	return ScanAll(ctx, r.pageSize, func(ctx context.Context, offset, limit int) ([]models.ChatMessage, error) {
		query := r.client.From(r.table).
			Select("metadata, content, created_at").
			Eq("role", "user").
			Ilike("content", pattern)
		query = applyWindow(query, window)

		var batch []models.ChatMessage
		if err := query.Range(offset, offset+limit-1).Execute(ctx, &batch); err != nil {
			return nil, err
		}
		return batch, nil
	})
}

// ListThreadMessages returns user-authored messages belonging to any of the
// given threads, for initiator resolution.
func (r *MessageRepository) ListThreadMessages(ctx context.Context, threadIDs []string) ([]models.ChatMessage, error) {
	if len(threadIDs) == 0 {
		return nil, nil
	}
	return ScanAll(ctx, r.pageSize, func(ctx context.Context, offset, limit int) ([]models.ChatMessage, error) {
		query := r.client.From(r.table).
			Select("metadata, thread_id, created_at").
			Eq("role", "user").
			In("thread_id", threadIDs)

		var batch []models.ChatMessage
		if err := query.Range(offset, offset+limit-1).Execute(ctx, &batch); err != nil {
			return nil, err
		}
		return batch, nil
	})
}
