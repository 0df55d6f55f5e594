package repository

import (
	"github.com/nasma-hq/nasma-insights-api/internal/models"
	"github.com/nasma-hq/nasma-insights-api/pkg/supabase"
)

// applyWindow translates a closed time range into inclusive created_at
// bounds, widening bare-date upper bounds to whole-day semantics.
func applyWindow(q *supabase.Query, window models.TimeRange) *supabase.Query {
	if window.Start != "" {
		q = q.Gte("created_at", window.Start)
	}
	if window.End != "" {
		q = q.Lte("created_at", window.UpperBound())
	}
	return q
}
