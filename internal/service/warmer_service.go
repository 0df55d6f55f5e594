package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/nasma-hq/nasma-insights-api/internal/models"
	"github.com/nasma-hq/nasma-insights-api/pkg/jobs"
)

// ReportWarmerParams configures background cache warming.
type ReportWarmerParams struct {
	Adoption *AdoptionService
	Cache    *CacheService
	Interval time.Duration
	Logger   *zap.Logger
}

// ReportWarmer periodically recomputes the department-adoption report and
// primes the cache, so the first dashboard load after a TTL expiry does
// not pay for the full roster join.
type ReportWarmer struct {
	adoption *AdoptionService
	cache    *CacheService
	interval time.Duration
	logger   *zap.Logger
	queue    *jobs.Queue
}

// NewReportWarmer builds a warmer backed by a single-worker job queue.
func NewReportWarmer(params ReportWarmerParams) *ReportWarmer {
	if params.Logger == nil {
		params.Logger = zap.NewNop()
	}
	w := &ReportWarmer{
		adoption: params.Adoption,
		cache:    params.Cache,
		interval: params.Interval,
		logger:   params.Logger,
	}
	w.queue = jobs.NewQueue("report-warmer", w.refresh, jobs.QueueConfig{
		Workers: 1,
		Logger:  params.Logger,
	})
	return w
}

// Start launches the worker and the enqueue loop. The first refresh runs
// immediately.
func (w *ReportWarmer) Start(ctx context.Context) {
	if w.interval <= 0 || w.cache == nil || !w.cache.Enabled() {
		return
	}
	w.queue.Start(ctx)
	go w.loop(ctx)
}

// Stop drains the queue workers.
func (w *ReportWarmer) Stop() {
	w.queue.Stop()
}

func (w *ReportWarmer) loop(ctx context.Context) {
	w.enqueue()
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.enqueue()
		}
	}
}

func (w *ReportWarmer) enqueue() {
	job := jobs.Job{ID: time.Now().UTC().Format(time.RFC3339), Type: "adoption-by-department"}
	if err := w.queue.Enqueue(job); err != nil {
		w.logger.Sugar().Warnw("warm job enqueue failed", "error", err)
	}
}

func (w *ReportWarmer) refresh(ctx context.Context, job jobs.Job) error {
	result := w.adoption.AdoptionByDepartment(ctx, models.TimeRange{})
	key := ReportKey("adoption-by-department", "", "")
	if err := w.cache.Set(ctx, key, result, 0); err != nil {
		return err
	}
	w.logger.Sugar().Debugw("report cache warmed", "job_id", job.ID, "rows", len(result))
	return nil
}
