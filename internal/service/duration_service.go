package service

import (
	"context"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/nasma-hq/nasma-insights-api/internal/dto"
	"github.com/nasma-hq/nasma-insights-api/internal/models"
	"github.com/nasma-hq/nasma-insights-api/internal/normalize"
	"github.com/nasma-hq/nasma-insights-api/internal/period"
)

// ThreadMessageSource fetches chat messages for a set of threads.
type ThreadMessageSource interface {
	ListThreadMessages(ctx context.Context, threadIDs []string) ([]models.ChatMessage, error)
}

// DurationServiceParams bundles dependencies for NewDurationService.
type DurationServiceParams struct {
	Events     MetricEventSource
	Threads    ThreadMessageSource
	Exclusions *normalize.Exclusions
	Families   []string
	Logger     *zap.Logger
}

// DurationService estimates how long each request family takes, measured
// as the spread between the first and last metric event on a thread. The
// thread's initiator comes from its earliest user-authored chat message.
type DurationService struct {
	events     MetricEventSource
	threads    ThreadMessageSource
	exclusions *normalize.Exclusions
	families   []string
	logger     *zap.Logger
}

// NewDurationService constructs the service.
func NewDurationService(params DurationServiceParams) *DurationService {
	if params.Logger == nil {
		params.Logger = zap.NewNop()
	}
	if len(params.Families) == 0 {
		params.Families = []string{"log_hours", "timeoff", "overtime"}
	}
	return &DurationService{
		events:     params.Events,
		threads:    params.Threads,
		exclusions: params.Exclusions,
		families:   params.Families,
		logger:     params.Logger,
	}
}

type threadSpan struct {
	family   string
	threadID string
	earliest float64
	latest   float64
}

// RequestDurations averages per-thread elapsed seconds per request family.
// Families with no qualifying threads report zero, and the configured
// family order is preserved in the output.
func (s *DurationService) RequestDurations(ctx context.Context, window models.TimeRange) []dto.RequestDuration {
	familySet := make(map[string]struct{}, len(s.families))
	for _, family := range s.families {
		familySet[family] = struct{}{}
	}

	var eventTypes []string
	for _, metricType := range successRateTypes {
		if _, ok := familySet[requestFamily(metricType)]; ok {
			eventTypes = append(eventTypes, metricType)
		}
	}

	events, err := s.events.ListEventsByTypes(ctx, eventTypes, window)
	if err != nil {
		s.logger.Warn("fetch duration events failed", zap.Error(err))
		return s.zeroDurations()
	}

	type spanKey struct {
		family   string
		threadID string
	}
	spans := make(map[spanKey]*threadSpan)
	for _, event := range events {
		if event.ThreadID == "" {
			continue
		}
		family := requestFamily(event.MetricType)
		if _, ok := familySet[family]; !ok {
			continue
		}
		createdAt, ok := period.ParseTimestamp(event.CreatedAt)
		if !ok {
			continue
		}
		at := float64(createdAt.UnixNano()) / 1e9

		key := spanKey{family: family, threadID: event.ThreadID}
		span := spans[key]
		if span == nil {
			spans[key] = &threadSpan{family: family, threadID: event.ThreadID, earliest: at, latest: at}
			continue
		}
		if at < span.earliest {
			span.earliest = at
		}
		if at > span.latest {
			span.latest = at
		}
	}

	threadIDs := make(map[string]struct{})
	for key := range spans {
		threadIDs[key.threadID] = struct{}{}
	}
	initiators := s.resolveInitiators(ctx, threadIDs)

	type familyStats struct {
		totalSeconds float64
		threads      int
	}
	stats := make(map[string]*familyStats)
	for _, span := range spans {
		initiator, ok := initiators[span.threadID]
		if !ok {
			continue
		}
		if s.exclusions.MatchesSubstring(initiator) {
			continue
		}
		st := stats[span.family]
		if st == nil {
			st = &familyStats{}
			stats[span.family] = st
		}
		st.totalSeconds += span.latest - span.earliest
		st.threads++
	}

	results := make([]dto.RequestDuration, 0, len(s.families))
	for _, family := range s.families {
		row := dto.RequestDuration{RequestType: family}
		if st := stats[family]; st != nil && st.threads > 0 {
			row.AvgDurationSeconds = int(math.Round(st.totalSeconds / float64(st.threads)))
			row.ThreadCount = st.threads
		}
		results = append(results, row)
	}
	return results
}

// resolveInitiators maps each thread to the author of its earliest
// user-authored message. Threads without one stay unresolved.
func (s *DurationService) resolveInitiators(ctx context.Context, threadIDs map[string]struct{}) map[string]string {
	if len(threadIDs) == 0 {
		return map[string]string{}
	}
	ids := make([]string, 0, len(threadIDs))
	for id := range threadIDs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	messages, err := s.threads.ListThreadMessages(ctx, ids)
	if err != nil {
		s.logger.Warn("fetch thread messages failed", zap.Error(err))
		return map[string]string{}
	}

	type firstMessage struct {
		at   float64
		user string
	}
	earliest := make(map[string]firstMessage)
	for _, message := range messages {
		if message.ThreadID == "" {
			continue
		}
		userName := message.Metadata.UserName()
		if userName == "" {
			continue
		}
		createdAt, ok := period.ParseTimestamp(message.CreatedAt)
		if !ok {
			continue
		}
		at := float64(createdAt.UnixNano()) / 1e9
		if current, seen := earliest[message.ThreadID]; !seen || at < current.at {
			earliest[message.ThreadID] = firstMessage{at: at, user: userName}
		}
	}

	initiators := make(map[string]string, len(earliest))
	for threadID, first := range earliest {
		initiators[threadID] = first.user
	}
	return initiators
}

func (s *DurationService) zeroDurations() []dto.RequestDuration {
	results := make([]dto.RequestDuration, 0, len(s.families))
	for _, family := range s.families {
		results = append(results, dto.RequestDuration{RequestType: family})
	}
	return results
}
