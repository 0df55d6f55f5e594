package service

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nasma-hq/nasma-insights-api/internal/dto"
	"github.com/nasma-hq/nasma-insights-api/internal/models"
	"github.com/nasma-hq/nasma-insights-api/internal/normalize"
)

// MetricEventSource lists assistant action events.
type MetricEventSource interface {
	ListEvents(ctx context.Context, window models.TimeRange) ([]models.MetricEvent, error)
	ListEventsByTypes(ctx context.Context, types []string, window models.TimeRange) ([]models.MetricEvent, error)
}

// TokenSource lists issued login tokens.
type TokenSource interface {
	ListTokens(ctx context.Context, window models.TimeRange) ([]models.RefreshToken, error)
}

// successRateTypes are the metric families the outcome report covers.
var successRateTypes = []string{
	models.MetricLogHours,
	models.MetricTimeoffApproval,
	models.MetricTimeoffRefusal,
	models.MetricOvertimeApproval,
	models.MetricOvertimeRefusal,
	models.MetricReimbursement,
	models.MetricDocument,
}

// MetricServiceParams bundles dependencies for NewMetricService.
type MetricServiceParams struct {
	Events     MetricEventSource
	Tokens     TokenSource
	Exclusions *normalize.Exclusions
	Logger     *zap.Logger
	Now        func() time.Time
}

// MetricService aggregates raw action events into the dashboard's request
// reports. Upstream failures degrade to empty results so one dead source
// never blanks the whole dashboard.
type MetricService struct {
	events     MetricEventSource
	tokens     TokenSource
	exclusions *normalize.Exclusions
	logger     *zap.Logger
	now        func() time.Time
}

// NewMetricService constructs the service.
func NewMetricService(params MetricServiceParams) *MetricService {
	if params.Logger == nil {
		params.Logger = zap.NewNop()
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	return &MetricService{
		events:     params.Events,
		tokens:     params.Tokens,
		exclusions: params.Exclusions,
		logger:     params.Logger,
		now:        params.Now,
	}
}

// RequestCounts totals events per metric type, largest first.
func (s *MetricService) RequestCounts(ctx context.Context, window models.TimeRange) []dto.RequestCount {
	events, err := s.events.ListEvents(ctx, window)
	if err != nil {
		s.logger.Warn("fetch metric events failed", zap.Error(err))
		return []dto.RequestCount{}
	}

	counts := make(map[string]int)
	order := make([]string, 0)
	for _, event := range events {
		if event.MetricType == "" {
			continue
		}
		if _, seen := counts[event.MetricType]; !seen {
			order = append(order, event.MetricType)
		}
		counts[event.MetricType]++
	}

	// Ties keep first-seen order, so the stable sort runs over the
	// types in encounter order.
	results := make([]dto.RequestCount, 0, len(order))
	for _, metricType := range order {
		results = append(results, dto.RequestCount{Attribute: metricType, Value: counts[metricType]})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Value > results[j].Value
	})
	return results
}

// requestFamily collapses a metric type into its request family, or ""
// when the type is outside the outcome report.
func requestFamily(metricType string) string {
	switch {
	case strings.HasPrefix(metricType, "timeoff_"):
		return "timeoff"
	case strings.HasPrefix(metricType, "overtime_"):
		return "overtime"
	case metricType == models.MetricLogHours,
		metricType == models.MetricReimbursement,
		metricType == models.MetricDocument:
		return metricType
	default:
		return ""
	}
}

// eventOutcome classifies a metric type as success (1), failure (0) or
// out of scope (-1). Single-shot families always count as success.
func eventOutcome(metricType string) int {
	switch metricType {
	case models.MetricTimeoffApproval, models.MetricOvertimeApproval:
		return 1
	case models.MetricTimeoffRefusal, models.MetricOvertimeRefusal:
		return 0
	case models.MetricLogHours, models.MetricReimbursement, models.MetricDocument:
		return 1
	default:
		return -1
	}
}

// SuccessRates reports per-family outcome statistics, families in
// alphabetical order.
func (s *MetricService) SuccessRates(ctx context.Context, window models.TimeRange) []dto.RequestSuccessRate {
	events, err := s.events.ListEventsByTypes(ctx, successRateTypes, window)
	if err != nil {
		s.logger.Warn("fetch outcome events failed", zap.Error(err))
		return []dto.RequestSuccessRate{}
	}

	type bucket struct {
		successes int
		total     int
	}
	aggregates := make(map[string]*bucket)
	for _, event := range events {
		if event.UserName == "" || event.MetricType == "" {
			continue
		}
		if s.exclusions.MatchesExact(event.UserName) {
			continue
		}
		family := requestFamily(event.MetricType)
		outcome := eventOutcome(event.MetricType)
		if family == "" || outcome == -1 {
			continue
		}
		b := aggregates[family]
		if b == nil {
			b = &bucket{}
			aggregates[family] = b
		}
		b.total++
		if outcome == 1 {
			b.successes++
		}
	}

	families := make([]string, 0, len(aggregates))
	for family := range aggregates {
		families = append(families, family)
	}
	sort.Strings(families)

	results := make([]dto.RequestSuccessRate, 0, len(families))
	for _, family := range families {
		b := aggregates[family]
		rate := 0.0
		if b.total > 0 {
			rate = math.Round(float64(b.successes)/float64(b.total)*1000) / 10
		}
		results = append(results, dto.RequestSuccessRate{
			RequestType:        family,
			SuccessRatePercent: rate,
			Successes:          b.successes,
			TotalEvents:        b.total,
		})
	}
	return results
}

// ActivitiesToday counts actions per (user, metric type). Without an
// explicit window it covers the current UTC calendar day.
func (s *MetricService) ActivitiesToday(ctx context.Context, window models.TimeRange) []dto.UserActivity {
	if window.IsZero() {
		dayStart := s.now().UTC().Truncate(24 * time.Hour)
		dayEnd := dayStart.Add(24*time.Hour - time.Second)
		window = models.TimeRange{
			Start: dayStart.Format("2006-01-02 15:04:05"),
			End:   dayEnd.Format("2006-01-02 15:04:05"),
		}
	}

	events, err := s.events.ListEvents(ctx, window)
	if err != nil {
		s.logger.Warn("fetch activity events failed", zap.Error(err))
		return []dto.UserActivity{}
	}

	type activityKey struct {
		user   string
		metric string
	}
	counts := make(map[activityKey]int)
	for _, event := range events {
		if event.UserName == "" || event.MetricType == "" {
			continue
		}
		if s.exclusions.MatchesExact(event.UserName) {
			continue
		}
		counts[activityKey{user: event.UserName, metric: event.MetricType}]++
	}

	results := make([]dto.UserActivity, 0, len(counts))
	for key, count := range counts {
		results = append(results, dto.UserActivity{
			UserName:     key.user,
			MetricType:   key.metric,
			ActionsToday: count,
		})
	}
	sort.Slice(results, func(i, j int) bool {
		left, right := strings.ToLower(results[i].UserName), strings.ToLower(results[j].UserName)
		if left != right {
			return left < right
		}
		if results[i].ActionsToday != results[j].ActionsToday {
			return results[i].ActionsToday > results[j].ActionsToday
		}
		return results[i].MetricType < results[j].MetricType
	})
	return results
}

// AdoptionCount is the number of distinct users who ever received a login
// token within the window.
func (s *MetricService) AdoptionCount(ctx context.Context, window models.TimeRange) dto.AdoptionCount {
	tokens, err := s.tokens.ListTokens(ctx, window)
	if err != nil {
		s.logger.Warn("fetch refresh tokens failed", zap.Error(err))
		return dto.AdoptionCount{}
	}

	unique := make(map[string]struct{})
	for _, token := range tokens {
		if token.Username == "" {
			continue
		}
		unique[token.Username] = struct{}{}
	}
	return dto.AdoptionCount{Count: len(unique)}
}
