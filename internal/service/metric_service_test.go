package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nasma-hq/nasma-insights-api/internal/models"
	"github.com/nasma-hq/nasma-insights-api/internal/normalize"
)

type metricSourceStub struct {
	events     []models.MetricEvent
	err        error
	lastWindow models.TimeRange
	lastTypes  []string
}

func (s *metricSourceStub) ListEvents(ctx context.Context, window models.TimeRange) ([]models.MetricEvent, error) {
	s.lastWindow = window
	return s.events, s.err
}

func (s *metricSourceStub) ListEventsByTypes(ctx context.Context, types []string, window models.TimeRange) ([]models.MetricEvent, error) {
	s.lastTypes = types
	s.lastWindow = window
	return s.events, s.err
}

type tokenSourceStub struct {
	tokens []models.RefreshToken
	err    error
}

func (s *tokenSourceStub) ListTokens(ctx context.Context, window models.TimeRange) ([]models.RefreshToken, error) {
	return s.tokens, s.err
}

func testExclusions() *normalize.Exclusions {
	return normalize.NewExclusionLists(
		[]string{"Internal Tester One", "Internal Tester Two"},
		[]string{"bot"},
	)
}

func newTestMetricService(events *metricSourceStub, tokens *tokenSourceStub) *MetricService {
	return NewMetricService(MetricServiceParams{
		Events:     events,
		Tokens:     tokens,
		Exclusions: testExclusions(),
		Now: func() time.Time {
			return time.Date(2024, 9, 15, 14, 30, 0, 0, time.UTC)
		},
	})
}

func TestRequestCountsSortsByCountDescending(t *testing.T) {
	events := &metricSourceStub{events: []models.MetricEvent{
		{MetricType: "log_hours"},
		{MetricType: "timeoff_approval"},
		{MetricType: "log_hours"},
		{MetricType: ""},
	}}
	svc := newTestMetricService(events, nil)

	result := svc.RequestCounts(context.Background(), models.TimeRange{})
	require.Len(t, result, 2)
	assert.Equal(t, "log_hours", result[0].Attribute)
	assert.Equal(t, 2, result[0].Value)
	assert.Equal(t, "timeoff_approval", result[1].Attribute)
	assert.Equal(t, 1, result[1].Value)
}

func TestRequestCountsBreaksTiesByFirstSeenOrder(t *testing.T) {
	events := &metricSourceStub{events: []models.MetricEvent{
		{MetricType: "reimbursement"},
		{MetricType: "document"},
	}}
	svc := newTestMetricService(events, nil)

	result := svc.RequestCounts(context.Background(), models.TimeRange{})
	require.Len(t, result, 2)
	assert.Equal(t, "reimbursement", result[0].Attribute)
	assert.Equal(t, "document", result[1].Attribute)
}

func TestRequestCountsDegradesToEmptyOnError(t *testing.T) {
	events := &metricSourceStub{err: errors.New("boom")}
	svc := newTestMetricService(events, nil)

	result := svc.RequestCounts(context.Background(), models.TimeRange{})
	assert.Empty(t, result)
	assert.NotNil(t, result)
}

func TestSuccessRatesFoldsFamiliesAndRounds(t *testing.T) {
	events := &metricSourceStub{events: []models.MetricEvent{
		{UserName: "Alice", MetricType: models.MetricTimeoffApproval},
		{UserName: "Bob", MetricType: models.MetricTimeoffApproval},
		{UserName: "Cara", MetricType: models.MetricTimeoffRefusal},
		{UserName: "Alice", MetricType: models.MetricLogHours},
	}}
	svc := newTestMetricService(events, nil)

	result := svc.SuccessRates(context.Background(), models.TimeRange{})
	require.Len(t, result, 2)
	assert.Len(t, events.lastTypes, len(successRateTypes))

	// Families come back alphabetically.
	assert.Equal(t, "log_hours", result[0].RequestType)
	assert.InDelta(t, 100.0, result[0].SuccessRatePercent, 0.001)
	assert.Equal(t, 1, result[0].TotalEvents)

	assert.Equal(t, "timeoff", result[1].RequestType)
	assert.Equal(t, 3, result[1].TotalEvents)
	assert.Equal(t, 2, result[1].Successes)
	assert.InDelta(t, 66.7, result[1].SuccessRatePercent, 0.001)
}

func TestSuccessRatesSkipsExcludedUsersByExactName(t *testing.T) {
	events := &metricSourceStub{events: []models.MetricEvent{
		{UserName: "Internal Tester One", MetricType: models.MetricTimeoffApproval},
		{UserName: "Alice", MetricType: models.MetricTimeoffApproval},
	}}
	svc := newTestMetricService(events, nil)

	result := svc.SuccessRates(context.Background(), models.TimeRange{})
	require.Len(t, result, 1)
	assert.Equal(t, 1, result[0].TotalEvents)
}

func TestSuccessRatesNeverEmitsEmptyFamilies(t *testing.T) {
	events := &metricSourceStub{events: []models.MetricEvent{
		{UserName: "", MetricType: models.MetricDocument},
	}}
	svc := newTestMetricService(events, nil)

	result := svc.SuccessRates(context.Background(), models.TimeRange{})
	assert.Empty(t, result)
	for _, row := range result {
		assert.NotZero(t, row.TotalEvents)
	}
}

func TestActivitiesTodayDefaultsToCurrentUTCDay(t *testing.T) {
	events := &metricSourceStub{}
	svc := newTestMetricService(events, nil)

	svc.ActivitiesToday(context.Background(), models.TimeRange{})
	assert.Equal(t, "2024-09-15 00:00:00", events.lastWindow.Start)
	assert.Equal(t, "2024-09-15 23:59:59", events.lastWindow.End)
}

func TestActivitiesTodaySortsByUserThenCount(t *testing.T) {
	events := &metricSourceStub{events: []models.MetricEvent{
		{UserName: "bob", MetricType: "log_hours"},
		{UserName: "Alice", MetricType: "document"},
		{UserName: "Alice", MetricType: "log_hours"},
		{UserName: "Alice", MetricType: "log_hours"},
	}}
	svc := newTestMetricService(events, nil)

	result := svc.ActivitiesToday(context.Background(), models.TimeRange{Start: "2024-09-01"})
	require.Len(t, result, 3)
	assert.Equal(t, "Alice", result[0].UserName)
	assert.Equal(t, "log_hours", result[0].MetricType)
	assert.Equal(t, 2, result[0].ActionsToday)
	assert.Equal(t, "Alice", result[1].UserName)
	assert.Equal(t, 1, result[1].ActionsToday)
	assert.Equal(t, "bob", result[2].UserName)
}

func TestAdoptionCountDeduplicatesUsernames(t *testing.T) {
	tokens := &tokenSourceStub{tokens: []models.RefreshToken{
		{Username: "alice"},
		{Username: "alice"},
		{Username: "bob"},
		{Username: ""},
	}}
	svc := newTestMetricService(&metricSourceStub{}, tokens)

	result := svc.AdoptionCount(context.Background(), models.TimeRange{})
	assert.Equal(t, 2, result.Count)
}

func TestAdoptionCountDegradesToZeroOnError(t *testing.T) {
	tokens := &tokenSourceStub{err: errors.New("boom")}
	svc := newTestMetricService(&metricSourceStub{}, tokens)

	result := svc.AdoptionCount(context.Background(), models.TimeRange{})
	assert.Zero(t, result.Count)
}
