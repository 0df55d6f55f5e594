package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nasma-hq/nasma-insights-api/internal/models"
)

type messageSourceStub struct {
	messages  []models.ChatMessage
	byPattern map[string][]models.ChatMessage
	err       error
}

func (s *messageSourceStub) ListUserMessages(ctx context.Context, window models.TimeRange) ([]models.ChatMessage, error) {
	return s.messages, s.err
}

func (s *messageSourceStub) ListUserMessagesMatching(ctx context.Context, pattern string, window models.TimeRange) ([]models.ChatMessage, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.byPattern[pattern], nil
}

func userMessage(name, createdAt string) models.ChatMessage {
	return models.ChatMessage{
		Role:      "user",
		Metadata:  models.NewMetadata(map[string]interface{}{"user_name": name}),
		CreatedAt: createdAt,
	}
}

func newTestMessageService(source *messageSourceStub) *MessageService {
	return NewMessageService(MessageServiceParams{
		Messages:   source,
		Exclusions: testExclusions(),
	})
}

func TestActiveUsersByMonthCountsDistinctAuthors(t *testing.T) {
	source := &messageSourceStub{messages: []models.ChatMessage{
		userMessage("Alice", "2024-09-05T10:00:00Z"),
		userMessage("Bob", "2024-09-20T08:00:00Z"),
		userMessage("Alice", "2024-10-01T00:00:00Z"),
	}}
	svc := newTestMessageService(source)

	result := svc.ActiveUsersByMonth(context.Background(), models.TimeRange{})
	require.Len(t, result, 2)
	assert.Equal(t, "September 2024", result[0].Month)
	assert.Equal(t, 2, result[0].ActiveUsers)
	assert.Equal(t, "October 2024", result[1].Month)
	assert.Equal(t, 1, result[1].ActiveUsers)
}

func TestActiveUsersByMonthKeepsInternalAccounts(t *testing.T) {
	source := &messageSourceStub{messages: []models.ChatMessage{
		userMessage("helper bot", "2024-09-05T10:00:00Z"),
	}}
	svc := newTestMessageService(source)

	result := svc.ActiveUsersByMonth(context.Background(), models.TimeRange{})
	require.Len(t, result, 1)
	assert.Equal(t, 1, result[0].ActiveUsers)
}

func TestActiveUsersByMonthSkipsUnresolvableRows(t *testing.T) {
	source := &messageSourceStub{messages: []models.ChatMessage{
		userMessage("", "2024-09-05T10:00:00Z"),
		userMessage("Alice", "not-a-timestamp"),
		userMessage("Alice", "2024-09-05T10:00:00Z"),
	}}
	svc := newTestMessageService(source)

	result := svc.ActiveUsersByMonth(context.Background(), models.TimeRange{})
	require.Len(t, result, 1)
	assert.Equal(t, 1, result[0].ActiveUsers)
}

func TestMessagesSummaryStaysInternallyConsistent(t *testing.T) {
	source := &messageSourceStub{messages: []models.ChatMessage{
		userMessage("Alice", "2024-09-05T10:00:00Z"),
		userMessage("Alice", "2024-09-06T10:00:00Z"),
		userMessage("Bob", "2024-09-07T10:00:00Z"),
		userMessage("Bob", "2024-10-01T10:00:00Z"),
		userMessage("helper bot", "2024-10-02T10:00:00Z"),
	}}
	svc := newTestMessageService(source)

	summary := svc.MessagesSummary(context.Background(), models.TimeRange{})

	require.Len(t, summary.MonthlyTotals, 2)
	assert.Equal(t, "September 2024", summary.MonthlyTotals[0].Month)
	assert.Equal(t, 3, summary.MonthlyTotals[0].TotalMessages)
	assert.Equal(t, 1, summary.MonthlyTotals[1].TotalMessages)

	require.Len(t, summary.UserBreakdown, 3)
	assert.Equal(t, "Alice", summary.UserBreakdown[0].UserName)
	assert.Equal(t, 2, summary.UserBreakdown[0].MessagesSent)

	monthSum := 0
	for _, month := range summary.MonthlyTotals {
		monthSum += month.TotalMessages
	}
	userSum := 0
	for _, user := range summary.UserBreakdown {
		userSum += user.MessagesSent
	}
	assert.Equal(t, summary.TotalMessages, monthSum)
	assert.Equal(t, summary.TotalMessages, userSum)
}

func TestMessagesSummaryDegradesToEmptyOnError(t *testing.T) {
	svc := newTestMessageService(&messageSourceStub{err: errors.New("boom")})

	summary := svc.MessagesSummary(context.Background(), models.TimeRange{})
	assert.NotNil(t, summary.MonthlyTotals)
	assert.Empty(t, summary.MonthlyTotals)
	assert.Zero(t, summary.TotalMessages)
}

func TestLogHoursUsersUnionsPatternsAndSorts(t *testing.T) {
	source := &messageSourceStub{byPattern: map[string][]models.ChatMessage{
		"%log hours%": {
			userMessage("Zoe", "2024-09-05T10:00:00Z"),
			userMessage("Alice", "2024-09-05T10:00:00Z"),
		},
		"%log_hours%": {
			userMessage("Alice", "2024-09-06T10:00:00Z"),
			userMessage("helper bot", "2024-09-06T10:00:00Z"),
		},
	}}
	svc := newTestMessageService(source)

	result := svc.LogHoursUsers(context.Background(), models.TimeRange{})
	require.Len(t, result, 2)
	assert.Equal(t, "Alice", result[0].UserName)
	assert.Equal(t, "Zoe", result[1].UserName)
}
