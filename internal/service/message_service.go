package service

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/nasma-hq/nasma-insights-api/internal/dto"
	"github.com/nasma-hq/nasma-insights-api/internal/models"
	"github.com/nasma-hq/nasma-insights-api/internal/normalize"
	"github.com/nasma-hq/nasma-insights-api/internal/period"
)

// MessageSource lists assistant chat messages.
type MessageSource interface {
	ListUserMessages(ctx context.Context, window models.TimeRange) ([]models.ChatMessage, error)
	ListUserMessagesMatching(ctx context.Context, pattern string, window models.TimeRange) ([]models.ChatMessage, error)
}

// logHoursPatterns are the content shapes that identify a log-hours ask.
var logHoursPatterns = []string{"%log hours%", "%log_hours%"}

// MessageServiceParams bundles dependencies for NewMessageService.
type MessageServiceParams struct {
	Messages   MessageSource
	Exclusions *normalize.Exclusions
	Logger     *zap.Logger
}

// MessageService derives usage reports from the chat history. Authors are
// resolved from message metadata; messages without one are skipped.
type MessageService struct {
	messages   MessageSource
	exclusions *normalize.Exclusions
	logger     *zap.Logger
}

// NewMessageService constructs the service.
func NewMessageService(params MessageServiceParams) *MessageService {
	if params.Logger == nil {
		params.Logger = zap.NewNop()
	}
	return &MessageService{
		messages:   params.Messages,
		exclusions: params.Exclusions,
		logger:     params.Logger,
	}
}

// ActiveUsersByMonth counts distinct message authors per calendar month.
// Every author counts here, including internal accounts, so the trend
// stays comparable with historic exports.
func (s *MessageService) ActiveUsersByMonth(ctx context.Context, window models.TimeRange) []dto.MonthlyActiveUsers {
	messages, err := s.messages.ListUserMessages(ctx, window)
	if err != nil {
		s.logger.Warn("fetch chat messages failed", zap.Error(err))
		return []dto.MonthlyActiveUsers{}
	}

	type monthUsers struct {
		label string
		users map[string]struct{}
	}
	months := make(map[string]*monthUsers)
	for _, message := range messages {
		userName := message.Metadata.UserName()
		if userName == "" || message.CreatedAt == "" {
			continue
		}
		createdAt, ok := period.ParseTimestamp(message.CreatedAt)
		if !ok {
			continue
		}
		key := period.MonthKey(createdAt)
		entry := months[key]
		if entry == nil {
			entry = &monthUsers{label: period.MonthLabel(createdAt), users: make(map[string]struct{})}
			months[key] = entry
		}
		entry.users[userName] = struct{}{}
	}

	keys := make([]string, 0, len(months))
	for key := range months {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	results := make([]dto.MonthlyActiveUsers, 0, len(keys))
	for _, key := range keys {
		results = append(results, dto.MonthlyActiveUsers{
			Month:       months[key].label,
			ActiveUsers: len(months[key].users),
		})
	}
	return results
}

// MessagesSummary builds monthly totals and the per-user breakdown in one
// pass so the three views always agree.
func (s *MessageService) MessagesSummary(ctx context.Context, window models.TimeRange) dto.MessagesSummary {
	empty := dto.MessagesSummary{
		MonthlyTotals: []dto.MonthlyMessageTotal{},
		UserBreakdown: []dto.UserMonthlyMessages{},
	}

	messages, err := s.messages.ListUserMessages(ctx, window)
	if err != nil {
		s.logger.Warn("fetch chat messages failed", zap.Error(err))
		return empty
	}

	monthlyTotals := make(map[string]*dto.MonthlyMessageTotal)
	userCounts := make(map[string]*dto.UserMonthlyMessages)
	for _, message := range messages {
		userName := message.Metadata.UserName()
		if userName == "" {
			continue
		}
		if s.exclusions.MatchesSubstring(userName) {
			continue
		}
		if message.CreatedAt == "" {
			continue
		}
		createdAt, ok := period.ParseTimestamp(message.CreatedAt)
		if !ok {
			continue
		}

		monthKey := period.MonthKey(createdAt)
		monthLabel := period.MonthLabel(createdAt)

		total := monthlyTotals[monthKey]
		if total == nil {
			total = &dto.MonthlyMessageTotal{Month: monthLabel}
			monthlyTotals[monthKey] = total
		}
		total.TotalMessages++

		userKey := monthKey + ":" + userName
		user := userCounts[userKey]
		if user == nil {
			user = &dto.UserMonthlyMessages{Month: monthLabel, UserName: userName}
			userCounts[userKey] = user
		}
		user.MessagesSent++
	}

	summary := empty
	for _, key := range sortedKeys(monthlyTotals) {
		summary.MonthlyTotals = append(summary.MonthlyTotals, *monthlyTotals[key])
		summary.TotalMessages += monthlyTotals[key].TotalMessages
	}
	for _, key := range sortedKeys(userCounts) {
		summary.UserBreakdown = append(summary.UserBreakdown, *userCounts[key])
	}
	return summary
}

// LogHoursUsers lists the distinct users who asked the assistant to log
// their hours, sorted by name.
func (s *MessageService) LogHoursUsers(ctx context.Context, window models.TimeRange) []dto.LogHoursUser {
	matched := make(map[string]struct{})
	for _, pattern := range logHoursPatterns {
		messages, err := s.messages.ListUserMessagesMatching(ctx, pattern, window)
		if err != nil {
			s.logger.Warn("fetch log-hours messages failed", zap.String("pattern", pattern), zap.Error(err))
			continue
		}
		for _, message := range messages {
			userName := message.Metadata.UserName()
			if userName == "" {
				continue
			}
			if s.exclusions.MatchesSubstring(userName) {
				continue
			}
			matched[userName] = struct{}{}
		}
	}

	names := make([]string, 0, len(matched))
	for name := range matched {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]dto.LogHoursUser, 0, len(names))
	for _, name := range names {
		results = append(results, dto.LogHoursUser{UserName: name})
	}
	return results
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
