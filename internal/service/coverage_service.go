package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/nasma-hq/nasma-insights-api/internal/dto"
	"github.com/nasma-hq/nasma-insights-api/internal/models"
	"github.com/nasma-hq/nasma-insights-api/internal/period"
	appErrors "github.com/nasma-hq/nasma-insights-api/pkg/errors"
)

// PlanningSource reads planning and timesheet data from the ERP.
type PlanningSource interface {
	Authenticate(ctx context.Context) error
	PlanningSlots(ctx context.Context, start, end string) ([]models.PlanningSlot, error)
	TimesheetLines(ctx context.Context, start, end string) ([]models.TimesheetLine, error)
	TimeOffTaskIDs(ctx context.Context) ([]int64, error)
	MonthlyHoursGroups(ctx context.Context, startDate string, timeOffTaskIDs []int64) ([]models.HoursGroup, error)
}

// CoverageServiceParams bundles dependencies for NewCoverageService.
type CoverageServiceParams struct {
	Planning PlanningSource
	Logger   *zap.Logger
}

// CoverageService reconciles planned work against logged work. Unlike the
// table-store aggregates, an ERP authentication failure here is fatal for
// the request; there is no meaningful empty fallback for coverage.
type CoverageService struct {
	planning PlanningSource
	logger   *zap.Logger
}

// NewCoverageService constructs the service.
func NewCoverageService(params CoverageServiceParams) *CoverageService {
	if params.Logger == nil {
		params.Logger = zap.NewNop()
	}
	return &CoverageService{planning: params.Planning, logger: params.Logger}
}

// plannedKey identifies one day of planned work for one employee on one
// subtask. Logged keys share the shape with task standing in for subtask.
type plannedKey struct {
	day      string
	employee int64
	task     int64
}

type monthBucket struct {
	planned      int
	logged       int
	plannedSlots map[int64]struct{}
	loggedSlots  map[int64]struct{}
}

type weekBucket struct {
	planned int
	logged  int
}

// PlanningCoverage expands planning slots into daily obligations inside
// [start, end], reconciles them against timesheet facts, and rolls the
// result up per month and per ISO week.
func (s *CoverageService) PlanningCoverage(ctx context.Context, start, end string) (dto.PlanningCoverage, error) {
	globalStart, err := period.ParseDate(start)
	if err != nil {
		return dto.PlanningCoverage{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid start_date")
	}
	globalEnd, err := period.ParseDate(end)
	if err != nil {
		return dto.PlanningCoverage{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid end_date")
	}
	if globalEnd.Before(globalStart) {
		return dto.PlanningCoverage{}, appErrors.Clone(appErrors.ErrValidation, "end_date must be on or after start_date")
	}

	if err := s.planning.Authenticate(ctx); err != nil {
		return dto.PlanningCoverage{}, appErrors.Wrap(err, appErrors.ErrERPAuth.Code, appErrors.ErrERPAuth.Status, appErrors.ErrERPAuth.Message)
	}

	slots, err := s.planning.PlanningSlots(ctx, start, end)
	if err != nil {
		return dto.PlanningCoverage{}, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "planning slots unavailable")
	}
	lines, err := s.planning.TimesheetLines(ctx, start, end)
	if err != nil {
		return dto.PlanningCoverage{}, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "timesheet lines unavailable")
	}

	loggedKeys := make(map[plannedKey]struct{})
	for _, line := range lines {
		if line.Date == "" || !line.Employee.Valid || !line.Task.Valid {
			continue
		}
		day, err := period.ParseDate(line.Date)
		if err != nil {
			continue
		}
		loggedKeys[plannedKey{
			day:      day.Format("2006-01-02"),
			employee: line.Employee.ID,
			task:     line.Task.ID,
		}] = struct{}{}
	}

	plannedKeys := make(map[plannedKey]struct{})
	months := make(map[string]*monthBucket)
	weeks := make(map[string]*weekBucket)

	for _, slot := range slots {
		if slot.ID == 0 || !slot.Employee.Valid || !slot.Subtask.Valid {
			continue
		}
		slotStart, okStart := period.ParseTimestamp(slot.Start)
		slotEnd, okEnd := period.ParseTimestamp(slot.End)
		if !okStart || !okEnd {
			continue
		}

		// Work in whole days; clamp the span to the requested window.
		spanStart := truncateDay(slotStart)
		spanEnd := truncateDay(slotEnd)
		if spanStart.Before(globalStart) {
			spanStart = globalStart
		}
		if spanEnd.After(globalEnd) {
			spanEnd = globalEnd
		}
		if spanEnd.Before(spanStart) {
			continue
		}

		for day := spanStart; !day.After(spanEnd); day = day.AddDate(0, 0, 1) {
			key := plannedKey{
				day:      day.Format("2006-01-02"),
				employee: slot.Employee.ID,
				task:     slot.Subtask.ID,
			}
			_, isLogged := loggedKeys[key]

			month := months[period.MonthKey(day)]
			if month == nil {
				month = &monthBucket{
					plannedSlots: make(map[int64]struct{}),
					loggedSlots:  make(map[int64]struct{}),
				}
				months[period.MonthKey(day)] = month
			}
			// Slot-level membership is tracked per month regardless of
			// whether another slot already claimed this task-day.
			month.plannedSlots[slot.ID] = struct{}{}
			if isLogged {
				month.loggedSlots[slot.ID] = struct{}{}
			}

			week := weeks[period.WeekKey(day)]
			if week == nil {
				week = &weekBucket{}
				weeks[period.WeekKey(day)] = week
			}

			// A task-day counts once across the whole computation.
			if _, seen := plannedKeys[key]; seen {
				continue
			}
			plannedKeys[key] = struct{}{}

			month.planned++
			week.planned++
			if isLogged {
				month.logged++
				week.logged++
			}
		}
	}

	coverage := dto.PlanningCoverage{
		Monthly: make([]dto.CoverageBucket, 0, len(months)),
		Weekly:  make([]dto.CoverageBucket, 0, len(weeks)),
	}
	for _, key := range sortedKeys(months) {
		bucket := months[key]
		plannedSlots := len(bucket.plannedSlots)
		loggedSlots := len(bucket.loggedSlots)
		coverage.Monthly = append(coverage.Monthly, dto.CoverageBucket{
			Period:       key,
			PlannedDays:  bucket.planned,
			LoggedDays:   bucket.logged,
			CoveragePct:  coveragePct(bucket.logged, bucket.planned),
			PlannedSlots: &plannedSlots,
			LoggedSlots:  &loggedSlots,
		})
	}
	for _, key := range sortedKeys(weeks) {
		bucket := weeks[key]
		coverage.Weekly = append(coverage.Weekly, dto.CoverageBucket{
			Period:      key,
			PlannedDays: bucket.planned,
			LoggedDays:  bucket.logged,
			CoveragePct: coveragePct(bucket.logged, bucket.planned),
		})
	}
	return coverage, nil
}

// MonthlyHours sums non-time-off timesheet hours per month from startDate
// onward. A failed time-off task lookup only widens the result, so it
// degrades instead of failing the request.
func (s *CoverageService) MonthlyHours(ctx context.Context, startDate string) ([]dto.MonthlyHours, error) {
	if err := s.planning.Authenticate(ctx); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrERPAuth.Code, appErrors.ErrERPAuth.Status, appErrors.ErrERPAuth.Message)
	}

	timeOffIDs, err := s.planning.TimeOffTaskIDs(ctx)
	if err != nil {
		s.logger.Warn("time-off task lookup failed", zap.Error(err))
		timeOffIDs = nil
	}

	groups, err := s.planning.MonthlyHoursGroups(ctx, startDate, timeOffIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "monthly hours unavailable")
	}

	totals := make(map[string]float64)
	for _, group := range groups {
		key := monthKeyFromGroup(group)
		if key == "" {
			continue
		}
		totals[key] += float64(group.UnitAmount)
	}

	results := make([]dto.MonthlyHours, 0, len(totals))
	for _, key := range sortedKeys(totals) {
		results = append(results, dto.MonthlyHours{Month: key, TotalHours: totals[key]})
	}
	return results, nil
}

// monthKeyFromGroup recovers the YYYY-MM key from a read_group row,
// preferring the machine-readable range over the display label.
func monthKeyFromGroup(group models.HoursGroup) string {
	if rangeInfo, ok := group.Range["date:month"]; ok && rangeInfo.From != "" {
		if from, err := period.ParseDate(rangeInfo.From); err == nil {
			return period.MonthKey(from)
		}
	}
	for _, layout := range []string{"2006-01-02", "January 2006", "Jan 2006"} {
		if parsed, err := time.Parse(layout, group.MonthLabel); err == nil {
			return period.MonthKey(parsed)
		}
	}
	return ""
}

func coveragePct(logged, planned int) float64 {
	if planned == 0 {
		return 0.0
	}
	return float64(logged) / float64(planned) * 100.0
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
