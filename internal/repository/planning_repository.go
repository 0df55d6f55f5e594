package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nasma-hq/nasma-insights-api/internal/models"
	"github.com/nasma-hq/nasma-insights-api/pkg/odoo"
)

// PlanningRepository reads planning and timesheet data out of the ERP.
type PlanningRepository struct {
	client *odoo.Client
}

// NewPlanningRepository constructs the repository.
func NewPlanningRepository(client *odoo.Client) *PlanningRepository {
	return &PlanningRepository{client: client}
}

// Authenticate opens the ERP session. Callers run this once per request
// before any read so a bad credential surfaces as a distinct failure.
func (r *PlanningRepository) Authenticate(ctx context.Context) error {
	return r.client.Authenticate(ctx)
}

// PlanningSlots returns slots overlapping [start, end] that are attached to a
// sub-task. Bounds are bare dates; the end side is widened to the end of day.
func (r *PlanningRepository) PlanningSlots(ctx context.Context, start, end string) ([]models.PlanningSlot, error) {
	domain := []odoo.Condition{
		odoo.C("start_datetime", "<=", end+" 23:59:59"),
		odoo.C("end_datetime", ">=", start+" 00:00:00"),
		odoo.C("x_studio_sub_task_1", "!=", false),
	}
	fields := []string{"start_datetime", "end_datetime", "employee_id", "x_studio_sub_task_1"}

	var slots []models.PlanningSlot
	if err := r.client.SearchRead(ctx, "planning.slot", domain, fields, &slots); err != nil {
		return nil, fmt.Errorf("fetch planning slots: %w", err)
	}
	return slots, nil
}

// TimesheetLines returns analytic lines with a task inside [start, end].
func (r *PlanningRepository) TimesheetLines(ctx context.Context, start, end string) ([]models.TimesheetLine, error) {
	domain := []odoo.Condition{
		odoo.C("date", ">=", start),
		odoo.C("date", "<=", end),
		odoo.C("task_id", "!=", false),
	}
	fields := []string{"date", "employee_id", "task_id"}

	var lines []models.TimesheetLine
	if err := r.client.SearchRead(ctx, "account.analytic.line", domain, fields, &lines); err != nil {
		return nil, fmt.Errorf("fetch timesheet lines: %w", err)
	}
	return lines, nil
}

// TimeOffTaskIDs finds tasks whose name marks them as time off, so their
// hours can be excluded from the worked-hours report.
func (r *PlanningRepository) TimeOffTaskIDs(ctx context.Context) ([]int64, error) {
	domain := []odoo.Condition{
		odoo.C("name", "ilike", "Time Off"),
	}
	result, err := r.client.Call(ctx, "project.task", "search",
		[]interface{}{domain},
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("search time off tasks: %w", err)
	}

	var ids []int64
	if err := json.Unmarshal(result, &ids); err != nil {
		return nil, fmt.Errorf("decode time off task ids: %w", err)
	}
	return ids, nil
}

// MonthlyHoursGroups aggregates non-time-off timesheet hours per month via
// read_group, starting at startDate (inclusive).
func (r *PlanningRepository) MonthlyHoursGroups(ctx context.Context, startDate string, timeOffTaskIDs []int64) ([]models.HoursGroup, error) {
	domain := []interface{}{
		[]interface{}{"date", ">=", startDate},
		[]interface{}{"task_id.is_timeoff_task", "=", false},
	}
	if len(timeOffTaskIDs) > 0 {
		domain = append(domain, []interface{}{"task_id", "not in", timeOffTaskIDs})
	}

	result, err := r.client.Call(ctx, "account.analytic.line", "read_group",
		[]interface{}{domain, []string{"unit_amount"}, []string{"date:month"}},
		map[string]interface{}{"lazy": false},
	)
	if err != nil {
		return nil, fmt.Errorf("read monthly hours groups: %w", err)
	}

	var groups []models.HoursGroup
	if err := json.Unmarshal(result, &groups); err != nil {
		return nil, fmt.Errorf("decode monthly hours groups: %w", err)
	}
	return groups, nil
}
