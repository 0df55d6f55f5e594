package dto

// CoverageBucket is one period's planned-vs-logged reconciliation.
// Slot counts are only tracked for monthly buckets.
type CoverageBucket struct {
	Period       string  `json:"period"`
	PlannedDays  int     `json:"planned_days"`
	LoggedDays   int     `json:"logged_days"`
	CoveragePct  float64 `json:"coverage_pct"`
	PlannedSlots *int    `json:"planned_slots,omitempty"`
	LoggedSlots  *int    `json:"logged_slots,omitempty"`
}

// PlanningCoverage is the full monthly and weekly coverage report.
type PlanningCoverage struct {
	Monthly []CoverageBucket `json:"monthly"`
	Weekly  []CoverageBucket `json:"weekly"`
}

// MonthlyHours is one month's logged timesheet hours.
type MonthlyHours struct {
	Month      string  `json:"month"`
	TotalHours float64 `json:"total_hours"`
}
