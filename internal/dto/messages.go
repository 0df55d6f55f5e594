package dto

// MonthlyActiveUsers counts distinct message authors in one month.
type MonthlyActiveUsers struct {
	Month       string `json:"month"`
	ActiveUsers int    `json:"active_users"`
}

// MonthlyMessageTotal is the message volume for one month.
type MonthlyMessageTotal struct {
	Month         string `json:"month"`
	TotalMessages int    `json:"total_messages"`
}

// UserMonthlyMessages breaks a month's volume down per author.
type UserMonthlyMessages struct {
	Month        string `json:"month"`
	UserName     string `json:"user_name"`
	MessagesSent int    `json:"messages_sent"`
}

// MessagesSummary bundles the monthly totals, the per-user breakdown and
// the grand total; the three views stay internally consistent.
type MessagesSummary struct {
	MonthlyTotals []MonthlyMessageTotal `json:"monthly_totals"`
	UserBreakdown []UserMonthlyMessages `json:"user_breakdown"`
	TotalMessages int                   `json:"total_messages"`
}

// LogHoursUser names one distinct requester of the log-hours flow.
type LogHoursUser struct {
	UserName string `json:"user_name"`
}
