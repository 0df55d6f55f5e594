package dto

// RequestCount is one metric-type total, shaped for the dashboard's
// attribute/value bar chart.
type RequestCount struct {
	Attribute string `json:"attribute"`
	Value     int    `json:"value"`
}

// RequestSuccessRate reports outcome statistics for one request family.
type RequestSuccessRate struct {
	RequestType        string  `json:"request_type"`
	SuccessRatePercent float64 `json:"success_rate_percent"`
	Successes          int     `json:"successes"`
	TotalEvents        int     `json:"total_events"`
}

// UserActivity is one (user, metric type) count within the activity window.
type UserActivity struct {
	UserName     string `json:"user_name"`
	MetricType   string `json:"metric_type"`
	ActionsToday int    `json:"actions_today"`
}

// RequestDuration is the average elapsed seconds for one request family.
type RequestDuration struct {
	RequestType        string `json:"request_type"`
	AvgDurationSeconds int    `json:"avg_duration_seconds"`
	ThreadCount        int    `json:"thread_count"`
}
