package models

// Known metric event categories recorded by the assistant.
const (
	MetricLogHours         = "log_hours"
	MetricTimeoffApproval  = "timeoff_approval"
	MetricTimeoffRefusal   = "timeoff_refusal"
	MetricOvertimeApproval = "overtime_approval"
	MetricOvertimeRefusal  = "overtime_refusal"
	MetricReimbursement    = "reimbursement"
	MetricDocument         = "document"
)

// MetricEvent is a single recorded user action, append-only upstream.
// Timestamps stay as raw strings until an aggregator buckets them.
type MetricEvent struct {
	UserName   string `json:"user_name"`
	MetricType string `json:"metric_type"`
	ThreadID   string `json:"thread_id"`
	CreatedAt  string `json:"created_at"`
}

// RefreshToken is the adoption signal: one row per issued login token.
type RefreshToken struct {
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
}
