package models

// TimeRange is a closed [Start, End] filter over created_at columns.
// Bounds are raw ISO date or timestamp strings, empty meaning unbounded.
type TimeRange struct {
	Start string
	End   string
}

// IsZero reports whether no bound is set.
func (r TimeRange) IsZero() bool {
	return r.Start == "" && r.End == ""
}

// UpperBound widens a bare-date end to the last second of that day so the
// whole day stays inside the window.
func (r TimeRange) UpperBound() string {
	if len(r.End) == 10 {
		return r.End + " 23:59:59"
	}
	return r.End
}
