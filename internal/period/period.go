// Package period is the single source of truth for time bucketing: every
// aggregator derives month and week keys through it so the same timestamp
// always lands in the same bucket.
package period

import (
	"fmt"
	"time"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses the timestamp shapes the upstream stores emit.
// A Z suffix is treated as UTC. The boolean reports success; callers skip
// the owning record on failure rather than aborting.
func ParseTimestamp(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseDate parses a strict YYYY-MM-DD date.
func ParseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

// MonthKey returns the canonical YYYY-MM bucket key.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// MonthLabel returns the human month label, e.g. "September 2024".
func MonthLabel(t time.Time) string {
	return t.Format("January 2006")
}

// WeekKey returns the zero-padded ISO week key, e.g. "2024-W05".
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}
