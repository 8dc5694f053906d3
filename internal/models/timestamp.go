package models

import "time"

// TimestampLayout matches JavaScript's Date.toISOString() output so
// snapshots produced by older clients merge cleanly.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Timestamp formats t as an ISO-8601 UTC string with millisecond precision.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp parses an ISO-8601 timestamp. Zero time and an error are
// returned for malformed input.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
