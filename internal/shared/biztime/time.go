// Package biztime centralises how the service reads and renders wall-clock time.
// All timestamps are UTC; responses carry RFC 3339 strings.
package biztime

import "time"

// NowUTC returns the current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// FormatTimestamp renders t as an RFC 3339 UTC timestamp with second precision.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
