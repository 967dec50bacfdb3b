package utils

import "time"

// isoMillis matches the timestamp format the client and the stored files
// use: UTC with millisecond precision and a literal Z suffix.
const isoMillis = "2006-01-02T15:04:05.000Z"

// NowISO returns the current UTC time with millisecond precision.
func NowISO() string {
	return time.Now().UTC().Format(isoMillis)
}

// ParseISO parses a timestamp produced by NowISO. RFC3339 values from
// older data files parse as well.
func ParseISO(s string) (time.Time, error) {
	if t, err := time.Parse(isoMillis, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
