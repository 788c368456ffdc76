package shared

import "time"

// ParseDate parses the dates the API accepts: plain YYYY-MM-DD (the usual
// ticket date) or full RFC3339.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse("2006-01-02", value); err == nil {
		return parsed, nil
	}
	return time.Parse(time.RFC3339, value)
}
