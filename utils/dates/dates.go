// Package dates parses the date inputs admin forms send.
package dates

import (
	"fmt"
	"strings"
	"time"
)

var layouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Parse accepts a calendar date ("2024-03-01") or a timestamp and returns
// it in UTC.
func Parse(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD or RFC3339", value)
}

// ParseOptional parses value when non-nil. An empty string clears the date.
func ParseOptional(value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	t, err := Parse(*value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
