package utils

import (
	"fmt"
	"time"
)

// dateTimeLayouts are the accepted wire formats for activity timestamps.
// Clients send either full RFC3339 or a zone-less ISO-8601 timestamp.
var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ParseDateTime parses an activity timestamp from its wire representation.
func ParseDateTime(value string) (time.Time, error) {
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid dateTime %q", value)
}
