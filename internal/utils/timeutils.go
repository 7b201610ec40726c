package utils

import (
	"fmt"
	"strings"
	"time"
)

// backend timestamps are Python isoformat strings; they may carry a zone
// offset, a trailing Z, or nothing at all.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

// ParseBackendTime returns the time encoded by a backend timestamp string.
func ParseBackendTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty time value")
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised time value %q", value)
}

// Age renders a compact human age ("3m", "2h", "5d") for dashboard rows.
// Unparseable input comes back unchanged so raw values stay visible.
func Age(value string, now time.Time) string {
	t, err := ParseBackendTime(value)
	if err != nil {
		return value
	}
	d := now.Sub(t)
	if d < 0 {
		d = 0
	}
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}
