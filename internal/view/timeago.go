package view

import (
	"fmt"
	"time"
)

// timestamp layouts accepted from the board API. Zone-less layouts are
// read in the caller's location.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-like timestamp
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// TimeDifference formats the time elapsed between ts and now.
// Every step floors; timestamps in the future read as "just now" and
// unparseable input yields "".
func TimeDifference(ts string, now time.Time, loc *time.Location) string {
	t, err := ParseTimestamp(ts, loc)
	if err != nil {
		return ""
	}
	return Elapsed(now.Sub(t))
}

// Elapsed formats a duration with the minute/hour/day thresholds
func Elapsed(d time.Duration) string {
	diffSec := d.Milliseconds() / 1000
	diffMin := diffSec / 60
	diffHour := diffMin / 60
	diffDay := diffHour / 24

	switch {
	case diffMin < 1:
		return "just now"
	case diffMin < 60:
		return fmt.Sprintf("%d minutes ago", diffMin)
	case diffHour < 24:
		return fmt.Sprintf("%d hours ago", diffHour)
	default:
		return fmt.Sprintf("%d days ago", diffDay)
	}
}
