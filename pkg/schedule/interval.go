package schedule

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeFormat is returned when a date/time string matches none of the
// accepted input formats.
var ErrInvalidTimeFormat = errors.New("invalid date/time format")

// dateTimeLayouts are tried in order when parsing a combined date+time string.
// The order matters: 12-hour with AM/PM first, then 24-hour, then ISO.
var dateTimeLayouts = []string{
	"2006-01-02T3:04 PM",  // 2024-12-30T9:00 AM
	"2006-01-02T15:04",    // 2024-12-30T09:00
	"2006-01-02T15:04:05", // 2024-12-30T09:00:00
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) share at least one instant. Touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// MinuteRangesOverlap is Overlaps applied to minutes-since-midnight, used when
// comparing recurring time-of-day windows instead of full timestamps.
func MinuteRangesOverlap(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// ParseDateTime parses a date (YYYY-MM-DD) and time string into a single
// time.Time, trying each accepted format in priority order.
func ParseDateTime(date, clock string) (time.Time, error) {
	combined := date + "T" + clock
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, combined); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidTimeFormat, combined)
}

// ParseTimestamp parses a combined date+time string, trying each accepted
// format in priority order, then RFC 3339.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidTimeFormat, s)
}

// ParseClockMinutes parses an HH:MM time-of-day string into minutes since
// midnight.
func ParseClockMinutes(clock string) (int, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidTimeFormat, clock)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidTimeFormat, date)
	}
	return t, nil
}
