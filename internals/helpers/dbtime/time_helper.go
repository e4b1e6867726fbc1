// Package dbtime holds the date helpers shared by calendars, plannings and reservations.
package dbtime

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"videoach_backend/internals/constants"
)

var ErrInvalidDate = errors.New("invalid date")

// weekday → DayName, time.Sunday is 0.
var dayNames = [...]string{
	constants.DaySunday,
	constants.DayMonday,
	constants.DayTuesday,
	constants.DayWednesday,
	constants.DayThursday,
	constants.DayFriday,
	constants.DaySaturday,
}

func DayName(t time.Time) string {
	return dayNames[t.Weekday()]
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay is 23:59:59.999 of t's day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// ParseDate accepts RFC3339 timestamps and plain YYYY-MM-DD dates (UTC).
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}
