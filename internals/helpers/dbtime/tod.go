package dbtime

import (
	"fmt"
	"strconv"
	"strings"
)

// Time-of-day values ("HH:MM") stored as text on working hours and planning activities.
const (
	DefaultOpening = "00:00"
	DefaultClosing = "23:59"
)

// ParseHHMM returns minutes since midnight.
func ParseHHMM(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}
	return h*60 + m, nil
}

func FormatHHMM(minutes int) string {
	minutes = ((minutes % 1440) + 1440) % 1440
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ValidRange reports whether opening is strictly before closing.
func ValidRange(opening, closing string) bool {
	o, err := ParseHHMM(opening)
	if err != nil {
		return false
	}
	c, err := ParseHHMM(closing)
	if err != nil {
		return false
	}
	return o < c
}
