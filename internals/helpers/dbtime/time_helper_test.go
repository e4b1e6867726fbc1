package dbtime

import (
	"testing"
	"time"

	"videoach_backend/internals/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayName(t *testing.T) {
	// 2024-01-01 was a monday
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	want := []string{
		constants.DayMonday, constants.DayTuesday, constants.DayWednesday,
		constants.DayThursday, constants.DayFriday, constants.DaySaturday, constants.DaySunday,
	}
	for i, w := range want {
		assert.Equal(t, w, DayName(base.AddDate(0, 0, i)))
	}
}

func TestStartEndOfDay(t *testing.T) {
	d := time.Date(2024, 3, 15, 13, 45, 10, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), StartOfDay(d))
	end := EndOfDay(d)
	assert.Equal(t, 23, end.Hour())
	assert.Equal(t, 59, end.Second())
	assert.Equal(t, 999*time.Millisecond, time.Duration(end.Nanosecond()))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-05-02")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2024-05-02T08:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 8, d.Hour())

	_, err = ParseDate("")
	assert.ErrorIs(t, err, ErrInvalidDate)
	_, err = ParseDate("tomorrow")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestHHMM(t *testing.T) {
	m, err := ParseHHMM("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, m)
	assert.Equal(t, "09:30", FormatHHMM(m))
	assert.Equal(t, "00:10", FormatHHMM(1450))

	for _, bad := range []string{"9:30", "24:00", "10:60", "ab:cd", ""} {
		_, err := ParseHHMM(bad)
		assert.Error(t, err, bad)
	}

	assert.True(t, ValidRange(DefaultOpening, DefaultClosing))
	assert.False(t, ValidRange("12:00", "11:00"))
	assert.False(t, ValidRange("12:00", "12:00"))
}
