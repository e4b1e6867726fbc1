package service

import (
	"testing"
	"time"

	"videoach_backend/internals/constants"
	"videoach_backend/internals/features/clubs/dto"
	"videoach_backend/internals/features/clubs/model"
	helper "videoach_backend/internals/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cal(y int, m time.Month, d int) model.OpeningCalendarModel {
	return model.OpeningCalendarModel{OpeningCalendarStartDate: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func TestSelectCurrentTakesLatestStarted(t *testing.T) {
	cals := []model.OpeningCalendarModel{cal(2024, 1, 1), cal(2024, 3, 1), cal(2024, 6, 1)}
	now := time.Date(2024, 4, 10, 9, 0, 0, 0, time.UTC)

	got := SelectCurrent(cals, now)
	require.NotNil(t, got)
	assert.Equal(t, time.March, got.OpeningCalendarStartDate.Month())
}

func TestSelectCurrentIncludesLaterToday(t *testing.T) {
	later := model.OpeningCalendarModel{OpeningCalendarStartDate: time.Date(2024, 4, 10, 18, 0, 0, 0, time.UTC)}
	cals := []model.OpeningCalendarModel{cal(2024, 1, 1), later}
	now := time.Date(2024, 4, 10, 9, 0, 0, 0, time.UTC)

	got := SelectCurrent(cals, now)
	require.NotNil(t, got)
	assert.Equal(t, 18, got.OpeningCalendarStartDate.Hour())
}

func TestSelectCurrentNoneStarted(t *testing.T) {
	cals := []model.OpeningCalendarModel{cal(2030, 1, 1)}
	assert.Nil(t, SelectCurrent(cals, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Nil(t, SelectCurrent(nil, time.Now()))
}

func TestBuildCalendarFillsMissingDays(t *testing.T) {
	c, err := BuildCalendar(dto.CalendarRequest{
		StartDate: "2024-05-01",
		OpeningTimes: []dto.OpeningTimeRequest{
			{Day: constants.DaySunday, Closed: true},
			{Day: constants.DayMonday, WorkingHours: []dto.WorkingHoursRequest{{Opening: "08:00", Closing: "12:00"}, {Opening: "14:00", Closing: "20:00"}}},
		},
	})
	require.NoError(t, err)
	require.Len(t, c.OpeningTimes, 7)

	byDay := map[string]model.OpeningTimeModel{}
	for _, ot := range c.OpeningTimes {
		byDay[ot.OpeningTimeDay] = ot
	}
	assert.True(t, byDay[constants.DaySunday].OpeningTimeClosed)
	assert.Len(t, byDay[constants.DayMonday].WorkingHours, 2)
	assert.Len(t, byDay[constants.DayTuesday].WorkingHours, 1)

	monday10 := time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC)
	monday13 := time.Date(2024, 5, 6, 13, 0, 0, 0, time.UTC)
	sunday := time.Date(2024, 5, 5, 10, 0, 0, 0, time.UTC)
	assert.True(t, c.OpenAt(monday10))
	assert.False(t, c.OpenAt(monday13))
	assert.False(t, c.OpenAt(sunday))
}

func TestBuildCalendarRejects(t *testing.T) {
	cases := map[string]dto.CalendarRequest{
		"bad date":  {StartDate: "tomorrow"},
		"twice":     {StartDate: "2024-05-01", OpeningTimes: []dto.OpeningTimeRequest{{Day: constants.DayMonday}, {Day: constants.DayMonday}}},
		"bad hours": {StartDate: "2024-05-01", OpeningTimes: []dto.OpeningTimeRequest{{Day: constants.DayMonday, WorkingHours: []dto.WorkingHoursRequest{{Opening: "18:00", Closing: "08:00"}}}}},
		"bad day":   {StartDate: "2024-05-01", OpeningTimes: []dto.OpeningTimeRequest{{Day: "FUNDAY"}}},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := BuildCalendar(in)
			assert.ErrorIs(t, err, helper.ErrInvalidInput)
		})
	}
}
