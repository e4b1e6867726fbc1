package model

import (
	"time"

	"videoach_backend/internals/constants"
	"videoach_backend/internals/helpers/dbtime"

	"github.com/google/uuid"
)

// OpeningCalendarModel applies from its start date until a newer calendar starts.
type OpeningCalendarModel struct {
	OpeningCalendarID        uuid.UUID `gorm:"column:opening_calendar_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"opening_calendar_id"`
	OpeningCalendarStartDate time.Time `gorm:"column:opening_calendar_start_date;not null;index" json:"opening_calendar_start_date"`

	OpeningTimes []OpeningTimeModel `gorm:"foreignKey:OpeningTimeCalendarID;references:OpeningCalendarID;constraint:OnDelete:CASCADE" json:"opening_times,omitempty"`

	OpeningCalendarCreatedAt time.Time `gorm:"column:opening_calendar_created_at;autoCreateTime" json:"opening_calendar_created_at"`
}

func (OpeningCalendarModel) TableName() string { return "opening_calendars" }

type OpeningTimeModel struct {
	OpeningTimeID         uuid.UUID `gorm:"column:opening_time_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"opening_time_id"`
	OpeningTimeCalendarID uuid.UUID `gorm:"column:opening_time_calendar_id;type:uuid;not null;index" json:"-"`
	OpeningTimeDay        string    `gorm:"column:opening_time_day;type:varchar(10);not null" json:"opening_time_day"`
	OpeningTimeWholeDay   bool      `gorm:"column:opening_time_whole_day;not null;default:false" json:"opening_time_whole_day"`
	OpeningTimeClosed     bool      `gorm:"column:opening_time_closed;not null;default:false" json:"opening_time_closed"`

	WorkingHours []WorkingHoursModel `gorm:"foreignKey:WorkingHoursOpeningTimeID;references:OpeningTimeID;constraint:OnDelete:CASCADE" json:"working_hours,omitempty"`
}

func (OpeningTimeModel) TableName() string { return "opening_times" }

type WorkingHoursModel struct {
	WorkingHoursID            uuid.UUID `gorm:"column:working_hours_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"working_hours_id"`
	WorkingHoursOpeningTimeID uuid.UUID `gorm:"column:working_hours_opening_time_id;type:uuid;not null;index" json:"-"`
	WorkingHoursOpening       string    `gorm:"column:working_hours_opening;type:varchar(5);not null" json:"working_hours_opening"`
	WorkingHoursClosing       string    `gorm:"column:working_hours_closing;type:varchar(5);not null" json:"working_hours_closing"`
}

func (WorkingHoursModel) TableName() string { return "working_hours" }

// DefaultOpeningTimes is a week open 00:00-23:59 every day.
func DefaultOpeningTimes() []OpeningTimeModel {
	out := make([]OpeningTimeModel, 0, len(constants.Days))
	for _, d := range constants.Days {
		out = append(out, OpeningTimeModel{
			OpeningTimeDay: d,
			WorkingHours: []WorkingHoursModel{{
				WorkingHoursOpening: dbtime.DefaultOpening,
				WorkingHoursClosing: dbtime.DefaultClosing,
			}},
		})
	}
	return out
}

// OpenAt reports whether the calendar is open on t's day at t's time of day.
func (c *OpeningCalendarModel) OpenAt(t time.Time) bool {
	day := dbtime.DayName(t)
	minute := t.Hour()*60 + t.Minute()
	for _, ot := range c.OpeningTimes {
		if ot.OpeningTimeDay != day {
			continue
		}
		if ot.OpeningTimeClosed {
			return false
		}
		if ot.OpeningTimeWholeDay {
			return true
		}
		for _, wh := range ot.WorkingHours {
			o, err1 := dbtime.ParseHHMM(wh.WorkingHoursOpening)
			cl, err2 := dbtime.ParseHHMM(wh.WorkingHoursClosing)
			if err1 == nil && err2 == nil && minute >= o && minute <= cl {
				return true
			}
		}
		return false
	}
	return false
}
