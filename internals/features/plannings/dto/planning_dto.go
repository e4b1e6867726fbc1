package dto

import (
	"strings"
	"time"

	clubModel "videoach_backend/internals/features/clubs/model"
	planningModel "videoach_backend/internals/features/plannings/model"

	"github.com/google/uuid"
)

type PlanningRequest struct {
	Name      string     `json:"planning_name" validate:"max=120"`
	StartDate string     `json:"planning_start_date" validate:"required"`
	EndDate   string     `json:"planning_end_date"`
	SiteID    *uuid.UUID `json:"planning_site_id"`
	RoomID    *uuid.UUID `json:"planning_room_id"`
}

type DuplicatePlanningRequest struct {
	Name      string `json:"planning_name" validate:"max=120"`
	StartDate string `json:"planning_start_date" validate:"required"`
}

type PlanningActivityRequest struct {
	ActivityID uuid.UUID  `json:"activity_id" validate:"required"`
	SiteID     uuid.UUID  `json:"site_id" validate:"required"`
	RoomID     *uuid.UUID `json:"room_id"`
	CoachID    *uuid.UUID `json:"coach_id"`
	Day        string     `json:"day" validate:"required,oneof=MONDAY TUESDAY WEDNESDAY THURSDAY FRIDAY SATURDAY SUNDAY"`
	StartTime  string     `json:"start_time" validate:"required,len=5"`
	Duration   int        `json:"duration" validate:"required,min=1,max=1440"`
}

func (r PlanningActivityRequest) ToModel(planningID uuid.UUID) planningModel.PlanningActivityModel {
	return planningModel.PlanningActivityModel{
		PlanningActivityPlanningID: planningID,
		PlanningActivityActivityID: r.ActivityID,
		PlanningActivitySiteID:     r.SiteID,
		PlanningActivityRoomID:     r.RoomID,
		PlanningActivityCoachID:    r.CoachID,
		PlanningActivityDay:        strings.ToUpper(strings.TrimSpace(r.Day)),
		PlanningActivityStartTime:  strings.TrimSpace(r.StartTime),
		PlanningActivityDuration:   r.Duration,
	}
}

type PlanningReservationRequest struct {
	PlanningActivityID uuid.UUID `json:"planning_activity_id" validate:"required"`
	Date               time.Time `json:"date" validate:"required"`
}

type ActivityReservationRequest struct {
	ActivityID uuid.UUID `json:"activity_id" validate:"required"`
	RoomID     uuid.UUID `json:"room_id" validate:"required"`
	Date       time.Time `json:"date" validate:"required"`
}

// LegacyReservationRequest is the body of POST /api/planning.
type LegacyReservationRequest struct {
	PlanningActivityID string    `json:"planningActivityId"`
	MemberID           string    `json:"memberId"`
	Date               time.Time `json:"date"`
}

// ReservationRef is a reservation as the daily planning shows it: the booked target and the day.
type ReservationRef struct {
	ID       uuid.UUID `json:"id"`
	Date     time.Time `json:"date"`
	RoomName string    `json:"room_name,omitempty"`
}

type DailyPlanningActivity struct {
	planningModel.PlanningActivityModel
	Reservations []ReservationRef `json:"reservations"`
}

type NoCalendarRoom struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Capacity    int       `json:"capacity"`
	Reservation string    `json:"reservation"`
}

type NoCalendarActivity struct {
	clubModel.ActivityModel
	Rooms        []NoCalendarRoom `json:"rooms"`
	Reservations []ReservationRef `json:"reservations"`
}

// DailyPlanning is one club planning as a member sees it on a given day.
type DailyPlanning struct {
	planningModel.PlanningModel
	Activities     []DailyPlanningActivity `json:"activities"`
	WithNoCalendar []NoCalendarActivity    `json:"with_no_calendar"`
}

// ClubDaySlot is a planning activity of the day with its booking count.
type ClubDaySlot struct {
	planningModel.PlanningActivityModel
	Reserved int64 `json:"reserved"`
}
