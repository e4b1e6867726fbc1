package model

import (
	"time"

	clubModel "videoach_backend/internals/features/clubs/model"
	userModel "videoach_backend/internals/features/users/user/model"

	"github.com/google/uuid"
)

type PlanningModel struct {
	PlanningID        uuid.UUID  `gorm:"column:planning_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"planning_id"`
	PlanningClubID    uuid.UUID  `gorm:"column:planning_club_id;type:uuid;not null;index" json:"planning_club_id"`
	PlanningName      string     `gorm:"column:planning_name;type:text;not null;default:''" json:"planning_name"`
	PlanningStartDate time.Time  `gorm:"column:planning_start_date;not null;index" json:"planning_start_date"`
	PlanningEndDate   *time.Time `gorm:"column:planning_end_date" json:"planning_end_date,omitempty"`
	PlanningSiteID    *uuid.UUID `gorm:"column:planning_site_id;type:uuid" json:"planning_site_id,omitempty"`
	PlanningRoomID    *uuid.UUID `gorm:"column:planning_room_id;type:uuid" json:"planning_room_id,omitempty"`

	Club       *clubModel.ClubModel    `gorm:"foreignKey:PlanningClubID;references:ClubID" json:"club,omitempty"`
	Activities []PlanningActivityModel `gorm:"foreignKey:PlanningActivityPlanningID;references:PlanningID;constraint:OnDelete:CASCADE" json:"activities,omitempty"`

	PlanningCreatedAt time.Time `gorm:"column:planning_created_at;autoCreateTime" json:"planning_created_at"`
	PlanningUpdatedAt time.Time `gorm:"column:planning_updated_at;autoUpdateTime" json:"planning_updated_at"`
}

func (PlanningModel) TableName() string { return "plannings" }

// ActiveOn: started on or before the day and not ended before it.
func (p *PlanningModel) ActiveOn(day time.Time) bool {
	y, m, d := day.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, day.Location())
	end := start.Add(24*time.Hour - time.Nanosecond)
	if p.PlanningStartDate.After(end) {
		return false
	}
	return p.PlanningEndDate == nil || !p.PlanningEndDate.Before(start)
}

// PlanningActivityModel is a weekly slot: an activity on a day at a time in a site (and room).
type PlanningActivityModel struct {
	PlanningActivityID         uuid.UUID  `gorm:"column:planning_activity_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"planning_activity_id"`
	PlanningActivityPlanningID uuid.UUID  `gorm:"column:planning_activity_planning_id;type:uuid;not null;index" json:"planning_activity_planning_id"`
	PlanningActivityActivityID uuid.UUID  `gorm:"column:planning_activity_activity_id;type:uuid;not null;index" json:"planning_activity_activity_id"`
	PlanningActivitySiteID     uuid.UUID  `gorm:"column:planning_activity_site_id;type:uuid;not null" json:"planning_activity_site_id"`
	PlanningActivityRoomID     *uuid.UUID `gorm:"column:planning_activity_room_id;type:uuid" json:"planning_activity_room_id,omitempty"`
	PlanningActivityCoachID    *uuid.UUID `gorm:"column:planning_activity_coach_id;type:uuid;index" json:"planning_activity_coach_id,omitempty"`
	PlanningActivityDay        string     `gorm:"column:planning_activity_day;type:varchar(10);not null;index" json:"planning_activity_day"`
	PlanningActivityStartTime  string     `gorm:"column:planning_activity_start_time;type:varchar(5);not null" json:"planning_activity_start_time"`
	PlanningActivityDuration   int        `gorm:"column:planning_activity_duration;not null;default:60" json:"planning_activity_duration"`

	Activity *clubModel.ActivityModel `gorm:"foreignKey:PlanningActivityActivityID;references:ActivityID" json:"activity,omitempty"`
	Site     *clubModel.SiteModel     `gorm:"foreignKey:PlanningActivitySiteID;references:SiteID" json:"site,omitempty"`
	Room     *clubModel.RoomModel     `gorm:"foreignKey:PlanningActivityRoomID;references:RoomID" json:"room,omitempty"`
	Coach    *userModel.UserModel     `gorm:"foreignKey:PlanningActivityCoachID;references:ID" json:"coach,omitempty"`
}

func (PlanningActivityModel) TableName() string { return "planning_activities" }

// ReservationModel books either a planning activity or a no-calendar activity in a room.
type ReservationModel struct {
	ReservationID                 uuid.UUID  `gorm:"column:reservation_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"reservation_id"`
	ReservationUserID             uuid.UUID  `gorm:"column:reservation_user_id;type:uuid;not null;index" json:"reservation_user_id"`
	ReservationDate               time.Time  `gorm:"column:reservation_date;not null;index" json:"reservation_date"`
	ReservationPlanningActivityID *uuid.UUID `gorm:"column:reservation_planning_activity_id;type:uuid;index" json:"reservation_planning_activity_id,omitempty"`
	ReservationActivityID         *uuid.UUID `gorm:"column:reservation_activity_id;type:uuid;index" json:"reservation_activity_id,omitempty"`
	ReservationRoomID             *uuid.UUID `gorm:"column:reservation_room_id;type:uuid" json:"reservation_room_id,omitempty"`

	PlanningActivity *PlanningActivityModel   `gorm:"foreignKey:ReservationPlanningActivityID;references:PlanningActivityID" json:"planning_activity,omitempty"`
	Activity         *clubModel.ActivityModel `gorm:"foreignKey:ReservationActivityID;references:ActivityID" json:"activity,omitempty"`
	Room             *clubModel.RoomModel     `gorm:"foreignKey:ReservationRoomID;references:RoomID" json:"room,omitempty"`

	ReservationCreatedAt time.Time `gorm:"column:reservation_created_at;autoCreateTime" json:"reservation_created_at"`
}

func (ReservationModel) TableName() string { return "reservations" }
