package model

import (
	"time"

	"github.com/google/uuid"
)

// ActivityGroupModel: defaults are created by admins and shared by every club,
// the others belong to the coach who created them.
type ActivityGroupModel struct {
	ActivityGroupID      uuid.UUID  `gorm:"column:activity_group_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"activity_group_id"`
	ActivityGroupName    string     `gorm:"column:activity_group_name;type:text;not null" json:"activity_group_name"`
	ActivityGroupDefault bool       `gorm:"column:activity_group_default;not null;default:false" json:"activity_group_default"`
	ActivityGroupCoachID *uuid.UUID `gorm:"column:activity_group_coach_id;type:uuid;index" json:"activity_group_coach_id,omitempty"`

	ActivityGroupCreatedAt time.Time `gorm:"column:activity_group_created_at;autoCreateTime" json:"activity_group_created_at"`
	ActivityGroupUpdatedAt time.Time `gorm:"column:activity_group_updated_at;autoUpdateTime" json:"activity_group_updated_at"`
}

func (ActivityGroupModel) TableName() string { return "activity_groups" }

type ActivityModel struct {
	ActivityID                  uuid.UUID `gorm:"column:activity_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"activity_id"`
	ActivityClubID              uuid.UUID `gorm:"column:activity_club_id;type:uuid;not null;index" json:"activity_club_id"`
	ActivityGroupID             uuid.UUID `gorm:"column:activity_group_id;type:uuid;not null;index" json:"activity_group_id"`
	ActivityName                string    `gorm:"column:activity_name;type:text;not null" json:"activity_name"`
	ActivityNoCalendar          bool      `gorm:"column:activity_no_calendar;not null;default:false" json:"activity_no_calendar"`
	ActivityReservationDuration int       `gorm:"column:activity_reservation_duration;not null;default:60" json:"activity_reservation_duration"`

	Group *ActivityGroupModel `gorm:"foreignKey:ActivityGroupID;references:ActivityGroupID" json:"group,omitempty"`
	Rooms []RoomModel         `gorm:"many2many:room_activities;foreignKey:ActivityID;joinForeignKey:activity_id;references:RoomID;joinReferences:room_id" json:"rooms,omitempty"`

	ActivityCreatedAt time.Time `gorm:"column:activity_created_at;autoCreateTime" json:"activity_created_at"`
	ActivityUpdatedAt time.Time `gorm:"column:activity_updated_at;autoUpdateTime" json:"activity_updated_at"`
}

func (ActivityModel) TableName() string { return "activities" }
