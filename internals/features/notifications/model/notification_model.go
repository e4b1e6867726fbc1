package model

import (
	"time"

	"github.com/google/uuid"
)

// Notification types
const (
	TypeSearchCoach    = "SEARCH_COACH"
	TypeCoachAccept    = "COACH_ACCEPT"
	TypeCoachRefuse    = "COACH_REFUSE"
	TypeSearchClub     = "SEARCH_CLUB"
	TypeClubAccept     = "CLUB_ACCEPT"
	TypeClubRefuse     = "CLUB_REFUSE"
	TypeNewSubscriber  = "NEW_SUBSCRIBER"
	TypeSubscriptionOK = "SUBSCRIPTION_VALIDATED"
	TypeMessage        = "MESSAGE"
)

var Types = []string{
	TypeSearchCoach, TypeCoachAccept, TypeCoachRefuse, TypeSearchClub, TypeClubAccept,
	TypeClubRefuse, TypeNewSubscriber, TypeSubscriptionOK, TypeMessage,
}

func IsValidType(t string) bool {
	for _, x := range Types {
		if x == t {
			return true
		}
	}
	return false
}

type NotificationModel struct {
	NotificationID         uuid.UUID  `gorm:"column:notification_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"notification_id"`
	NotificationFromUserID *uuid.UUID `gorm:"column:notification_from_user_id;type:uuid" json:"notification_from_user_id,omitempty"`
	NotificationToUserID   uuid.UUID  `gorm:"column:notification_to_user_id;type:uuid;not null;index" json:"notification_to_user_id"`
	NotificationType       string     `gorm:"column:notification_type;type:varchar(30);not null;default:'MESSAGE'" json:"notification_type"`
	NotificationMessage    string     `gorm:"column:notification_message;type:text;not null" json:"notification_message"`
	NotificationReadAt     *time.Time `gorm:"column:notification_read_at" json:"notification_read_at,omitempty"`
	NotificationCreatedAt  time.Time  `gorm:"column:notification_created_at;autoCreateTime;index" json:"notification_created_at"`
}

func (NotificationModel) TableName() string { return "notifications" }
