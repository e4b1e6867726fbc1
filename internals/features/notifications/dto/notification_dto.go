package dto

import "github.com/google/uuid"

type NotifyUserRequest struct {
	UserID  uuid.UUID `json:"user_id" validate:"required"`
	Type    string    `json:"notification_type" validate:"omitempty,oneof=SEARCH_COACH COACH_ACCEPT COACH_REFUSE SEARCH_CLUB CLUB_ACCEPT CLUB_REFUSE NEW_SUBSCRIBER SUBSCRIPTION_VALIDATED MESSAGE"`
	Message string    `json:"notification_message" validate:"required,max=2000"`
}

type NotifyClubRequest struct {
	Type    string `json:"notification_type" validate:"omitempty,oneof=SEARCH_COACH COACH_ACCEPT COACH_REFUSE SEARCH_CLUB CLUB_ACCEPT CLUB_REFUSE NEW_SUBSCRIBER SUBSCRIPTION_VALIDATED MESSAGE"`
	Message string `json:"notification_message" validate:"required,max=2000"`
}

// Event is what goes on the notification topic.
type Event struct {
	ID        uuid.UUID  `json:"id"`
	From      *uuid.UUID `json:"from,omitempty"`
	To        uuid.UUID  `json:"to"`
	Type      string     `json:"type"`
	Message   string     `json:"message"`
	CreatedAt int64      `json:"created_at"`
}
