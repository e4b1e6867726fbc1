package dto

import (
	"strings"

	subModel "videoach_backend/internals/features/subscriptions/model"
	"videoach_backend/internals/helpers/dbtime"

	"github.com/google/uuid"
)

type SubscriptionRequest struct {
	Name           string  `json:"subscription_name" validate:"required,min=1,max=120"`
	Description    string  `json:"subscription_description" validate:"max=2000"`
	Highlight      string  `json:"subscription_highlight" validate:"max=200"`
	StartDate      string  `json:"subscription_start_date" validate:"required"`
	Monthly        float64 `json:"subscription_monthly" validate:"gte=0"`
	Yearly         float64 `json:"subscription_yearly" validate:"gte=0"`
	CancelationFee float64 `json:"subscription_cancelation_fee" validate:"gte=0"`
	InscriptionFee float64 `json:"subscription_inscription_fee" validate:"gte=0"`
	Mode           string  `json:"subscription_mode" validate:"omitempty,oneof=ALL_INCLUSIVE ACTIVITY_GROUP ACTIVITY COURSE DAY"`
	Restriction    string  `json:"subscription_restriction" validate:"omitempty,oneof=CLUB SITE ROOM"`
}

// ToModel applies the defaults: all-inclusive on the whole club.
func (r SubscriptionRequest) ToModel(clubID uuid.UUID) (subModel.SubscriptionModel, error) {
	start, err := dbtime.ParseDate(r.StartDate)
	if err != nil {
		return subModel.SubscriptionModel{}, err
	}
	m := subModel.SubscriptionModel{
		SubscriptionClubID:         clubID,
		SubscriptionName:           strings.TrimSpace(r.Name),
		SubscriptionDescription:    r.Description,
		SubscriptionHighlight:      r.Highlight,
		SubscriptionStartDate:      start,
		SubscriptionMonthly:        r.Monthly,
		SubscriptionYearly:         r.Yearly,
		SubscriptionCancelationFee: r.CancelationFee,
		SubscriptionInscriptionFee: r.InscriptionFee,
		SubscriptionMode:           r.Mode,
		SubscriptionRestriction:    r.Restriction,
	}
	if m.SubscriptionMode == "" {
		m.SubscriptionMode = subModel.ModeAllInclusive
	}
	if m.SubscriptionRestriction == "" {
		m.SubscriptionRestriction = subModel.RestrictionClub
	}
	return m, nil
}

// SelectionRequest replaces the four selection sets of a subscription.
type SelectionRequest struct {
	ActivityGroups []uuid.UUID `json:"activity_groups"`
	Activities     []uuid.UUID `json:"activities"`
	Sites          []uuid.UUID `json:"sites"`
	Rooms          []uuid.UUID `json:"rooms"`
}

type PossibleChoiceRequest struct {
	Mode        string      `json:"mode" validate:"required,oneof=ALL_INCLUSIVE ACTIVITY_GROUP ACTIVITY COURSE DAY"`
	Restriction string      `json:"restriction" validate:"required,oneof=CLUB SITE ROOM"`
	SiteIDs     []uuid.UUID `json:"site_ids"`
	RoomIDs     []uuid.UUID `json:"room_ids"`
}

type DataNamesRequest struct {
	SiteIDs          []string `json:"site_ids"`
	RoomIDs          []string `json:"room_ids"`
	ActivityGroupIDs []string `json:"activity_group_ids"`
	ActivityIDs      []string `json:"activity_ids"`
}

type IDName struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// DataNames is also the shape of a possible choice.
type DataNames struct {
	Sites          []IDName `json:"sites"`
	Rooms          []IDName `json:"rooms"`
	ActivityGroups []IDName `json:"activity_groups"`
	Activities     []IDName `json:"activities"`
}

func EmptyDataNames() DataNames {
	return DataNames{Sites: []IDName{}, Rooms: []IDName{}, ActivityGroups: []IDName{}, Activities: []IDName{}}
}
