package dto

import (
	"strings"
	"time"

	"videoach_backend/internals/features/events/model"

	"github.com/google/uuid"
)

type EventRequest struct {
	Name          string    `json:"event_name" form:"event_name" validate:"required,min=1,max=160"`
	Brief         string    `json:"event_brief" form:"event_brief" validate:"max=300"`
	Description   string    `json:"event_description" form:"event_description" validate:"max=5000"`
	StartDate     time.Time `json:"event_start_date" form:"event_start_date" validate:"required"`
	EndDate       time.Time `json:"event_end_date" form:"event_end_date" validate:"required"`
	StartDisplay  time.Time `json:"event_start_display" form:"event_start_display"`
	EndDisplay    time.Time `json:"event_end_display" form:"event_end_display"`
	BannerText    string    `json:"event_banner_text" form:"event_banner_text" validate:"max=200"`
	Cancelled     bool      `json:"event_cancelled" form:"event_cancelled"`
	Price         float64   `json:"event_price" form:"event_price" validate:"gte=0"`
	Free          bool      `json:"event_free" form:"event_free"`
	Address       string    `json:"event_address" form:"event_address"`
	SearchAddress *string   `json:"event_search_address" form:"event_search_address"`
	Longitude     float64   `json:"event_longitude" form:"event_longitude" validate:"gte=-180,lte=180"`
	Latitude      float64   `json:"event_latitude" form:"event_latitude" validate:"gte=-90,lte=90"`
}

// ToModel fills the display window with the event dates when absent. Free events cost nothing.
func (r EventRequest) ToModel(clubID uuid.UUID) model.EventModel {
	m := model.EventModel{
		EventClubID:        clubID,
		EventName:          strings.TrimSpace(r.Name),
		EventBrief:         r.Brief,
		EventDescription:   r.Description,
		EventStartDate:     r.StartDate,
		EventEndDate:       r.EndDate,
		EventStartDisplay:  r.StartDisplay,
		EventEndDisplay:    r.EndDisplay,
		EventBannerText:    r.BannerText,
		EventCancelled:     r.Cancelled,
		EventPrice:         r.Price,
		EventFree:          r.Free,
		EventAddress:       r.Address,
		EventSearchAddress: r.SearchAddress,
		EventLongitude:     r.Longitude,
		EventLatitude:      r.Latitude,
		EventImageURLs:     []string{},
	}
	if m.EventStartDisplay.IsZero() {
		m.EventStartDisplay = m.EventStartDate
	}
	if m.EventEndDisplay.IsZero() {
		m.EventEndDisplay = m.EventEndDate
	}
	if m.EventFree {
		m.EventPrice = 0
	}
	return m
}

// Valid: the event ends after it starts.
func (r EventRequest) Valid() bool {
	return !r.EndDate.Before(r.StartDate)
}
