package dto

import (
	"strings"

	"github.com/google/uuid"
)

/* =======================================================
   CLUB
   ======================================================= */

// CreateClubRequest also creates a site with the same name and address when IsSite is set.
type CreateClubRequest struct {
	Name          string  `json:"club_name" form:"club_name" validate:"required,min=2,max=120"`
	Address       string  `json:"club_address" form:"club_address" validate:"max=500"`
	IsSite        bool    `json:"is_site" form:"is_site"`
	SearchAddress *string `json:"search_address,omitempty" form:"search_address"`
	Longitude     float64 `json:"longitude" form:"longitude" validate:"gte=-180,lte=180"`
	Latitude      float64 `json:"latitude" form:"latitude" validate:"gte=-90,lte=90"`
}

func (r *CreateClubRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Address = strings.TrimSpace(r.Address)
}

type UpdateClubRequest struct {
	Name       *string `json:"club_name,omitempty" form:"club_name" validate:"omitempty,min=2,max=120"`
	Address    *string `json:"club_address,omitempty" form:"club_address" validate:"omitempty,max=500"`
	DeleteLogo bool    `json:"delete_logo" form:"delete_logo"`
}

func (r *UpdateClubRequest) Updates() map[string]any {
	out := map[string]any{}
	if r.Name != nil {
		out["club_name"] = strings.TrimSpace(*r.Name)
	}
	if r.Address != nil {
		out["club_address"] = strings.TrimSpace(*r.Address)
	}
	return out
}

/* =======================================================
   SITE
   ======================================================= */

type SiteRequest struct {
	Name          string  `json:"site_name" validate:"required,min=2,max=120"`
	Address       string  `json:"site_address" validate:"max=500"`
	SearchAddress *string `json:"site_search_address,omitempty"`
	Longitude     float64 `json:"site_longitude" validate:"gte=-180,lte=180"`
	Latitude      float64 `json:"site_latitude" validate:"gte=-90,lte=90"`
	OpenWithClub  *bool   `json:"site_open_with_club,omitempty"`
}

type SiteSearchQuery struct {
	Lng   float64
	Lat   float64
	Range float64
}

/* =======================================================
   ROOM
   ======================================================= */

type RoomRequest struct {
	Name         string `json:"room_name" validate:"required,min=1,max=120"`
	Reservation  string `json:"room_reservation" validate:"omitempty,oneof=NONE POSSIBLE MANDATORY"`
	Capacity     int    `json:"room_capacity" validate:"gte=0,lte=100000"`
	Unavailable  bool   `json:"room_unavailable"`
	OpenWithClub *bool  `json:"room_open_with_club,omitempty"`
	OpenWithSite *bool  `json:"room_open_with_site,omitempty"`
}

/* =======================================================
   ACTIVITY
   ======================================================= */

type ActivityRequest struct {
	Name                string    `json:"activity_name" validate:"required,min=1,max=120"`
	GroupID             uuid.UUID `json:"activity_group_id" validate:"required"`
	NoCalendar          bool      `json:"activity_no_calendar"`
	ReservationDuration int       `json:"activity_reservation_duration" validate:"gte=0,lte=1440"`
}

type ActivityGroupRequest struct {
	Name string `json:"activity_group_name" validate:"required,min=1,max=120"`
}

// ClubActivityItem is one entry of the "activities of my club" editor.
type ClubActivityItem struct {
	GroupID uuid.UUID `json:"activity_group_id" validate:"required"`
	Name    string    `json:"activity_name" validate:"required,min=1,max=120"`
}

type UpdateClubActivitiesRequest struct {
	Activities []ClubActivityItem `json:"activities" validate:"dive"`
}

/* =======================================================
   CALENDAR
   ======================================================= */

type WorkingHoursRequest struct {
	Opening string `json:"opening" validate:"required,len=5"`
	Closing string `json:"closing" validate:"required,len=5"`
}

type OpeningTimeRequest struct {
	Day          string                `json:"day" validate:"required,oneof=MONDAY TUESDAY WEDNESDAY THURSDAY FRIDAY SATURDAY SUNDAY"`
	WholeDay     bool                  `json:"whole_day"`
	Closed       bool                  `json:"closed"`
	WorkingHours []WorkingHoursRequest `json:"working_hours" validate:"dive"`
}

// CalendarRequest creates a calendar and attaches it to one club, site or room.
type CalendarRequest struct {
	StartDate    string               `json:"start_date" validate:"required"`
	OpeningTimes []OpeningTimeRequest `json:"opening_times" validate:"dive"`
}

type OpenWithRequest struct {
	OpenWithClub *bool `json:"open_with_club,omitempty"`
	OpenWithSite *bool `json:"open_with_site,omitempty"`
}
