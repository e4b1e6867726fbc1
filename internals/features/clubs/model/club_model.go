package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClubModel struct {
	ClubID        uuid.UUID `gorm:"column:club_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"club_id"`
	ClubManagerID uuid.UUID `gorm:"column:club_manager_id;type:uuid;not null;index" json:"club_manager_id"`
	ClubName      string    `gorm:"column:club_name;type:text;not null" json:"club_name"`
	ClubSlug      string    `gorm:"column:club_slug;type:varchar(80);not null;uniqueIndex" json:"club_slug"`
	ClubAddress   string    `gorm:"column:club_address;type:text;not null;default:''" json:"club_address"`
	ClubLogoURL   *string   `gorm:"column:club_logo_url;type:text" json:"club_logo_url,omitempty"`

	Sites      []SiteModel            `gorm:"foreignKey:SiteClubID;references:ClubID" json:"sites,omitempty"`
	Activities []ActivityModel        `gorm:"foreignKey:ActivityClubID;references:ClubID" json:"activities,omitempty"`
	Calendars  []OpeningCalendarModel `gorm:"many2many:club_calendars;foreignKey:ClubID;joinForeignKey:club_id;references:OpeningCalendarID;joinReferences:opening_calendar_id" json:"calendars,omitempty"`

	ClubCreatedAt time.Time      `gorm:"column:club_created_at;autoCreateTime" json:"club_created_at"`
	ClubUpdatedAt time.Time      `gorm:"column:club_updated_at;autoUpdateTime" json:"club_updated_at"`
	ClubDeletedAt gorm.DeletedAt `gorm:"column:club_deleted_at;index" json:"club_deleted_at,omitempty"`
}

func (ClubModel) TableName() string { return "clubs" }

// ClubCoachModel links coaches (users) to the clubs they work for.
type ClubCoachModel struct {
	ClubID    uuid.UUID `gorm:"column:club_id;type:uuid;primaryKey" json:"club_id"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ClubCoachModel) TableName() string { return "club_coaches" }

type SiteModel struct {
	SiteID            uuid.UUID `gorm:"column:site_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"site_id"`
	SiteClubID        uuid.UUID `gorm:"column:site_club_id;type:uuid;not null;index" json:"site_club_id"`
	SiteName          string    `gorm:"column:site_name;type:text;not null" json:"site_name"`
	SiteAddress       string    `gorm:"column:site_address;type:text;not null;default:''" json:"site_address"`
	SiteSearchAddress *string   `gorm:"column:site_search_address;type:text" json:"site_search_address,omitempty"`
	SiteLongitude     float64   `gorm:"column:site_longitude;not null;default:0;index:idx_site_lnglat" json:"site_longitude"`
	SiteLatitude      float64   `gorm:"column:site_latitude;not null;default:0;index:idx_site_lnglat" json:"site_latitude"`
	SiteOpenWithClub  bool      `gorm:"column:site_open_with_club;not null" json:"site_open_with_club"`

	Club      *ClubModel             `gorm:"foreignKey:SiteClubID;references:ClubID" json:"club,omitempty"`
	Rooms     []RoomModel            `gorm:"foreignKey:RoomSiteID;references:SiteID" json:"rooms,omitempty"`
	Calendars []OpeningCalendarModel `gorm:"many2many:site_calendars;foreignKey:SiteID;joinForeignKey:site_id;references:OpeningCalendarID;joinReferences:opening_calendar_id" json:"calendars,omitempty"`

	SiteCreatedAt time.Time      `gorm:"column:site_created_at;autoCreateTime" json:"site_created_at"`
	SiteUpdatedAt time.Time      `gorm:"column:site_updated_at;autoUpdateTime" json:"site_updated_at"`
	SiteDeletedAt gorm.DeletedAt `gorm:"column:site_deleted_at;index" json:"site_deleted_at,omitempty"`
}

func (SiteModel) TableName() string { return "sites" }

// Room reservation policy
const (
	ReservationNone      = "NONE"
	ReservationPossible  = "POSSIBLE"
	ReservationMandatory = "MANDATORY"
)

type RoomModel struct {
	RoomID           uuid.UUID `gorm:"column:room_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"room_id"`
	RoomSiteID       uuid.UUID `gorm:"column:room_site_id;type:uuid;not null;index" json:"room_site_id"`
	RoomClubID       uuid.UUID `gorm:"column:room_club_id;type:uuid;not null;index" json:"room_club_id"`
	RoomName         string    `gorm:"column:room_name;type:text;not null" json:"room_name"`
	RoomReservation  string    `gorm:"column:room_reservation;type:varchar(12);not null;default:'NONE'" json:"room_reservation"`
	RoomCapacity     int       `gorm:"column:room_capacity;not null;default:0" json:"room_capacity"`
	RoomUnavailable  bool      `gorm:"column:room_unavailable;not null;default:false" json:"room_unavailable"`
	RoomOpenWithClub bool      `gorm:"column:room_open_with_club;not null" json:"room_open_with_club"`
	RoomOpenWithSite bool      `gorm:"column:room_open_with_site;not null" json:"room_open_with_site"`

	Site       *SiteModel             `gorm:"foreignKey:RoomSiteID;references:SiteID" json:"site,omitempty"`
	Activities []ActivityModel        `gorm:"many2many:room_activities;foreignKey:RoomID;joinForeignKey:room_id;references:ActivityID;joinReferences:activity_id" json:"activities,omitempty"`
	Calendars  []OpeningCalendarModel `gorm:"many2many:room_calendars;foreignKey:RoomID;joinForeignKey:room_id;references:OpeningCalendarID;joinReferences:opening_calendar_id" json:"calendars,omitempty"`

	RoomCreatedAt time.Time      `gorm:"column:room_created_at;autoCreateTime" json:"room_created_at"`
	RoomUpdatedAt time.Time      `gorm:"column:room_updated_at;autoUpdateTime" json:"room_updated_at"`
	RoomDeletedAt gorm.DeletedAt `gorm:"column:room_deleted_at;index" json:"room_deleted_at,omitempty"`
}

func (RoomModel) TableName() string { return "rooms" }
