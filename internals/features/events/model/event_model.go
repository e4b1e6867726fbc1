package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type EventModel struct {
	EventID            uuid.UUID      `gorm:"column:event_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"event_id"`
	EventClubID        uuid.UUID      `gorm:"column:event_club_id;type:uuid;not null;index" json:"event_club_id"`
	EventName          string         `gorm:"column:event_name;type:text;not null" json:"event_name"`
	EventBrief         string         `gorm:"column:event_brief;type:text;not null;default:''" json:"event_brief"`
	EventDescription   string         `gorm:"column:event_description;type:text;not null;default:''" json:"event_description"`
	EventStartDate     time.Time      `gorm:"column:event_start_date;not null;index" json:"event_start_date"`
	EventEndDate       time.Time      `gorm:"column:event_end_date;not null" json:"event_end_date"`
	EventStartDisplay  time.Time      `gorm:"column:event_start_display;not null" json:"event_start_display"`
	EventEndDisplay    time.Time      `gorm:"column:event_end_display;not null" json:"event_end_display"`
	EventBannerText    string         `gorm:"column:event_banner_text;type:text;not null;default:''" json:"event_banner_text"`
	EventCancelled     bool           `gorm:"column:event_cancelled;not null;default:false" json:"event_cancelled"`
	EventPrice         float64        `gorm:"column:event_price;not null;default:0" json:"event_price"`
	EventFree          bool           `gorm:"column:event_free;not null;default:false" json:"event_free"`
	EventAddress       string         `gorm:"column:event_address;type:text;not null;default:''" json:"event_address"`
	EventSearchAddress *string        `gorm:"column:event_search_address;type:text" json:"event_search_address,omitempty"`
	EventLongitude     float64        `gorm:"column:event_longitude;not null;default:0" json:"event_longitude"`
	EventLatitude      float64        `gorm:"column:event_latitude;not null;default:0" json:"event_latitude"`
	EventImageURLs     pq.StringArray `gorm:"column:event_image_urls;type:text[];not null;default:'{}'" json:"event_image_urls"`

	EventCreatedAt time.Time      `gorm:"column:event_created_at;autoCreateTime" json:"event_created_at"`
	EventUpdatedAt time.Time      `gorm:"column:event_updated_at;autoUpdateTime" json:"event_updated_at"`
	EventDeletedAt gorm.DeletedAt `gorm:"column:event_deleted_at;index" json:"event_deleted_at,omitempty"`
}

func (EventModel) TableName() string { return "events" }
