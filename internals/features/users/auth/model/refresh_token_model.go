package model

import (
	"time"

	"github.com/google/uuid"
)

// RefreshTokenModel stores the HMAC of an issued refresh token, never the token itself.
type RefreshTokenModel struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	Token     []byte    `gorm:"column:token;type:bytea;not null;uniqueIndex" json:"-"`
	ExpiresAt time.Time `gorm:"column:expires_at;type:timestamptz;not null" json:"expires_at"`
	UserAgent *string   `gorm:"column:user_agent" json:"user_agent,omitempty"`
	IP        *string   `gorm:"column:ip" json:"ip,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;autoCreateTime" json:"created_at"`
}

func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}
