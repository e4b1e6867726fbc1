package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel merepresentasikan tabel users
type UserModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserName       string     `gorm:"size:100;not null" json:"user_name"`
	Email          string     `gorm:"size:255;unique;not null" json:"email"`
	Password       *string    `gorm:"type:text" json:"-"`
	GoogleID       *string    `gorm:"size:255;unique" json:"google_id,omitempty"`
	AuthProviderID *string    `gorm:"size:255;unique" json:"auth_provider_id,omitempty"`
	Role           string     `gorm:"type:varchar(20);not null;default:'MEMBER'" json:"role"`
	PricingID      *uuid.UUID `gorm:"type:uuid" json:"pricing_id,omitempty"`
	IsActive       bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}
