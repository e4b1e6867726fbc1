package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Payment statuses
const (
	StatusPending = "PENDING"
	StatusPaid    = "PAID"
	StatusExpired = "EXPIRED"
	StatusCancel  = "CANCELLED"
	StatusFailed  = "FAILED"
)

type PaymentModel struct {
	PaymentID          uuid.UUID      `gorm:"column:payment_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"payment_id"`
	PaymentUserID      uuid.UUID      `gorm:"column:payment_user_id;type:uuid;not null;index" json:"payment_user_id"`
	PaymentPricingID   uuid.UUID      `gorm:"column:payment_pricing_id;type:uuid;not null" json:"payment_pricing_id"`
	PaymentOrderID     string         `gorm:"column:payment_order_id;type:varchar(64);not null;uniqueIndex" json:"payment_order_id"`
	PaymentPeriod      string         `gorm:"column:payment_period;type:varchar(10);not null" json:"payment_period"`
	PaymentAmount      int64          `gorm:"column:payment_amount;not null" json:"payment_amount"`
	PaymentStatus      string         `gorm:"column:payment_status;type:varchar(12);not null;default:'PENDING'" json:"payment_status"`
	PaymentSnapToken   string         `gorm:"column:payment_snap_token;type:text" json:"payment_snap_token,omitempty"`
	PaymentRedirectURL string         `gorm:"column:payment_redirect_url;type:text" json:"payment_redirect_url,omitempty"`
	PaymentRawNotify   datatypes.JSON `gorm:"column:payment_raw_notification;type:jsonb" json:"-"`
	PaymentPaidAt      *time.Time     `gorm:"column:payment_paid_at" json:"payment_paid_at,omitempty"`

	PaymentCreatedAt time.Time `gorm:"column:payment_created_at;autoCreateTime" json:"payment_created_at"`
	PaymentUpdatedAt time.Time `gorm:"column:payment_updated_at;autoUpdateTime" json:"payment_updated_at"`
}

func (PaymentModel) TableName() string { return "payments" }
