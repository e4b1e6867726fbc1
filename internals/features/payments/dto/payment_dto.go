package dto

import "github.com/google/uuid"

// Billing periods
const (
	PeriodMonthly = "MONTHLY"
	PeriodYearly  = "YEARLY"
)

type CheckoutRequest struct {
	PricingID uuid.UUID `json:"pricing_id" validate:"required"`
	Period    string    `json:"period" validate:"required,oneof=MONTHLY YEARLY"`
}

type CheckoutResponse struct {
	PaymentID   uuid.UUID `json:"payment_id"`
	OrderID     string    `json:"order_id"`
	Amount      int64     `json:"amount"`
	Status      string    `json:"status"`
	SnapToken   string    `json:"snap_token,omitempty"`
	RedirectURL string    `json:"redirect_url,omitempty"`
}

// MidtransNotification is the HTTP notification Midtrans posts on every status change.
type MidtransNotification struct {
	TransactionTime   string `json:"transaction_time"`
	TransactionStatus string `json:"transaction_status"`
	StatusCode        string `json:"status_code"`
	SignatureKey      string `json:"signature_key"`
	OrderID           string `json:"order_id"`
	GrossAmount       string `json:"gross_amount"`
	PaymentType       string `json:"payment_type"`
	FraudStatus       string `json:"fraud_status"`
	TransactionID     string `json:"transaction_id"`
}
