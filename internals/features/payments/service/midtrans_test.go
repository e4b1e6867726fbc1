package service

import (
	"testing"
	"time"

	"videoach_backend/internals/features/payments/dto"
	"videoach_backend/internals/features/payments/model"
	pricingModel "videoach_backend/internals/features/pricing/model"
	userModel "videoach_backend/internals/features/users/user/model"

	"github.com/stretchr/testify/assert"
)

func TestVerifySignature(t *testing.T) {
	n := dto.MidtransNotification{OrderID: "VDC-1", StatusCode: "200", GrossAmount: "2000.00"}
	n.SignatureKey = sha512sum(n.OrderID + n.StatusCode + n.GrossAmount + "server-key")

	assert.True(t, VerifySignature(n, "server-key"))
	assert.False(t, VerifySignature(n, "other-key"))
	assert.False(t, VerifySignature(n, ""))

	n.GrossAmount = "1.00"
	assert.False(t, VerifySignature(n, "server-key"))
}

func TestMapStatus(t *testing.T) {
	now := time.Date(2024, 9, 2, 10, 0, 0, 0, time.UTC)
	cases := []struct {
		ts, fraud string
		want      string
		paid, ok  bool
	}{
		{"settlement", "", model.StatusPaid, true, true},
		{"capture", "accept", model.StatusPaid, true, true},
		{"capture", "challenge", model.StatusPending, false, true},
		{"capture", "deny", model.StatusFailed, false, true},
		{"expire", "", model.StatusExpired, false, true},
		{"cancel", "", model.StatusCancel, false, true},
		{"refund", "", "", false, false},
	}
	for _, tc := range cases {
		status, paidAt, ok := MapStatus(tc.ts, tc.fraud, now)
		assert.Equal(t, tc.ok, ok, tc.ts)
		assert.Equal(t, tc.want, status, tc.ts)
		assert.Equal(t, tc.paid, paidAt != nil, tc.ts)
	}
}

func TestAmountForPeriod(t *testing.T) {
	p := &pricingModel.PricingModel{PricingMonthly: 20, PricingYearly: 199.99}
	assert.Equal(t, int64(2000), amountFor(p, dto.PeriodMonthly))
	assert.Equal(t, int64(19999), amountFor(p, dto.PeriodYearly))
}

func TestSnapRequestChargesWholeUnits(t *testing.T) {
	pricing := &pricingModel.PricingModel{PricingTitle: "Club Pro"}
	p := &model.PaymentModel{PaymentOrderID: "VDC-1", PaymentPeriod: dto.PeriodYearly, PaymentAmount: 19999}

	req := snapRequest(p, pricing, &userModel.UserModel{UserName: "ana", Email: "ana@example.com"})
	assert.Equal(t, int64(200), req.TransactionDetails.GrossAmt)
	items := *req.Items
	assert.Equal(t, int64(200), items[0].Price)
	assert.Equal(t, "Club Pro yearly", items[0].Name)

	p.PaymentAmount = 2000
	assert.Equal(t, int64(20), snapRequest(p, pricing, &userModel.UserModel{}).TransactionDetails.GrossAmt)
}
