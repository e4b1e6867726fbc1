package service

import (
	"context"
	"testing"
	"time"

	"videoach_backend/internals/constants"
	"videoach_backend/internals/features/payments/dto"
	"videoach_backend/internals/features/payments/model"
	pricingModel "videoach_backend/internals/features/pricing/model"
	"videoach_backend/internals/helpers/testdb"

	"github.com/google/uuid"
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSnap struct {
	reqs []*snap.Request
}

func (r *recordingSnap) CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error) {
	r.reqs = append(r.reqs, req)
	return &snap.Response{Token: "tok", RedirectURL: "https://pay.example/tok"}, nil
}

func TestCheckoutSendsWholeUnitsToSnap(t *testing.T) {
	db := testdb.Open(t)
	manager := testdb.User(t, db, constants.RoleManager)
	pricing := &pricingModel.PricingModel{
		PricingID: uuid.New(), PricingRoleTarget: constants.RoleManager, PricingTitle: "Club Pro",
		PricingMonthly: 49.9, PricingYearly: 499,
	}
	require.NoError(t, db.Create(pricing).Error)

	rec := &recordingSnap{}
	svc := NewPaymentService(db, nil, rec, "server-key")
	svc.Now = func() time.Time { return time.Date(2024, 9, 2, 10, 0, 0, 0, time.UTC) }

	out, err := svc.Checkout(context.Background(), manager.ID, dto.CheckoutRequest{PricingID: pricing.PricingID, Period: dto.PeriodMonthly})
	require.NoError(t, err)
	assert.Equal(t, int64(4990), out.Amount)
	assert.Equal(t, model.StatusPending, out.Status)
	assert.Equal(t, "tok", out.SnapToken)

	require.Len(t, rec.reqs, 1)
	assert.Equal(t, int64(50), rec.reqs[0].TransactionDetails.GrossAmt)
	assert.Equal(t, out.OrderID, rec.reqs[0].TransactionDetails.OrderID)
	assert.Equal(t, int64(50), (*rec.reqs[0].Items)[0].Price)
}
