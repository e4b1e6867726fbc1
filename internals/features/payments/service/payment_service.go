package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"videoach_backend/internals/features/payments/dto"
	"videoach_backend/internals/features/payments/model"
	pricingModel "videoach_backend/internals/features/pricing/model"
	userModel "videoach_backend/internals/features/users/user/model"
	helper "videoach_backend/internals/helpers"
	"videoach_backend/internals/helpers/cache"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrPaymentsDisabled = errors.New("payments are not configured")
	ErrBadSignature     = fiber.NewError(fiber.StatusUnauthorized, "invalid signature")
)

type PaymentService struct {
	DB        *gorm.DB
	Cache     cache.Store
	Snap      SnapCreator
	ServerKey string
	Now       func() time.Time
}

func NewPaymentService(db *gorm.DB, store cache.Store, snapClient SnapCreator, serverKey string) *PaymentService {
	return &PaymentService{DB: db, Cache: store, Snap: snapClient, ServerKey: serverKey, Now: time.Now}
}

// amountFor returns the price of the period in cents.
func amountFor(p *pricingModel.PricingModel, period string) int64 {
	price := p.PricingMonthly
	if period == dto.PeriodYearly {
		price = p.PricingYearly
	}
	return int64(math.Round(price * 100))
}

// snapUnits converts cents to the whole currency units Snap charges, rounding half up.
func snapUnits(cents int64) int64 {
	return (cents + 50) / 100
}

func snapRequest(p *model.PaymentModel, pricing *pricingModel.PricingModel, user *userModel.UserModel) *snap.Request {
	amount := snapUnits(p.PaymentAmount)
	return &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{OrderID: p.PaymentOrderID, GrossAmt: amount},
		CustomerDetail:     &midtrans.CustomerDetails{FName: user.UserName, Email: user.Email},
		Items: &[]midtrans.ItemDetails{{
			ID:       pricing.PricingID.String(),
			Name:     truncate(pricing.PricingTitle+" "+strings.ToLower(p.PaymentPeriod), 50),
			Price:    amount,
			Qty:      1,
			Category: "SUBSCRIPTION",
		}},
	}
}

func newOrderID(now time.Time) string {
	return fmt.Sprintf("VDC-%s-%s", now.UTC().Format("20060102150405"), strings.ToUpper(uuid.NewString()[:8]))
}

func (s *PaymentService) setUserPricing(tx *gorm.DB, userID, pricingID uuid.UUID) error {
	return tx.Model(&userModel.UserModel{}).Where("id = ?", userID).Update("pricing_id", pricingID).Error
}

// Checkout starts paying a pricing. Free pricings are applied at once; the others create a
// pending payment and a Snap transaction the client completes.
func (s *PaymentService) Checkout(ctx context.Context, userID uuid.UUID, in dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	db := s.DB.WithContext(ctx)
	var user userModel.UserModel
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	var pricing pricingModel.PricingModel
	if err := db.First(&pricing, "pricing_id = ? AND pricing_deleted = false", in.PricingID).Error; err != nil {
		return nil, err
	}
	if pricing.PricingRoleTarget != user.Role {
		return nil, fmt.Errorf("%w: pricing is for %s", helper.ErrInvalidInput, pricing.PricingRoleTarget)
	}

	now := s.Now()
	p := model.PaymentModel{
		PaymentUserID:    userID,
		PaymentPricingID: pricing.PricingID,
		PaymentOrderID:   newOrderID(now),
		PaymentPeriod:    in.Period,
		PaymentAmount:    amountFor(&pricing, in.Period),
		PaymentStatus:    model.StatusPending,
	}

	if pricing.PricingFree || p.PaymentAmount == 0 {
		p.PaymentStatus = model.StatusPaid
		p.PaymentPaidAt = &now
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&p).Error; err != nil {
				return err
			}
			return s.setUserPricing(tx, userID, pricing.PricingID)
		})
		if err != nil {
			return nil, err
		}
		s.revalidateUser(ctx, userID)
		return response(&p), nil
	}

	if s.Snap == nil {
		return nil, ErrPaymentsDisabled
	}
	req := snapRequest(&p, &pricing, &user)
	resp, merr := s.Snap.CreateTransaction(req)
	if merr != nil {
		return nil, fmt.Errorf("midtrans: %s", merr.Error())
	}
	p.PaymentSnapToken = resp.Token
	p.PaymentRedirectURL = resp.RedirectURL
	if err := db.Create(&p).Error; err != nil {
		return nil, err
	}
	return response(&p), nil
}

func response(p *model.PaymentModel) *dto.CheckoutResponse {
	return &dto.CheckoutResponse{
		PaymentID:   p.PaymentID,
		OrderID:     p.PaymentOrderID,
		Amount:      p.PaymentAmount,
		Status:      p.PaymentStatus,
		SnapToken:   p.PaymentSnapToken,
		RedirectURL: p.PaymentRedirectURL,
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func (s *PaymentService) revalidateUser(ctx context.Context, userID uuid.UUID) {
	cache.Revalidate(ctx, s.Cache, cache.Revalidation{Tag: cache.TagUser, UserID: userID.String()})
}

// HandleNotification applies a signed Midtrans notification. A paid payment moves the user to
// the bought pricing; a payment already paid is never downgraded. Unknown orders are ignored.
func (s *PaymentService) HandleNotification(ctx context.Context, n dto.MidtransNotification) (*model.PaymentModel, error) {
	if !VerifySignature(n, s.ServerKey) {
		return nil, ErrBadSignature
	}
	db := s.DB.WithContext(ctx)
	var p model.PaymentModel
	if err := db.First(&p, "payment_order_id = ?", n.OrderID).Error; err != nil {
		if helper.IsNotFound(err) {
			log.Printf("[PAYMENT] notification for unknown order %s ignored", n.OrderID)
			return nil, nil
		}
		return nil, err
	}

	status, paidAt, ok := MapStatus(n.TransactionStatus, n.FraudStatus, s.Now())
	if !ok || p.PaymentStatus == model.StatusPaid {
		log.Printf("[PAYMENT] order %s: %s ignored (current %s)", n.OrderID, n.TransactionStatus, p.PaymentStatus)
		return &p, nil
	}
	raw, _ := sonic.Marshal(n)

	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.PaymentModel{}).Where("payment_id = ?", p.PaymentID).Updates(map[string]any{
			"payment_status":           status,
			"payment_paid_at":          paidAt,
			"payment_raw_notification": datatypes.JSON(raw),
		}).Error
		if err != nil {
			return err
		}
		if status == model.StatusPaid {
			return s.setUserPricing(tx, p.PaymentUserID, p.PaymentPricingID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	p.PaymentStatus = status
	p.PaymentPaidAt = paidAt
	if status == model.StatusPaid {
		s.revalidateUser(ctx, p.PaymentUserID)
	}
	return &p, nil
}

func (s *PaymentService) ListMine(ctx context.Context, userID uuid.UUID) ([]model.PaymentModel, error) {
	out := []model.PaymentModel{}
	err := s.DB.WithContext(ctx).
		Where("payment_user_id = ?", userID).
		Order("payment_created_at DESC").
		Find(&out).Error
	return out, err
}
