package controller

import (
	"errors"

	"videoach_backend/internals/features/payments/dto"
	"videoach_backend/internals/features/payments/service"
	helper "videoach_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type PaymentController struct {
	Svc *service.PaymentService
}

func NewPaymentController(svc *service.PaymentService) *PaymentController {
	return &PaymentController{Svc: svc}
}

// POST /api/payments/checkout
func (pc *PaymentController) Checkout(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var body dto.CheckoutRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}
	out, err := pc.Svc.Checkout(c.UserContext(), userID, body)
	if errors.Is(err, service.ErrPaymentsDisabled) {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, err.Error())
	}
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Checkout started", out)
}

// GET /api/payments/mine
func (pc *PaymentController) GetMyPayments(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	out, err := pc.Svc.ListMine(c.UserContext(), userID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "My payments", out)
}

// POST /api/payments/midtrans/notification
// Unknown orders still get a 200 so Midtrans stops retrying.
func (pc *PaymentController) MidtransNotification(c *fiber.Ctx) error {
	var n dto.MidtransNotification
	if err := c.BodyParser(&n); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	p, err := pc.Svc.HandleNotification(c.UserContext(), n)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if p == nil {
		return c.JSON(fiber.Map{"status": "ignored", "reason": "payment not found"})
	}
	return c.JSON(fiber.Map{
		"status":             "ok",
		"payment_id":         p.PaymentID,
		"payment_status":     p.PaymentStatus,
		"transaction_status": n.TransactionStatus,
	})
}
