package controller

import (
	"context"
	"log"
	"strings"
	"time"

	"videoach_backend/internals/features/plannings/dto"
	planningModel "videoach_backend/internals/features/plannings/model"
	helper "videoach_backend/internals/helpers"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Reservations is what the member-facing handlers need from the reservation service.
type Reservations interface {
	GetMemberDailyPlanning(ctx context.Context, memberID uuid.UUID, date time.Time) ([]dto.DailyPlanning, error)
	CreatePlanningReservation(ctx context.Context, memberID, planningActivityID uuid.UUID, date time.Time) (*planningModel.ReservationModel, error)
	CreateActivityReservation(ctx context.Context, memberID, activityID, roomID uuid.UUID, date time.Time) (*planningModel.ReservationModel, error)
	DeleteReservation(ctx context.Context, actor helper.Actor, id uuid.UUID) error
	ReservationQR(ctx context.Context, actor helper.Actor, id uuid.UUID) ([]byte, error)
	CheckIn(ctx context.Context, token string) (*planningModel.ReservationModel, error)
}

type ReservationController struct {
	Svc Reservations
	Now func() time.Time
}

func NewReservationController(svc Reservations) *ReservationController {
	return &ReservationController{Svc: svc, Now: time.Now}
}

// GET /api/planning/me?date=
func (rc *ReservationController) GetMyDailyPlanning(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	date, err := dayQuery(c, rc.Now())
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	out, err := rc.Svc.GetMemberDailyPlanning(c.UserContext(), userID, date)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Daily planning", out)
}

// POST /api/reservations/planning
func (rc *ReservationController) CreatePlanningReservation(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var body dto.PlanningReservationRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}
	r, err := rc.Svc.CreatePlanningReservation(c.UserContext(), userID, body.PlanningActivityID, body.Date)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Reservation created", r)
}

// POST /api/reservations/activity
func (rc *ReservationController) CreateActivityReservation(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var body dto.ActivityReservationRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}
	r, err := rc.Svc.CreateActivityReservation(c.UserContext(), userID, body.ActivityID, body.RoomID, body.Date)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Reservation created", r)
}

// DELETE /api/reservations/:id
func (rc *ReservationController) DeleteReservation(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := rc.Svc.DeleteReservation(c.UserContext(), actor, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Reservation deleted", fiber.Map{"reservation_id": id})
}

// GET /api/reservations/:id/qr
func (rc *ReservationController) GetReservationQR(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	png, err := rc.Svc.ReservationQR(c.UserContext(), actor, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Send(png)
}

// POST /api/m/reservations/check-in  {"token": "..."}
func (rc *ReservationController) CheckIn(c *fiber.Ctx) error {
	var body struct {
		Token string `json:"token"`
	}
	if err := c.BodyParser(&body); err != nil || strings.TrimSpace(body.Token) == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input")
	}
	r, err := rc.Svc.CheckIn(c.UserContext(), strings.TrimSpace(body.Token))
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Reservation checked in", r)
}

// POST /api/planning answers the reservation itself, or 400 "Erreur".
// The member is the signed-in user; a memberId naming somebody else is refused unless the caller is admin.
func (rc *ReservationController) LegacyCreate(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return legacyError(c, err)
	}
	var body dto.LegacyReservationRequest
	if err := sonic.Unmarshal(c.Body(), &body); err != nil {
		return legacyError(c, err)
	}
	paID, err := uuid.Parse(strings.TrimSpace(body.PlanningActivityID))
	if err != nil {
		return legacyError(c, err)
	}
	memberID := actor.UserID
	if body.MemberID != "" {
		id, err := uuid.Parse(strings.TrimSpace(body.MemberID))
		if err != nil || (id != actor.UserID && !actor.IsAdmin()) {
			return legacyError(c, helper.ErrForbidden)
		}
		memberID = id
	}
	r, err := rc.Svc.CreatePlanningReservation(c.UserContext(), memberID, paID, body.Date)
	if err != nil {
		return legacyError(c, err)
	}
	return c.JSON(r)
}

// DELETE /api/planning takes the reservation id as a JSON string and answers it back.
func (rc *ReservationController) LegacyDelete(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return legacyError(c, err)
	}
	var raw string
	if err := sonic.Unmarshal(c.Body(), &raw); err != nil {
		return legacyError(c, err)
	}
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return legacyError(c, err)
	}
	if err := rc.Svc.DeleteReservation(c.UserContext(), actor, id); err != nil {
		return legacyError(c, err)
	}
	return c.JSON(id.String())
}

func legacyError(c *fiber.Ctx, err error) error {
	log.Printf("[PLANNING] %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusBadRequest).SendString("Erreur")
}
