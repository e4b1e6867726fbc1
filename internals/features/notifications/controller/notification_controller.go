package controller

import (
	"videoach_backend/internals/features/notifications/dto"
	"videoach_backend/internals/features/notifications/service"
	helper "videoach_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var validate = validator.New()

type NotificationController struct {
	Svc *service.NotificationService
}

func NewNotificationController(svc *service.NotificationService) *NotificationController {
	return &NotificationController{Svc: svc}
}

// GET /api/m/notifications?unread=true
func (nc *NotificationController) GetMyNotifications(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	out, err := nc.Svc.ListMine(c.UserContext(), userID, c.QueryBool("unread", false))
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Notifications", out)
}

func (nc *NotificationController) MarkRead(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := nc.Svc.MarkRead(c.UserContext(), userID, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Notification read", fiber.Map{"notification_id": id})
}

func (nc *NotificationController) MarkAllRead(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	n, err := nc.Svc.MarkAllRead(c.UserContext(), userID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Notifications read", fiber.Map{"updated": n})
}

// POST /api/m/notifications (admin)
func (nc *NotificationController) NotifyUser(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var body dto.NotifyUserRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}
	from := actor.UserID
	out, err := nc.Svc.Notify(c.UserContext(), &from, []uuid.UUID{body.UserID}, body.Type, body.Message)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Notification sent", out)
}

// POST /api/m/clubs/:club_id/notifications
func (nc *NotificationController) NotifyClubMembers(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	clubID, err := helper.ParseUUIDParam(c, "club_id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var body dto.NotifyClubRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}
	out, err := nc.Svc.NotifyClubMembers(c.UserContext(), actor, clubID, body.Type, body.Message)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Notifications sent", fiber.Map{"sent": len(out)})
}
