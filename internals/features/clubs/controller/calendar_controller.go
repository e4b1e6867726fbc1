package controller

import (
	"context"

	"videoach_backend/internals/features/clubs/dto"
	"videoach_backend/internals/features/clubs/model"
	"videoach_backend/internals/features/clubs/service"
	helper "videoach_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CalendarController struct {
	Svc *service.CalendarService
}

func NewCalendarController(svc *service.CalendarService) *CalendarController {
	return &CalendarController{Svc: svc}
}

type calendarGetter func(c *fiber.Ctx, id uuid.UUID) (*model.OpeningCalendarModel, error)

func (cc *CalendarController) get(c *fiber.Ctx, param string, fn calendarGetter) error {
	id, err := helper.ParseUUIDParam(c, param)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	cal, err := fn(c, id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Calendar", cal)
}

// GET /api/clubs/:club_id/calendar
func (cc *CalendarController) GetCalendarForClub(c *fiber.Ctx) error {
	return cc.get(c, "club_id", func(c *fiber.Ctx, id uuid.UUID) (*model.OpeningCalendarModel, error) {
		return cc.Svc.GetCalendarForClub(c.UserContext(), id)
	})
}

func (cc *CalendarController) GetCalendarForSite(c *fiber.Ctx) error {
	return cc.get(c, "site_id", func(c *fiber.Ctx, id uuid.UUID) (*model.OpeningCalendarModel, error) {
		return cc.Svc.GetCalendarForSite(c.UserContext(), id)
	})
}

func (cc *CalendarController) GetCalendarForRoom(c *fiber.Ctx) error {
	return cc.get(c, "room_id", func(c *fiber.Ctx, id uuid.UUID) (*model.OpeningCalendarModel, error) {
		return cc.Svc.GetCalendarForRoom(c.UserContext(), id)
	})
}

type calendarCreator func(c *fiber.Ctx, actor helper.Actor, id uuid.UUID, in dto.CalendarRequest) (*model.OpeningCalendarModel, error)

func (cc *CalendarController) create(c *fiber.Ctx, param string, fn calendarCreator) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, param)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var body dto.CalendarRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}
	cal, err := fn(c, actor, id, body)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Calendar created", cal)
}

// POST /api/m/clubs/:club_id/calendar
func (cc *CalendarController) CreateClubCalendar(c *fiber.Ctx) error {
	return cc.create(c, "club_id", func(c *fiber.Ctx, a helper.Actor, id uuid.UUID, in dto.CalendarRequest) (*model.OpeningCalendarModel, error) {
		return cc.Svc.CreateForClub(c.UserContext(), a, id, in)
	})
}

func (cc *CalendarController) CreateSiteCalendar(c *fiber.Ctx) error {
	return cc.create(c, "site_id", func(c *fiber.Ctx, a helper.Actor, id uuid.UUID, in dto.CalendarRequest) (*model.OpeningCalendarModel, error) {
		return cc.Svc.CreateForSite(c.UserContext(), a, id, in)
	})
}

func (cc *CalendarController) CreateRoomCalendar(c *fiber.Ctx) error {
	return cc.create(c, "room_id", func(c *fiber.Ctx, a helper.Actor, id uuid.UUID, in dto.CalendarRequest) (*model.OpeningCalendarModel, error) {
		return cc.Svc.CreateForRoom(c.UserContext(), a, id, in)
	})
}

// PATCH /api/m/sites/:site_id/calendar
func (cc *CalendarController) UpdateSiteOpenWith(c *fiber.Ctx) error {
	return cc.openWith(c, "site_id", cc.Svc.UpdateSiteOpenWith)
}

func (cc *CalendarController) UpdateRoomOpenWith(c *fiber.Ctx) error {
	return cc.openWith(c, "room_id", cc.Svc.UpdateRoomOpenWith)
}

func (cc *CalendarController) openWith(c *fiber.Ctx, param string, fn func(ctx context.Context, a helper.Actor, id uuid.UUID, in dto.OpenWithRequest) error) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, param)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var body dto.OpenWithRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := fn(c.UserContext(), actor, id, body); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Calendar settings updated", body)
}
