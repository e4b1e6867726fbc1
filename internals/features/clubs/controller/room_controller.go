package controller

import (
	"videoach_backend/internals/features/clubs/dto"
	"videoach_backend/internals/features/clubs/service"
	helper "videoach_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
)

type RoomController struct {
	Svc *service.RoomService
}

func NewRoomController(svc *service.RoomService) *RoomController {
	return &RoomController{Svc: svc}
}

// GET /api/m/sites/:site_id/rooms
func (rc *RoomController) GetRoomsForSite(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	siteID, err := helper.ParseUUIDParam(c, "site_id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	rooms, err := rc.Svc.ListForSite(c.UserContext(), actor, siteID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Rooms", rooms)
}

func (rc *RoomController) GetRoomByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	room, err := rc.Svc.GetByID(c.UserContext(), id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Room", room)
}

func (rc *RoomController) CreateRoom(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	siteID, err := helper.ParseUUIDParam(c, "site_id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var body dto.RoomRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}
	room, err := rc.Svc.Create(c.UserContext(), actor, siteID, body)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Room created", room)
}

func (rc *RoomController) UpdateRoom(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var body dto.RoomRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}
	room, err := rc.Svc.Update(c.UserContext(), actor, id, body)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Room updated", room)
}

func (rc *RoomController) DeleteRoom(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := rc.Svc.Delete(c.UserContext(), actor, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Room deleted", fiber.Map{"room_id": id})
}

// POST /api/m/rooms/:id/activities/:activity_id
func (rc *RoomController) AffectActivity(c *fiber.Ctx) error {
	return rc.changeActivity(c, true)
}

// DELETE /api/m/rooms/:id/activities/:activity_id
func (rc *RoomController) RemoveActivity(c *fiber.Ctx) error {
	return rc.changeActivity(c, false)
}

func (rc *RoomController) changeActivity(c *fiber.Ctx, add bool) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	activityID, err := helper.ParseUUIDParam(c, "activity_id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if add {
		room, err := rc.Svc.AffectActivity(c.UserContext(), actor, id, activityID)
		if err != nil {
			return helper.JsonFromError(c, err)
		}
		return helper.JsonUpdated(c, "Activity added to room", room)
	}
	room, err := rc.Svc.RemoveActivity(c.UserContext(), actor, id, activityID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Activity removed from room", room)
}
