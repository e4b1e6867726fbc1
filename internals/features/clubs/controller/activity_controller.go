package controller

import (
	"videoach_backend/internals/features/clubs/dto"
	"videoach_backend/internals/features/clubs/service"
	helper "videoach_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
)

type ActivityController struct {
	Svc *service.ActivityService
}

func NewActivityController(svc *service.ActivityService) *ActivityController {
	return &ActivityController{Svc: svc}
}

// =======================
// Activities
// =======================

// GET /api/clubs/:club_id/activities
func (ac *ActivityController) GetActivitiesForClub(c *fiber.Ctx) error {
	clubID, err := helper.ParseUUIDParam(c, "club_id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	list, err := ac.Svc.ListForClub(c.UserContext(), clubID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Activities", list)
}

func (ac *ActivityController) CreateActivity(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	clubID, err := helper.ParseUUIDParam(c, "club_id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var body dto.ActivityRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}
	a, err := ac.Svc.Create(c.UserContext(), actor, clubID, body)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Activity created", a)
}

func (ac *ActivityController) UpdateActivity(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var body dto.ActivityRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}
	a, err := ac.Svc.Update(c.UserContext(), actor, id, body)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Activity updated", a)
}

func (ac *ActivityController) DeleteActivity(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := ac.Svc.Delete(c.UserContext(), actor, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Activity deleted", fiber.Map{"activity_id": id})
}

// PUT /api/m/clubs/:club_id/activities
func (ac *ActivityController) UpdateClubActivities(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	clubID, err := helper.ParseUUIDParam(c, "club_id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var body dto.UpdateClubActivitiesRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}
	list, err := ac.Svc.UpdateClubActivities(c.UserContext(), actor, clubID, body.Activities)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Club activities updated", list)
}

// =======================
// Activity groups
// =======================

// GET /api/m/activity-groups
func (ac *ActivityController) GetActivityGroupsForUser(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	list, err := ac.Svc.GroupsForUser(c.UserContext(), actor.UserID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Activity groups", list)
}

func (ac *ActivityController) CreateActivityGroup(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var body dto.ActivityGroupRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}
	g, err := ac.Svc.CreateGroup(c.UserContext(), actor, body)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Activity group created", g)
}

func (ac *ActivityController) UpdateActivityGroup(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var body dto.ActivityGroupRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}
	g, err := ac.Svc.UpdateGroup(c.UserContext(), actor, id, body)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Activity group updated", g)
}

func (ac *ActivityController) DeleteActivityGroup(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := ac.Svc.DeleteGroup(c.UserContext(), actor, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Activity group deleted", fiber.Map{"activity_group_id": id})
}
