package controller

import (
	"time"

	"videoach_backend/internals/features/plannings/dto"
	"videoach_backend/internals/features/plannings/service"
	helper "videoach_backend/internals/helpers"
	"videoach_backend/internals/helpers/dbtime"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type PlanningController struct {
	Svc *service.PlanningService
}

func NewPlanningController(svc *service.PlanningService) *PlanningController {
	return &PlanningController{Svc: svc}
}

// dayQuery reads ?date=YYYY-MM-DD, today when absent.
func dayQuery(c *fiber.Ctx, now time.Time) (time.Time, error) {
	raw := c.Query("date")
	if raw == "" {
		return now, nil
	}
	d, err := dbtime.ParseDate(raw)
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "Invalid input")
	}
	return d, nil
}

// GET /api/m/clubs/:club_id/plannings
func (pc *PlanningController) GetPlanningsForClub(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	clubID, err := helper.ParseUUIDParam(c, "club_id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	out, err := pc.Svc.ListForClub(c.UserContext(), actor, clubID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Plannings", out)
}

func (pc *PlanningController) GetPlanningByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	p, err := pc.Svc.GetByID(c.UserContext(), id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Planning", p)
}

func (pc *PlanningController) CreatePlanning(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	clubID, err := helper.ParseUUIDParam(c, "club_id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var body dto.PlanningRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}
	p, err := pc.Svc.Create(c.UserContext(), actor, clubID, body)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Planning created", p)
}

func (pc *PlanningController) UpdatePlanning(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var body dto.PlanningRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}
	p, err := pc.Svc.Update(c.UserContext(), actor, id, body)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Planning updated", p)
}

func (pc *PlanningController) DeletePlanning(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := pc.Svc.Delete(c.UserContext(), actor, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Planning deleted", fiber.Map{"planning_id": id})
}

// POST /api/m/plannings/:id/duplicate
func (pc *PlanningController) DuplicatePlanning(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var body dto.DuplicatePlanningRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}
	p, err := pc.Svc.Duplicate(c.UserContext(), actor, id, body)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Planning duplicated", p)
}

// POST /api/m/plannings/:id/activities
func (pc *PlanningController) CreatePlanningActivity(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var body dto.PlanningActivityRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}
	pa, err := pc.Svc.CreateActivity(c.UserContext(), actor, id, body)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Planning activity created", pa)
}

func (pc *PlanningController) UpdatePlanningActivity(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var body dto.PlanningActivityRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}
	pa, err := pc.Svc.UpdateActivity(c.UserContext(), actor, id, body)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Planning activity updated", pa)
}

func (pc *PlanningController) DeletePlanningActivity(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := pc.Svc.DeleteActivity(c.UserContext(), actor, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Planning activity deleted", fiber.Map{"planning_activity_id": id})
}

// GET /api/clubs/:club_id/planning?date=
func (pc *PlanningController) GetClubDailyPlanning(c *fiber.Ctx) error {
	clubID, err := helper.ParseUUIDParam(c, "club_id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	day, err := dayQuery(c, pc.Svc.Now())
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	out, err := pc.Svc.GetClubDailyPlanning(c.UserContext(), clubID, day)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Club planning", out)
}

// GET /api/clubs/:club_id/coaches/:coach_id/planning
func (pc *PlanningController) GetCoachPlanningForClub(c *fiber.Ctx) error {
	clubID, err := helper.ParseUUIDParam(c, "club_id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	coachID, err := helper.ParseUUIDParam(c, "coach_id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	out, err := pc.Svc.GetCoachPlanningForClub(c.UserContext(), clubID, coachID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Coach planning", out)
}
