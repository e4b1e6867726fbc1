package controller

import (
	"videoach_backend/internals/features/dashboards/service"
	helper "videoach_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type DashboardController struct {
	Svc *service.DashboardService
}

func NewDashboardController(svc *service.DashboardService) *DashboardController {
	return &DashboardController{Svc: svc}
}

// subject is the signed-in user, or ?user_id= when an admin asks.
func subject(c *fiber.Ctx) (uuid.UUID, error) {
	actor, err := helper.GetActor(c)
	if err != nil {
		return uuid.Nil, err
	}
	if q := c.Query("user_id"); q != "" && actor.IsAdmin() {
		id, err := uuid.Parse(q)
		if err != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid user_id")
		}
		return id, nil
	}
	return actor.UserID, nil
}

// GET /api/m/dashboard/manager
func (dc *DashboardController) GetManagerDashboard(c *fiber.Ctx) error {
	id, err := subject(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	d, err := dc.Svc.Manager(c.UserContext(), id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Manager dashboard", d)
}

// GET /api/m/dashboard/coach
func (dc *DashboardController) GetCoachDashboard(c *fiber.Ctx) error {
	id, err := subject(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	d, err := dc.Svc.Coach(c.UserContext(), id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Coach dashboard", d)
}

// GET /api/m/admin/dashboard
func (dc *DashboardController) GetAdminDashboard(c *fiber.Ctx) error {
	d, err := dc.Svc.Admin(c.UserContext())
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Admin data", d)
}
