package controller

import (
	"strings"

	"videoach_backend/internals/features/pricing/dto"
	"videoach_backend/internals/features/pricing/plans"
	"videoach_backend/internals/features/pricing/service"
	helper "videoach_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validatePricing = validator.New()

type PricingController struct {
	Svc *service.PricingService
}

func NewPricingController(svc *service.PricingService) *PricingController {
	return &PricingController{Svc: svc}
}

// =======================
// 📄 Public reads
// =======================

// GET /pricing?role=MANAGER
func (ctrl *PricingController) GetPricing(c *fiber.Ctx) error {
	role := strings.ToUpper(strings.TrimSpace(c.Query("role")))
	if role == "" {
		list, err := ctrl.Svc.GetAllPricing(c.UserContext())
		if err != nil {
			return helper.JsonFromError(c, err)
		}
		out := list[:0:0]
		for _, p := range list {
			if !p.PricingDeleted {
				out = append(out, p)
			}
		}
		return helper.JsonOK(c, "Pricing list", out)
	}
	list, err := ctrl.Svc.GetPricingForRole(c.UserContext(), role)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Pricing list", list)
}

func (ctrl *PricingController) GetPricingByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	p, err := ctrl.Svc.GetPricingByID(c.UserContext(), id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Pricing", p)
}

// GET /pricing/plans: the default catalogue with its limits
func (ctrl *PricingController) GetPlans(c *fiber.Ctx) error {
	role := strings.ToUpper(strings.TrimSpace(c.Query("role")))
	list := plans.All()
	if role != "" {
		list = plans.ForRole(role)
	}
	return helper.JsonOK(c, "Plans", list)
}

// =======================
// 🔒 Admin
// =======================

func (ctrl *PricingController) GetAllPricing(c *fiber.Ctx) error {
	list, err := ctrl.Svc.GetAllPricing(c.UserContext())
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Pricing list", list)
}

func (ctrl *PricingController) parse(c *fiber.Ctx) (*dto.PricingRequest, error) {
	var body dto.PricingRequest
	if err := c.BodyParser(&body); err != nil {
		return nil, helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validatePricing.Struct(&body); err != nil {
		return nil, helper.JsonValidationError(c, err)
	}
	return &body, nil
}

func (ctrl *PricingController) CreatePricing(c *fiber.Ctx) error {
	body, err := ctrl.parse(c)
	if body == nil {
		return err
	}
	p, err := ctrl.Svc.Create(c.UserContext(), body.ToModel())
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Pricing created", p)
}

func (ctrl *PricingController) UpdatePricing(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	body, err := ctrl.parse(c)
	if body == nil {
		return err
	}
	p, err := ctrl.Svc.Update(c.UserContext(), id, body.ToModel())
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Pricing updated", p)
}

func (ctrl *PricingController) DeletePricing(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := ctrl.Svc.Delete(c.UserContext(), id); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Pricing deleted", fiber.Map{"pricing_id": id})
}

func (ctrl *PricingController) UndeletePricing(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := ctrl.Svc.Undelete(c.UserContext(), id); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Pricing restored", fiber.Map{"pricing_id": id})
}

// DELETE /pricing/:id/options/:name
func (ctrl *PricingController) DeletePricingOption(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	name := strings.TrimSpace(c.Params("name"))
	if name == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Option name is required")
	}
	n, err := ctrl.Svc.DeleteOption(c.UserContext(), id, name)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Option deleted", fiber.Map{"deleted": n})
}

// POST /pricing/seed
func (ctrl *PricingController) SeedPlans(c *fiber.Ctx) error {
	if err := plans.Seed(c.UserContext(), ctrl.Svc.DB); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Plans seeded", nil)
}
