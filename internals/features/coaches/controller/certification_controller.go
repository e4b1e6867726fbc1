package controller

import (
	"videoach_backend/internals/features/coaches/dto"
	"videoach_backend/internals/features/coaches/service"
	helper "videoach_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
)

type CertificationController struct {
	Svc *service.CertificationService
}

func NewCertificationController(svc *service.CertificationService) *CertificationController {
	return &CertificationController{Svc: svc}
}

func (cc *CertificationController) GetGroups(c *fiber.Ctx) error {
	out, err := cc.Svc.ListGroups(c.UserContext())
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Certification groups", out)
}

func (cc *CertificationController) GetGroupByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	g, err := cc.Svc.GetGroup(c.UserContext(), id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Certification group", g)
}

func (cc *CertificationController) CreateGroup(c *fiber.Ctx) error {
	var body dto.CertificationGroupRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}
	g, err := cc.Svc.CreateGroup(c.UserContext(), body)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Certification group created", g)
}

func (cc *CertificationController) RenameGroup(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var body dto.CertificationGroupRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}
	g, err := cc.Svc.RenameGroup(c.UserContext(), id, body.Name)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Certification group updated", g)
}

func (cc *CertificationController) DeleteGroup(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := cc.Svc.DeleteGroup(c.UserContext(), id); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Certification group deleted", fiber.Map{"certification_group_id": id})
}

// POST /api/m/admin/certification-groups/:id/modules
func (cc *CertificationController) CreateModule(c *fiber.Ctx) error {
	groupID, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var body dto.CertificationModuleRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}
	m, err := cc.Svc.CreateModule(c.UserContext(), groupID, body)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Certification module created", m)
}

func (cc *CertificationController) UpdateModule(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var body dto.CertificationModuleRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}
	m, err := cc.Svc.UpdateModule(c.UserContext(), id, body)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Certification module updated", m)
}

func (cc *CertificationController) DeleteModule(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := cc.Svc.DeleteModule(c.UserContext(), id); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Certification module deleted", fiber.Map{"certification_module_id": id})
}

// GET /api/coaches/:user_id/certifications
func (cc *CertificationController) GetCoachCertifications(c *fiber.Ctx) error {
	userID, err := helper.ParseUUIDParam(c, "user_id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	out, err := cc.Svc.ListForCoach(c.UserContext(), userID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Certifications", out)
}

func (cc *CertificationController) GetMyCertifications(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	out, err := cc.Svc.ListForCoach(c.UserContext(), userID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Certifications", out)
}

func (cc *CertificationController) CreateCertification(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var body dto.CertificationRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}
	out, err := cc.Svc.CreateCertification(c.UserContext(), actor, body)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Certification created", out)
}

func (cc *CertificationController) UpdateCertification(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var body dto.CertificationRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}
	out, err := cc.Svc.UpdateCertification(c.UserContext(), actor, id, body)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Certification updated", out)
}

func (cc *CertificationController) DeleteCertification(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := cc.Svc.DeleteCertification(c.UserContext(), actor, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Certification deleted", fiber.Map{"certification_id": id})
}
