package controller

import (
	"strings"

	"videoach_backend/internals/features/pages/dto"
	"videoach_backend/internals/features/pages/service"
	helper "videoach_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type PageController struct {
	Svc *service.PageService
}

func NewPageController(svc *service.PageService) *PageController {
	return &PageController{Svc: svc}
}

// GET /api/clubs/:club_id/pages/:target
func (pc *PageController) GetPublishedPage(c *fiber.Ctx) error {
	clubID, err := helper.ParseUUIDParam(c, "club_id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	p, err := pc.Svc.GetPublished(c.UserContext(), clubID, strings.ToUpper(c.Params("target")))
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Page", p)
}

func (pc *PageController) GetPagesForClub(c *fiber.Ctx) error {
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
	return helper.JsonOK(c, "Pages", out)
}

func (pc *PageController) GetPageByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	p, err := pc.Svc.GetByID(c.UserContext(), id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Page", p)
}

func (pc *PageController) CreatePage(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	clubID, err := helper.ParseUUIDParam(c, "club_id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var body dto.PageRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	body.Target = strings.ToUpper(body.Target)
	if err := validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}
	p, err := pc.Svc.Create(c.UserContext(), actor, clubID, body)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Page created", p)
}

func (pc *PageController) UpdatePage(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var body dto.PageRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	body.Target = strings.ToUpper(body.Target)
	if err := validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}
	p, err := pc.Svc.Update(c.UserContext(), actor, id, body)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Page updated", p)
}

// PUT /api/m/pages/:id/sections
func (pc *PageController) UpdatePageSections(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var body dto.UpdateSectionsRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}
	p, err := pc.Svc.UpdateSections(c.UserContext(), actor, id, body)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Page sections updated", p)
}

func (pc *PageController) DeletePage(c *fiber.Ctx) error {
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
	return helper.JsonDeleted(c, "Page deleted", fiber.Map{"page_id": id})
}
