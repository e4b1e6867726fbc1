package controller

import (
	"errors"

	"videoach_backend/internals/features/clubs/dto"
	"videoach_backend/internals/features/clubs/service"
	helper "videoach_backend/internals/helpers"
	"videoach_backend/internals/helpers/storage"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type ClubController struct {
	Svc *service.ClubService
}

func NewClubController(svc *service.ClubService) *ClubController {
	return &ClubController{Svc: svc}
}

// =======================
// 📄 Reads
// =======================

// GET /api/m/clubs
func (cc *ClubController) GetMyClubs(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	clubs, err := cc.Svc.ListForManager(c.UserContext(), actor.UserID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Clubs", clubs)
}

func (cc *ClubController) GetClubByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	club, err := cc.Svc.GetByID(c.UserContext(), id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Club", club)
}

// GET /api/clubs/slug/:slug
func (cc *ClubController) GetClubBySlug(c *fiber.Ctx) error {
	club, err := cc.Svc.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Club", club)
}

// =======================
// ➕ Create / ✏️ Update / 🗑️ Delete
// =======================

// POST /api/m/clubs (json or multipart with a "logo" file)
func (cc *ClubController) CreateClub(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var body dto.CreateClubRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	body.Normalize()
	if err := validate.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}
	club, err := cc.Svc.Create(c.UserContext(), actor, body)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if fh, ferr := c.FormFile("logo"); ferr == nil && fh != nil {
		url, err := cc.Svc.UploadLogo(c.UserContext(), actor, club.ClubID, fh)
		if err != nil {
			return logoError(c, err)
		}
		club.ClubLogoURL = &url
	}
	return helper.JsonCreated(c, "Club created", club)
}

func (cc *ClubController) UpdateClub(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var body dto.UpdateClubRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if fh, ferr := c.FormFile("logo"); ferr == nil && fh != nil {
		if _, err := cc.Svc.UploadLogo(c.UserContext(), actor, id, fh); err != nil {
			return logoError(c, err)
		}
		body.DeleteLogo = false
	}
	club, err := cc.Svc.Update(c.UserContext(), actor, id, body)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Club updated", club)
}

func (cc *ClubController) DeleteClub(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := cc.Svc.Delete(c.UserContext(), actor, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Club deleted", fiber.Map{"club_id": id})
}

func logoError(c *fiber.Ctx, err error) error {
	if errors.Is(err, storage.ErrDisabled) {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Image uploads are not available")
	}
	return helper.JsonFromError(c, err)
}
