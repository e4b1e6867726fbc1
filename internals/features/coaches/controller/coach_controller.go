package controller

import (
	"videoach_backend/internals/features/coaches/dto"
	"videoach_backend/internals/features/coaches/service"
	helper "videoach_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type CoachController struct {
	Svc *service.CoachService
}

func NewCoachController(svc *service.CoachService) *CoachController {
	return &CoachController{Svc: svc}
}

// GET /api/coaches/:user_id/profile
func (cc *CoachController) GetCoachProfile(c *fiber.Ctx) error {
	userID, err := helper.ParseUUIDParam(c, "user_id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	p, err := cc.Svc.GetProfile(c.UserContext(), userID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Coach profile", p)
}

func (cc *CoachController) GetMyProfile(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	p, err := cc.Svc.GetProfile(c.UserContext(), userID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Coach profile", p)
}

// PUT /api/m/coach/profile
func (cc *CoachController) UpsertMyProfile(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var body dto.CoachProfileRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}
	p, err := cc.Svc.UpsertProfile(c.UserContext(), userID, body)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Coach profile saved", p)
}

// GET /api/coaches/:user_id/offers
func (cc *CoachController) GetCoachOffers(c *fiber.Ctx) error {
	userID, err := helper.ParseUUIDParam(c, "user_id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	out, err := cc.Svc.ListOffers(c.UserContext(), userID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Coach offers", out)
}

func (cc *CoachController) GetMyOffers(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	out, err := cc.Svc.ListOffers(c.UserContext(), userID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Coach offers", out)
}

func (cc *CoachController) CreateOffer(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var body dto.CoachOfferRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}
	o, err := cc.Svc.CreateOffer(c.UserContext(), actor, body)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Offer created", o)
}

func (cc *CoachController) UpdateOffer(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var body dto.CoachOfferRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}
	o, err := cc.Svc.UpdateOffer(c.UserContext(), actor, id, body)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Offer updated", o)
}

func (cc *CoachController) DeleteOffer(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := cc.Svc.DeleteOffer(c.UserContext(), actor, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Offer deleted", fiber.Map{"coach_offer_id": id})
}

// GET /api/clubs/:club_id/coaches
func (cc *CoachController) GetClubCoaches(c *fiber.Ctx) error {
	clubID, err := helper.ParseUUIDParam(c, "club_id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	out, err := cc.Svc.ListClubCoaches(c.UserContext(), clubID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Club coaches", out)
}

func (cc *CoachController) GetMyClubs(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	out, err := cc.Svc.ClubsOfCoach(c.UserContext(), userID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Clubs", out)
}

// POST /api/m/clubs/:club_id/coaches
func (cc *CoachController) LinkCoach(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	clubID, err := helper.ParseUUIDParam(c, "club_id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var body dto.LinkCoachRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if err := cc.Svc.LinkCoach(c.UserContext(), actor, clubID, body.UserID); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Coach linked", fiber.Map{"club_id": clubID, "user_id": body.UserID})
}

// DELETE /api/m/clubs/:club_id/coaches/:user_id
func (cc *CoachController) UnlinkCoach(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	clubID, err := helper.ParseUUIDParam(c, "club_id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	userID, err := helper.ParseUUIDParam(c, "user_id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := cc.Svc.UnlinkCoach(c.UserContext(), actor, clubID, userID); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Coach unlinked", fiber.Map{"club_id": clubID, "user_id": userID})
}
