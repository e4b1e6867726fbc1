package controller

import (
	"log"
	"strconv"

	"videoach_backend/internals/configs"
	"videoach_backend/internals/features/clubs/dto"
	"videoach_backend/internals/features/clubs/service"
	helper "videoach_backend/internals/helpers"
	"videoach_backend/internals/helpers/geo"

	"github.com/gofiber/fiber/v2"
)

type SiteController struct {
	Svc *service.SiteService
}

func NewSiteController(svc *service.SiteService) *SiteController {
	return &SiteController{Svc: svc}
}

func queryFloat(c *fiber.Ctx, key string, def float64) (float64, bool) {
	raw := c.Query(key)
	if raw == "" {
		return def, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	return v, err == nil
}

// GET /api/site?locationLng=&locationLat=&range=
// Answers the bare array: this route is consumed by the public map widget.
func (sc *SiteController) SearchSites(c *fiber.Ctx) error {
	lng, ok1 := queryFloat(c, "locationLng", configs.DefaultLongitude)
	lat, ok2 := queryFloat(c, "locationLat", configs.DefaultLatitude)
	// range=0 is a real query; only a missing range gets the default
	rng, ok3 := queryFloat(c, "range", geo.DefaultRangeKm)
	if !ok1 || !ok2 || !ok3 {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid input")
	}
	sites, err := sc.Svc.Search(c.UserContext(), dto.SiteSearchQuery{Lng: lng, Lat: lat, Range: rng})
	if err != nil {
		if helper.StatusFor(err) == fiber.StatusBadRequest {
			return c.Status(fiber.StatusBadRequest).SendString("Invalid input")
		}
		log.Printf("[SITE] search failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Erreur lors de la récupération des sites")
	}
	return c.JSON(sites)
}

// GET /api/m/clubs/:club_id/sites
func (sc *SiteController) GetSitesForClub(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	clubID, err := helper.ParseUUIDParam(c, "club_id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	sites, err := sc.Svc.ListForClub(c.UserContext(), actor, clubID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Sites", sites)
}

func (sc *SiteController) GetSiteByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	site, err := sc.Svc.GetByID(c.UserContext(), id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Site", site)
}

func (sc *SiteController) CreateSite(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	clubID, err := helper.ParseUUIDParam(c, "club_id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var body dto.SiteRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}
	site, err := sc.Svc.Create(c.UserContext(), actor, clubID, body)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Site created", site)
}

func (sc *SiteController) UpdateSite(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var body dto.SiteRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}
	site, err := sc.Svc.Update(c.UserContext(), actor, id, body)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Site updated", site)
}

func (sc *SiteController) DeleteSite(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := sc.Svc.Delete(c.UserContext(), actor, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Site deleted", fiber.Map{"site_id": id})
}
