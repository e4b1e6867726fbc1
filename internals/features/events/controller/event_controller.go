package controller

import (
	"errors"

	"videoach_backend/internals/features/events/dto"
	"videoach_backend/internals/features/events/service"
	helper "videoach_backend/internals/helpers"
	"videoach_backend/internals/helpers/storage"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type EventController struct {
	Svc *service.EventService
}

func NewEventController(svc *service.EventService) *EventController {
	return &EventController{Svc: svc}
}

func imageError(c *fiber.Ctx, err error) error {
	if errors.Is(err, storage.ErrDisabled) {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Image uploads are not available")
	}
	return helper.JsonFromError(c, err)
}

// GET /api/clubs/:club_id/events/upcoming
func (ec *EventController) GetUpcomingEvents(c *fiber.Ctx) error {
	clubID, err := helper.ParseUUIDParam(c, "club_id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	out, err := ec.Svc.Upcoming(c.UserContext(), clubID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Upcoming events", out)
}

func (ec *EventController) GetEventsForClub(c *fiber.Ctx) error {
	clubID, err := helper.ParseUUIDParam(c, "club_id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	out, err := ec.Svc.ListForClub(c.UserContext(), clubID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Events", out)
}

func (ec *EventController) GetEventByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	e, err := ec.Svc.GetByID(c.UserContext(), id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Event", e)
}

// POST /api/m/clubs/:club_id/events (json or multipart with "images" files)
func (ec *EventController) CreateEvent(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	clubID, err := helper.ParseUUIDParam(c, "club_id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var body dto.EventRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}
	e, err := ec.Svc.Create(c.UserContext(), actor, clubID, body)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if form, ferr := c.MultipartForm(); ferr == nil && form != nil {
		for _, fh := range form.File["images"] {
			if e, err = ec.Svc.AddImage(c.UserContext(), actor, e.EventID, fh); err != nil {
				return imageError(c, err)
			}
		}
	}
	return helper.JsonCreated(c, "Event created", e)
}

func (ec *EventController) UpdateEvent(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var body dto.EventRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}
	e, err := ec.Svc.Update(c.UserContext(), actor, id, body)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Event updated", e)
}

func (ec *EventController) DeleteEvent(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := ec.Svc.Delete(c.UserContext(), actor, id); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "Event deleted", fiber.Map{"event_id": id})
}

// POST /api/m/events/:id/images (multipart "image")
func (ec *EventController) AddEventImage(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	fh, err := c.FormFile("image")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "image file is required")
	}
	e, err := ec.Svc.AddImage(c.UserContext(), actor, id, fh)
	if err != nil {
		return imageError(c, err)
	}
	return helper.JsonUpdated(c, "Image added", e)
}

// DELETE /api/m/events/:id/images?url=
func (ec *EventController) RemoveEventImage(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	url := c.Query("url")
	if url == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "url is required")
	}
	e, err := ec.Svc.RemoveImage(c.UserContext(), actor, id, url)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Image removed", e)
}
