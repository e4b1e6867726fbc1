package route

import (
	"videoach_backend/internals/constants"
	"videoach_backend/internals/features/events/controller"
	"videoach_backend/internals/features/events/service"
	"videoach_backend/internals/helpers/cache"
	"videoach_backend/internals/helpers/storage"
	authMiddleware "videoach_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func EventPublicRoutes(api fiber.Router, db *gorm.DB, store cache.Store) {
	ctrl := controller.NewEventController(service.NewEventService(db, store, nil))

	api.Get("/clubs/:club_id/events", ctrl.GetEventsForClub)
	api.Get("/clubs/:club_id/events/upcoming", ctrl.GetUpcomingEvents)
	api.Get("/events/:id", ctrl.GetEventByID)
}

func EventManagerRoutes(api fiber.Router, db *gorm.DB, store cache.Store, up storage.Uploader) {
	ctrl := controller.NewEventController(service.NewEventService(db, store, up))
	guard := authMiddleware.OnlyRoles(constants.RoleErrorManager("events"), constants.ManagerAndAbove...)

	api.Post("/clubs/:club_id/events", guard, ctrl.CreateEvent)

	e := api.Group("/events", guard)
	e.Put("/:id", ctrl.UpdateEvent)
	e.Delete("/:id", ctrl.DeleteEvent)
	e.Post("/:id/images", ctrl.AddEventImage)
	e.Delete("/:id/images", ctrl.RemoveEventImage)
}
