package route

import (
	"videoach_backend/internals/constants"
	"videoach_backend/internals/features/pages/controller"
	"videoach_backend/internals/features/pages/service"
	"videoach_backend/internals/helpers/cache"
	authMiddleware "videoach_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func PagePublicRoutes(api fiber.Router, db *gorm.DB, store cache.Store) {
	ctrl := controller.NewPageController(service.NewPageService(db, store))

	api.Get("/clubs/:club_id/pages/:target", ctrl.GetPublishedPage)
}

func PageManagerRoutes(api fiber.Router, db *gorm.DB, store cache.Store) {
	ctrl := controller.NewPageController(service.NewPageService(db, store))
	guard := authMiddleware.OnlyRoles(constants.RoleErrorManager("pages"), constants.ManagerAndAbove...)

	api.Get("/clubs/:club_id/pages", guard, ctrl.GetPagesForClub)
	api.Post("/clubs/:club_id/pages", guard, ctrl.CreatePage)

	p := api.Group("/pages", guard)
	p.Get("/:id", ctrl.GetPageByID)
	p.Put("/:id", ctrl.UpdatePage)
	p.Put("/:id/sections", ctrl.UpdatePageSections)
	p.Delete("/:id", ctrl.DeletePage)
}
