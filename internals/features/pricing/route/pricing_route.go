package route

import (
	"videoach_backend/internals/features/pricing/controller"
	"videoach_backend/internals/features/pricing/service"
	"videoach_backend/internals/helpers/cache"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func PricingPublicRoutes(api fiber.Router, db *gorm.DB, store cache.Store) {
	ctrl := controller.NewPricingController(service.NewPricingService(db, store))

	g := api.Group("/pricing")
	g.Get("/", ctrl.GetPricing)
	g.Get("/plans", ctrl.GetPlans)
	g.Get("/:id", ctrl.GetPricingByID)
}

func PricingAdminRoutes(admin fiber.Router, db *gorm.DB, store cache.Store) {
	ctrl := controller.NewPricingController(service.NewPricingService(db, store))

	g := admin.Group("/pricing")
	g.Get("/", ctrl.GetAllPricing)
	g.Post("/", ctrl.CreatePricing)
	g.Post("/seed", ctrl.SeedPlans)
	g.Put("/:id", ctrl.UpdatePricing)
	g.Delete("/:id", ctrl.DeletePricing)
	g.Post("/:id/undelete", ctrl.UndeletePricing)
	g.Delete("/:id/options/:name", ctrl.DeletePricingOption)
}
