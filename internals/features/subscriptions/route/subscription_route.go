package route

import (
	"videoach_backend/internals/constants"
	pricingService "videoach_backend/internals/features/pricing/service"
	"videoach_backend/internals/features/subscriptions/controller"
	"videoach_backend/internals/features/subscriptions/service"
	"videoach_backend/internals/helpers/cache"
	authMiddleware "videoach_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SubscriptionPublicRoutes: offers of a club and id → name lookups.
func SubscriptionPublicRoutes(api fiber.Router, db *gorm.DB, store cache.Store) {
	ctrl := controller.NewSubscriptionController(service.NewSubscriptionService(db, store, pricingService.NewPricingService(db, store)))

	api.Get("/clubs/:club_id/subscriptions", ctrl.GetPublicSubscriptions)
	api.Post("/subscriptions/names", ctrl.GetDataNames)
	api.Get("/subscriptions/:id", ctrl.GetSubscriptionByID)
}

// SubscriptionMemberRoutes: the signed-in member joins and leaves club subscriptions.
func SubscriptionMemberRoutes(api fiber.Router, db *gorm.DB, store cache.Store, notify service.Notifier) {
	svc := service.NewSubscriptionService(db, store, pricingService.NewPricingService(db, store))
	svc.Notify = notify
	ctrl := controller.NewSubscriptionController(svc)

	me := api.Group("/subscriptions")
	me.Get("/mine", ctrl.GetMySubscriptions)
	me.Post("/:id/subscribe", ctrl.Subscribe)
	me.Delete("/:id/subscribe", ctrl.Unsubscribe)
}

func SubscriptionManagerRoutes(api fiber.Router, db *gorm.DB, store cache.Store) {
	ctrl := controller.NewSubscriptionController(service.NewSubscriptionService(db, store, pricingService.NewPricingService(db, store)))
	guard := authMiddleware.OnlyRoles(constants.RoleErrorManager("subscriptions"), constants.ManagerAndAbove...)

	clubs := api.Group("/clubs/:club_id/subscriptions", guard)
	clubs.Get("/", ctrl.GetSubscriptionsForClub)
	clubs.Post("/", ctrl.CreateSubscription)
	clubs.Post("/choices", ctrl.GetPossibleChoice)

	// members share the /subscriptions prefix, so the guard goes on each route
	api.Put("/subscriptions/:id", guard, ctrl.UpdateSubscription)
	api.Put("/subscriptions/:id/selection", guard, ctrl.UpdateSubscriptionSelection)
	api.Delete("/subscriptions/:id", guard, ctrl.DeleteSubscription)
}
