package route

import (
	"videoach_backend/internals/configs"
	"videoach_backend/internals/features/users/user/service"
	"videoach_backend/internals/features/webhooks/controller"
	"videoach_backend/internals/helpers/cache"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// WebhookRoutes are called by third parties: no JWT, each checks its own secret.
func WebhookRoutes(api fiber.Router, db *gorm.DB, store cache.Store) {
	ctrl := controller.NewWebhookController(
		service.NewUserService(db, store),
		store,
		configs.AuthWebhookSecret,
		configs.CacheWebhookToken,
	)

	wh := api.Group("/webhooks")
	wh.Get("/clear-cache", ctrl.ClearCache)
	wh.Post("/auth", ctrl.AuthProvider)
}
