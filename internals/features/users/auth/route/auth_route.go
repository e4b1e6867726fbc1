package route

import (
	controller "videoach_backend/internals/features/users/auth/controller"
	rateLimiter "videoach_backend/internals/middlewares"
	authMiddleware "videoach_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthRoutes mounts /api/auth. Login and register are rate limited per IP.
func AuthRoutes(app *fiber.App, db *gorm.DB) {
	authController := controller.NewAuthController(db)

	auth := app.Group("/api/auth")
	auth.Post("/register", rateLimiter.RegisterRateLimiter(), authController.Register)
	auth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	auth.Post("/login-google", rateLimiter.LoginRateLimiter(), authController.LoginGoogle)
	auth.Post("/refresh-token", authController.RefreshToken)
	auth.Post("/logout", authController.Logout)

	protected := app.Group("/api/auth/me", authMiddleware.AuthMiddleware(db))
	protected.Post("/change-password", authController.ChangePassword)
}
