package route

import (
	"videoach_backend/internals/constants"
	userController "videoach_backend/internals/features/users/user/controller"
	"videoach_backend/internals/features/users/user/service"
	"videoach_backend/internals/helpers/cache"
	authMiddleware "videoach_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UserRoutes: the signed-in user's own data.
func UserRoutes(app fiber.Router, db *gorm.DB, store cache.Store) {
	ctrl := userController.NewUserController(service.NewUserService(db, store))

	me := app.Group("/users/me")
	me.Get("/", ctrl.GetMe)
	me.Get("/reservations", ctrl.GetMyReservations)
}

func UserAdminRoutes(app fiber.Router, db *gorm.DB, store cache.Store) {
	ctrl := userController.NewUserController(service.NewUserService(db, store))

	users := app.Group("/admin/users",
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("user management"), constants.AdminOnly...),
	)
	users.Get("/", ctrl.GetUsers)
	users.Get("/:id", ctrl.GetUserByID)
	users.Put("/:id", ctrl.UpdateUser)
	users.Delete("/:id", ctrl.DeleteUser)
}
