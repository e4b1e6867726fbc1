package route

import (
	"videoach_backend/internals/constants"
	"videoach_backend/internals/features/dashboards/controller"
	"videoach_backend/internals/features/dashboards/service"
	"videoach_backend/internals/helpers/cache"
	authMiddleware "videoach_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func DashboardRoutes(api fiber.Router, db *gorm.DB, store cache.Store) {
	ctrl := controller.NewDashboardController(service.NewDashboardService(db, store))

	api.Get("/dashboard/manager",
		authMiddleware.OnlyRoles(constants.RoleErrorManager("the manager dashboard"), constants.ManagerAndAbove...),
		ctrl.GetManagerDashboard)
	api.Get("/dashboard/coach",
		authMiddleware.OnlyRoles(constants.RoleErrorCoach("the coach dashboard"), constants.CoachAndAbove...),
		ctrl.GetCoachDashboard)
	api.Get("/admin/dashboard",
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("admin data"), constants.AdminOnly...),
		ctrl.GetAdminDashboard)
}
