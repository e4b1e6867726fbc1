package route

import (
	"videoach_backend/internals/constants"
	"videoach_backend/internals/features/notifications/controller"
	"videoach_backend/internals/features/notifications/service"
	authMiddleware "videoach_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
)

// NotificationRoutes share the service built at startup so the kafka writer is opened once.
func NotificationRoutes(api fiber.Router, svc *service.NotificationService) {
	ctrl := controller.NewNotificationController(svc)

	n := api.Group("/notifications")
	n.Get("/", ctrl.GetMyNotifications)
	n.Put("/read-all", ctrl.MarkAllRead)
	n.Put("/:id/read", ctrl.MarkRead)
	n.Post("/", authMiddleware.OnlyRoles(constants.RoleErrorAdmin("direct notifications"), constants.AdminOnly...), ctrl.NotifyUser)

	api.Post("/clubs/:club_id/notifications",
		authMiddleware.OnlyRoles(constants.RoleErrorManager("club notifications"), constants.ManagerAndAbove...),
		ctrl.NotifyClubMembers)
}
