package route

import (
	"videoach_backend/internals/configs"
	"videoach_backend/internals/constants"
	"videoach_backend/internals/features/plannings/controller"
	"videoach_backend/internals/features/plannings/service"
	"videoach_backend/internals/helpers/cache"
	"videoach_backend/internals/helpers/qr"
	rateLimiter "videoach_backend/internals/middlewares"
	authMiddleware "videoach_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func newReservationController(db *gorm.DB, store cache.Store) *controller.ReservationController {
	return controller.NewReservationController(service.NewReservationService(db, store, qr.NewGenerator(configs.QRSecret)))
}

// PlanningPublicRoutes: club day planning and coach planning.
func PlanningPublicRoutes(api fiber.Router, db *gorm.DB, store cache.Store) {
	ctrl := controller.NewPlanningController(service.NewPlanningService(db, store))

	api.Get("/clubs/:club_id/planning", ctrl.GetClubDailyPlanning)
	api.Get("/clubs/:club_id/coaches/:coach_id/planning", ctrl.GetCoachPlanningForClub)
}

// PlanningLegacyRoutes keeps POST/DELETE /api/planning and their plain "Erreur" answers.
// Mounted behind the optional auth so anonymous calls still get that answer.
func PlanningLegacyRoutes(api fiber.Router, db *gorm.DB, store cache.Store) {
	ctrl := newReservationController(db, store)

	api.Post("/planning", rateLimiter.ReservationRateLimiter(), ctrl.LegacyCreate)
	api.Delete("/planning", ctrl.LegacyDelete)
}

// ReservationRoutes: the signed-in member's day planning and bookings.
func ReservationRoutes(api fiber.Router, db *gorm.DB, store cache.Store) {
	ctrl := newReservationController(db, store)

	api.Get("/planning/me", ctrl.GetMyDailyPlanning)

	r := api.Group("/reservations")
	r.Post("/planning", rateLimiter.ReservationRateLimiter(), ctrl.CreatePlanningReservation)
	r.Post("/activity", rateLimiter.ReservationRateLimiter(), ctrl.CreateActivityReservation)
	r.Delete("/:id", ctrl.DeleteReservation)
	r.Get("/:id/qr", ctrl.GetReservationQR)
}

func PlanningManagerRoutes(api fiber.Router, db *gorm.DB, store cache.Store) {
	ctrl := controller.NewPlanningController(service.NewPlanningService(db, store))
	resCtrl := newReservationController(db, store)
	guard := authMiddleware.OnlyRoles(constants.RoleErrorManager("plannings"), constants.ManagerAndAbove...)

	clubs := api.Group("/clubs/:club_id/plannings", guard)
	clubs.Get("/", ctrl.GetPlanningsForClub)
	clubs.Post("/", ctrl.CreatePlanning)

	p := api.Group("/plannings", guard)
	p.Get("/:id", ctrl.GetPlanningByID)
	p.Put("/:id", ctrl.UpdatePlanning)
	p.Delete("/:id", ctrl.DeletePlanning)
	p.Post("/:id/duplicate", ctrl.DuplicatePlanning)
	p.Post("/:id/activities", ctrl.CreatePlanningActivity)

	pa := api.Group("/planning-activities", guard)
	pa.Put("/:id", ctrl.UpdatePlanningActivity)
	pa.Delete("/:id", ctrl.DeletePlanningActivity)

	checkIn := authMiddleware.OnlyRoles(constants.RoleErrorCoach("check-in"),
		constants.RoleCoach, constants.RoleManager, constants.RoleManagerCoach, constants.RoleAdmin)
	api.Post("/reservations/check-in", checkIn, resCtrl.CheckIn)
}
