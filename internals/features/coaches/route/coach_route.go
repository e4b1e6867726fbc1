package route

import (
	"videoach_backend/internals/constants"
	"videoach_backend/internals/features/coaches/controller"
	"videoach_backend/internals/features/coaches/service"
	pricingService "videoach_backend/internals/features/pricing/service"
	"videoach_backend/internals/helpers/cache"
	authMiddleware "videoach_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CoachPublicRoutes: coach profiles, offers and certifications are public.
func CoachPublicRoutes(api fiber.Router, db *gorm.DB, store cache.Store) {
	limits := pricingService.NewPricingService(db, store)
	coachCtrl := controller.NewCoachController(service.NewCoachService(db, store, limits))
	certCtrl := controller.NewCertificationController(service.NewCertificationService(db, store, limits))

	api.Get("/clubs/:club_id/coaches", coachCtrl.GetClubCoaches)
	api.Get("/certification-groups", certCtrl.GetGroups)

	coaches := api.Group("/coaches")
	coaches.Get("/:user_id/profile", coachCtrl.GetCoachProfile)
	coaches.Get("/:user_id/offers", coachCtrl.GetCoachOffers)
	coaches.Get("/:user_id/certifications", certCtrl.GetCoachCertifications)
}

func CoachRoutes(api fiber.Router, db *gorm.DB, store cache.Store) {
	limits := pricingService.NewPricingService(db, store)
	coachCtrl := controller.NewCoachController(service.NewCoachService(db, store, limits))
	certCtrl := controller.NewCertificationController(service.NewCertificationService(db, store, limits))

	coach := api.Group("/coach", authMiddleware.OnlyRoles(constants.RoleErrorCoach("coaching"), constants.CoachAndAbove...))
	coach.Get("/profile", coachCtrl.GetMyProfile)
	coach.Put("/profile", coachCtrl.UpsertMyProfile)
	coach.Get("/clubs", coachCtrl.GetMyClubs)

	coach.Get("/offers", coachCtrl.GetMyOffers)
	coach.Post("/offers", coachCtrl.CreateOffer)
	coach.Put("/offers/:id", coachCtrl.UpdateOffer)
	coach.Delete("/offers/:id", coachCtrl.DeleteOffer)

	coach.Get("/certifications", certCtrl.GetMyCertifications)
	coach.Post("/certifications", certCtrl.CreateCertification)
	coach.Put("/certifications/:id", certCtrl.UpdateCertification)
	coach.Delete("/certifications/:id", certCtrl.DeleteCertification)

	manager := authMiddleware.OnlyRoles(constants.RoleErrorManager("club coaches"), constants.ManagerAndAbove...)
	api.Post("/clubs/:club_id/coaches", manager, coachCtrl.LinkCoach)
	api.Delete("/clubs/:club_id/coaches/:user_id", manager, coachCtrl.UnlinkCoach)
}

func CertificationAdminRoutes(api fiber.Router, db *gorm.DB, store cache.Store) {
	certCtrl := controller.NewCertificationController(service.NewCertificationService(db, store, nil))

	admin := api.Group("/admin/certification-groups", authMiddleware.OnlyRoles(constants.RoleErrorAdmin("certification groups"), constants.AdminOnly...))
	admin.Get("/", certCtrl.GetGroups)
	admin.Post("/", certCtrl.CreateGroup)
	admin.Get("/:id", certCtrl.GetGroupByID)
	admin.Put("/:id", certCtrl.RenameGroup)
	admin.Delete("/:id", certCtrl.DeleteGroup)
	admin.Post("/:id/modules", certCtrl.CreateModule)

	modules := api.Group("/admin/certification-modules", authMiddleware.OnlyRoles(constants.RoleErrorAdmin("certification modules"), constants.AdminOnly...))
	modules.Put("/:id", certCtrl.UpdateModule)
	modules.Delete("/:id", certCtrl.DeleteModule)
}
