package routes

import (
	"log"

	"videoach_backend/internals/constants"
	clubRoute "videoach_backend/internals/features/clubs/route"
	coachRoute "videoach_backend/internals/features/coaches/route"
	dashboardRoute "videoach_backend/internals/features/dashboards/route"
	eventRoute "videoach_backend/internals/features/events/route"
	notificationRoute "videoach_backend/internals/features/notifications/route"
	notificationService "videoach_backend/internals/features/notifications/service"
	pageRoute "videoach_backend/internals/features/pages/route"
	paymentRoute "videoach_backend/internals/features/payments/route"
	planningRoute "videoach_backend/internals/features/plannings/route"
	pricingRoute "videoach_backend/internals/features/pricing/route"
	subscriptionRoute "videoach_backend/internals/features/subscriptions/route"
	authRoute "videoach_backend/internals/features/users/auth/route"
	userRoute "videoach_backend/internals/features/users/user/route"
	webhookRoute "videoach_backend/internals/features/webhooks/route"
	"videoach_backend/internals/helpers/cache"
	"videoach_backend/internals/helpers/storage"
	"videoach_backend/internals/middlewares"
	authMiddleware "videoach_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Deps are the shared clients built once in main.
type Deps struct {
	DB            *gorm.DB
	Cache         cache.Store
	Storage       storage.Uploader
	Notifications *notificationService.NotificationService
	Metrics       *middlewares.Metrics
}

// SetupRoutes mounts:
//
//	/api      public, JWT optional (anonymous = VISITOR)
//	/api/m    signed-in users; role guards per feature
//	/api/m/admin  ADMIN only
func SetupRoutes(app *fiber.App, d Deps) {
	db, store := d.DB, d.Cache

	BaseRoutes(app, d.Metrics)

	log.Println("[INFO] Setting up AuthRoutes...")
	authRoute.AuthRoutes(app, db)

	log.Println("[INFO] Setting up PUBLIC group...")
	api := app.Group("/api", middlewares.GlobalRateLimiter(), authMiddleware.OptionalAuthMiddleware(db))

	webhookRoute.WebhookRoutes(api, db, store)
	paymentRoute.PaymentWebhookRoutes(api, db, store)
	clubRoute.ClubPublicRoutes(api, db, store)
	subscriptionRoute.SubscriptionPublicRoutes(api, db, store)
	planningRoute.PlanningPublicRoutes(api, db, store)
	planningRoute.PlanningLegacyRoutes(api, db, store)
	pricingRoute.PricingPublicRoutes(api, db, store)
	eventRoute.EventPublicRoutes(api, db, store)
	pageRoute.PagePublicRoutes(api, db, store)
	coachRoute.CoachPublicRoutes(api, db, store)

	log.Println("[INFO] Setting up PRIVATE group...")
	m := api.Group("/m", authMiddleware.AuthMiddleware(db))

	// member routes first: some share a prefix with guarded manager routes
	userRoute.UserRoutes(m, db, store)
	subscriptionRoute.SubscriptionMemberRoutes(m, db, store, d.Notifications)
	planningRoute.ReservationRoutes(m, db, store)
	paymentRoute.PaymentUserRoutes(m, db, store)
	notificationRoute.NotificationRoutes(m, d.Notifications)
	clubRoute.ActivityGroupRoutes(m, db, store)

	coachRoute.CoachRoutes(m, db, store)
	clubRoute.ClubManagerRoutes(m, db, store, d.Storage)
	subscriptionRoute.SubscriptionManagerRoutes(m, db, store)
	planningRoute.PlanningManagerRoutes(m, db, store)
	eventRoute.EventManagerRoutes(m, db, store, d.Storage)
	pageRoute.PageManagerRoutes(m, db, store)
	dashboardRoute.DashboardRoutes(m, db, store)

	log.Println("[INFO] Setting up ADMIN group...")
	admin := m.Group("/admin", authMiddleware.OnlyRoles(constants.RoleErrorAdmin("administration"), constants.AdminOnly...))
	pricingRoute.PricingAdminRoutes(admin, db, store)
	userRoute.UserAdminRoutes(m, db, store)
	coachRoute.CertificationAdminRoutes(m, db, store)
}
