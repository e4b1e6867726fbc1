package route

import (
	"log"

	"videoach_backend/internals/configs"
	"videoach_backend/internals/features/payments/controller"
	"videoach_backend/internals/features/payments/service"
	"videoach_backend/internals/helpers/cache"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func newPaymentController(db *gorm.DB, store cache.Store) *controller.PaymentController {
	var snapClient service.SnapCreator
	if configs.MidtransServerKey != "" {
		snapClient = service.NewSnapClient(configs.MidtransServerKey, configs.MidtransProduction)
	} else {
		log.Println("⚠️ MIDTRANS_SERVER_KEY is not set, paid checkouts disabled")
	}
	return controller.NewPaymentController(service.NewPaymentService(db, store, snapClient, configs.MidtransServerKey))
}

// PaymentUserRoutes: checkout and history of the signed-in user.
func PaymentUserRoutes(api fiber.Router, db *gorm.DB, store cache.Store) {
	ctrl := newPaymentController(db, store)

	p := api.Group("/payments")
	p.Post("/checkout", ctrl.Checkout)
	p.Get("/mine", ctrl.GetMyPayments)
}

// PaymentWebhookRoutes is public; notifications are authenticated by their signature.
func PaymentWebhookRoutes(api fiber.Router, db *gorm.DB, store cache.Store) {
	ctrl := newPaymentController(db, store)
	api.Post("/payments/midtrans/notification", ctrl.MidtransNotification)
}
