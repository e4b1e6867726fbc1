package database

import (
	"context"
	"log"
	"time"

	"videoach_backend/internals/configs"
	clubModel "videoach_backend/internals/features/clubs/model"
	coachModel "videoach_backend/internals/features/coaches/model"
	eventModel "videoach_backend/internals/features/events/model"
	notificationModel "videoach_backend/internals/features/notifications/model"
	pageModel "videoach_backend/internals/features/pages/model"
	paymentModel "videoach_backend/internals/features/payments/model"
	planningModel "videoach_backend/internals/features/plannings/model"
	pricingModel "videoach_backend/internals/features/pricing/model"
	subscriptionModel "videoach_backend/internals/features/subscriptions/model"
	authModel "videoach_backend/internals/features/users/auth/model"
	userModel "videoach_backend/internals/features/users/user/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Connecting to PostgreSQL...")

	// PreferSimpleProtocol keeps PgBouncer in transaction pooling mode happy.
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  configs.DatabaseDSN(),
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("❌ Database connection failed: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(configs.GetEnvInt("DB_MAX_OPEN_CONNS", 20))
	sqlDB.SetMaxIdleConns(configs.GetEnvInt("DB_MAX_IDLE_CONNS", 10))
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Models is every table the API owns, parents first.
func Models() []any {
	return []any{
		&userModel.UserModel{},
		&authModel.RefreshTokenModel{},
		&authModel.TokenBlacklist{},
		&pricingModel.PricingModel{},
		&pricingModel.PricingOptionModel{},
		&pricingModel.PricingFeatureModel{},
		&paymentModel.PaymentModel{},
		&clubModel.OpeningCalendarModel{},
		&clubModel.OpeningTimeModel{},
		&clubModel.WorkingHoursModel{},
		&clubModel.ClubModel{},
		&clubModel.ClubCoachModel{},
		&clubModel.SiteModel{},
		&clubModel.RoomModel{},
		&clubModel.ActivityGroupModel{},
		&clubModel.ActivityModel{},
		&subscriptionModel.SubscriptionModel{},
		&subscriptionModel.SubscriptionMemberModel{},
		&planningModel.PlanningModel{},
		&planningModel.PlanningActivityModel{},
		&planningModel.ReservationModel{},
		&eventModel.EventModel{},
		&pageModel.PageModel{},
		&pageModel.PageSectionModel{},
		&coachModel.CoachProfileModel{},
		&coachModel.CoachOfferModel{},
		&coachModel.CertificationGroupModel{},
		&coachModel.CertificationModuleModel{},
		&coachModel.CertificationModel{},
		&notificationModel.NotificationModel{},
	}
}

// Migrate is opt-in (DB_AUTO_MIGRATE=true); production schemas are managed out of band.
func Migrate(ctx context.Context) error {
	if !configs.GetEnvBool("DB_AUTO_MIGRATE", false) {
		return nil
	}
	log.Println("[INFO] running AutoMigrate...")
	return MigrateSchema(ctx, DB)
}

// MigrateSchema creates or updates every table of Models on db.
func MigrateSchema(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return err
	}
	return db.AutoMigrate(Models()...)
}

func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := Ping(context.Background()); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

func Ping(ctx context.Context) error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
