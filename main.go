package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"videoach_backend/internals/configs"
	database "videoach_backend/internals/databases"
	notificationService "videoach_backend/internals/features/notifications/service"
	"videoach_backend/internals/features/pricing/plans"
	scheduler "videoach_backend/internals/features/users/auth/scheduler"
	"videoach_backend/internals/helpers/cache"
	"videoach_backend/internals/helpers/storage"
	middlewares "videoach_backend/internals/middlewares"
	routes "videoach_backend/internals/route"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/rollbar/rollbar-go"
)

func main() {
	configs.LoadEnv()
	middlewares.InitRollbar()
	defer rollbar.Close()

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ErrorHandler:            middlewares.ErrorHandler,
		BodyLimit:               10 * 1024 * 1024,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	metrics := middlewares.NewMetrics()
	middlewares.SetupMiddlewares(app, metrics)

	// DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()

	bg, stop := context.WithCancel(context.Background())
	defer stop()

	if err := database.Migrate(bg); err != nil {
		log.Fatalf("❌ migration failed: %v", err)
	}
	if err := plans.Seed(bg, database.DB); err != nil {
		log.Printf("⚠️ plan seeding failed: %v", err)
	}

	// scheduler once the DB is ready
	scheduler.StartBlacklistCleanupScheduler(bg, database.DB)

	store := cache.New(configs.NoCache, configs.RedisAddr, configs.RedisPassword)
	uploader := storage.NewFromEnv(bg)

	publisher := notificationService.NewPublisher(configs.KafkaBrokers, configs.KafkaNotifyTopic)
	defer publisher.Close()
	notifications := notificationService.NewNotificationService(
		database.DB,
		publisher,
		notificationService.NewMailer(configs.SendgridAPIKey, configs.SendgridFromEmail),
	)

	routes.SetupRoutes(app, routes.Deps{
		DB:            database.DB,
		Cache:         store,
		Storage:       uploader,
		Notifications: notifications,
		Metrics:       metrics,
	})

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := configs.GetEnv("PORT", "3000")

	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown, then close the pool
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
