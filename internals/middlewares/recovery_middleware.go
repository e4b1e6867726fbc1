package middlewares

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rollbar/rollbar-go"
)

// RecoveryMiddleware turns a panic into a 500 and reports it.
func RecoveryMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			rollbar.Critical(fmt.Errorf("panic on %s %s: %v", c.Method(), c.Path(), e))
		},
	})
}
