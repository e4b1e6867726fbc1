package middlewares

import (
	"time"

	helper "videoach_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func ipLimiter(max int, window time.Duration, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, message)
		},
	})
}

// Global limiter: every endpoint
func GlobalRateLimiter() fiber.Handler {
	return ipLimiter(100, time.Minute, "❌ Too many requests. Please try again later.")
}

func LoginRateLimiter() fiber.Handler {
	return ipLimiter(5, time.Minute, "❌ Too many login attempts. Try again in a moment.")
}

func RegisterRateLimiter() fiber.Handler {
	return ipLimiter(3, 5*time.Minute, "❌ Too many sign-ups. Wait a few minutes.")
}

// Reservation limiter: members booking in a loop
func ReservationRateLimiter() fiber.Handler {
	return ipLimiter(30, time.Minute, "❌ Too many reservations. Try again in a minute.")
}
