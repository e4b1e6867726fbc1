package middlewares

import (
	"errors"
	"log"

	"videoach_backend/internals/configs"
	helper "videoach_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/rollbar/rollbar-go"
)

// InitRollbar enables reporting when ROLLBAR_TOKEN is set.
func InitRollbar() {
	rollbar.SetToken(configs.RollbarToken)
	rollbar.SetEnvironment(configs.AppEnv)
	rollbar.SetServerRoot("videoach_backend")
	rollbar.SetEnabled(configs.RollbarToken != "")
}

// ErrorHandler renders unhandled errors in the JSON envelope; 5xx go to rollbar.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := ""
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}
	if code >= fiber.StatusInternalServerError {
		log.Printf("[ERROR] %s %s: %v", c.Method(), c.OriginalURL(), err)
		rollbar.Error(err, map[string]interface{}{
			"method":     c.Method(),
			"path":       c.Path(),
			"request_id": c.Locals("reqid"),
		})
		msg = ""
	}
	return helper.JsonError(c, code, msg)
}
