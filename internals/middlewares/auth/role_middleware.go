package auth

import (
	"log"

	helper "videoach_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
)

const DefaultForbiddenMessage = "Forbidden: you are not authorized to access this resource"

// RoleMiddlewareWithCustomError validates the role stored by the auth middleware.
func RoleMiddlewareWithCustomError(allowedRoles []string, customForbiddenMessage string) fiber.Handler {
	forbidden := customForbiddenMessage
	if forbidden == "" {
		forbidden = DefaultForbiddenMessage
	}
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(helper.LocUserRole).(string)
		if !ok || role == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized: missing role information")
		}
		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}

		log.Printf("[AUTH] role %s refused on %s", role, c.Path())
		return helper.JsonError(c, fiber.StatusForbidden, forbidden)
	}
}

func OnlyRoles(customMessage string, roles ...string) fiber.Handler {
	return RoleMiddlewareWithCustomError(roles, customMessage)
}
