package controller

import (
	"time"

	"videoach_backend/internals/features/users/user/dto"
	"videoach_backend/internals/features/users/user/service"
	helper "videoach_backend/internals/helpers"
	"videoach_backend/internals/helpers/dbtime"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validateUser = validator.New()

type UserController struct {
	Svc *service.UserService
}

func NewUserController(svc *service.UserService) *UserController {
	return &UserController{Svc: svc}
}

// GET /api/m/users/me
func (uc *UserController) GetMe(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	detail, err := uc.Svc.GetUser(c.UserContext(), userID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "User profile", detail)
}

// GET /api/m/users/me/reservations?after=2024-01-31
func (uc *UserController) GetMyReservations(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	after := dbtime.StartOfDay(time.Now())
	if raw := c.Query("after"); raw != "" {
		if after, err = dbtime.ParseDate(raw); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input")
		}
	}
	list, err := uc.Svc.GetReservationsByUserID(c.UserContext(), userID, after)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "Reservations", list)
}

// =======================
// 🔒 Admin
// =======================

// GET /api/m/admin/users?q=&page=&per_page=
func (uc *UserController) GetUsers(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)
	users, total, err := uc.Svc.List(c.UserContext(), c.Query("q"), p)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonList(c, "Users", dto.FromModels(users), helper.BuildPagination(total, p, len(users)))
}

func (uc *UserController) GetUserByID(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	u, err := uc.Svc.GetByID(c.UserContext(), id)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonOK(c, "User", dto.FromModel(u))
}

func (uc *UserController) UpdateUser(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	var body dto.UpdateUserRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	body.Normalize()
	if err := validateUser.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}
	u, err := uc.Svc.Update(c.UserContext(), id, body.Updates())
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "User updated", dto.FromModel(u))
}

func (uc *UserController) DeleteUser(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := uc.Svc.Delete(c.UserContext(), id); err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonDeleted(c, "User deleted", fiber.Map{"id": id})
}
