package service

import (
	"errors"

	authHelper "videoach_backend/internals/features/users/auth/helper"
	authRepo "videoach_backend/internals/features/users/auth/repository"
	userModel "videoach_backend/internals/features/users/user/model"
	helper "videoach_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var (
	ErrNoPassword    = errors.New("no password set, sign in with your provider")
	ErrWrongPassword = errors.New("current password incorrect")
)

// checkCurrentPassword refuses accounts without a password: Google and provider accounts
// cannot prove who they are with one.
func checkCurrentPassword(user *userModel.UserModel, current string) error {
	if user.Password == nil {
		return ErrNoPassword
	}
	if authHelper.CheckPasswordHash(*user.Password, current) != nil {
		return ErrWrongPassword
	}
	return nil
}

// ========================== CHANGE PASSWORD ==========================
func ChangePassword(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := authHelper.ValidatePassword(input.NewPassword); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	ctx := c.UserContext()
	user, err := authRepo.FindUserByID(ctx, db, userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User not found")
	}
	switch err := checkCurrentPassword(user, input.CurrentPassword); {
	case errors.Is(err, ErrNoPassword):
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	case err != nil:
		return helper.JsonError(c, fiber.StatusUnauthorized, "Current password incorrect")
	}

	newHash, err := authHelper.HashPassword(input.NewPassword)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash new password")
	}
	if err := authRepo.UpdateUserPassword(ctx, db, userID, newHash); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update password")
	}
	// other sessions must sign in again
	_ = authRepo.DeleteUserRefreshTokens(ctx, db, userID)

	return helper.JsonUpdated(c, "Password changed successfully", nil)
}
