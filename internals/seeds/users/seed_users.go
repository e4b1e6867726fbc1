package users

import (
	"context"
	"log"
	"os"
	"strings"

	"videoach_backend/internals/constants"
	authHelper "videoach_backend/internals/features/users/auth/helper"
	"videoach_backend/internals/features/users/user/model"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"
)

type UserSeed struct {
	UserName string `json:"user_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// SeedUsersFromJSON inserts the users whose email is not taken yet.
func SeedUsersFromJSON(ctx context.Context, db *gorm.DB, filePath string) error {
	log.Println("📥 Reading", filePath)
	file, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	var seeds []UserSeed
	if err := sonic.Unmarshal(file, &seeds); err != nil {
		return err
	}

	created := 0
	for _, s := range seeds {
		email := strings.ToLower(strings.TrimSpace(s.Email))
		var count int64
		if err := db.WithContext(ctx).Model(&model.UserModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			log.Printf("ℹ️ user %s exists, skipped", email)
			continue
		}
		role := strings.ToUpper(s.Role)
		if !constants.IsValidRole(role) {
			role = constants.RoleMember
		}
		hash, err := authHelper.HashPassword(s.Password)
		if err != nil {
			return err
		}
		u := model.UserModel{UserName: s.UserName, Email: email, Password: &hash, Role: role, IsActive: true}
		if err := db.WithContext(ctx).Create(&u).Error; err != nil {
			return err
		}
		created++
	}
	log.Printf("✅ %d user(s) seeded", created)
	return nil
}
