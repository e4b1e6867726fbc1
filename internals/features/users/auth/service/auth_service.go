package service

import (
	"errors"
	"log"
	"strings"
	"time"

	"videoach_backend/internals/configs"
	"videoach_backend/internals/constants"
	authHelper "videoach_backend/internals/features/users/auth/helper"
	authModel "videoach_backend/internals/features/users/auth/model"
	authRepo "videoach_backend/internals/features/users/auth/repository"
	userModel "videoach_backend/internals/features/users/user/model"
	helper "videoach_backend/internals/helpers"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func nowUTC() time.Time { return time.Now().UTC() }

func strptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

/* ==========================
   REGISTER
========================== */

func Register(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if err := authHelper.ValidateRegisterInput(input.Name, input.Email, input.Password); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	hash, err := authHelper.HashPassword(input.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Password hashing failed")
	}
	user := userModel.UserModel{
		UserName: strings.TrimSpace(input.Name),
		Email:    input.Email,
		Password: &hash,
		Role:     constants.RoleMember,
		IsActive: true,
	}
	if err := authRepo.CreateUser(c.UserContext(), db, &user); err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Email already registered")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
	}
	log.Printf("[AUTH] registered user %s", user.ID)

	return helper.JsonCreated(c, "Registration successful", fiber.Map{"id": user.ID})
}

/* ==========================
   LOGIN (email + password)
========================== */

func Login(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	if err := authHelper.ValidateLoginInput(input.Email, input.Password); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	user, err := authRepo.FindUserByEmail(c.UserContext(), db, input.Email)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Wrong email or password")
	}
	if user.Password == nil || authHelper.CheckPasswordHash(*user.Password, input.Password) != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Wrong email or password")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Your account is disabled. Contact an administrator.")
	}
	return issueTokens(c, db, *user)
}

/* ==========================
   LOGIN GOOGLE
========================== */

func LoginGoogle(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		IDToken string `json:"id_token"`
	}
	if err := c.BodyParser(&input); err != nil || strings.TrimSpace(input.IDToken) == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if configs.GoogleClientID == "" {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Google login is not configured")
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(input.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid Google ID Token")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(input.IDToken)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to decode ID Token")
	}

	ctx := c.UserContext()
	user, err := authRepo.FindUserByGoogleID(ctx, db, claimSet.Sub)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// an account registered with the same email gets linked
		if existing, ferr := authRepo.FindUserByEmail(ctx, db, claimSet.Email); ferr == nil {
			if lerr := authRepo.LinkGoogleID(ctx, db, existing.ID, claimSet.Sub); lerr != nil {
				return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to link Google account")
			}
			user, err = existing, nil
		} else {
			googleID := claimSet.Sub
			user = &userModel.UserModel{
				UserName: claimSet.Name,
				Email:    strings.ToLower(claimSet.Email),
				GoogleID: &googleID,
				Role:     constants.RoleMember,
				IsActive: true,
			}
			if err = authRepo.CreateUser(ctx, db, user); err != nil {
				if helper.IsUniqueViolation(err) {
					return helper.JsonError(c, fiber.StatusConflict, "Email already registered")
				}
				return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create Google user")
			}
		}
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load user")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Your account is disabled. Contact an administrator.")
	}
	return issueTokens(c, db, *user)
}

/* ==========================
   ISSUE TOKENS + Response
========================== */

func issueTokens(c *fiber.Ctx, db *gorm.DB, user userModel.UserModel) error {
	now := nowUTC()
	accessToken, err := SignAccessToken(user, configs.JWTSecret, now)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create access token")
	}
	refreshToken, err := SignRefreshToken(user.ID, configs.JWTRefreshSecret, now)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create refresh token")
	}

	if err := authRepo.CreateRefreshToken(c.UserContext(), db, &authModel.RefreshTokenModel{
		UserID:    user.ID,
		Token:     computeRefreshHash(refreshToken, configs.JWTRefreshSecret),
		ExpiresAt: now.Add(refreshTTLDefault),
		UserAgent: strptr(c.Get("User-Agent")),
		IP:        strptr(c.IP()),
	}); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to store refresh token")
	}

	setAuthCookies(c, accessToken, refreshToken, now)

	return helper.JsonOK(c, "Login successful", fiber.Map{
		"user": fiber.Map{
			"id":        user.ID,
			"user_name": user.UserName,
			"email":     user.Email,
			"role":      user.Role,
		},
		"access_token": accessToken,
	})
}

func setAuthCookies(c *fiber.Ctx, accessToken, refreshToken string, now time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  now.Add(accessTTLDefault),
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  now.Add(refreshTTLDefault),
	})
}

func clearAuthCookies(c *fiber.Ctx) {
	expired := nowUTC().Add(-time.Hour)
	for _, name := range []string{"access_token", "refresh_token"} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			HTTPOnly: true,
			Secure:   true,
			SameSite: "None",
			Path:     "/",
			Expires:  expired,
			MaxAge:   -1,
		})
	}
}

/* ==========================
   REFRESH TOKEN (rotating)
========================== */

func RefreshToken(db *gorm.DB, c *fiber.Ctx) error {
	raw := strings.TrimSpace(c.Cookies("refresh_token"))
	if raw == "" {
		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		_ = c.BodyParser(&body)
		raw = strings.TrimSpace(body.RefreshToken)
	}
	if raw == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "No refresh token")
	}

	ctx := c.UserContext()
	userID, err := ParseRefreshToken(raw, configs.JWTRefreshSecret, nowUTC())
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token invalid")
	}
	hash := computeRefreshHash(raw, configs.JWTRefreshSecret)
	exists, err := authRepo.RefreshTokenExists(ctx, db, hash)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if !exists {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token unknown")
	}

	user, err := authRepo.FindUserByID(ctx, db, userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User not found")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Your account is disabled. Contact an administrator.")
	}

	if err := authRepo.DeleteRefreshToken(ctx, db, hash); err != nil {
		log.Printf("[AUTH] delete old refresh token failed: %v", err)
	}
	return issueTokens(c, db, *user)
}

/* ==========================
   LOGOUT
========================== */

func Logout(db *gorm.DB, c *fiber.Ctx) error {
	ctx := c.UserContext()
	accessToken := helper.GetRawAccessToken(c)
	if accessToken != "" {
		ttl := BlacklistTTL(accessToken, configs.JWTSecret, nowUTC())
		if err := authRepo.BlacklistToken(ctx, db, accessToken, ttl); err != nil {
			log.Printf("[WARN] Failed to blacklist token: %v", err)
		}
	} else {
		log.Println("[INFO] Logout without access token; clearing cookies only")
	}

	if rt := strings.TrimSpace(c.Cookies("refresh_token")); rt != "" {
		_ = authRepo.DeleteRefreshToken(ctx, db, computeRefreshHash(rt, configs.JWTRefreshSecret))
	}
	clearAuthCookies(c)

	return helper.JsonOK(c, "Logout successful", nil)
}
