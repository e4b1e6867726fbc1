package auth

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"videoach_backend/internals/configs"
	authRepo "videoach_backend/internals/features/users/auth/repository"
	authService "videoach_backend/internals/features/users/auth/service"
	helper "videoach_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var errUserInactive = errors.New("user inactive")

// Guard answers the two lookups a token check needs.
type Guard interface {
	IsBlacklisted(ctx context.Context, token string) (bool, error)
	EnsureActive(ctx context.Context, userID uuid.UUID) (role string, err error)
}

type dbGuard struct{ db *gorm.DB }

func NewDBGuard(db *gorm.DB) Guard { return dbGuard{db: db} }

func (g dbGuard) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	return authRepo.IsBlacklisted(ctx, g.db, token)
}

// EnsureActive returns the stored role, which wins over the token's when they differ.
func (g dbGuard) EnsureActive(ctx context.Context, userID uuid.UUID) (string, error) {
	var user struct {
		Role     string
		IsActive bool
	}
	if err := g.db.WithContext(ctx).Table("users").Select("role, is_active").
		Where("id = ?", userID).Take(&user).Error; err != nil {
		return "", err
	}
	if !user.IsActive {
		return "", errUserInactive
	}
	return user.Role, nil
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	auth := strings.TrimSpace(c.Get("Authorization"))
	if auth == "" {
		if cookieTok := c.Cookies("access_token"); cookieTok != "" {
			auth = "Bearer " + cookieTok
		}
	}
	if auth == "" {
		return "", errors.New("Unauthorized - No token provided")
	}
	fields := strings.Fields(auth)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", errors.New("Unauthorized - Invalid token format")
	}
	tok := strings.Trim(strings.TrimSpace(fields[1]), "\"'")
	if tok == "" {
		return "", errors.New("Unauthorized - Empty token")
	}
	return tok, nil
}

// authenticate resolves the request's user. A nil claims with nil error means anonymous.
func authenticate(c *fiber.Ctx, guard Guard, secret string) (*authService.AccessClaims, int, error) {
	tokenString, err := extractBearerToken(c)
	if err != nil {
		return nil, fiber.StatusUnauthorized, err
	}
	ctx := c.UserContext()

	blacklisted, err := guard.IsBlacklisted(ctx, tokenString)
	if err != nil {
		log.Println("[ERROR] blacklist lookup:", err)
		return nil, fiber.StatusInternalServerError, errors.New("Internal Server Error")
	}
	if blacklisted {
		return nil, fiber.StatusUnauthorized, errors.New("Unauthorized - Token is blacklisted")
	}

	claims, err := authService.ParseAccessToken(tokenString, secret, time.Now())
	if err != nil {
		if errors.Is(err, authService.ErrTokenExpired) {
			return nil, fiber.StatusUnauthorized, errors.New("Unauthorized - Token expired")
		}
		if errors.Is(err, authService.ErrNoSecret) {
			return nil, fiber.StatusInternalServerError, errors.New("Missing JWT Secret")
		}
		return nil, fiber.StatusUnauthorized, errors.New("Unauthorized - Invalid token")
	}

	role, err := guard.EnsureActive(ctx, claims.UserID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fiber.StatusUnauthorized, errors.New("Unauthorized - User not found")
	case errors.Is(err, errUserInactive):
		return nil, fiber.StatusForbidden, errors.New("Your account is disabled")
	case err != nil:
		log.Println("[ERROR] user lookup:", err)
		return nil, fiber.StatusInternalServerError, errors.New("Internal Server Error")
	}
	if role != "" {
		claims.Role = role
	}
	c.Locals(helper.LocRawToken, tokenString)
	return claims, fiber.StatusOK, nil
}

func storeClaims(c *fiber.Ctx, claims *authService.AccessClaims) {
	c.Locals(helper.LocUserID, claims.UserID.String())
	c.Locals(helper.LocUserRole, claims.Role)
	c.Locals(helper.LocUserName, claims.UserName)
}

// AuthMiddleware requires a valid, non-blacklisted access token of an active user.
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return Authenticate(NewDBGuard(db), func() string { return configs.JWTSecret })
}

func Authenticate(guard Guard, secret func() string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, status, err := authenticate(c, guard, secret())
		if err != nil {
			return fiber.NewError(status, err.Error())
		}
		storeClaims(c, claims)
		return c.Next()
	}
}

// OptionalAuthMiddleware lets visitors through; a valid token still fills Locals.
func OptionalAuthMiddleware(db *gorm.DB) fiber.Handler {
	return OptionalAuthenticate(NewDBGuard(db), func() string { return configs.JWTSecret })
}

func OptionalAuthenticate(guard Guard, secret func() string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, _, err := authenticate(c, guard, secret())
		if err != nil {
			return c.Next()
		}
		storeClaims(c, claims)
		return c.Next()
	}
}
