package controller

import (
	"context"
	"log"
	"net/http"

	"videoach_backend/internals/features/users/user/model"
	"videoach_backend/internals/helpers/cache"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	svix "github.com/svix/svix-webhooks/go"
)

// AuthUsers is what the auth-provider webhook changes.
type AuthUsers interface {
	CreateNewUserFromAuthProvider(ctx context.Context, authProviderID string, emails []string, firstName, lastName string) (*model.UserModel, error)
	DeactivateByAuthProvider(ctx context.Context, authProviderID string) error
}

type WebhookController struct {
	Users      AuthUsers
	Cache      cache.Store
	Secret     string
	CacheToken string
}

func NewWebhookController(users AuthUsers, store cache.Store, secret, cacheToken string) *WebhookController {
	return &WebhookController{Users: users, Cache: store, Secret: secret, CacheToken: cacheToken}
}

// GET /api/webhooks/clear-cache?token=
func (wc *WebhookController) ClearCache(c *fiber.Ctx) error {
	if wc.CacheToken != "" && c.Query("token") != wc.CacheToken {
		return c.Status(fiber.StatusUnauthorized).SendString("Unauthorized")
	}
	if wc.Cache != nil {
		if err := wc.Cache.Clear(c.UserContext()); err != nil {
			log.Printf("[CACHE] clear failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).SendString("Erreur")
		}
	}
	log.Println("[CACHE] full cache cleared")
	return c.Status(fiber.StatusOK).SendString("cache cleared")
}

type emailAddress struct {
	EmailAddress string `json:"email_address"`
}

type authUserData struct {
	ID             string         `json:"id"`
	FirstName      string         `json:"first_name"`
	LastName       string         `json:"last_name"`
	EmailAddresses []emailAddress `json:"email_addresses"`
}

type authEvent struct {
	Type string       `json:"type"`
	Data authUserData `json:"data"`
}

// POST /api/webhooks/auth
func (wc *WebhookController) AuthProvider(c *fiber.Ctx) error {
	svixID := c.Get("svix-id")
	svixTimestamp := c.Get("svix-timestamp")
	svixSignature := c.Get("svix-signature")
	if svixID == "" || svixTimestamp == "" || svixSignature == "" {
		return c.Status(fiber.StatusBadRequest).SendString("Error occurred -- no svix headers")
	}

	wh, err := svix.NewWebhook(wc.Secret)
	if err != nil {
		log.Printf("[WEBHOOK] bad secret: %v", err)
		return c.Status(fiber.StatusBadRequest).SendString("Error occurred")
	}
	headers := http.Header{}
	headers.Set("svix-id", svixID)
	headers.Set("svix-timestamp", svixTimestamp)
	headers.Set("svix-signature", svixSignature)

	body := c.Body()
	if err := wh.Verify(body, headers); err != nil {
		log.Printf("[WEBHOOK] verification failed: %v", err)
		return c.Status(fiber.StatusBadRequest).SendString("Error occurred")
	}

	var evt authEvent
	if err := sonic.Unmarshal(body, &evt); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Error occurred")
	}

	ctx := c.UserContext()
	switch evt.Type {
	case "user.created":
		log.Printf("[WEBHOOK] user.created %s", evt.Data.ID)
		emails := make([]string, 0, len(evt.Data.EmailAddresses))
		for _, e := range evt.Data.EmailAddresses {
			emails = append(emails, e.EmailAddress)
		}
		if _, err := wc.Users.CreateNewUserFromAuthProvider(ctx, evt.Data.ID, emails, evt.Data.FirstName, evt.Data.LastName); err != nil {
			log.Printf("[WEBHOOK] create user %s failed: %v", evt.Data.ID, err)
		}
	case "user.deleted":
		log.Printf("[WEBHOOK] user.deleted %s", evt.Data.ID)
		if evt.Data.ID != "" {
			if err := wc.Users.DeactivateByAuthProvider(ctx, evt.Data.ID); err != nil {
				log.Printf("[WEBHOOK] deactivate user %s failed: %v", evt.Data.ID, err)
			}
		}
	}
	return c.SendStatus(fiber.StatusOK)
}
