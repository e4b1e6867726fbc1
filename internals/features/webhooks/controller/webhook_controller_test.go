package controller

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"videoach_backend/internals/features/users/user/model"
	"videoach_backend/internals/helpers/cache"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	svix "github.com/svix/svix-webhooks/go"
)

const testSecret = "whsec_MfKQ9r8GKYqrTwjUPD8ILPZIo2LaLaSw"

type fakeUsers struct {
	created     []string
	emails      []string
	name        string
	deactivated []string
}

func (f *fakeUsers) CreateNewUserFromAuthProvider(_ context.Context, id string, emails []string, first, last string) (*model.UserModel, error) {
	f.created = append(f.created, id)
	f.emails = emails
	f.name = first + " " + last
	return &model.UserModel{}, nil
}

func (f *fakeUsers) DeactivateByAuthProvider(_ context.Context, id string) error {
	f.deactivated = append(f.deactivated, id)
	return nil
}

func newApp(users *fakeUsers, store cache.Store, token string) *fiber.App {
	ctrl := NewWebhookController(users, store, testSecret, token)
	app := fiber.New()
	app.Get("/webhooks/clear-cache", ctrl.ClearCache)
	app.Post("/webhooks/auth", ctrl.AuthProvider)
	return app
}

func signedRequest(t *testing.T, payload string) *http.Request {
	t.Helper()
	wh, err := svix.NewWebhook(testSecret)
	require.NoError(t, err)
	now := time.Now()
	sig, err := wh.Sign("msg_1", now, []byte(payload))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/webhooks/auth", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("svix-id", "msg_1")
	req.Header.Set("svix-timestamp", strconv.FormatInt(now.Unix(), 10))
	req.Header.Set("svix-signature", sig)
	return req
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestAuthWebhookRequiresHeaders(t *testing.T) {
	app := newApp(&fakeUsers{}, nil, "")
	req := httptest.NewRequest(http.MethodPost, "/webhooks/auth", strings.NewReader(`{}`))
	req.Header.Set("svix-id", "msg_1")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body(t, resp), "no svix headers")
}

func TestAuthWebhookRejectsBadSignature(t *testing.T) {
	users := &fakeUsers{}
	app := newApp(users, nil, "")
	req := signedRequest(t, `{"type":"user.created","data":{"id":"u_1"}}`)
	req.Header.Set("svix-signature", "v1,bm90IGEgc2lnbmF0dXJl")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, users.created)
}

func TestAuthWebhookUserCreated(t *testing.T) {
	users := &fakeUsers{}
	app := newApp(users, nil, "")
	payload := `{"type":"user.created","data":{"id":"u_1","first_name":"Ada","last_name":"Lovelace",` +
		`"email_addresses":[{"email_address":"ada@example.com"},{"email_address":"other@example.com"}]}}`

	resp, err := app.Test(signedRequest(t, payload))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"u_1"}, users.created)
	assert.Equal(t, []string{"ada@example.com", "other@example.com"}, users.emails)
	assert.Equal(t, "Ada Lovelace", users.name)
}

func TestAuthWebhookUserDeleted(t *testing.T) {
	users := &fakeUsers{}
	app := newApp(users, nil, "")

	resp, err := app.Test(signedRequest(t, `{"type":"user.deleted","data":{"id":"u_2"}}`))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"u_2"}, users.deactivated)
}

func TestClearCache(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemory()
	require.NoError(t, store.Set(ctx, "k", []byte("v"), []string{cache.GlobalTag(cache.TagSite), cache.AllTag}, time.Minute))

	app := newApp(&fakeUsers{}, store, "s3cret")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/webhooks/clear-cache?token=nope", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 1, store.Len())

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/webhooks/clear-cache?token=s3cret", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "cache cleared", body(t, resp))
	assert.Equal(t, 0, store.Len())
}
