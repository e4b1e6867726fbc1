package auth

import (
	"context"
	"io"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"videoach_backend/internals/constants"
	authService "videoach_backend/internals/features/users/auth/service"
	userModel "videoach_backend/internals/features/users/user/model"
	helper "videoach_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const secret = "mw-secret"

type fakeGuard struct {
	blacklisted map[string]bool
	users       map[uuid.UUID]string
	inactive    map[uuid.UUID]bool
}

func (g fakeGuard) IsBlacklisted(_ context.Context, tok string) (bool, error) {
	return g.blacklisted[tok], nil
}

func (g fakeGuard) EnsureActive(_ context.Context, id uuid.UUID) (string, error) {
	role, ok := g.users[id]
	if !ok {
		return "", gorm.ErrRecordNotFound
	}
	if g.inactive[id] {
		return "", errUserInactive
	}
	return role, nil
}

func newApp(guard Guard, optional bool, roles ...string) *fiber.App {
	app := fiber.New()
	mw := Authenticate(guard, func() string { return secret })
	if optional {
		mw = OptionalAuthenticate(guard, func() string { return secret })
	}
	handlers := []fiber.Handler{mw}
	if len(roles) > 0 {
		handlers = append(handlers, OnlyRoles("managers only", roles...))
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.SendString(helper.GetRole(c))
	})
	app.Get("/x", handlers...)
	return app
}

func token(t *testing.T, id uuid.UUID, role string) string {
	tok, err := authService.SignAccessToken(userModel.UserModel{ID: id, Role: role}, secret, time.Now())
	require.NoError(t, err)
	return tok
}

func call(t *testing.T, app *fiber.App, tok string, cookie bool) (int, string) {
	req := httptest.NewRequest("GET", "/x", nil)
	if tok != "" {
		if cookie {
			req.Header.Set("Cookie", "access_token="+tok)
		} else {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestAuthenticate(t *testing.T) {
	active, inactive := uuid.New(), uuid.New()
	g := fakeGuard{
		blacklisted: map[string]bool{},
		users:       map[uuid.UUID]string{active: constants.RoleManager, inactive: constants.RoleMember},
		inactive:    map[uuid.UUID]bool{inactive: true},
	}
	app := newApp(g, false)

	status, body := call(t, app, token(t, active, constants.RoleManager), false)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, constants.RoleManager, body)

	status, _ = call(t, app, token(t, active, constants.RoleManager), true)
	assert.Equal(t, fiber.StatusOK, status, "cookie fallback")

	status, _ = call(t, app, "", false)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = call(t, app, token(t, inactive, constants.RoleMember), false)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = call(t, app, token(t, uuid.New(), constants.RoleMember), false)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	tok := token(t, active, constants.RoleManager)
	g.blacklisted[tok] = true
	status, _ = call(t, app, tok, false)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestStoredRoleWinsOverTokenRole(t *testing.T) {
	id := uuid.New()
	g := fakeGuard{users: map[uuid.UUID]string{id: constants.RoleAdmin}}
	_, body := call(t, newApp(g, false), token(t, id, constants.RoleMember), false)
	assert.Equal(t, constants.RoleAdmin, body)
}

func TestOptionalAuthenticate(t *testing.T) {
	id := uuid.New()
	g := fakeGuard{users: map[uuid.UUID]string{id: constants.RoleCoach}}
	app := newApp(g, true)

	status, body := call(t, app, "", false)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, constants.RoleVisitor, body)

	_, body = call(t, app, "not-a-jwt", false)
	assert.Equal(t, constants.RoleVisitor, body)

	_, body = call(t, app, token(t, id, constants.RoleCoach), false)
	assert.Equal(t, constants.RoleCoach, body)
}

func TestOnlyRoles(t *testing.T) {
	manager, member := uuid.New(), uuid.New()
	g := fakeGuard{users: map[uuid.UUID]string{manager: constants.RoleManager, member: constants.RoleMember}}
	app := newApp(g, false, constants.ManagerAndAbove...)

	status, _ := call(t, app, token(t, manager, constants.RoleManager), false)
	assert.Equal(t, fiber.StatusOK, status)

	status, body := call(t, app, token(t, member, constants.RoleMember), false)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Contains(t, body, "managers only")
}

func TestOnlyRolesDefaultMessageUnderLoad(t *testing.T) {
	app := fiber.New()
	app.Get("/x", func(c *fiber.Ctx) error {
		c.Locals(helper.LocUserRole, c.Get("X-Role"))
		return c.Next()
	}, OnlyRoles("", constants.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	const n = 16
	bodies := make([]string, n)
	statuses := make([]int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := httptest.NewRequest("GET", "/x", nil)
			req.Header.Set("X-Role", constants.RoleMember)
			resp, err := app.Test(req)
			if err != nil {
				return
			}
			b, _ := io.ReadAll(resp.Body)
			statuses[i], bodies[i] = resp.StatusCode, string(b)
		}(i)
	}
	wg.Wait()
	for i := 0; i < n; i++ {
		assert.Equal(t, fiber.StatusForbidden, statuses[i])
		assert.Contains(t, bodies[i], DefaultForbiddenMessage)
	}
}
