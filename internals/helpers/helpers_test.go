package helper

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "salle-equilibre", Slugify("  Salle Équilibre ", 0))
	assert.Equal(t, "club", Slugify("!!!", 0))
	assert.Equal(t, "abc", Slugify("abc-def", 4))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(errors.New(`ERROR: duplicate key value violates unique constraint "users_email_key" (SQLSTATE 23505)`)))
	assert.False(t, IsUniqueViolation(errors.New("connection refused")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestResolvePaging(t *testing.T) {
	app := fiber.New()
	var got Paging
	app.Get("/", func(c *fiber.Ctx) error {
		got = ResolvePaging(c, 20, 50)
		return nil
	})

	_, err := app.Test(httptest.NewRequest("GET", "/?page=3&per_page=500", nil))
	require.NoError(t, err)
	assert.Equal(t, Paging{Page: 3, PerPage: 50, Offset: 100, Limit: 50}, got)

	_, err = app.Test(httptest.NewRequest("GET", "/?page=-1&limit=5", nil))
	require.NoError(t, err)
	assert.Equal(t, Paging{Page: 1, PerPage: 5, Offset: 0, Limit: 5}, got)

	p := BuildPagination(101, Paging{Page: 2, PerPage: 50}, 50)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)
}

func TestJsonErrorEnvelope(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return JsonError(c, fiber.StatusConflict, "") })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var out ErrorResponse
	require.NoError(t, sonic.Unmarshal(body, &out))
	assert.False(t, out.Success)
	assert.Equal(t, "CONFLICT", out.ErrorCode)
	assert.Equal(t, "Conflict", out.Message)
}

func TestJsonValidationError(t *testing.T) {
	type in struct {
		Name string `validate:"required"`
	}
	verr := validator.New().Struct(in{})
	require.Error(t, verr)

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return JsonValidationError(c, verr) })
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var out ErrorResponse
	require.NoError(t, sonic.Unmarshal(body, &out))
	assert.Equal(t, []string{"required"}, out.Errors["Name"])
}

func TestGetUserIDFromToken(t *testing.T) {
	id := uuid.New()
	cases := []struct {
		local  any
		status int
	}{
		{nil, fiber.StatusUnauthorized},
		{"", fiber.StatusUnauthorized},
		{"nope", fiber.StatusBadRequest},
		{id.String(), 0},
		{id, 0},
	}
	for _, tc := range cases {
		app := fiber.New()
		app.Get("/", func(c *fiber.Ctx) error {
			if tc.local != nil {
				c.Locals(LocUserID, tc.local)
			}
			got, err := GetUserIDFromToken(c)
			if tc.status == 0 {
				assert.NoError(t, err)
				assert.Equal(t, id, got)
				return nil
			}
			var fe *fiber.Error
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tc.status, fe.Code)
			return nil
		})
		_, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
	}
}

func TestParseUUIDs(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	ids, err := ParseUUIDs([]string{a.String(), " ", b.String()})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a, b}, ids)

	_, err = ParseUUIDs([]string{"x"})
	assert.Error(t, err)
}
