package controller

import (
	"io"
	"net/http/httptest"
	"testing"

	"videoach_backend/internals/constants"
	"videoach_backend/internals/features/clubs/model"
	"videoach_backend/internals/features/clubs/service"
	"videoach_backend/internals/helpers/testdb"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchSitesRange(t *testing.T) {
	db := testdb.Open(t)
	manager := testdb.User(t, db, constants.RoleManager)
	club := testdb.Club(t, db, manager.ID)
	// about 10 km north of the search point
	near := &model.SiteModel{SiteID: uuid.New(), SiteClubID: club.ClubID, SiteName: "north", SiteLongitude: 2.3522, SiteLatitude: 48.9466}
	require.NoError(t, db.Create(near).Error)

	app := fiber.New()
	app.Get("/api/site", NewSiteController(service.NewSiteService(db, nil, nil)).SearchSites)

	search := func(query string) (int, []map[string]any) {
		resp, err := app.Test(httptest.NewRequest("GET", "/api/site?locationLng=2.3522&locationLat=48.8566"+query, nil))
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		var out []map[string]any
		if resp.StatusCode == fiber.StatusOK {
			require.NoError(t, sonic.Unmarshal(body, &out))
		}
		return resp.StatusCode, out
	}

	status, hits := search("")
	assert.Equal(t, fiber.StatusOK, status)
	require.Len(t, hits, 1, "a missing range defaults to 25 km")
	assert.Equal(t, near.SiteID.String(), hits[0]["site_id"])

	status, hits = search("&range=0")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, hits)

	_, hits = search("&range=5")
	assert.Empty(t, hits)

	status, _ = search("&range=150")
	assert.Equal(t, fiber.StatusBadRequest, status)
}
