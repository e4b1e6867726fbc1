package service

import (
	"context"
	"testing"
	"time"

	"videoach_backend/internals/constants"
	"videoach_backend/internals/features/clubs/dto"
	"videoach_backend/internals/features/clubs/model"
	"videoach_backend/internals/features/pricing/plans"
	helper "videoach_backend/internals/helpers"
	"videoach_backend/internals/helpers/testdb"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedLimits plans.Limits

func (l fixedLimits) LimitsForUserID(context.Context, uuid.UUID) (plans.Limits, error) {
	return plans.Limits(l), nil
}

func calendarFrom(day string) dto.CalendarRequest {
	return dto.CalendarRequest{StartDate: day}
}

func TestCalendarInheritance(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	manager := testdb.User(t, db, constants.RoleManager)
	actor := helper.Actor{UserID: manager.ID, Role: constants.RoleManager}
	club := testdb.Club(t, db, manager.ID)

	svc := NewCalendarService(db, nil)
	svc.Now = func() time.Time { return time.Date(2024, 9, 2, 10, 0, 0, 0, time.UTC) }

	clubCal, err := svc.CreateForClub(ctx, actor, club.ClubID, calendarFrom("2024-01-01"))
	require.NoError(t, err)

	following := testdb.Site(t, db, club.ClubID, true)
	bare := testdb.Site(t, db, club.ClubID, false)
	own := testdb.Site(t, db, club.ClubID, true)
	siteCal, err := svc.CreateForSite(ctx, actor, own.SiteID, calendarFrom("2024-02-01"))
	require.NoError(t, err)

	got, err := svc.GetCalendarForSite(ctx, following.SiteID)
	require.NoError(t, err)
	assert.Equal(t, clubCal.OpeningCalendarID, got.OpeningCalendarID)

	got, err = svc.GetCalendarForSite(ctx, bare.SiteID)
	require.NoError(t, err)
	assert.Equal(t, clubCal.OpeningCalendarID, got.OpeningCalendarID, "a site without calendar falls back to the club")

	got, err = svc.GetCalendarForSite(ctx, own.SiteID)
	require.NoError(t, err)
	assert.Equal(t, siteCal.OpeningCalendarID, got.OpeningCalendarID)
	assert.Len(t, got.OpeningTimes, len(constants.Days))

	var stored model.SiteModel
	require.NoError(t, db.First(&stored, "site_id = ?", own.SiteID).Error)
	assert.False(t, stored.SiteOpenWithClub)

	room := testdb.Room(t, db, own, 10)
	got, err = svc.GetCalendarForRoom(ctx, room.RoomID)
	require.NoError(t, err)
	assert.Equal(t, siteCal.OpeningCalendarID, got.OpeningCalendarID, "a room without calendar falls back to its site")

	yes := true
	require.NoError(t, svc.UpdateRoomOpenWith(ctx, actor, room.RoomID, dto.OpenWithRequest{OpenWithClub: &yes}))
	got, err = svc.GetCalendarForRoom(ctx, room.RoomID)
	require.NoError(t, err)
	assert.Equal(t, clubCal.OpeningCalendarID, got.OpeningCalendarID)

	roomCal, err := svc.CreateForRoom(ctx, actor, room.RoomID, calendarFrom("2024-03-01"))
	require.NoError(t, err)
	got, err = svc.GetCalendarForRoom(ctx, room.RoomID)
	require.NoError(t, err)
	assert.Equal(t, roomCal.OpeningCalendarID, got.OpeningCalendarID, "own calendar clears both open_with flags")

	require.NoError(t, svc.UpdateRoomOpenWith(ctx, actor, room.RoomID, dto.OpenWithRequest{OpenWithSite: &yes}))
	got, err = svc.GetCalendarForRoom(ctx, room.RoomID)
	require.NoError(t, err)
	assert.Equal(t, siteCal.OpeningCalendarID, got.OpeningCalendarID)
}

func TestCalendarNotStartedYetIsIgnored(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	manager := testdb.User(t, db, constants.RoleManager)
	actor := helper.Actor{UserID: manager.ID, Role: constants.RoleManager}
	club := testdb.Club(t, db, manager.ID)

	svc := NewCalendarService(db, nil)
	svc.Now = func() time.Time { return time.Date(2024, 9, 2, 10, 0, 0, 0, time.UTC) }

	_, err := svc.CreateForClub(ctx, actor, club.ClubID, calendarFrom("2024-12-01"))
	require.NoError(t, err)
	got, err := svc.GetCalendarForClub(ctx, club.ClubID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCreateClubAsSiteIsListedForManager(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	manager := testdb.User(t, db, constants.RoleManager)
	actor := helper.Actor{UserID: manager.ID, Role: constants.RoleManager}

	svc := NewClubService(db, nil, nil, fixedLimits{MaxClubs: 1})
	club, err := svc.Create(ctx, actor, dto.CreateClubRequest{Name: "Iron Temple", Address: "1 rue du Port", IsSite: true})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, club.ClubID)

	list, err := svc.ListForManager(ctx, manager.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, club.ClubID, list[0].ClubID)
	require.Len(t, list[0].Sites, 1)
	site := list[0].Sites[0]
	assert.Equal(t, "Iron Temple", site.SiteName)
	assert.Equal(t, "1 rue du Port", site.SiteAddress)
	assert.True(t, site.SiteOpenWithClub)

	_, err = svc.Create(ctx, actor, dto.CreateClubRequest{Name: "Second"})
	assert.ErrorIs(t, err, helper.ErrLimitReached)
}
