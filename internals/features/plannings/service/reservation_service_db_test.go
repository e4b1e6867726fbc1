package service

import (
	"context"
	"testing"
	"time"

	"videoach_backend/internals/constants"
	clubModel "videoach_backend/internals/features/clubs/model"
	planningModel "videoach_backend/internals/features/plannings/model"
	subModel "videoach_backend/internals/features/subscriptions/model"
	helper "videoach_backend/internals/helpers"
	"videoach_backend/internals/helpers/dbtime"
	"videoach_backend/internals/helpers/testdb"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// monday is the day every scenario books for.
var monday = time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC)

// yogaClub has one room, a yoga and a boxing group, and members subscribed to yoga only.
type yogaClub struct {
	db       *gorm.DB
	svc      *ReservationService
	member   uuid.UUID
	other    uuid.UUID
	room     *clubModel.RoomModel
	planning *planningModel.PlanningModel
	yogaMon  *planningModel.PlanningActivityModel
	yogaTue  *planningModel.PlanningActivityModel
	boxMon   *planningModel.PlanningActivityModel
	freeYoga *clubModel.ActivityModel
	freeBox  *clubModel.ActivityModel
}

func newYogaClub(t *testing.T, capacity int) *yogaClub {
	db := testdb.Open(t)
	manager := testdb.User(t, db, constants.RoleManager)
	member := testdb.User(t, db, constants.RoleMember)
	other := testdb.User(t, db, constants.RoleMember)
	club := testdb.Club(t, db, manager.ID)
	site := testdb.Site(t, db, club.ClubID, true)
	room := testdb.Room(t, db, site, capacity)
	yoga := testdb.Group(t, db, "yoga")
	boxing := testdb.Group(t, db, "boxing")
	yogaAct := testdb.Activity(t, db, club.ClubID, yoga.ActivityGroupID, "yoga", false)
	boxAct := testdb.Activity(t, db, club.ClubID, boxing.ActivityGroupID, "boxing", false)
	testdb.Subscription(t, db, club.ClubID, subModel.ModeActivityGroup, subModel.RestrictionClub,
		[]uuid.UUID{yoga.ActivityGroupID}, member.ID, other.ID)

	p := &planningModel.PlanningModel{
		PlanningID: uuid.New(), PlanningClubID: club.ClubID, PlanningName: "season",
		PlanningStartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(p).Error)

	c := &yogaClub{
		db: db, member: member.ID, other: other.ID, room: room, planning: p,
		freeYoga: testdb.Activity(t, db, club.ClubID, yoga.ActivityGroupID, "open yoga", true, room),
		freeBox:  testdb.Activity(t, db, club.ClubID, boxing.ActivityGroupID, "open boxing", true, room),
	}
	c.yogaMon = c.slot(t, yogaAct, site, constants.DayMonday, "09:00")
	c.yogaTue = c.slot(t, yogaAct, site, constants.DayTuesday, "09:00")
	c.boxMon = c.slot(t, boxAct, site, constants.DayMonday, "18:00")

	c.svc = NewReservationService(db, nil, nil)
	c.svc.Now = func() time.Time { return monday.Add(8 * time.Hour) }
	return c
}

func (c *yogaClub) slot(t *testing.T, a *clubModel.ActivityModel, site *clubModel.SiteModel, day, at string) *planningModel.PlanningActivityModel {
	s := &planningModel.PlanningActivityModel{
		PlanningActivityID: uuid.New(), PlanningActivityPlanningID: c.planning.PlanningID,
		PlanningActivityActivityID: a.ActivityID, PlanningActivitySiteID: site.SiteID,
		PlanningActivityRoomID: &c.room.RoomID, PlanningActivityDay: day, PlanningActivityStartTime: at,
	}
	require.NoError(t, c.db.Create(s).Error)
	return s
}

func (c *yogaClub) reserveSlot(t *testing.T, slot *planningModel.PlanningActivityModel, on time.Time) {
	r := &planningModel.ReservationModel{ReservationUserID: c.member, ReservationDate: on, ReservationPlanningActivityID: &slot.PlanningActivityID, ReservationRoomID: slot.PlanningActivityRoomID}
	require.NoError(t, c.db.Create(r).Error)
}

func TestCreatePlanningReservationChecksEntitlementAndRoom(t *testing.T) {
	c := newYogaClub(t, 1)
	ctx := context.Background()

	_, err := c.svc.CreatePlanningReservation(ctx, c.member, c.boxMon.PlanningActivityID, monday)
	assert.ErrorIs(t, err, ErrNotEntitled)
	assert.ErrorIs(t, err, helper.ErrForbidden)

	_, err = c.svc.CreatePlanningReservation(ctx, c.member, c.yogaMon.PlanningActivityID, monday.AddDate(0, 0, 1))
	assert.ErrorIs(t, err, helper.ErrInvalidInput, "slot is on mondays")

	res, err := c.svc.CreatePlanningReservation(ctx, c.member, c.yogaMon.PlanningActivityID, monday)
	require.NoError(t, err)
	assert.Equal(t, c.room.RoomID, *res.ReservationRoomID)

	_, err = c.svc.CreatePlanningReservation(ctx, c.member, c.yogaMon.PlanningActivityID, monday.Add(10*time.Hour))
	assert.ErrorIs(t, err, ErrAlreadyBooked)
	assert.NotErrorIs(t, err, ErrRoomFull)

	_, err = c.svc.CreatePlanningReservation(ctx, c.other, c.yogaMon.PlanningActivityID, monday)
	assert.ErrorIs(t, err, ErrRoomFull)

	_, err = c.svc.CreatePlanningReservation(ctx, c.other, c.yogaMon.PlanningActivityID, monday.AddDate(0, 0, 7))
	assert.NoError(t, err, "capacity is per day")
}

func TestCreatePlanningReservationRefusesUnavailableRoom(t *testing.T) {
	c := newYogaClub(t, 5)
	require.NoError(t, c.db.Model(c.room).Update("room_unavailable", true).Error)

	_, err := c.svc.CreatePlanningReservation(context.Background(), c.member, c.yogaMon.PlanningActivityID, monday)
	assert.ErrorIs(t, err, helper.ErrConflict)
}

func TestCreateActivityReservationRefusesSecondBooking(t *testing.T) {
	c := newYogaClub(t, 1)
	ctx := context.Background()

	_, err := c.svc.CreateActivityReservation(ctx, c.member, c.freeBox.ActivityID, c.room.RoomID, monday)
	assert.ErrorIs(t, err, ErrNotEntitled)

	_, err = c.svc.CreateActivityReservation(ctx, c.member, c.freeYoga.ActivityID, c.room.RoomID, monday)
	require.NoError(t, err)

	_, err = c.svc.CreateActivityReservation(ctx, c.member, c.freeYoga.ActivityID, c.room.RoomID, monday.Add(15*time.Hour))
	assert.ErrorIs(t, err, ErrAlreadyBooked)

	_, err = c.svc.CreateActivityReservation(ctx, c.other, c.freeYoga.ActivityID, c.room.RoomID, monday)
	assert.ErrorIs(t, err, ErrRoomFull)

	_, err = c.svc.CreateActivityReservation(ctx, c.member, c.yogaMon.PlanningActivityActivityID, c.room.RoomID, monday)
	assert.ErrorIs(t, err, helper.ErrInvalidInput, "calendar activities are booked through their slot")
}

func TestMemberDailyPlanning(t *testing.T) {
	c := newYogaClub(t, 10)
	ctx := context.Background()

	// neither started nor running on monday
	for _, p := range []*planningModel.PlanningModel{
		{PlanningID: uuid.New(), PlanningClubID: c.planning.PlanningClubID, PlanningStartDate: monday.AddDate(0, 1, 0)},
		{PlanningID: uuid.New(), PlanningClubID: c.planning.PlanningClubID, PlanningStartDate: monday.AddDate(0, -6, 0), PlanningEndDate: ptrTime(monday.AddDate(0, 0, -1))},
	} {
		require.NoError(t, c.db.Create(p).Error)
	}

	c.reserveSlot(t, c.yogaMon, monday.AddDate(0, 0, -7))
	c.reserveSlot(t, c.yogaMon, monday.AddDate(0, 0, 7))
	c.reserveSlot(t, c.yogaMon, monday.Add(9*time.Hour))
	_, err := c.svc.CreateActivityReservation(ctx, c.member, c.freeYoga.ActivityID, c.room.RoomID, monday)
	require.NoError(t, err)

	got, err := c.svc.GetMemberDailyPlanning(ctx, c.member, monday)
	require.NoError(t, err)
	require.Len(t, got, 1)
	day := got[0]
	assert.Equal(t, c.planning.PlanningID, day.PlanningID)

	require.Len(t, day.Activities, 1, "tuesday slot and boxing slot are left out")
	slot := day.Activities[0]
	assert.Equal(t, c.yogaMon.PlanningActivityID, slot.PlanningActivityID)
	assert.Equal(t, dbtime.DayName(monday), slot.PlanningActivityDay)
	require.NotNil(t, slot.Activity)
	assert.Equal(t, "yoga", slot.Activity.ActivityName)
	require.Len(t, slot.Reservations, 2, "reservations before the day are left out")
	assert.True(t, slot.Reservations[0].Date.Equal(monday.Add(9*time.Hour)))
	assert.True(t, slot.Reservations[1].Date.Equal(monday.AddDate(0, 0, 7)))

	require.Len(t, day.WithNoCalendar, 1)
	free := day.WithNoCalendar[0]
	assert.Equal(t, c.freeYoga.ActivityID, free.ActivityID)
	require.Len(t, free.Rooms, 1)
	assert.Equal(t, c.room.RoomID, free.Rooms[0].ID)
	require.Len(t, free.Reservations, 1)
	assert.Equal(t, c.room.RoomName, free.Reservations[0].RoomName)

	none, err := c.svc.GetMemberDailyPlanning(ctx, uuid.New(), monday)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func ptrTime(t time.Time) *time.Time { return &t }
