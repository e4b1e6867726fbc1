package service

import (
	"testing"

	clubModel "videoach_backend/internals/features/clubs/model"
	subModel "videoach_backend/internals/features/subscriptions/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var planningCols = Columns{
	Group:    "activities.activity_group_id",
	Activity: "planning_activities.planning_activity_activity_id",
	Site:     "planning_activities.planning_activity_site_id",
	Room:     "planning_activities.planning_activity_room_id",
}

func sub(mode, restriction string) subModel.SubscriptionModel {
	return subModel.SubscriptionModel{SubscriptionMode: mode, SubscriptionRestriction: restriction}
}

func TestGroupOrSiteSubscriptions(t *testing.T) {
	g1, g2 := uuid.New(), uuid.New()
	s1, s2 := uuid.New(), uuid.New()

	byGroup := sub(subModel.ModeActivityGroup, subModel.RestrictionClub)
	byGroup.ActivityGroups = []clubModel.ActivityGroupModel{{ActivityGroupID: g1}}
	bySite := sub(subModel.ModeAllInclusive, subModel.RestrictionSite)
	bySite.Sites = []clubModel.SiteModel{{SiteID: s1}}

	f := BuildPlanningFilter([]subModel.SubscriptionModel{byGroup, bySite})
	require.Len(t, f.Clauses, 2)

	assert.True(t, f.Matches(Target{GroupID: g1, SiteID: s2}), "group clause")
	assert.True(t, f.Matches(Target{GroupID: g2, SiteID: s1}), "site clause")
	assert.False(t, f.Matches(Target{GroupID: g2, SiteID: s2}))

	expr, args := f.SQL(planningCols)
	assert.Equal(t, "((activities.activity_group_id IN ?) OR (planning_activities.planning_activity_site_id IN ?))", expr)
	assert.Equal(t, []any{[]uuid.UUID{g1}, []uuid.UUID{s1}}, args)
}

func TestClauseCombinesModeAndRestriction(t *testing.T) {
	a1 := uuid.New()
	r1 := uuid.New()
	s := sub(subModel.ModeActivity, subModel.RestrictionRoom)
	s.Activities = []clubModel.ActivityModel{{ActivityID: a1}}
	s.Rooms = []clubModel.RoomModel{{RoomID: r1}}

	f := BuildPlanningFilter([]subModel.SubscriptionModel{s})
	other := uuid.New()
	assert.True(t, f.Matches(Target{ActivityID: a1, RoomID: &r1}))
	assert.False(t, f.Matches(Target{ActivityID: a1, RoomID: &other}))
	assert.False(t, f.Matches(Target{ActivityID: a1}), "no room never matches a room restriction")

	expr, _ := f.SQL(planningCols)
	assert.Equal(t, "((planning_activities.planning_activity_activity_id IN ? AND planning_activities.planning_activity_room_id IN ?))", expr)
}

func TestAllInclusiveClubAddsNoClause(t *testing.T) {
	g := uuid.New()
	byGroup := sub(subModel.ModeActivityGroup, subModel.RestrictionClub)
	byGroup.ActivityGroups = []clubModel.ActivityGroupModel{{ActivityGroupID: g}}

	f := BuildPlanningFilter([]subModel.SubscriptionModel{byGroup, sub(subModel.ModeAllInclusive, subModel.RestrictionClub)})
	assert.False(t, f.Unrestricted)
	require.Len(t, f.Clauses, 1)
	assert.True(t, f.Matches(Target{GroupID: g}))
	assert.False(t, f.Matches(Target{GroupID: uuid.New()}), "the all-inclusive subscription is skipped")

	expr, args := f.SQL(planningCols)
	assert.Equal(t, "((activities.activity_group_id IN ?))", expr)
	assert.Equal(t, []any{[]uuid.UUID{g}}, args)
}

func TestOnlyAllInclusiveClubIsUnrestricted(t *testing.T) {
	f := BuildPlanningFilter([]subModel.SubscriptionModel{sub(subModel.ModeAllInclusive, subModel.RestrictionClub)})
	assert.True(t, f.Unrestricted)
	assert.True(t, f.Matches(Target{GroupID: uuid.New()}))
	expr, args := f.SQL(planningCols)
	assert.Empty(t, expr)
	assert.Nil(t, args)
}

func TestNoSubscriptionDenies(t *testing.T) {
	f := BuildPlanningFilter(nil)
	assert.True(t, f.Deny)
	assert.False(t, f.Matches(Target{}))
	expr, _ := f.SQL(planningCols)
	assert.Equal(t, "1 = 0", expr)
}

func TestEmptySelectionMatchesNothing(t *testing.T) {
	f := BuildPlanningFilter([]subModel.SubscriptionModel{sub(subModel.ModeActivityGroup, subModel.RestrictionClub)})
	assert.False(t, f.Matches(Target{GroupID: uuid.New()}))
	expr, args := f.SQL(planningCols)
	assert.Equal(t, "((1 = 0))", expr)
	assert.Empty(t, args)
}

func TestNoCalendarKeepsActivityParts(t *testing.T) {
	g := uuid.New()
	byGroupInSite := sub(subModel.ModeActivityGroup, subModel.RestrictionSite)
	byGroupInSite.ActivityGroups = []clubModel.ActivityGroupModel{{ActivityGroupID: g}}
	byGroupInSite.Sites = []clubModel.SiteModel{{SiteID: uuid.New()}}

	nc := BuildPlanningFilter([]subModel.SubscriptionModel{byGroupInSite}).NoCalendar()
	require.Len(t, nc.Clauses, 1)
	assert.Nil(t, nc.Clauses[0].Site)
	assert.True(t, nc.Matches(Target{GroupID: g}))

	expr, _ := nc.SQL(Columns{Group: "activity_group_id", Activity: "activity_id"})
	assert.Equal(t, "((activity_group_id IN ?))", expr)

	// a site-only subscription has no activity part: it is dropped, the group clause stays
	siteOnly := sub(subModel.ModeAllInclusive, subModel.RestrictionSite)
	siteOnly.Sites = []clubModel.SiteModel{{SiteID: uuid.New()}}
	nc = BuildPlanningFilter([]subModel.SubscriptionModel{byGroupInSite, siteOnly}).NoCalendar()
	assert.False(t, nc.Unrestricted)
	require.Len(t, nc.Clauses, 1)
	assert.True(t, nc.Matches(Target{GroupID: g}))
	assert.False(t, nc.Matches(Target{GroupID: uuid.New()}))

	// with only site-restricted subscriptions nothing narrows the no-calendar activities
	nc = BuildPlanningFilter([]subModel.SubscriptionModel{siteOnly}).NoCalendar()
	assert.True(t, nc.Unrestricted)
}
