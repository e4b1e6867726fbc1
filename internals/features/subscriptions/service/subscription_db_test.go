package service

import (
	"context"
	"testing"

	"videoach_backend/internals/constants"
	"videoach_backend/internals/features/pricing/plans"
	subModel "videoach_backend/internals/features/subscriptions/model"
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

func TestSubscribeCountsClubsAgainstPlan(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	manager := testdb.User(t, db, constants.RoleManager)
	member := testdb.User(t, db, constants.RoleMember)
	clubA := testdb.Club(t, db, manager.ID)
	clubB := testdb.Club(t, db, manager.ID)
	basicA := testdb.Subscription(t, db, clubA.ClubID, subModel.ModeAllInclusive, subModel.RestrictionClub, nil)
	extraA := testdb.Subscription(t, db, clubA.ClubID, subModel.ModeActivityGroup, subModel.RestrictionClub, nil)
	basicB := testdb.Subscription(t, db, clubB.ClubID, subModel.ModeAllInclusive, subModel.RestrictionClub, nil)

	svc := NewSubscriptionService(db, nil, fixedLimits{MaxNumberOfClubs: 1})

	require.NoError(t, svc.Subscribe(ctx, member.ID, basicA.SubscriptionID))
	require.NoError(t, svc.Subscribe(ctx, member.ID, basicA.SubscriptionID), "subscribing twice is a no-op")
	require.NoError(t, svc.Subscribe(ctx, member.ID, extraA.SubscriptionID), "a club already joined is free")

	err := svc.Subscribe(ctx, member.ID, basicB.SubscriptionID)
	assert.ErrorIs(t, err, helper.ErrLimitReached)

	subs, err := MemberSubscriptions(ctx, db, member.ID, nil)
	require.NoError(t, err)
	assert.Len(t, subs, 2)
	for _, s := range subs {
		assert.Equal(t, clubA.ClubID, s.SubscriptionClubID)
	}

	svc.Limits = fixedLimits{MaxNumberOfClubs: plans.Unlimited}
	require.NoError(t, svc.Subscribe(ctx, member.ID, basicB.SubscriptionID))
}

func TestSubscribeRefusesDeletedSubscription(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	manager := testdb.User(t, db, constants.RoleManager)
	member := testdb.User(t, db, constants.RoleMember)
	club := testdb.Club(t, db, manager.ID)
	sub := testdb.Subscription(t, db, club.ClubID, subModel.ModeAllInclusive, subModel.RestrictionClub, nil)
	require.NoError(t, db.Model(sub).Update("subscription_deleted", true).Error)

	svc := NewSubscriptionService(db, nil, fixedLimits{MaxNumberOfClubs: plans.Unlimited})
	err := svc.Subscribe(ctx, member.ID, sub.SubscriptionID)
	assert.ErrorIs(t, err, helper.ErrNotFound)
}
