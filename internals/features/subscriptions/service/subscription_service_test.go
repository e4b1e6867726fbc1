package service

import (
	"context"
	"testing"

	"videoach_backend/internals/features/subscriptions/dto"
	subModel "videoach_backend/internals/features/subscriptions/model"
	helper "videoach_backend/internals/helpers"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionRequestDefaults(t *testing.T) {
	club := uuid.New()
	m, err := dto.SubscriptionRequest{Name: "  Basic ", StartDate: "2024-09-01"}.ToModel(club)
	require.NoError(t, err)
	assert.Equal(t, "Basic", m.SubscriptionName)
	assert.Equal(t, club, m.SubscriptionClubID)
	assert.Equal(t, subModel.ModeAllInclusive, m.SubscriptionMode)
	assert.Equal(t, subModel.RestrictionClub, m.SubscriptionRestriction)
	assert.Zero(t, m.SubscriptionCancelationFee)
	assert.Zero(t, m.SubscriptionInscriptionFee)

	_, err = dto.SubscriptionRequest{Name: "x", StartDate: "tomorrow"}.ToModel(club)
	assert.Error(t, err)
}

func TestDedupeKeepsFirstOrder(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	assert.Equal(t, []uuid.UUID{a, b}, dedupe([]uuid.UUID{a, b, a, b}))
	assert.Empty(t, dedupe(nil))
}

func TestGetDataNamesRejectsMalformedIDs(t *testing.T) {
	svc := NewSubscriptionService(nil, nil, nil)
	_, err := svc.GetDataNames(context.Background(), dto.DataNamesRequest{SiteIDs: []string{"not-an-id"}})
	assert.ErrorIs(t, err, helper.ErrInvalidInput)
}

func TestGetDataNamesEmptyRequest(t *testing.T) {
	svc := NewSubscriptionService(nil, nil, nil)
	out, err := svc.GetDataNames(context.Background(), dto.DataNamesRequest{})
	require.NoError(t, err)
	assert.NotNil(t, out.Sites)
	assert.NotNil(t, out.Rooms)
	assert.NotNil(t, out.ActivityGroups)
	assert.NotNil(t, out.Activities)
}
