package service

import (
	"testing"

	"videoach_backend/internals/features/coaches/dto"
	"videoach_backend/internals/features/coaches/model"
	"videoach_backend/internals/features/pricing/plans"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfferLimitByTarget(t *testing.T) {
	l := plans.Limits{MaxOffers: 10, MaxCompanyOffers: 3}
	assert.Equal(t, 10, offerLimit(l, model.TargetIndividual))
	assert.Equal(t, 3, offerLimit(l, model.TargetCompany))
}

func TestOfferTargetDefaultsToIndividual(t *testing.T) {
	assert.Equal(t, model.TargetIndividual, dto.CoachOfferRequest{}.TargetOrDefault())
	assert.Equal(t, model.TargetCompany, dto.CoachOfferRequest{Target: "company"}.TargetOrDefault())
	assert.Equal(t, model.TargetIndividual, dto.CoachOfferRequest{Target: "GROUP"}.TargetOrDefault())
}

func TestOfferToModelRejectsBadDate(t *testing.T) {
	_, err := dto.CoachOfferRequest{Name: "x", StartDate: "not a date"}.ToModel(uuid.New())
	require.Error(t, err)

	coach := uuid.New()
	o, err := dto.CoachOfferRequest{Name: "Yoga", StartDate: "2024-03-01"}.ToModel(coach)
	require.NoError(t, err)
	require.NotNil(t, o.CoachOfferStartDate)
	assert.Equal(t, 2024, o.CoachOfferStartDate.Year())
	assert.Equal(t, coach, o.CoachOfferCoachID)
}

func TestModuleNamesTrimsAndDedupes(t *testing.T) {
	got := moduleNames([]string{" Pilates ", "pilates", "", "Yoga"})
	require.Len(t, got, 2)
	assert.Equal(t, "Pilates", got[0].CertificationModuleName)
	assert.Equal(t, "Yoga", got[1].CertificationModuleName)
}

func TestProfileRangeDefault(t *testing.T) {
	p := dto.CoachProfileRequest{PublicName: "Sam"}.ToModel(uuid.New())
	assert.Equal(t, 10, p.CoachProfileRange)
}

func TestDedupeDropsNil(t *testing.T) {
	a := uuid.New()
	assert.Equal(t, []uuid.UUID{a}, dedupe([]uuid.UUID{uuid.Nil, a, a}))
}
