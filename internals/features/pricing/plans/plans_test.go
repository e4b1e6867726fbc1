package plans

import (
	"testing"

	"videoach_backend/internals/constants"
	pricingModel "videoach_backend/internals/features/pricing/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogueFeaturesMatchRoles(t *testing.T) {
	for _, p := range All() {
		for _, f := range p.Features {
			assert.Contains(t, constants.FeatureRoles[f], p.Role, "%s grants %s", p.Name, f)
		}
	}
}

func TestEveryRoleHasAFreePlan(t *testing.T) {
	for _, role := range constants.PricingTargets {
		p, ok := FreePlan(role)
		require.True(t, ok, role)
		assert.Equal(t, role, p.Role)
	}
}

func TestLimitsForFreeManager(t *testing.T) {
	l := LimitsFor(constants.RoleManager, nil)
	assert.Equal(t, 1, l.MaxClubs)
	assert.Equal(t, 1, l.MaxSites)
	assert.Equal(t, 0, l.MaxRooms, "free plan has no MANAGER_ROOM")
}

func TestLimitsFollowGrantedFeatures(t *testing.T) {
	plan, ok := ByName("managerAdvanced")
	require.True(t, ok)
	row := ToPricing(plan)

	l := LimitsFor(constants.RoleManager, &row)
	assert.Equal(t, 3, l.MaxClubs)
	assert.Equal(t, 5, l.MaxSites)
	assert.Equal(t, 30, l.MaxRooms)

	// an admin removed MULTI_CLUB from this pricing
	var kept []pricingModel.PricingFeatureModel
	for _, f := range row.Features {
		if f.PricingFeatureFeature != constants.FeatureManagerMultiClub {
			kept = append(kept, f)
		}
	}
	row.Features = kept
	assert.Equal(t, 1, LimitsFor(constants.RoleManager, &row).MaxClubs)
}

func TestLimitsForMembers(t *testing.T) {
	assert.Equal(t, 1, LimitsFor(constants.RoleMember, nil).MaxNumberOfClubs)

	plan, _ := ByName("paidMember")
	row := ToPricing(plan)
	assert.Equal(t, 10, LimitsFor(constants.RoleMember, &row).MaxNumberOfClubs)
}

func TestAdminAndCustomAreUnlimited(t *testing.T) {
	assert.Equal(t, Unlimited, LimitsFor(constants.RoleAdmin, nil).MaxClubs)

	plan, _ := ByName("managerCustom")
	row := ToPricing(plan)
	assert.Equal(t, Unlimited, LimitsFor(constants.RoleManager, &row).MaxSites)
}

func TestAllows(t *testing.T) {
	assert.True(t, Allows(1, 0))
	assert.False(t, Allows(1, 1))
	assert.False(t, Allows(0, 0))
	assert.True(t, Allows(Unlimited, 1000))
}

func TestToPricingConvertsCents(t *testing.T) {
	plan, _ := ByName("coach")
	row := ToPricing(plan)
	assert.Equal(t, 20.0, row.PricingMonthly)
	assert.Equal(t, 200.0, row.PricingYearly)
	assert.False(t, row.PricingFree)
	assert.ElementsMatch(t, plan.Features, row.FeatureNames())
}
