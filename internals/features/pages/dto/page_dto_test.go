package dto

import (
	"testing"

	"videoach_backend/internals/features/pages/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSectionModels(t *testing.T) {
	cases := map[string][]string{
		model.TargetHome:       {"HERO", "ACTIVITY_GROUPS", "ACTIVITIES", "CONTACT", "LOCATION"},
		model.TargetOffers:     {"TITLE", "OFFERS"},
		model.TargetActivities: {"TITLE", "ACTIVITY_GROUPS", "ACTIVITIES"},
		model.TargetPlanning:   {"TITLE", "PLANNINGS"},
		model.TargetTeam:       {"TITLE", "TEAMMATES"},
		model.TargetVideos:     {},
	}
	for target, want := range cases {
		got := DefaultSectionModels(target)
		require.Len(t, got, len(want), target)
		for i, s := range got {
			assert.Equal(t, want[i], s.PageSectionModel, target)
			assert.Equal(t, i, s.PageSectionWeight, target)
			assert.JSONEq(t, `{}`, string(s.PageSectionContent))
		}
	}
}

func TestDefaultSectionsAreCopies(t *testing.T) {
	a := model.DefaultSections(model.TargetHome)
	a[0] = "MUTATED"
	assert.Equal(t, model.SectionHero, model.DefaultSections(model.TargetHome)[0])
}

func TestSectionsRequestOrderAndValidation(t *testing.T) {
	req := UpdateSectionsRequest{Sections: []SectionRequest{
		{Model: "title", Title: "Welcome"},
		{Model: "OFFERS", Content: []byte(`{"ids":[1]}`)},
	}}
	out, ok := req.ToModels()
	require.True(t, ok)
	assert.Equal(t, model.SectionTitle, out[0].PageSectionModel)
	assert.Equal(t, 1, out[1].PageSectionWeight)
	assert.JSONEq(t, `{"ids":[1]}`, string(out[1].PageSectionContent))

	_, ok = UpdateSectionsRequest{Sections: []SectionRequest{{Model: "CAROUSEL"}}}.ToModels()
	assert.False(t, ok)
}
