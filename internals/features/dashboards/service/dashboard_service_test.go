package service

import (
	"testing"
	"time"

	clubModel "videoach_backend/internals/features/clubs/model"
	eventModel "videoach_backend/internals/features/events/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachEventsKeepsClubOrder(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	clubs := []clubModel.ClubModel{{ClubID: a, ClubName: "Alpha"}, {ClubID: b, ClubName: "Beta"}}
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	events := []eventModel.EventModel{
		{EventID: uuid.New(), EventClubID: b, EventName: "Open day", EventStartDate: day},
		{EventID: uuid.New(), EventClubID: b, EventName: "Gala", EventStartDate: day.AddDate(0, 0, 3)},
	}

	got := attachEvents(clubs, events)
	require.Len(t, got, 2)
	assert.Equal(t, "Alpha", got[0].Name)
	assert.NotNil(t, got[0].Events)
	assert.Empty(t, got[0].Events)
	require.Len(t, got[1].Events, 2)
	assert.Equal(t, "Open day", got[1].Events[0].Name)
	assert.Equal(t, "Gala", got[1].Events[1].Name)
}
