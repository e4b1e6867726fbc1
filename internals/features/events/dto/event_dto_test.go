package dto

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestEventRequestToModel(t *testing.T) {
	start := time.Date(2024, 10, 5, 9, 0, 0, 0, time.UTC)
	end := start.Add(3 * time.Hour)
	r := EventRequest{Name: " Open day ", StartDate: start, EndDate: end, Free: true, Price: 15}

	m := r.ToModel(uuid.New())
	assert.Equal(t, "Open day", m.EventName)
	assert.Equal(t, start, m.EventStartDisplay)
	assert.Equal(t, end, m.EventEndDisplay)
	assert.Zero(t, m.EventPrice)
	assert.NotNil(t, m.EventImageURLs)
	assert.True(t, r.Valid())

	r.EndDate = start.Add(-time.Minute)
	assert.False(t, r.Valid())
}
