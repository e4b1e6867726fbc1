package geo

import (
	"testing"

	"github.com/paulmach/orb/geo"
	"github.com/stretchr/testify/assert"
)

const parisLng, parisLat = 2.3522, 48.8566

func TestDistanceKm(t *testing.T) {
	assert.InDelta(t, 0, DistanceKm(parisLng, parisLat, parisLng, parisLat), 1e-9)
	// Paris → Lyon is about 392 km
	assert.InDelta(t, 392, DistanceKm(parisLng, parisLat, 4.8357, 45.7640), 5)
}

func TestBoundingBoxContainsPointsInRange(t *testing.T) {
	box := BoundingBox(parisLng, parisLat, 25)
	for bearing := 0.0; bearing < 360; bearing += 15 {
		p := geo.PointAtBearingAndDistance(Point(parisLng, parisLat), bearing, 24_900)
		assert.True(t, box.Contains(p.Lon(), p.Lat()), "bearing %v", bearing)
	}
	assert.False(t, box.Contains(4.8357, 45.7640))
}

func TestClampRange(t *testing.T) {
	assert.Zero(t, ClampRange(0))
	assert.Zero(t, ClampRange(-3))
	assert.Equal(t, 10.0, ClampRange(10))
	assert.Equal(t, float64(MaxRangeKm), ClampRange(1000))
}

func TestZeroRangeBoxIsAPoint(t *testing.T) {
	box := BoundingBox(parisLng, parisLat, ClampRange(0))
	assert.InDelta(t, parisLng, box.MinLng, 1e-9)
	assert.InDelta(t, parisLng, box.MaxLng, 1e-9)
	assert.InDelta(t, parisLat, box.MinLat, 1e-9)
	assert.InDelta(t, parisLat, box.MaxLat, 1e-9)
	assert.False(t, box.Contains(parisLng, parisLat+0.01))
}
