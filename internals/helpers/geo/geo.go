// Package geo wraps paulmach/orb for the site search: a bounding box to prefilter in SQL,
// then the exact geodesic distance.
package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

const (
	DefaultRangeKm = 25
	MaxRangeKm     = 100
)

// Box in degrees, usable as BETWEEN bounds on longitude/latitude columns.
type Box struct {
	MinLng, MaxLng float64
	MinLat, MaxLat float64
}

func Point(lng, lat float64) orb.Point { return orb.Point{lng, lat} }

// BoundingBox returns the box enclosing every point within rangeKm of (lng, lat).
func BoundingBox(lng, lat, rangeKm float64) Box {
	b := geo.NewBoundAroundPoint(Point(lng, lat), rangeKm*1000)
	return Box{
		MinLng: b.Min.Lon(),
		MaxLng: b.Max.Lon(),
		MinLat: b.Min.Lat(),
		MaxLat: b.Max.Lat(),
	}
}

func (b Box) Contains(lng, lat float64) bool {
	return orb.Bound{Min: orb.Point{b.MinLng, b.MinLat}, Max: orb.Point{b.MaxLng, b.MaxLat}}.
		Contains(Point(lng, lat))
}

// DistanceKm is the great-circle distance in kilometers.
func DistanceKm(lng1, lat1, lng2, lat2 float64) float64 {
	return geo.Distance(Point(lng1, lat1), Point(lng2, lat2)) / 1000
}

// ClampRange caps at MaxRangeKm; a non-positive range is an empty area, not the default.
func ClampRange(r float64) float64 {
	if r <= 0 {
		return 0
	}
	if r > MaxRangeKm {
		return MaxRangeKm
	}
	return r
}
