// Package geo fans a single center-and-radius search area out into several
// bounded sample points. The nearby lookup service caps each call's radius, so
// a large area is approximated by querying the center plus four cardinal
// offset points and merging the results.
package geo

import (
	"math"

	"github.com/shopsmart-ai/scout/internal/models"
)

const (
	// kmPerDegreeLat is the approximate surface distance of one degree of
	// latitude. Longitude scaling shrinks by cos(latitude).
	kmPerDegreeLat = 111.0

	// offsetFactor places each cardinal point at 0.6 of the requested radius
	// from the center; radiusFactor gives each offset point a 0.7-radius
	// search circle. Together the five circles cover the requested area with
	// overlap, at the cost of duplicate records the deduplicator removes.
	offsetFactor = 0.6
	radiusFactor = 0.7

	metersPerKm = 1000
)

// SamplePoints returns the ordered sample points covering a search of
// radiusKm around center: the center at full radius, then North, South, East
// and West offsets. A degenerate radius (<= 0) yields a center-only point so
// callers never receive an empty plan.
func SamplePoints(center models.Coordinates, radiusKm float64) []models.SamplePoint {
	if radiusKm <= 0 {
		return []models.SamplePoint{{
			Coordinate:   center,
			RadiusMeters: 0,
			Label:        "Center",
		}}
	}

	latOffset := offsetFactor * radiusKm / kmPerDegreeLat
	lngOffset := offsetFactor * radiusKm / (kmPerDegreeLat * math.Cos(center.Latitude*math.Pi/180))
	offsetRadius := int(math.Round(radiusFactor * radiusKm * metersPerKm))

	return []models.SamplePoint{
		{
			Coordinate:   center,
			RadiusMeters: int(math.Round(radiusKm * metersPerKm)),
			Label:        "Center",
		},
		{
			Coordinate:   models.Coordinates{Latitude: center.Latitude + latOffset, Longitude: center.Longitude},
			RadiusMeters: offsetRadius,
			Label:        "North",
		},
		{
			Coordinate:   models.Coordinates{Latitude: center.Latitude - latOffset, Longitude: center.Longitude},
			RadiusMeters: offsetRadius,
			Label:        "South",
		},
		{
			Coordinate:   models.Coordinates{Latitude: center.Latitude, Longitude: center.Longitude + lngOffset},
			RadiusMeters: offsetRadius,
			Label:        "East",
		},
		{
			Coordinate:   models.Coordinates{Latitude: center.Latitude, Longitude: center.Longitude - lngOffset},
			RadiusMeters: offsetRadius,
			Label:        "West",
		},
	}
}

// HaversineKm returns the great-circle distance between two points in
// kilometers. Used as the travel-time fallback when the distance matrix is
// unavailable.
func HaversineKm(a, b models.Coordinates) float64 {
	const earthRadiusKm = 6371.0

	latA := a.Latitude * math.Pi / 180
	latB := b.Latitude * math.Pi / 180
	dLat := latB - latA
	dLng := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}
