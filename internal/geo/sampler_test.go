package geo_test

import (
	"math"
	"testing"

	"github.com/shopsmart-ai/scout/internal/geo"
	"github.com/shopsmart-ai/scout/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSamplePoints(t *testing.T) {
	center := models.Coordinates{Latitude: 30.2672, Longitude: -97.7431}

	t.Run("center plus four cardinal offsets", func(t *testing.T) {
		points := geo.SamplePoints(center, 5.0)

		require.Len(t, points, 5)
		assert.Equal(t, []string{"Center", "North", "South", "East", "West"},
			[]string{points[0].Label, points[1].Label, points[2].Label, points[3].Label, points[4].Label})

		// Center keeps the full radius, offsets get 0.7x.
		assert.Equal(t, 5000, points[0].RadiusMeters)
		for _, p := range points[1:] {
			assert.Equal(t, 3500, p.RadiusMeters)
		}
	})

	t.Run("offset distances use degree approximation", func(t *testing.T) {
		points := geo.SamplePoints(center, 5.0)

		wantLatOffset := 0.6 * 5.0 / 111.0
		assert.InEpsilon(t, center.Latitude+wantLatOffset, points[1].Coordinate.Latitude, 1e-9)
		assert.InEpsilon(t, center.Latitude-wantLatOffset, points[2].Coordinate.Latitude, 1e-9)
		assert.InEpsilon(t, center.Longitude, points[1].Coordinate.Longitude, 1e-9)

		wantLngOffset := 0.6 * 5.0 / (111.0 * math.Cos(center.Latitude*math.Pi/180))
		assert.InEpsilon(t, center.Longitude+wantLngOffset, points[3].Coordinate.Longitude, 1e-9)
		assert.InEpsilon(t, center.Longitude-wantLngOffset, points[4].Coordinate.Longitude, 1e-9)
		assert.InEpsilon(t, center.Latitude, points[3].Coordinate.Latitude, 1e-9)
	})

	t.Run("degenerate radius yields center only", func(t *testing.T) {
		for _, radius := range []float64{0, -2.5} {
			points := geo.SamplePoints(center, radius)

			require.Len(t, points, 1)
			assert.Equal(t, "Center", points[0].Label)
			assert.Equal(t, center, points[0].Coordinate)
		}
	})
}

func TestHaversineKm(t *testing.T) {
	t.Run("zero distance to itself", func(t *testing.T) {
		p := models.Coordinates{Latitude: 30.2672, Longitude: -97.7431}
		assert.InDelta(t, 0, geo.HaversineKm(p, p), 1e-9)
	})

	t.Run("known city pair", func(t *testing.T) {
		austin := models.Coordinates{Latitude: 30.2672, Longitude: -97.7431}
		dallas := models.Coordinates{Latitude: 32.7767, Longitude: -96.7970}

		// Roughly 293 km between downtown Austin and downtown Dallas.
		assert.InDelta(t, 293, geo.HaversineKm(austin, dallas), 5)
	})
}
