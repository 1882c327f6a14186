package places

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopsmart-ai/scout/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleFetcher retrieves nearby places from the Google Places API. One fetch
// covers at most one page of the service's response: continuation tokens are
// deliberately not followed, multi-point sampling compensates for the bounded
// coverage instead.
type GoogleFetcher struct {
	client    PlacesAPIClient // client is the Google Maps API client
	placeType maps.PlaceType  // placeType filters results, e.g. "store"
	log       *slog.Logger    // log is the logger for logging operations
}

// PlacesAPIClient is the subset of the Google Maps client used for nearby
// lookups. Kept narrow so tests can mock it.
type PlacesAPIClient interface {
	NearbySearch(ctx context.Context, r *maps.NearbySearchRequest) (maps.PlacesSearchResponse, error)
}

// NewGoogleFetcher initializes a fetcher over an existing Maps API client.
func NewGoogleFetcher(client PlacesAPIClient, placeType string, log *slog.Logger) *GoogleFetcher {
	return &GoogleFetcher{client: client, placeType: maps.PlaceType(placeType), log: log}
}

// Fetch returns the place records found around one sample point. The result
// is a single page and may be empty. Errors are returned to the caller, which
// is expected to degrade that sample point to an empty contribution rather
// than abort the aggregation.
func (gf *GoogleFetcher) Fetch(ctx context.Context, point models.SamplePoint) ([]models.PlaceRecord, error) {
	gf.log.DebugContext(ctx, "Fetching nearby places",
		"label", point.Label,
		"lat", point.Coordinate.Latitude,
		"lng", point.Coordinate.Longitude,
		"radius_m", point.RadiusMeters)

	req := &maps.NearbySearchRequest{
		Location: &maps.LatLng{Lat: point.Coordinate.Latitude, Lng: point.Coordinate.Longitude},
		Radius:   uint(point.RadiusMeters),
		Type:     gf.placeType,
	}

	resp, err := gf.client.NearbySearch(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to search nearby places at %q: %w", point.Label, err)
	}

	records := make([]models.PlaceRecord, 0, len(resp.Results))
	for _, result := range resp.Results {
		records = append(records, models.PlaceRecord{
			PlaceID:  result.PlaceID,
			Name:     result.Name,
			Vicinity: result.Vicinity,
			Location: models.Coordinates{
				Latitude:  result.Geometry.Location.Lat,
				Longitude: result.Geometry.Location.Lng,
			},
			Rating:     float64(result.Rating),
			PriceLevel: result.PriceLevel,
		})
	}

	gf.log.DebugContext(ctx, "Nearby search returned results", "label", point.Label, "count", len(records))

	return records, nil
}
