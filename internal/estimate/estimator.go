// Package estimate populates the raw scoring signals on store candidates:
// estimated basket price, travel time from the search origin, and rating.
package estimate

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopsmart-ai/scout/internal/geo"
	"github.com/shopsmart-ai/scout/internal/models"
	"googlemaps.github.io/maps"
)

// fallbackSpeedKmh is the assumed average driving speed when travel time has
// to be derived from straight-line distance instead of the distance matrix.
const fallbackSpeedKmh = 40.0

// priceByLevel maps the Google price level (1 cheapest, 4 most expensive) to
// an estimated basket price in dollars. Level 0 means the service reported no
// price information.
var priceByLevel = map[int]float64{
	1: 10.0,
	2: 20.0,
	3: 35.0,
	4: 60.0,
}

// defaultPrice is used when the place carries no price level.
const defaultPrice = 20.0

// DistanceAPIClient is the subset of the Google Maps client used for travel
// time estimation. Kept narrow so tests can mock it.
type DistanceAPIClient interface {
	DistanceMatrix(ctx context.Context, r *maps.DistanceMatrixRequest) (*maps.DistanceMatrixResponse, error)
}

// Estimator derives price, travel-time and rating signals for candidates from
// their source place records.
type Estimator struct {
	client DistanceAPIClient // client is the Google Maps API client
	log    *slog.Logger      // log is the logger for logging operations
}

// NewEstimator initializes an estimator over an existing Maps API client.
func NewEstimator(client DistanceAPIClient, log *slog.Logger) *Estimator {
	return &Estimator{client: client, log: log}
}

// Annotate returns a new candidate slice with EstimatedPrice,
// TravelTimeMinutes and Rating populated. sources[i] is the place record the
// i-th candidate was built from. Travel times come from one distance matrix
// call for the whole batch; if the call fails or an element is missing, that
// candidate falls back to straight-line distance at an average driving speed,
// so estimation never aborts the pipeline.
func (e *Estimator) Annotate(
	ctx context.Context,
	origin models.Coordinates,
	candidates []models.StoreCandidate,
	sources []models.PlaceRecord,
) []models.StoreCandidate {
	if len(candidates) == 0 {
		return candidates
	}

	durations := e.travelMinutes(ctx, origin, sources)

	annotated := make([]models.StoreCandidate, len(candidates))
	for i, candidate := range candidates {
		record := sources[i]

		price, ok := priceByLevel[record.PriceLevel]
		if !ok {
			price = defaultPrice
		}

		candidate.EstimatedPrice = models.Float64(price)
		candidate.TravelTimeMinutes = models.Float64(durations[i])
		candidate.Rating = models.Float64(record.Rating)
		annotated[i] = candidate
	}

	return annotated
}

// travelMinutes returns one travel time per source record, in minutes.
func (e *Estimator) travelMinutes(
	ctx context.Context,
	origin models.Coordinates,
	sources []models.PlaceRecord,
) []float64 {
	minutes := make([]float64, len(sources))
	for i, record := range sources {
		minutes[i] = geo.HaversineKm(origin, record.Location) / fallbackSpeedKmh * 60
	}

	destinations := make([]string, len(sources))
	for i, record := range sources {
		if record.PlaceID != "" {
			destinations[i] = "place_id:" + record.PlaceID
		} else {
			destinations[i] = fmt.Sprintf("%f,%f", record.Location.Latitude, record.Location.Longitude)
		}
	}

	req := &maps.DistanceMatrixRequest{
		Origins:      []string{fmt.Sprintf("%f,%f", origin.Latitude, origin.Longitude)},
		Destinations: destinations,
		Mode:         maps.TravelModeDriving,
	}

	resp, err := e.client.DistanceMatrix(ctx, req)
	if err != nil {
		e.log.WarnContext(ctx, "Distance matrix request failed, using straight-line fallback", "error", err)
		return minutes
	}

	if len(resp.Rows) == 0 {
		e.log.WarnContext(ctx, "Distance matrix returned no rows, using straight-line fallback")
		return minutes
	}

	for i, element := range resp.Rows[0].Elements {
		if i >= len(minutes) {
			break
		}
		if element.Status != "OK" {
			e.log.DebugContext(ctx, "Distance matrix element unavailable",
				"destination", destinations[i], "status", element.Status)
			continue
		}
		minutes[i] = element.Duration.Minutes()
	}

	return minutes
}
