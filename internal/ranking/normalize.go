// Package ranking turns heterogeneous raw store signals into one
// deterministic ordering: min-max normalization onto a 0-100 scale, a
// weighted combination, and a stable descending sort. Every stage takes a
// candidate slice and returns a new one; inputs are never mutated.
package ranking

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/shopsmart-ai/scout/internal/models"
)

const (
	// degenerateSpread is the min-max spread at or below which an attribute
	// carries no signal: every candidate then scores 100 rather than an
	// arbitrary winner being picked from noise.
	degenerateSpread = 0.01

	// maxRating is the absolute rating ceiling. Ratings are scaled against
	// it, not against the batch spread: a 4.8-star store scores 96 whether or
	// not a 5.0-star store is in the batch.
	maxRating = 5.0

	centScale = 100.0
)

// ErrIncompleteCandidate is returned when a candidate is missing a raw
// attribute a normalization pass requires. The whole pass fails: partially
// normalized scores would not be comparable.
var ErrIncompleteCandidate = errors.New("store candidate is missing a required attribute")

// NormalizePrices returns a new slice with PriceScore populated from
// EstimatedPrice using inverted min-max scaling: the cheapest store scores
// 100, the most expensive 0. An empty input is returned unchanged.
func NormalizePrices(candidates []models.StoreCandidate) ([]models.StoreCandidate, error) {
	return normalizeInverted(candidates, "estimated_price",
		func(c models.StoreCandidate) *float64 { return c.EstimatedPrice },
		func(c *models.StoreCandidate, score float64) { c.PriceScore = &score },
	)
}

// NormalizeTimes returns a new slice with TimeScore populated from
// TravelTimeMinutes using inverted min-max scaling: the closest store scores
// 100, the furthest 0. An empty input is returned unchanged.
func NormalizeTimes(candidates []models.StoreCandidate) ([]models.StoreCandidate, error) {
	return normalizeInverted(candidates, "travel_time_minutes",
		func(c models.StoreCandidate) *float64 { return c.TravelTimeMinutes },
		func(c *models.StoreCandidate, score float64) { c.TimeScore = &score },
	)
}

// NormalizeRatings returns a new slice with RatingScore populated as
// 100 x rating / 5.0. Unlike price and time this is independent of the batch:
// the ceiling is absolute, so a candidate's rating score never changes when
// other candidates enter or leave the batch.
func NormalizeRatings(candidates []models.StoreCandidate) ([]models.StoreCandidate, error) {
	if len(candidates) == 0 {
		return candidates, nil
	}

	out := slices.Clone(candidates)
	for i := range out {
		if out[i].Rating == nil {
			return nil, fmt.Errorf("%w: %q lacks rating", ErrIncompleteCandidate, out[i].Name)
		}
	}

	for i := range out {
		score := round2(centScale * *out[i].Rating / maxRating)
		out[i].RatingScore = &score
	}

	return out, nil
}

// normalizeInverted applies lower-is-better min-max scaling for one raw
// attribute. Missing attributes are checked up front so the pass fails
// without producing any scores.
func normalizeInverted(
	candidates []models.StoreCandidate,
	attr string,
	raw func(models.StoreCandidate) *float64,
	assign func(*models.StoreCandidate, float64),
) ([]models.StoreCandidate, error) {
	if len(candidates) == 0 {
		return candidates, nil
	}

	out := slices.Clone(candidates)
	for i := range out {
		if raw(out[i]) == nil {
			return nil, fmt.Errorf("%w: %q lacks %s", ErrIncompleteCandidate, out[i].Name, attr)
		}
	}

	minVal, maxVal := *raw(out[0]), *raw(out[0])
	for i := range out {
		value := *raw(out[i])
		minVal = math.Min(minVal, value)
		maxVal = math.Max(maxVal, value)
	}
	spread := maxVal - minVal

	for i := range out {
		score := centScale
		if spread > degenerateSpread {
			score = centScale * (maxVal - *raw(out[i])) / spread
		}
		assign(&out[i], round2(score))
	}

	return out, nil
}

func round2(v float64) float64 {
	return math.Round(v*centScale) / centScale
}
