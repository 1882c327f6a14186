package estimate_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/shopsmart-ai/scout/internal/estimate"
	"github.com/shopsmart-ai/scout/internal/models"
	"github.com/shopsmart-ai/scout/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"googlemaps.github.io/maps"
)

func TestAnnotate(t *testing.T) {
	origin := models.Coordinates{Latitude: 30.2672, Longitude: -97.7431}

	sources := []models.PlaceRecord{
		{PlaceID: "p1", Name: "H-E-B", PriceLevel: 2, Rating: 4.5,
			Location: models.Coordinates{Latitude: 30.28, Longitude: -97.75}},
		{PlaceID: "p2", Name: "Whole Foods", PriceLevel: 4, Rating: 4.7,
			Location: models.Coordinates{Latitude: 30.27, Longitude: -97.76}},
		{Name: "Unlisted Market", Rating: 3.9,
			Location: models.Coordinates{Latitude: 30.25, Longitude: -97.73}},
	}
	candidates := []models.StoreCandidate{
		{Name: "H-E-B"}, {Name: "Whole Foods"}, {Name: "Unlisted Market"},
	}

	t.Run("matrix durations and price bands", func(t *testing.T) {
		mockClient := mocks.NewDistanceAPIClient(t)
		mockClient.On("DistanceMatrix", t.Context(), mock.MatchedBy(func(r *maps.DistanceMatrixRequest) bool {
			return len(r.Origins) == 1 &&
				r.Destinations[0] == "place_id:p1" &&
				r.Destinations[1] == "place_id:p2" &&
				r.Mode == maps.TravelModeDriving
		})).Return(&maps.DistanceMatrixResponse{
			Rows: []maps.DistanceMatrixElementsRow{{
				Elements: []*maps.DistanceMatrixElement{
					{Status: "OK", Duration: 12 * time.Minute},
					{Status: "OK", Duration: 18 * time.Minute},
					{Status: "NOT_FOUND"},
				},
			}},
		}, nil).Once()

		estimator := estimate.NewEstimator(mockClient, slog.Default())
		annotated := estimator.Annotate(t.Context(), origin, candidates, sources)

		require.Len(t, annotated, 3)
		assert.InEpsilon(t, 12.0, *annotated[0].TravelTimeMinutes, 0.001)
		assert.InEpsilon(t, 18.0, *annotated[1].TravelTimeMinutes, 0.001)
		// Third element was NOT_FOUND: falls back to straight-line estimate.
		assert.Positive(t, *annotated[2].TravelTimeMinutes)

		assert.InEpsilon(t, 20.0, *annotated[0].EstimatedPrice, 0.001)
		assert.InEpsilon(t, 60.0, *annotated[1].EstimatedPrice, 0.001)
		// Unknown price level gets the default band.
		assert.InEpsilon(t, 20.0, *annotated[2].EstimatedPrice, 0.001)

		assert.InEpsilon(t, 4.5, *annotated[0].Rating, 0.001)
		assert.InEpsilon(t, 3.9, *annotated[2].Rating, 0.001)
		mockClient.AssertExpectations(t)
	})

	t.Run("matrix failure falls back to straight-line for all", func(t *testing.T) {
		mockClient := mocks.NewDistanceAPIClient(t)
		mockClient.On("DistanceMatrix", t.Context(), mock.Anything).
			Return(nil, assert.AnError).Once()

		estimator := estimate.NewEstimator(mockClient, slog.Default())
		annotated := estimator.Annotate(t.Context(), origin, candidates, sources)

		require.Len(t, annotated, 3)
		for _, candidate := range annotated {
			require.NotNil(t, candidate.TravelTimeMinutes)
			assert.Positive(t, *candidate.TravelTimeMinutes)
			require.NotNil(t, candidate.EstimatedPrice)
			require.NotNil(t, candidate.Rating)
		}
		mockClient.AssertExpectations(t)
	})

	t.Run("empty candidates is a no-op without API calls", func(t *testing.T) {
		mockClient := mocks.NewDistanceAPIClient(t)

		estimator := estimate.NewEstimator(mockClient, slog.Default())
		annotated := estimator.Annotate(t.Context(), origin, nil, nil)

		assert.Empty(t, annotated)
		mockClient.AssertExpectations(t)
	})

	t.Run("input candidates are not mutated", func(t *testing.T) {
		mockClient := mocks.NewDistanceAPIClient(t)
		mockClient.On("DistanceMatrix", t.Context(), mock.Anything).
			Return(nil, assert.AnError).Once()

		estimator := estimate.NewEstimator(mockClient, slog.Default())
		_ = estimator.Annotate(t.Context(), origin, candidates, sources)

		assert.Nil(t, candidates[0].EstimatedPrice)
		assert.Nil(t, candidates[0].TravelTimeMinutes)
	})
}
