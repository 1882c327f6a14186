package service_test

import (
	"log/slog"
	"os"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopsmart-ai/scout/internal/metrics"
	"github.com/shopsmart-ai/scout/internal/models"
	"github.com/shopsmart-ai/scout/internal/ranking"
	"github.com/shopsmart-ai/scout/internal/recommend"
	"github.com/shopsmart-ai/scout/internal/service"
	"github.com/shopsmart-ai/scout/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestService(
	t *testing.T,
) (*service.RankingService, *mocks.Fetcher, *mocks.Recommender, *mocks.Estimator, *mocks.Ranker) {
	t.Helper()
	fetcher := mocks.NewFetcher(t)
	recommender := mocks.NewRecommender(t)
	estimator := mocks.NewEstimator(t)
	ranker := mocks.NewRanker(t)
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	appMetrics := metrics.NewMetrics(prometheus.NewRegistry())

	svc := service.NewRankingService(logger, fetcher, recommender, estimator, ranker, appMetrics, 2)
	return svc, fetcher, recommender, estimator, ranker
}

func TestRankStores(t *testing.T) {
	ctx := t.Context()
	center := models.Coordinates{Latitude: 30.2672, Longitude: -97.7431}

	t.Run("successful run across sample points", func(t *testing.T) {
		svc, fetcher, recommender, estimator, ranker := newTestService(t)

		heb := models.PlaceRecord{PlaceID: "p1", Name: "H-E-B", Vicinity: "Congress Ave"}
		target := models.PlaceRecord{PlaceID: "p2", Name: "Target", Vicinity: "Lamar Blvd"}

		// Five sample points; the duplicate H-E-B sighting collapses in dedup.
		fetcher.On("Fetch", ctx, mock.MatchedBy(func(p models.SamplePoint) bool { return p.Label == "Center" })).
			Return([]models.PlaceRecord{heb, target}, nil).Once()
		fetcher.On("Fetch", ctx, mock.MatchedBy(func(p models.SamplePoint) bool { return p.Label != "Center" })).
			Return([]models.PlaceRecord{heb}, nil).Times(4)

		recommender.On("Recommend", ctx, "chocolate", []string{"H-E-B", "Target"}).
			Return(&recommend.Recommendation{
				Stores:     map[string][]string{"H-E-B": {"chocolate"}},
				ItemsToBuy: []string{"chocolate"},
			}, nil).Once()

		annotated := []models.StoreCandidate{{
			Name:              "H-E-B",
			PlaceID:           "p1",
			Items:             []string{"chocolate"},
			EstimatedPrice:    models.Float64(19.99),
			TravelTimeMinutes: models.Float64(12),
			Rating:            models.Float64(4.8),
		}}
		estimator.On("Annotate", ctx, center,
			mock.MatchedBy(func(cands []models.StoreCandidate) bool {
				return len(cands) == 1 && cands[0].Name == "H-E-B" && cands[0].PlaceID == "p1"
			}),
			mock.MatchedBy(func(sources []models.PlaceRecord) bool {
				return len(sources) == 1 && sources[0].PlaceID == "p1"
			})).
			Return(annotated).Once()

		ranked := []models.StoreCandidate{{Name: "H-E-B", FinalScore: 94.8}}
		ranker.On("Rank", ctx, mock.Anything, models.DefaultWeights()).Return(ranked).Once()

		result, err := svc.RankStores(ctx, service.RankRequest{
			Center:   center,
			RadiusKm: 5.0,
			Query:    "chocolate",
			Weights:  models.DefaultWeights(),
		})

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, ranked, result.Stores)
		assert.Equal(t, []string{"chocolate"}, result.ItemsToBuy)
		assert.Equal(t, []string{"H-E-B"}, result.StorePlan)
		assert.Equal(t, 2, result.TotalCandidates)
	})

	t.Run("failed sample points degrade to partial results", func(t *testing.T) {
		svc, fetcher, recommender, estimator, ranker := newTestService(t)

		target := models.PlaceRecord{PlaceID: "p2", Name: "Target"}

		fetcher.On("Fetch", ctx, mock.MatchedBy(func(p models.SamplePoint) bool { return p.Label == "Center" })).
			Return([]models.PlaceRecord{target}, nil).Once()
		fetcher.On("Fetch", ctx, mock.MatchedBy(func(p models.SamplePoint) bool { return p.Label != "Center" })).
			Return(nil, assert.AnError).Times(4)

		recommender.On("Recommend", ctx, "milk", []string{"Target"}).
			Return(&recommend.Recommendation{Stores: map[string][]string{}}, nil).Once()
		estimator.On("Annotate", ctx, center, mock.Anything, mock.Anything).
			Return([]models.StoreCandidate{}).Once()
		ranker.On("Rank", ctx, mock.Anything, models.DefaultWeights()).
			Return([]models.StoreCandidate{}).Once()

		result, err := svc.RankStores(ctx, service.RankRequest{
			Center: center, RadiusKm: 5.0, Query: "milk", Weights: models.DefaultWeights(),
		})

		require.NoError(t, err)
		assert.Empty(t, result.Stores)
		assert.Equal(t, 1, result.TotalCandidates)
	})

	t.Run("no places found returns an empty result without recommending", func(t *testing.T) {
		svc, fetcher, _, _, _ := newTestService(t)

		fetcher.On("Fetch", ctx, mock.Anything).Return([]models.PlaceRecord{}, nil).Times(5)

		result, err := svc.RankStores(ctx, service.RankRequest{
			Center: center, RadiusKm: 5.0, Query: "milk", Weights: models.DefaultWeights(),
		})

		require.NoError(t, err)
		assert.Empty(t, result.Stores)
		assert.Empty(t, result.ItemsToBuy)
		assert.Zero(t, result.TotalCandidates)
	})

	t.Run("recommendation failure aborts the request", func(t *testing.T) {
		svc, fetcher, recommender, _, _ := newTestService(t)

		fetcher.On("Fetch", ctx, mock.Anything).
			Return([]models.PlaceRecord{{PlaceID: "p1", Name: "H-E-B"}}, nil).Times(5)
		recommender.On("Recommend", ctx, "milk", []string{"H-E-B"}).
			Return(nil, recommend.ErrRecommendationParse).Once()

		result, err := svc.RankStores(ctx, service.RankRequest{
			Center: center, RadiusKm: 5.0, Query: "milk", Weights: models.DefaultWeights(),
		})

		require.Error(t, err)
		require.ErrorIs(t, err, recommend.ErrRecommendationParse)
		assert.Nil(t, result)
	})

	t.Run("incomplete candidate aborts the request", func(t *testing.T) {
		svc, fetcher, recommender, estimator, _ := newTestService(t)

		fetcher.On("Fetch", ctx, mock.Anything).
			Return([]models.PlaceRecord{{PlaceID: "p1", Name: "H-E-B"}}, nil).Times(5)
		recommender.On("Recommend", ctx, "milk", []string{"H-E-B"}).
			Return(&recommend.Recommendation{Stores: map[string][]string{"H-E-B": {"milk"}}}, nil).Once()

		// Estimation left the price unset: the normalization pass must fail.
		estimator.On("Annotate", ctx, center, mock.Anything, mock.Anything).
			Return([]models.StoreCandidate{{Name: "H-E-B"}}).Once()

		result, err := svc.RankStores(ctx, service.RankRequest{
			Center: center, RadiusKm: 5.0, Query: "milk", Weights: models.DefaultWeights(),
		})

		require.Error(t, err)
		require.ErrorIs(t, err, ranking.ErrIncompleteCandidate)
		assert.Nil(t, result)
	})

	t.Run("degenerate radius samples only the center", func(t *testing.T) {
		svc, fetcher, _, _, _ := newTestService(t)

		fetcher.On("Fetch", ctx, mock.MatchedBy(func(p models.SamplePoint) bool { return p.Label == "Center" })).
			Return([]models.PlaceRecord{}, nil).Once()

		result, err := svc.RankStores(ctx, service.RankRequest{
			Center: center, RadiusKm: 0, Query: "milk", Weights: models.DefaultWeights(),
		})

		require.NoError(t, err)
		assert.Zero(t, result.TotalCandidates)
	})
}
