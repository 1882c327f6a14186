package ranking_test

import (
	"log/slog"
	"testing"

	"github.com/shopsmart-ai/scout/internal/models"
	"github.com/shopsmart-ai/scout/internal/ranking"
	"github.com/shopsmart-ai/scout/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// normalizeAll runs the three normalization passes in pipeline order.
func normalizeAll(t *testing.T, input []models.StoreCandidate) []models.StoreCandidate {
	t.Helper()
	out, err := ranking.NormalizePrices(input)
	require.NoError(t, err)
	out, err = ranking.NormalizeTimes(out)
	require.NoError(t, err)
	out, err = ranking.NormalizeRatings(out)
	require.NoError(t, err)
	return out
}

func TestRank(t *testing.T) {
	ctx := t.Context()
	logger := slog.Default()

	t.Run("reference scenario", func(t *testing.T) {
		input := normalizeAll(t, []models.StoreCandidate{
			candidate("Shop A", 19.99, 12, 4.8),
			candidate("Shop B", 15.49, 18, 4.2),
			candidate("Shop C", 22.99, 10, 4.9),
		})
		weights := models.Weights{Price: 0.4, Time: 0.3, Rating: 0.3}

		ranked := ranking.NewRanker(logger, nil).Rank(ctx, input, weights)

		require.Len(t, ranked, 3)
		// A: 0.4*40 + 0.3*75 + 0.3*96 = 67.3
		// B: 0.4*100 + 0.3*0 + 0.3*84 = 65.2
		// C: 0.4*0 + 0.3*100 + 0.3*98 = 59.4
		assert.Equal(t, "Shop A", ranked[0].Name)
		assert.InEpsilon(t, 67.3, ranked[0].FinalScore, 0.001)
		assert.Equal(t, "Shop B", ranked[1].Name)
		assert.InEpsilon(t, 65.2, ranked[1].FinalScore, 0.001)
		assert.Equal(t, "Shop C", ranked[2].Name)
		assert.InEpsilon(t, 59.4, ranked[2].FinalScore, 0.001)
	})

	t.Run("output is sorted non-increasing", func(t *testing.T) {
		input := normalizeAll(t, []models.StoreCandidate{
			candidate("A", 19.99, 12, 4.8),
			candidate("B", 15.49, 18, 4.2),
			candidate("C", 22.99, 10, 4.9),
			candidate("D", 15.49, 15, 4.5),
			candidate("E", 25.00, 25, 3.8),
		})

		ranked := ranking.NewRanker(logger, nil).Rank(ctx, input, models.DefaultWeights())

		for i := 1; i < len(ranked); i++ {
			assert.GreaterOrEqual(t, ranked[i-1].FinalScore, ranked[i].FinalScore)
		}
	})

	t.Run("exact ties keep input order", func(t *testing.T) {
		input := normalizeAll(t, []models.StoreCandidate{
			candidate("First", 10, 10, 4.0),
			candidate("Second", 10, 10, 4.0),
			candidate("Third", 10, 10, 4.0),
		})

		ranked := ranking.NewRanker(logger, nil).Rank(ctx, input, models.DefaultWeights())

		require.Len(t, ranked, 3)
		assert.Equal(t, []string{"First", "Second", "Third"},
			[]string{ranked[0].Name, ranked[1].Name, ranked[2].Name})
	})

	t.Run("missing normalized scores default to zero", func(t *testing.T) {
		input := []models.StoreCandidate{
			{Name: "Unscored"},
			{Name: "Scored", PriceScore: models.Float64(100), TimeScore: models.Float64(100), RatingScore: models.Float64(100)},
		}

		ranked := ranking.NewRanker(logger, nil).Rank(ctx, input, models.DefaultWeights())

		assert.Equal(t, "Scored", ranked[0].Name)
		assert.InEpsilon(t, 100.0, ranked[0].FinalScore, 0.001)
		assert.Equal(t, "Unscored", ranked[1].Name)
		assert.InDelta(t, 0.0, ranked[1].FinalScore, 0.001)
	})

	t.Run("mismatched weight sum still ranks", func(t *testing.T) {
		input := normalizeAll(t, []models.StoreCandidate{
			candidate("A", 19.99, 12, 4.8),
			candidate("B", 15.49, 18, 4.2),
		})

		ranked := ranking.NewRanker(logger, nil).Rank(ctx, input, models.Weights{Price: 0.9, Time: 0.9, Rating: 0.9})

		require.Len(t, ranked, 2)
		assert.Positive(t, ranked[0].FinalScore)
	})

	t.Run("deterministic across runs", func(t *testing.T) {
		input := normalizeAll(t, []models.StoreCandidate{
			candidate("A", 19.99, 12, 4.8),
			candidate("B", 15.49, 18, 4.2),
			candidate("C", 22.99, 10, 4.9),
		})

		first := ranking.NewRanker(logger, nil).Rank(ctx, input, models.DefaultWeights())
		second := ranking.NewRanker(logger, nil).Rank(ctx, input, models.DefaultWeights())

		assert.Equal(t, first, second)
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		ranked := ranking.NewRanker(logger, nil).Rank(ctx, nil, models.DefaultWeights())

		assert.Empty(t, ranked)
	})
}

func TestRankEnrichment(t *testing.T) {
	ctx := t.Context()
	logger := slog.Default()

	t.Run("assigns ids to candidates lacking one", func(t *testing.T) {
		issuer := mocks.NewIssuer(t)
		issuer.On("AssignID", ctx, "A").Return("id-a", nil).Once()
		issuer.On("AssignID", ctx, "B").Return("id-b", nil).Once()

		input := normalizeAll(t, []models.StoreCandidate{
			candidate("A", 19.99, 12, 4.8),
			candidate("B", 15.49, 18, 4.2),
		})

		ranked := ranking.NewRanker(logger, issuer).Rank(ctx, input, models.DefaultWeights())

		ids := map[string]string{}
		for _, c := range ranked {
			ids[c.Name] = c.MerchantID
		}
		assert.Equal(t, map[string]string{"A": "id-a", "B": "id-b"}, ids)
		issuer.AssertExpectations(t)
	})

	t.Run("already-assigned ids are never re-requested", func(t *testing.T) {
		issuer := mocks.NewIssuer(t)

		input := normalizeAll(t, []models.StoreCandidate{candidate("A", 19.99, 12, 4.8)})
		input[0].MerchantID = "existing-id"

		ranked := ranking.NewRanker(logger, issuer).Rank(ctx, input, models.DefaultWeights())

		assert.Equal(t, "existing-id", ranked[0].MerchantID)
		issuer.AssertExpectations(t)
	})

	t.Run("a single failure does not abort the others", func(t *testing.T) {
		issuer := mocks.NewIssuer(t)
		issuer.On("AssignID", ctx, "A").Return("", assert.AnError).Once()
		issuer.On("AssignID", ctx, "B").Return("id-b", nil).Once()

		input := normalizeAll(t, []models.StoreCandidate{
			candidate("A", 10, 10, 5.0),
			candidate("B", 20, 20, 4.0),
		})

		ranked := ranking.NewRanker(logger, issuer).Rank(ctx, input, models.DefaultWeights())

		assert.Empty(t, ranked[0].MerchantID)
		assert.Equal(t, "id-b", ranked[1].MerchantID)
		issuer.AssertExpectations(t)
	})
}
