package ranking

import (
	"context"
	"log/slog"
	"math"
	"slices"
	"sort"

	"github.com/shopsmart-ai/scout/internal/merchants"
	"github.com/shopsmart-ai/scout/internal/models"
)

// weightSumTolerance is how far the weight sum may drift from 1.0 before a
// warning is logged. Mismatched sums are legitimate: scores are computed with
// the weights exactly as given, never rescaled.
const weightSumTolerance = 0.01

// Ranker combines normalized scores into the final weighted ordering and
// optionally enriches ranked stores with merchant identifiers. The identity
// issuer is explicit, injected configuration; a nil issuer disables
// enrichment.
type Ranker struct {
	log    *slog.Logger     // log is the logger for logging operations
	issuer merchants.Issuer // issuer assigns merchant ids, may be nil
}

// NewRanker creates a ranker. Pass a nil issuer to skip merchant enrichment.
func NewRanker(log *slog.Logger, issuer merchants.Issuer) *Ranker {
	return &Ranker{log: log, issuer: issuer}
}

// Rank returns a new slice ordered by descending final weighted score. The
// final score of each candidate is the weighted sum of its normalized scores
// (a missing normalized score counts as 0), rounded to two decimals. The sort
// is stable: exact ties keep their input order. After sorting, each candidate
// lacking a merchant id is enriched best-effort; a failure for one candidate
// leaves its id absent and continues with the others.
func (r *Ranker) Rank(
	ctx context.Context,
	candidates []models.StoreCandidate,
	weights models.Weights,
) []models.StoreCandidate {
	if sum := weights.Sum(); math.Abs(sum-1.0) > weightSumTolerance {
		r.log.WarnContext(ctx, "Weights do not sum to 1.0, scores will be scaled accordingly", "sum", sum)
	}

	ranked := slices.Clone(candidates)
	for i := range ranked {
		score := weights.Price*scoreOrZero(ranked[i].PriceScore) +
			weights.Time*scoreOrZero(ranked[i].TimeScore) +
			weights.Rating*scoreOrZero(ranked[i].RatingScore)
		ranked[i].FinalScore = math.Round(score*100) / 100
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].FinalScore > ranked[j].FinalScore
	})

	r.enrich(ctx, ranked)

	return ranked
}

// enrich assigns merchant ids to ranked candidates that lack one. Candidates
// already carrying an id are never re-requested.
func (r *Ranker) enrich(ctx context.Context, ranked []models.StoreCandidate) {
	if r.issuer == nil {
		r.log.DebugContext(ctx, "No identity issuer configured, skipping merchant enrichment")
		return
	}

	for i := range ranked {
		if ranked[i].MerchantID != "" {
			continue
		}

		id, err := r.issuer.AssignID(ctx, ranked[i].Name)
		if err != nil {
			r.log.WarnContext(ctx, "Failed to assign merchant id", "store", ranked[i].Name, "error", err)
			continue
		}
		ranked[i].MerchantID = id
	}
}

func scoreOrZero(score *float64) float64 {
	if score == nil {
		return 0
	}
	return *score
}
