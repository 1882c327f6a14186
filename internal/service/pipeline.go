package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopsmart-ai/scout/internal/geo"
	"github.com/shopsmart-ai/scout/internal/metrics"
	"github.com/shopsmart-ai/scout/internal/models"
	"github.com/shopsmart-ai/scout/internal/places"
	"github.com/shopsmart-ai/scout/internal/ranking"
	"github.com/shopsmart-ai/scout/internal/recommend"
)

// Fetcher retrieves one page of place records around a sample point.
type Fetcher interface {
	Fetch(ctx context.Context, point models.SamplePoint) ([]models.PlaceRecord, error)
}

// Recommender identifies which candidate stores cover the queried items.
type Recommender interface {
	Recommend(ctx context.Context, query string, candidates []string) (*recommend.Recommendation, error)
}

// Estimator populates the raw scoring signals on store candidates.
type Estimator interface {
	Annotate(
		ctx context.Context,
		origin models.Coordinates,
		candidates []models.StoreCandidate,
		sources []models.PlaceRecord,
	) []models.StoreCandidate
}

// Ranker produces the final weighted ordering.
type Ranker interface {
	Rank(ctx context.Context, candidates []models.StoreCandidate, weights models.Weights) []models.StoreCandidate
}

// Normalizer is one normalization pass over the candidate collection.
type Normalizer func([]models.StoreCandidate) ([]models.StoreCandidate, error)

// RankRequest is one aggregation-and-ranking run's input.
type RankRequest struct {
	Center   models.Coordinates // Center of the search area.
	RadiusKm float64            // Search radius in kilometers.
	Query    string             // Free-text item query.
	Weights  models.Weights     // Per-signal weights.
}

// RankingService runs the request-scoped pipeline: sample the area, fetch and
// deduplicate places, recommend stores, estimate and normalize signals, rank.
// No state is shared between runs; each request builds its own collections
// from scratch.
type RankingService struct {
	log         *slog.Logger     // Logger for logging service activities
	fetcher     Fetcher          // Nearby place lookup for one sample point
	recommender Recommender      // Store recommendation service
	estimator   Estimator        // Raw signal estimation
	ranker      Ranker           // Weighted ranking and enrichment
	normalizers []Normalizer     // Normalization passes, applied in order
	metrics     *metrics.Metrics // Metrics for tracking service performance
	numWorkers  int              // Number of concurrent fetch workers
}

// NewRankingService creates a new instance of RankingService.
func NewRankingService(
	log *slog.Logger,
	fetcher Fetcher,
	recommender Recommender,
	estimator Estimator,
	ranker Ranker,
	appMetrics *metrics.Metrics,
	numWorkers int,
) *RankingService {
	return &RankingService{
		log:         log,
		fetcher:     fetcher,
		recommender: recommender,
		estimator:   estimator,
		ranker:      ranker,
		normalizers: []Normalizer{ranking.NormalizePrices, ranking.NormalizeTimes, ranking.NormalizeRatings},
		metrics:     appMetrics,
		numWorkers:  numWorkers,
	}
}

// RankStores processes one ranking request to completion. Fetch failures for
// individual sample points degrade to empty contributions; a non-conforming
// recommendation response or an incomplete candidate fails the whole request,
// since ranking without valid signals is meaningless.
func (rs *RankingService) RankStores(ctx context.Context, req RankRequest) (*models.RankedResult, error) {
	start := time.Now()
	defer func() {
		rs.metrics.PipelineSeconds.Observe(time.Since(start).Seconds())
	}()

	result, err := rs.rankStores(ctx, req)
	if err != nil {
		rs.metrics.RankingsServed.WithLabelValues("failure").Inc()
		return nil, err
	}

	rs.metrics.RankingsServed.WithLabelValues("success").Inc()
	return result, nil
}

func (rs *RankingService) rankStores(ctx context.Context, req RankRequest) (*models.RankedResult, error) {
	points := geo.SamplePoints(req.Center, req.RadiusKm)
	merged := places.Dedupe(rs.fetchAll(ctx, points)...)

	rs.log.InfoContext(ctx, "Aggregated nearby places", "sample_points", len(points), "distinct_places", len(merged))

	if len(merged) == 0 {
		return &models.RankedResult{Stores: []models.StoreCandidate{}, ItemsToBuy: []string{}, StorePlan: []string{}}, nil
	}

	nameOrder, recordByName := indexByName(merged)

	recStart := time.Now()
	recommendation, err := rs.recommender.Recommend(ctx, req.Query, nameOrder)
	rs.metrics.RequestSeconds.WithLabelValues("recommendation").Observe(time.Since(recStart).Seconds())
	if err != nil {
		return nil, fmt.Errorf("store recommendation failed: %w", err)
	}

	candidates := make([]models.StoreCandidate, 0, len(recommendation.Stores))
	sources := make([]models.PlaceRecord, 0, len(recommendation.Stores))
	for _, name := range nameOrder {
		items, ok := recommendation.Stores[name]
		if !ok {
			continue
		}
		record := recordByName[name]
		candidates = append(candidates, models.StoreCandidate{
			Name:     name,
			PlaceID:  record.PlaceID,
			Vicinity: record.Vicinity,
			Items:    items,
		})
		sources = append(sources, record)
	}

	rs.log.InfoContext(ctx, "Stores recommended", "recommended", len(candidates), "query", req.Query)

	candidates = rs.estimator.Annotate(ctx, req.Center, candidates, sources)

	for _, normalize := range rs.normalizers {
		candidates, err = normalize(candidates)
		if err != nil {
			return nil, fmt.Errorf("score normalization failed: %w", err)
		}
	}

	ranked := rs.ranker.Rank(ctx, candidates, req.Weights)

	itemsToBuy := recommendation.ItemsToBuy
	if itemsToBuy == nil {
		itemsToBuy = []string{}
	}

	// Visit order for the shopper: highest-ranked stores first, stopping once
	// every item is covered.
	rankedNames := make([]string, len(ranked))
	for i, store := range ranked {
		rankedNames[i] = store.Name
	}
	plan := ranking.CoverPlan(recommendation.Stores, rankedNames, itemsToBuy)

	return &models.RankedResult{
		Stores:          ranked,
		ItemsToBuy:      itemsToBuy,
		StorePlan:       plan,
		TotalCandidates: len(merged),
	}, nil
}

// fetchAll queries every sample point with a bounded worker pool and returns
// the per-point batches in sampler order. A failed fetch contributes an empty
// batch: partial coverage is acceptable, aborting the aggregation is not.
func (rs *RankingService) fetchAll(ctx context.Context, points []models.SamplePoint) [][]models.PlaceRecord {
	batches := make([][]models.PlaceRecord, len(points))

	jobs := make(chan int, len(points))
	var wgr sync.WaitGroup

	workers := rs.numWorkers
	if workers > len(points) {
		workers = len(points)
	}

	for i := 0; i < workers; i++ {
		wgr.Add(1)
		go func() {
			defer wgr.Done()
			for idx := range jobs {
				startTime := time.Now()
				records, err := rs.fetcher.Fetch(ctx, points[idx])
				rs.metrics.RequestSeconds.WithLabelValues("places").Observe(time.Since(startTime).Seconds())

				if err != nil {
					rs.log.ErrorContext(ctx, "Nearby search failed, continuing with partial results",
						"label", points[idx].Label, "error", err)
					rs.metrics.FetchErrors.Inc()
					continue
				}

				batches[idx] = records
				rs.metrics.PlacesFetched.Add(float64(len(records)))
			}
		}()
	}

	for idx := range points {
		jobs <- idx
	}
	close(jobs)

	wgr.Wait()

	return batches
}

// indexByName returns distinct store names in first-seen order and the first
// place record carrying each name.
func indexByName(records []models.PlaceRecord) ([]string, map[string]models.PlaceRecord) {
	order := make([]string, 0, len(records))
	byName := make(map[string]models.PlaceRecord, len(records))

	for _, record := range records {
		if _, ok := byName[record.Name]; ok {
			continue
		}
		byName[record.Name] = record
		order = append(order, record.Name)
	}

	return order, byName
}
