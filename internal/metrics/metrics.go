package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	RankingsServed  *prometheus.CounterVec
	PlacesFetched   prometheus.Counter
	FetchErrors     prometheus.Counter
	RequestSeconds  *prometheus.HistogramVec
	PipelineSeconds prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		RankingsServed: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "scout_rankings_served_total",
			Help: "Total number of ranking requests processed.",
		}, []string{"status"}),
		PlacesFetched: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "scout_places_fetched_total",
			Help: "Total number of place records fetched across all sample points, before deduplication.",
		}),
		FetchErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "scout_place_fetch_errors_total",
			Help: "Total number of nearby-search calls that failed and degraded to an empty result.",
		}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "scout_external_request_duration_seconds",
			Help:    "Duration of requests to external services.",
			Buckets: prometheus.DefBuckets,
		}, []string{"service"}),
		PipelineSeconds: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "scout_pipeline_duration_seconds",
			Help:    "End-to-end duration of one aggregation-and-ranking run.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
