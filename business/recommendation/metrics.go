package recommendation

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RecommendationsServedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_served_total",
			Help: "Count of recommendation responses by operation and the fallback stage that produced them.",
		},
		[]string{"operation", "source"},
	)

	RecommendationFallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_fallbacks_total",
			Help: "Count of fallback stages that were skipped, by operation, stage and reason.",
		},
		[]string{"operation", "stage", "reason"},
	)
)

func init() {
	prometheus.MustRegister(RecommendationsServedTotal, RecommendationFallbacksTotal)
}
