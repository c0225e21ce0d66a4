package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of outbound calls to the ML recommendation service
	RecommenderRequestLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "recommender_gateway_latency_seconds",
		Help:    "Latency of calls to the external recommendation service",
		Buckets: prometheus.DefBuckets,
	}, []string{"path"})

	// Outcome of every gateway call: ok, not_configured, timeout, unreachable, bad_status, bad_response
	RecommenderRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recommender_gateway_requests_total",
		Help: "Total number of calls to the external recommendation service by outcome",
	}, []string{"path", "outcome"})

	RecommenderCircuitState = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "recommender_gateway_circuit_state",
		Help: "Circuit breaker state of the recommendation gateway (0=closed, 1=half-open, 2=open)",
	})
)

func Init() {
	prometheus.MustRegister(
		RecommenderRequestLatency,
		RecommenderRequests,
		RecommenderCircuitState,
	)
}
