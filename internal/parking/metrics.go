package parking

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "lotwatch_"

	resultSuccess  = "success"
	resultRejected = "rejected"
	resultError    = "error"
)

var (
	registerOnce sync.Once

	apiRequests *prometheus.CounterVec
	apiLatency  *prometheus.HistogramVec
	cubicles    *prometheus.GaugeVec
)

func initMetrics() {
	registerOnce.Do(func() {
		apiRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "api_requests_total",
				Help: "Backend API requests by endpoint and result",
			},
			[]string{"endpoint", "result"},
		)
		apiLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "api_latency_seconds",
				Help:    "Backend API latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		)
		cubicles = prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: metricPrefix + "cubicles",
				Help: "Cubicles in the latest snapshot by state",
			},
			[]string{"state"},
		)
		prometheus.MustRegister(apiRequests, apiLatency, cubicles)
	})
}

func observeRequest(endpoint, result string, elapsed time.Duration) {
	initMetrics()
	apiRequests.WithLabelValues(endpoint, result).Inc()
	apiLatency.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

func observeSnapshot(items []Cubicle) {
	initMetrics()
	counts := map[State]int{StateFree: 0, StateOccupied: 0, StatePending: 0}
	for _, c := range items {
		counts[c.State]++
	}
	for state, n := range counts {
		cubicles.WithLabelValues(string(state)).Set(float64(n))
	}
}
