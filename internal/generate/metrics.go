package generate

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	upstreamCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "animegen",
			Subsystem: "upstream",
			Name:      "calls_total",
			Help:      "Total upstream sub-batch calls by outcome",
		},
		[]string{"model", "outcome"},
	)

	upstreamCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "animegen",
			Subsystem: "upstream",
			Name:      "call_duration_seconds",
			Help:      "Duration of upstream sub-batch calls in seconds",
			Buckets:   []float64{1, 2.5, 5, 10, 20, 40, 60, 120, 300},
		},
		[]string{"model"},
	)

	outputsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "animegen",
			Name:      "outputs_total",
			Help:      "Total generated outputs returned to callers",
		},
		[]string{"model"},
	)

	generationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "animegen",
			Name:      "generations_total",
			Help:      "Total generation requests by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(upstreamCallsTotal, upstreamCallDuration, outputsTotal, generationsTotal)
}

// metricsObserver records sub-batch outcomes.
type metricsObserver struct{}

func (metricsObserver) BatchDone(modelID string, size, produced int, dur time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	upstreamCallsTotal.WithLabelValues(modelID, outcome).Inc()
	upstreamCallDuration.WithLabelValues(modelID).Observe(dur.Seconds())
}

func countGeneration(kind, outcome string) {
	generationsTotal.WithLabelValues(kind, outcome).Inc()
}
