package service

import "github.com/prometheus/client_golang/prometheus"

var (
	generationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "inferd",
			Subsystem: "generate",
			Name:      "requests_total",
			Help:      "Generation requests by outcome",
		},
		[]string{"outcome"},
	)

	generationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "inferd",
			Subsystem: "generate",
			Name:      "duration_seconds",
			Help:      "Duration of successful generation calls in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)

	queueWaitSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "inferd",
			Subsystem: "generate",
			Name:      "queue_wait_seconds",
			Help:      "Time spent waiting for a generation slot",
			Buckets:   prometheus.DefBuckets,
		},
	)

	tokensOutCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "inferd",
			Subsystem: "generate",
			Name:      "tokens_out_total",
			Help:      "Completion tokens produced",
		},
	)

	inflightGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "inferd",
			Subsystem: "generate",
			Name:      "inflight",
			Help:      "Generation calls currently running against the model",
		},
	)

	queueGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "inferd",
			Subsystem: "generate",
			Name:      "queued",
			Help:      "Requests currently waiting for a generation slot",
		},
	)
)

func init() {
	prometheus.MustRegister(generationsTotal, generationDuration, queueWaitSeconds, tokensOutCounter, inflightGauge, queueGauge)
}
