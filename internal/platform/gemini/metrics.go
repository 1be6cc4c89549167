package gemini

import (
	"errors"
	"time"

	"github.com/phrazzld/schemadoc/internal/generation"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "schemadoc",
			Subsystem: "llm",
			Name:      "requests_total",
			Help:      "Gemini requests by prompt and outcome.",
		},
		[]string{"prompt", "outcome"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "schemadoc",
			Subsystem: "llm",
			Name:      "request_duration_seconds",
			Help:      "Duration of single Gemini requests.",
			Buckets:   prometheus.ExponentialBuckets(0.25, 2, 8),
		},
		[]string{"prompt"},
	)
)

func observeRequest(prompt string, d time.Duration, err error) {
	requestDuration.WithLabelValues(prompt).Observe(d.Seconds())
	requestCounter.WithLabelValues(prompt, outcome(err)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, generation.ErrContentBlocked):
		return "blocked"
	case errors.Is(err, generation.ErrInvalidResponse):
		return "invalid_response"
	case errors.Is(err, generation.ErrTransientFailure):
		return "transient"
	default:
		return "error"
	}
}
