package documenter

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Job stages, used as the failure label.
const (
	stageConnect       = "connect"
	stageIntrospect    = "introspect"
	stageName          = "name"
	stageDocumentation = "documentation"
	stagePersist       = "persist"
)

var (
	runsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "schemadoc",
			Subsystem: "documenter",
			Name:      "runs_total",
			Help:      "Documentation jobs by outcome.",
		},
		[]string{"outcome"},
	)

	failuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "schemadoc",
			Subsystem: "documenter",
			Name:      "failures_total",
			Help:      "Failed documentation jobs by the stage that failed.",
		},
		[]string{"stage"},
	)

	tablesProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "schemadoc",
			Subsystem: "documenter",
			Name:      "tables_processed_total",
			Help:      "Tables whose columns were introspected.",
		},
	)

	runDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "schemadoc",
			Subsystem: "documenter",
			Name:      "run_duration_seconds",
			Help:      "Duration of documentation jobs.",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
		},
	)
)

func observeRun(stage string, d time.Duration, err error) {
	runDuration.Observe(d.Seconds())
	if err != nil {
		runsTotal.WithLabelValues("failure").Inc()
		failuresTotal.WithLabelValues(stage).Inc()
		return
	}
	runsTotal.WithLabelValues("success").Inc()
}
