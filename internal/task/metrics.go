package task

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	tasksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "schemadoc",
			Subsystem: "tasks",
			Name:      "processed_total",
			Help:      "Background tasks processed, by type and final status.",
		},
		[]string{"type", "status"},
	)

	taskDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "schemadoc",
			Subsystem: "tasks",
			Name:      "duration_seconds",
			Help:      "Background task execution time.",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
		},
		[]string{"type"},
	)

	queueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "schemadoc",
			Subsystem: "tasks",
			Name:      "queue_depth",
			Help:      "Tasks waiting in the queue.",
		},
	)
)
