package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PositionsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "argps",
		Subsystem: "proximity",
		Name:      "positions_ingested_total",
		Help:      "Total observer positions accepted from the MQTT feed",
	})

	PositionsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "argps",
		Subsystem: "proximity",
		Name:      "positions_rejected_total",
		Help:      "Total observer positions dropped by validation",
	})

	TransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "argps",
		Subsystem: "proximity",
		Name:      "transitions_total",
		Help:      "Total active-place transitions, by event type",
	}, []string{"event"})
)
