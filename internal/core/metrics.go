package core

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the service counters exported on /metrics.
type Metrics struct {
	RowsAdded          prometheus.Counter
	RowsDeleted        prometheus.Counter
	ValidationFailures *prometheus.CounterVec
	TablesOpened       prometheus.Counter
	TablesEvicted      prometheus.Counter
	TablesOpen         prometheus.Gauge
}

// NewMetrics registers the service metrics with registerer.
// A nil registerer gets a private registry, which is what tests want.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.NewRegistry()
	}
	factory := promauto.With(registerer)
	return &Metrics{
		RowsAdded: factory.NewCounter(prometheus.CounterOpts{
			Name: "lineitems_rows_added_total",
			Help: "Number of rows added.",
		}),
		RowsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "lineitems_rows_deleted_total",
			Help: "Number of rows deleted.",
		}),
		ValidationFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lineitems_validation_failures_total",
				Help: "Number of rejected add-row requests.",
			},
			[]string{"field"},
		),
		TablesOpened: factory.NewCounter(prometheus.CounterOpts{
			Name: "lineitems_tables_opened_total",
			Help: "Number of table sessions opened.",
		}),
		TablesEvicted: factory.NewCounter(prometheus.CounterOpts{
			Name: "lineitems_tables_evicted_total",
			Help: "Number of table sessions dropped for capacity or idleness.",
		}),
		TablesOpen: factory.NewGauge(prometheus.GaugeOpts{
			Name: "lineitems_tables_open",
			Help: "Number of table sessions currently open.",
		}),
	}
}
