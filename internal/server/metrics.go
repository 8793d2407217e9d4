package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ImportsTotal counts import calls by kind and result.
var ImportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "payrecon_imports_total",
	Help: "CSV import calls by kind and result.",
}, []string{"kind", "result"})

// RowsImported counts successfully imported data rows by kind.
var RowsImported = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "payrecon_rows_imported_total",
	Help: "Data rows imported by kind.",
}, []string{"kind"})

// ReconciliationsTotal counts reconciliation runs.
var ReconciliationsTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "payrecon_reconciliations_total",
	Help: "Reconciliation runs.",
})

// MatchOutcomes counts per-expense classifications by outcome.
var MatchOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "payrecon_match_outcomes_total",
	Help: "Per-expense reconciliation outcomes.",
}, []string{"outcome"})

// ReconcileDuration observes how long a reconciliation run takes.
var ReconcileDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "payrecon_reconcile_duration_seconds",
	Help:    "Duration of reconciliation runs.",
	Buckets: prometheus.DefBuckets,
})
