// Package metrics defines the Prometheus instruments exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for SettlementRunsTotal.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

var (
	// SettlementRunsTotal counts per-user daily settlement runs by outcome.
	SettlementRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "credot",
		Name:      "settlement_runs_total",
		Help:      "Per-user daily settlement runs by outcome.",
	}, []string{"outcome"})

	// AdvanceAmountTotal accumulates the KRW advanced across all runs.
	AdvanceAmountTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "credot",
		Name:      "advance_amount_krw_total",
		Help:      "Total KRW advanced to merchants.",
	})
)
