// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package terminal

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Lookup modes.
const (
	modeActive = "active"
	modePath   = "path"
)

// Lookup outcomes.
const (
	outcomeApplied     = "applied"
	outcomeSkipped     = "skipped"
	outcomeUnsupported = "unsupported"
)

var (
	activationLookupTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pyenv_activate_lookups_total",
			Help: "Total number of activation command lookups per provider",
		},
		[]string{"provider", "mode", "outcome"},
	)

	activationLookupDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pyenv_activate_lookup_duration_seconds",
			Help:    "Duration of activation command lookups in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"provider"},
	)
)

// recordLookup records metrics for one provider lookup.
func recordLookup(provider, mode, outcome string, elapsed time.Duration) {
	activationLookupTotal.With(prometheus.Labels{
		"provider": provider,
		"mode":     mode,
		"outcome":  outcome,
	}).Inc()

	if outcome != outcomeUnsupported {
		activationLookupDuration.With(prometheus.Labels{
			"provider": provider,
		}).Observe(elapsed.Seconds())
	}
}
