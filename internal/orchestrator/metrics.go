// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package orchestrator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	loaderList   = "list"
	loaderDetail = "detail"

	outcomeSuccess = "success"
)

var (
	loadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipebox_orchestrator_loads_total",
			Help: "Completed loads by loader and outcome (success or error kind)",
		},
		[]string{"loader", "outcome"},
	)
	loadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recipebox_orchestrator_load_duration_seconds",
			Help:    "Wall time of a load including cache access",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"loader"},
	)
	interimServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipebox_orchestrator_interim_served_total",
			Help: "Loads that exposed cached data before the fetch completed",
		},
		[]string{"loader"},
	)
)
