// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operation results.
const (
	resultHit   = "hit"
	resultMiss  = "miss"
	resultWrite = "write"
	resultError = "error"
)

var cacheOperations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "recipebox_cache_operations_total",
		Help: "Cache operations by backend, row and result",
	},
	[]string{"backend", "row", "result"},
)
