// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package mealdb

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recipebox_mealdb_requests_total",
		Help: "Meal API requests by operation and outcome.",
	}, []string{"operation", "outcome"})

	requestSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "recipebox_mealdb_request_duration_seconds",
		Help:    "Meal API request latency by operation and HTTP status (0 when no response).",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 8),
	}, []string{"operation", "status"})
)

// outcome maps a Fetch result onto a low-cardinality label.
func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}
	for _, c := range []struct {
		target error
		label  string
	}{
		{ErrTimeout, "timeout"},
		{ErrBadServerResponse, "bad_response"},
		{ErrDecode, "decode"},
		{ErrUpstreamUnavailable, "network"},
	} {
		if errors.Is(err, c.target) {
			return c.label
		}
	}
	return "error"
}

func recordRequest(operation string, status int, took time.Duration, err error) {
	requestSeconds.WithLabelValues(operation, strconv.Itoa(max(status, 0))).Observe(took.Seconds())
	requestsTotal.WithLabelValues(operation, outcome(err)).Inc()
}
