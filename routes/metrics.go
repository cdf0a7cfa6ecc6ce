/*
 * Copyright 2026 Sami Khalid
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pulseview_http_requests_total",
		Help: "HTTP requests served, by method and status code.",
	}, []string{"method", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pulseview_http_request_duration_seconds",
		Help:    "HTTP request latency, by method.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})
)

func observeRequest(method string, status int, elapsed time.Duration) {
	requestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
	requestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// MetricsHandler exposes the Prometheus registry.
var MetricsHandler = promhttp.Handler().ServeHTTP
