// Package metrics exposes the process's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration observes handler latency per route and status.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by method, route and status code.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	// CaseMutations counts case-store mutation operations by kind.
	CaseMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "case_mutations_total",
		Help: "Case store mutations by operation.",
	}, []string{"operation"})

	// AIRequests counts Gemini calls by kind and outcome.
	AIRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ai_requests_total",
		Help: "Gemini API calls by kind and outcome.",
	}, []string{"kind", "outcome"})
)
