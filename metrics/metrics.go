// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics exposes Prometheus counters for HTTP traffic, votes, and persistence.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodpoll_http_requests_total",
		Help: "HTTP requests by method, route pattern and status code.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "foodpoll_http_request_duration_seconds",
		Help:    "HTTP request latency by route pattern.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	VotesCast = promauto.NewCounter(prometheus.CounterOpts{
		Name: "foodpoll_votes_cast_total",
		Help: "Votes added by the toggle.",
	})

	VotesRetracted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "foodpoll_votes_retracted_total",
		Help: "Votes removed by the toggle.",
	})

	VotesCleared = promauto.NewCounter(prometheus.CounterOpts{
		Name: "foodpoll_votes_cleared_total",
		Help: "Votes removed by the daily reset.",
	})

	Saves = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "foodpoll_saves_total",
		Help: "Snapshot saves by result.",
	}, []string{"result"})

	SaveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "foodpoll_save_duration_seconds",
		Help:    "Time spent saving a snapshot.",
		Buckets: prometheus.DefBuckets,
	})
)

// Handler serves the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
