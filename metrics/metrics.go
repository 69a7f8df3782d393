// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every PollConnect collector plus the Go runtime ones
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	Registrations = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pollconnect",
		Name:      "registrations_total",
		Help:      "Registration attempts by result.",
	}, []string{"result"})

	Logins = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pollconnect",
		Name:      "logins_total",
		Help:      "Login attempts by result.",
	}, []string{"result"})

	PollOperations = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pollconnect",
		Name:      "poll_operations_total",
		Help:      "Successful poll operations by kind.",
	}, []string{"operation"})

	RequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pollconnect",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
)

// Poll operation labels
const (
	OpCreate  = "create"
	OpUpdate  = "update"
	OpDelete  = "delete"
	OpVote    = "vote"
	OpLike    = "like"
	OpDislike = "dislike"
	OpComment = "comment"
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Handler serves the registry in the Prometheus exposition format
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
