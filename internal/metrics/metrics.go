package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RPCRequests counts procedure calls by procedure name and outcome
	// (ok, or the error code returned to the caller)
	RPCRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "clinic",
		Name:      "rpc_requests_total",
		Help:      "RPC procedure calls by procedure and outcome",
	}, []string{"procedure", "outcome"})

	// AuthzDenials counts authorization failures by reason
	// (unauthenticated, role, ownership)
	AuthzDenials = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "clinic",
		Name:      "authz_denials_total",
		Help:      "Authorization denials by reason",
	}, []string{"reason"})

	// RPCDuration observes procedure latency in seconds
	RPCDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "clinic",
		Name:      "rpc_duration_seconds",
		Help:      "RPC procedure latency",
		Buckets:   prometheus.DefBuckets,
	}, []string{"procedure"})
)
