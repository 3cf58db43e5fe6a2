package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	MintSignaturesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "mint_signatures_total",
			Help: "Total mint authorizations issued",
		},
	)
	MintSignatureFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mint_signature_failures_total",
			Help: "Total failed mint authorization requests",
		},
		[]string{"reason"}, // validation|configuration|storage|signing
	)
	LeaderboardRequests = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "leaderboard_requests_total",
			Help: "Total leaderboard reads",
		},
	)
	LeaderboardResets = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "leaderboard_resets_total",
			Help: "Total successful leaderboard resets",
		},
	)
)

// Handler serves the /metrics endpoint.
var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(MintSignaturesTotal)
	prometheus.MustRegister(MintSignatureFailures)
	prometheus.MustRegister(LeaderboardRequests)
	prometheus.MustRegister(LeaderboardResets)
}

// ObserveQueueDepth registers a gauge backed by the worker pool's queue.
func ObserveQueueDepth(depth func() int) {
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
		func() float64 { return float64(depth()) },
	))
}
