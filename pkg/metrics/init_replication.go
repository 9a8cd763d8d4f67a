package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initReplicationMetrics() {
	r.ReplicationCallsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphdb_replication_calls_total",
			Help: "Total number of outbound peer RPC calls by target partition and result",
		},
		[]string{"peer_partition", "status"},
	)

	r.ReplicationCallDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "graphdb_replication_call_duration_seconds",
			Help:    "Outbound peer RPC latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"peer_partition"},
	)

	r.ReplicationInboundTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphdb_replication_inbound_total",
			Help: "Total number of inbound peer RPC requests handled by this partition",
		},
		[]string{"op", "status"},
	)
}
