package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initStorageMetrics() {
	r.StorageNodesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphdb_storage_nodes_total",
			Help: "Number of nodes currently held by this partition, including placeholders",
		},
	)

	r.StorageEdgesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphdb_storage_edges_total",
			Help: "Number of edge endpoints currently held by this partition",
		},
	)

	r.StorageOperationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphdb_storage_operations_total",
			Help: "Total number of graph store operations by kind and result status",
		},
		[]string{"operation", "status"},
	)
}
