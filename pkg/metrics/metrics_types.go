package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds every metric this service exposes.
type Registry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Storage Metrics
	StorageNodesTotal      prometheus.Gauge
	StorageEdgesTotal      prometheus.Gauge
	StorageOperationsTotal *prometheus.CounterVec

	// Replication Metrics
	ReplicationCallsTotal   *prometheus.CounterVec
	ReplicationCallDuration *prometheus.HistogramVec
	ReplicationInboundTotal *prometheus.CounterVec

	registry *prometheus.Registry
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the process-wide metrics registry.
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry builds a fresh Registry with its own prometheus.Registry,
// useful in tests where two peers must not share metric state.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}

	r.initHTTPMetrics()
	r.initStorageMetrics()
	r.initReplicationMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying prometheus.Registry, for
// wiring into an HTTP handler via promhttp.
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
