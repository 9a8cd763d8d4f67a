package metrics

import "time"

// RecordHTTPRequest records an HTTP request with its outcome and duration.
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// SetStorageCounts updates the gauges tracking how much of the graph this
// partition currently holds.
func (r *Registry) SetStorageCounts(nodes, edges int) {
	r.StorageNodesTotal.Set(float64(nodes))
	r.StorageEdgesTotal.Set(float64(edges))
}

// RecordStorageOperation records a local graph store operation and its
// result status.
func (r *Registry) RecordStorageOperation(operation, status string) {
	r.StorageOperationsTotal.WithLabelValues(operation, status).Inc()
}

// RecordReplicationCall records an outbound peer RPC call.
func (r *Registry) RecordReplicationCall(peerPartition, status string, duration time.Duration) {
	r.ReplicationCallsTotal.WithLabelValues(peerPartition, status).Inc()
	r.ReplicationCallDuration.WithLabelValues(peerPartition).Observe(duration.Seconds())
}

// RecordReplicationInbound records an inbound peer RPC request this
// partition served.
func (r *Registry) RecordReplicationInbound(op, status string) {
	r.ReplicationInboundTotal.WithLabelValues(op, status).Inc()
}
