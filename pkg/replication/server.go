package replication

// Server is the replication component (C) that listens for inbound peer
// calls and dispatches them to an Applier.
type Server struct {
	transport Transport
	applier   Applier
}

// NewServer returns a Server that dispatches inbound requests to applier.
func NewServer(transport Transport, applier Applier) *Server {
	return &Server{transport: transport, applier: applier}
}

// ListenAndServe blocks, accepting and applying requests on addr until the
// underlying transport returns an error.
func (s *Server) ListenAndServe(addr string) error {
	return s.transport.Serve(addr, s.applier)
}
