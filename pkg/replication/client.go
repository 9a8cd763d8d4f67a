package replication

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout is the per-call deadline NewClient uses when given a
// non-positive timeout.
const DefaultTimeout = 5 * time.Second

// Client is the replication component (B) that a lo peer uses to call a hi
// peer's Applier over Transport.
type Client struct {
	transport Transport
	timeout   time.Duration
}

// NewClient returns a Client bound to transport, using timeout as the
// default per-call deadline (DefaultTimeout if timeout <= 0).
func NewClient(transport Transport, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{transport: transport, timeout: timeout}
}

// Call issues req to the peer at addr, stamping a RequestID for log
// correlation if the caller left it blank. ctx's deadline, if tighter than
// the client's configured timeout, wins.
func (c *Client) Call(ctx context.Context, addr string, req Request) (Response, error) {
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	return c.transport.Call(addr, req, timeout)
}
