package replication

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang/snappy"
)

// compressThreshold is the encoded-payload size above which a message is
// snappy-compressed before being put on the wire. Requests and responses
// are tiny in the common case, so compression rarely triggers; it exists
// for the RequestID field, which a caller is free to make arbitrarily long.
const compressThreshold = 256

// Transport is the peer-to-peer RPC channel over which a lo peer calls a hi
// peer's AddEdge/RemoveEdge. A Call is a single blocking request/response
// exchange; there is no retry, pooling, or multiplexing requirement.
type Transport interface {
	// Call sends req to the peer at addr and blocks until a response
	// arrives or timeout elapses.
	Call(addr string, req Request, timeout time.Duration) (Response, error)
	// Serve blocks accepting inbound requests on addr, dispatching each to
	// applier, until a socket operation fails and it returns that error.
	Serve(addr string, applier Applier) error
}

// encode marshals v to JSON, snappy-compressing the body when it exceeds
// compressThreshold. The first byte of the returned slice is a flag: 0 for
// raw JSON, 1 for snappy-compressed JSON.
func encode(v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("replication: encode: %w", err)
	}
	if len(body) <= compressThreshold {
		return append([]byte{0}, body...), nil
	}
	return append([]byte{1}, snappy.Encode(nil, body)...), nil
}

// decode reverses encode into v.
func decode(data []byte, v any) error {
	if len(data) == 0 {
		return fmt.Errorf("replication: decode: empty message")
	}
	flag, body := data[0], data[1:]
	if flag == 1 {
		raw, err := snappy.Decode(nil, body)
		if err != nil {
			return fmt.Errorf("replication: decode: snappy: %w", err)
		}
		body = raw
	}
	return json.Unmarshal(body, v)
}
