package replication

import (
	"fmt"
	"time"

	zmq "github.com/pebbe/zmq4"
)

// ZMQTransport implements Transport over ZeroMQ REQ/REP sockets.
// Peer-to-peer edge replication is a synchronous call/response, which REQ/REP
// models directly: one request in flight per socket, one reply, done.
type ZMQTransport struct{}

// NewZMQTransport returns a ZMQTransport. It holds no state; every Call
// opens a short-lived REQ socket and every Serve owns one REP socket for its
// lifetime.
func NewZMQTransport() *ZMQTransport {
	return &ZMQTransport{}
}

func (z *ZMQTransport) Call(addr string, req Request, timeout time.Duration) (Response, error) {
	sock, err := zmq.NewSocket(zmq.REQ)
	if err != nil {
		return Response{}, fmt.Errorf("zmq: new REQ socket: %w", err)
	}
	defer sock.Close()

	if err := sock.SetLinger(0); err != nil {
		return Response{}, fmt.Errorf("zmq: set linger: %w", err)
	}
	if err := sock.SetSndtimeo(timeout); err != nil {
		return Response{}, fmt.Errorf("zmq: set send timeout: %w", err)
	}
	if err := sock.SetRcvtimeo(timeout); err != nil {
		return Response{}, fmt.Errorf("zmq: set recv timeout: %w", err)
	}

	if err := sock.Connect("tcp://" + addr); err != nil {
		return Response{}, fmt.Errorf("zmq: connect %s: %w", addr, err)
	}

	payload, err := encode(req)
	if err != nil {
		return Response{}, err
	}
	if _, err := sock.SendBytes(payload, 0); err != nil {
		return Response{}, fmt.Errorf("zmq: send: %w", err)
	}

	raw, err := sock.RecvBytes(0)
	if err != nil {
		return Response{}, fmt.Errorf("zmq: recv: %w", err)
	}

	var resp Response
	if err := decode(raw, &resp); err != nil {
		return Response{}, err
	}
	return resp, nil
}

func (z *ZMQTransport) Serve(addr string, applier Applier) error {
	sock, err := zmq.NewSocket(zmq.REP)
	if err != nil {
		return fmt.Errorf("zmq: new REP socket: %w", err)
	}
	defer sock.Close()

	if err := sock.Bind("tcp://" + addr); err != nil {
		return fmt.Errorf("zmq: bind %s: %w", addr, err)
	}

	for {
		raw, err := sock.RecvBytes(0)
		if err != nil {
			return fmt.Errorf("zmq: recv: %w", err)
		}

		resp := Response{Status: StatusError}
		var req Request
		if err := decode(raw, &req); err == nil {
			if verr := validateRequest(req); verr == nil {
				resp = applier.Apply(req)
			}
		}

		out, err := encode(resp)
		if err != nil {
			return err
		}
		if _, err := sock.SendBytes(out, 0); err != nil {
			return fmt.Errorf("zmq: send: %w", err)
		}
	}
}
