package replication

import (
	"fmt"
	"time"

	"go.nanomsg.org/mangos/v3"
	"go.nanomsg.org/mangos/v3/protocol/rep"
	"go.nanomsg.org/mangos/v3/protocol/req"
	_ "go.nanomsg.org/mangos/v3/transport/tcp"
)

// NNGTransport implements Transport over nanomsg-next-gen REQ/REP sockets,
// a pure-Go alternative to ZMQTransport that needs no cgo toolchain.
type NNGTransport struct{}

// NewNNGTransport returns an NNGTransport.
func NewNNGTransport() *NNGTransport {
	return &NNGTransport{}
}

func (n *NNGTransport) Call(addr string, r Request, timeout time.Duration) (Response, error) {
	sock, err := req.NewSocket()
	if err != nil {
		return Response{}, fmt.Errorf("nng: new REQ socket: %w", err)
	}
	defer sock.Close()

	if err := sock.SetOption(mangos.OptionSendDeadline, timeout); err != nil {
		return Response{}, fmt.Errorf("nng: set send deadline: %w", err)
	}
	if err := sock.SetOption(mangos.OptionRecvDeadline, timeout); err != nil {
		return Response{}, fmt.Errorf("nng: set recv deadline: %w", err)
	}

	if err := sock.Dial("tcp://" + addr); err != nil {
		return Response{}, fmt.Errorf("nng: dial %s: %w", addr, err)
	}

	payload, err := encode(r)
	if err != nil {
		return Response{}, err
	}
	if err := sock.Send(payload); err != nil {
		return Response{}, fmt.Errorf("nng: send: %w", err)
	}

	raw, err := sock.Recv()
	if err != nil {
		return Response{}, fmt.Errorf("nng: recv: %w", err)
	}

	var resp Response
	if err := decode(raw, &resp); err != nil {
		return Response{}, err
	}
	return resp, nil
}

func (n *NNGTransport) Serve(addr string, applier Applier) error {
	sock, err := rep.NewSocket()
	if err != nil {
		return fmt.Errorf("nng: new REP socket: %w", err)
	}
	defer sock.Close()

	if err := sock.Listen("tcp://" + addr); err != nil {
		return fmt.Errorf("nng: listen %s: %w", addr, err)
	}

	for {
		raw, err := sock.Recv()
		if err != nil {
			return fmt.Errorf("nng: recv: %w", err)
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
		if err := sock.Send(out); err != nil {
			return fmt.Errorf("nng: send: %w", err)
		}
	}
}
