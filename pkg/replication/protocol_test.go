package replication

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpString(t *testing.T) {
	assert.Equal(t, "ADD_EDGE", OpAddEdge.String())
	assert.Equal(t, "REMOVE_EDGE", OpRemoveEdge.String())
	assert.Contains(t, Op(99).String(), "OP(99)")
}

func TestEncodeDecodeRoundTripSmall(t *testing.T) {
	req := Request{Op: OpAddEdge, NodeAID: 3, NodeBID: 4, RequestID: "r1"}

	payload, err := encode(req)
	require.NoError(t, err)
	assert.Equal(t, byte(0), payload[0], "small payloads are not compressed")

	var decoded Request
	require.NoError(t, decode(payload, &decoded))
	assert.Equal(t, req, decoded)
}

func TestEncodeDecodeRoundTripCompressed(t *testing.T) {
	req := Request{
		Op:        OpAddEdge,
		NodeAID:   3,
		NodeBID:   4,
		RequestID: strings.Repeat("x", compressThreshold*2),
	}

	payload, err := encode(req)
	require.NoError(t, err)
	assert.Equal(t, byte(1), payload[0], "large payloads are compressed")

	var decoded Request
	require.NoError(t, decode(payload, &decoded))
	assert.Equal(t, req, decoded)
}

func TestDecodeEmptyMessage(t *testing.T) {
	var req Request
	assert.Error(t, decode(nil, &req))
}

func TestValidateRequestRejectsMissingRequestID(t *testing.T) {
	req := Request{Op: OpAddEdge, NodeAID: 3, NodeBID: 4}
	assert.Error(t, validateRequest(req))
}

func TestValidateRequestAcceptsWellFormed(t *testing.T) {
	req := Request{Op: OpAddEdge, NodeAID: 3, NodeBID: 4, RequestID: "r1"}
	assert.NoError(t, validateRequest(req))
}

func TestValidateRequestRejectsOutOfRangeOp(t *testing.T) {
	req := Request{Op: Op(99), NodeAID: 3, NodeBID: 4, RequestID: "r1"}
	assert.Error(t, validateRequest(req))
}
