package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	args, err := parseArgs([]string{"8080", "-p", "2", "-l", "a:9000", "b:9001", "c:9002"})
	require.NoError(t, err)
	assert.Equal(t, 8080, args.httpPort)
	assert.Equal(t, 2, args.partition)
	assert.Equal(t, []string{"a:9000", "b:9001", "c:9002"}, args.peers)
	assert.Equal(t, "zmq", args.transport)
}

func TestParseArgsWithTransportFlag(t *testing.T) {
	args, err := parseArgs([]string{"8080", "-p", "1", "-l", "a:9000", "b:9001", "c:9002", "-transport", "nng"})
	require.NoError(t, err)
	assert.Equal(t, "nng", args.transport)
}

func TestParseArgsRejectsBadPort(t *testing.T) {
	_, err := parseArgs([]string{"not-a-port"})
	assert.Error(t, err)
}

func TestParseArgsRejectsMissingLLeaves(t *testing.T) {
	_, err := parseArgs([]string{"8080", "-p", "1", "-l", "a:9000"})
	assert.Error(t, err)
}

func TestRPCPort(t *testing.T) {
	assert.Equal(t, "9000", rpcPort("10.0.0.1:9000"))
}
