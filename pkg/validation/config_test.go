package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() ServerConfig {
	return ServerConfig{
		HTTPPort:  8080,
		Partition: 1,
		Peers:     []string{"10.0.0.1:9000", "10.0.0.2:9000", "10.0.0.3:9000"},
		Transport: "nng",
	}
}

func TestValidateServerConfigAccepts(t *testing.T) {
	assert.NoError(t, ValidateServerConfig(validConfig()))
}

func TestValidateServerConfigRejectsBadPartition(t *testing.T) {
	cfg := validConfig()
	cfg.Partition = 4
	err := ValidateServerConfig(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Partition")
}

func TestValidateServerConfigRejectsWrongPeerCount(t *testing.T) {
	cfg := validConfig()
	cfg.Peers = []string{"10.0.0.1:9000", "10.0.0.2:9000"}
	err := ValidateServerConfig(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Peers")
}

func TestValidateServerConfigRejectsBadTransport(t *testing.T) {
	cfg := validConfig()
	cfg.Transport = "carrier-pigeon"
	err := ValidateServerConfig(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Transport")
}

func TestValidateServerConfigRejectsMalformedPeerEntry(t *testing.T) {
	cfg := validConfig()
	cfg.Peers[1] = "not-a-valid-endpoint"
	err := ValidateServerConfig(cfg)
	assert.Error(t, err)
}
