package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEndpointResolution(t *testing.T) {
	t.Setenv(EnvLayer3APIURL, "")
	assert.Equal(t, DefaultLayer3Endpoint, Layer3Endpoint())

	// Blank after trimming counts as unset.
	t.Setenv(EnvLayer3APIURL, "   \t")
	assert.Equal(t, DefaultLayer3Endpoint, Layer3Endpoint())

	t.Setenv(EnvLayer3APIURL, " https://example.test/users ")
	assert.Equal(t, "https://example.test/users", Layer3Endpoint())
}

func TestEthplorerResolution(t *testing.T) {
	t.Setenv(EnvEthplorerBase, "")
	t.Setenv(EnvEthplorerKey, "")
	assert.Equal(t, DefaultEthplorerBase, EthplorerBase())
	assert.Equal(t, DefaultEthplorerKey, EthplorerKey())

	// The two overrides are independent.
	t.Setenv(EnvEthplorerBase, "https://mirror.test")
	assert.Equal(t, "https://mirror.test", EthplorerBase())
	assert.Equal(t, DefaultEthplorerKey, EthplorerKey())
}

func TestRefreshInterval(t *testing.T) {
	t.Setenv(EnvRefreshInterval, "")
	assert.Equal(t, 60*time.Second, RefreshInterval())

	t.Setenv(EnvRefreshInterval, "15s")
	assert.Equal(t, 15*time.Second, RefreshInterval())

	t.Setenv(EnvRefreshInterval, "not-a-duration")
	assert.Equal(t, 60*time.Second, RefreshInterval())

	t.Setenv(EnvRefreshInterval, "-5s")
	assert.Equal(t, 60*time.Second, RefreshInterval())
}
