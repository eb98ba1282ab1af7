package config

import (
	"os"
	"strings"
	"time"
)

// Environment variable names. Values are read at call time, not captured at
// startup, so tests can mutate the environment between invocations.
const (
	EnvLayer3APIURL    = "LAYER3_API_URL"
	EnvEthplorerBase   = "ETHPLORER_BASE"
	EnvEthplorerKey    = "ETHPLORER_KEY"
	EnvListenAddr      = "LISTEN_ADDR"
	EnvRefreshInterval = "REFRESH_INTERVAL"
)

const (
	DefaultLayer3Endpoint = "https://layer3.xyz/api/assignment/users"
	DefaultEthplorerBase  = "https://api.ethplorer.io"
	DefaultEthplorerKey   = "freekey"

	// ProxyPath is the same-origin path browser clients use instead of the
	// Layer3 endpoint, since the upstream does not allow cross-origin requests.
	ProxyPath = "/api/leaderboard"

	defaultListenAddr      = ":8080"
	defaultRefreshInterval = 60 * time.Second
)

// envOr returns the trimmed value of key, or def when unset or blank.
func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// Layer3Endpoint resolves the direct leaderboard endpoint.
func Layer3Endpoint() string {
	return envOr(EnvLayer3APIURL, DefaultLayer3Endpoint)
}

// EthplorerBase resolves the wallet-data API base URL.
func EthplorerBase() string {
	return envOr(EnvEthplorerBase, DefaultEthplorerBase)
}

// EthplorerKey resolves the wallet-data API key.
func EthplorerKey() string {
	return envOr(EnvEthplorerKey, DefaultEthplorerKey)
}

// ListenAddr resolves the HTTP listen address for the proxy server.
func ListenAddr() string {
	return envOr(EnvListenAddr, defaultListenAddr)
}

// RefreshInterval resolves how often the server re-fetches the leaderboard.
func RefreshInterval() time.Duration {
	v := envOr(EnvRefreshInterval, "")
	if v == "" {
		return defaultRefreshInterval
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return defaultRefreshInterval
	}
	return d
}
