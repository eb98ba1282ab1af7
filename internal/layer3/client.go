package layer3

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/enaqx/layer3board/internal/config"
	"github.com/enaqx/layer3board/internal/errors"
	"github.com/enaqx/layer3board/internal/types"
)

// RouteMode selects how leaderboard requests reach the upstream. Browser-hosted
// builds cannot call the Layer3 domain directly (CORS), so they go through the
// same-origin proxy instead. The mode is resolved once at composition time.
type RouteMode int

const (
	RouteDirect RouteMode = iota
	RouteProxied
)

// Client fetches and normalizes the Layer3 leaderboard.
type Client struct {
	httpClient  *http.Client
	route       RouteMode
	proxyOrigin string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.httpClient = h
	}
}

// WithProxyOrigin sets the origin prefixed to the proxy path in proxied mode.
func WithProxyOrigin(origin string) Option {
	return func(c *Client) {
		c.proxyOrigin = origin
	}
}

// NewClient creates a leaderboard client with the given route mode.
func NewClient(route RouteMode, opts ...Option) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
		route:      route,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// endpoint resolves the request target for the configured route. The direct
// endpoint is re-read from the environment on every call.
func (c *Client) endpoint() string {
	if c.route == RouteProxied {
		return c.proxyOrigin + config.ProxyPath
	}
	return config.Layer3Endpoint()
}

// FetchUsers fetches the leaderboard and normalizes it into LeaderboardUser
// entries. Cancelling ctx aborts the in-flight request; the returned error is
// then a context error, which errors.IsAbort distinguishes from real failures.
func (c *Client) FetchUsers(ctx context.Context) ([]types.LeaderboardUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(), nil)
	if err != nil {
		return nil, &errors.TransportError{Operation: "build leaderboard request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if c.route == RouteProxied {
		req.Header.Set("Cache-Control", "no-cache")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &errors.TransportError{Operation: "fetch leaderboard", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &errors.UpstreamStatusError{Endpoint: "Layer3 API", StatusCode: resp.StatusCode}
	}

	var body struct {
		Users json.RawMessage `json:"users"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &errors.ShapeError{Message: "Unexpected Layer3 response shape"}
	}

	return normalizeUsers(body.Users)
}

type rawUser struct {
	Rank      int     `json:"rank"`
	Address   string  `json:"address"`
	AvatarCid *string `json:"avatarCid"`
	Username  *string `json:"username"`
	GmStreak  int     `json:"gmStreak"`
	XP        int     `json:"xp"`
	Level     int     `json:"level"`
}

// normalizeUsers enforces that the users field is an array and maps each entry
// into the canonical type. Value semantics (rank positivity, xp range) are the
// upstream's responsibility; only shape is checked here.
func normalizeUsers(raw json.RawMessage) ([]types.LeaderboardUser, error) {
	if !isJSONArray(raw) {
		return nil, &errors.ShapeError{Message: "Unexpected Layer3 response shape"}
	}

	var entries []rawUser
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, &errors.ShapeError{Message: "Unexpected Layer3 response shape"}
	}

	users := make([]types.LeaderboardUser, len(entries))
	for i, e := range entries {
		users[i] = types.LeaderboardUser{
			Rank:      e.Rank,
			Address:   e.Address,
			AvatarCid: e.AvatarCid,
			Username:  e.Username,
			GmStreak:  e.GmStreak,
			XP:        e.XP,
			Level:     e.Level,
		}
	}
	return users, nil
}

// isJSONArray reports whether raw is present and its first token opens an
// array. A JSON null users field is not an array.
func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}
