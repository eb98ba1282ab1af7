package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/enaqx/layer3board/internal/cache"
	"github.com/enaqx/layer3board/internal/config"
	"github.com/enaqx/layer3board/internal/errors"
	"github.com/enaqx/layer3board/internal/onchain"
	"github.com/enaqx/layer3board/pkg/logger"
)

// Handler carries the dependencies the HTTP surface needs.
type Handler struct {
	store      *cache.Leaderboard
	onchain    *onchain.Client
	httpClient *http.Client
}

// NewHandler creates a Handler around the injected cache and clients.
func NewHandler(store *cache.Leaderboard, onchainClient *onchain.Client, httpClient *http.Client) *Handler {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Handler{
		store:      store,
		onchain:    onchainClient,
		httpClient: httpClient,
	}
}

// ProxyLeaderboard forwards a leaderboard request to the Layer3 upstream on
// behalf of browser clients that cannot reach it cross-origin. The upstream's
// status code and body pass through byte-for-byte; only caching and CORS
// headers are forced.
func (h *Handler) ProxyLeaderboard(c *gin.Context) {
	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, config.Layer3Endpoint(), nil)
	if err != nil {
		h.proxyFailure(c, err)
		return
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.httpClient.Do(req)
	if err != nil {
		h.proxyFailure(c, err)
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		h.proxyFailure(c, err)
		return
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}

	c.Header("Cache-Control", "no-store")
	c.Header("Access-Control-Allow-Origin", "*")
	c.Data(resp.StatusCode, contentType, body)
}

func (h *Handler) proxyFailure(c *gin.Context, err error) {
	logger.Error("Failed to proxy leaderboard request: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to fetch leaderboard data"})
}

// GetCachedUser serves a single leaderboard user from the cache, so a user
// detail view resolves without re-fetching the whole leaderboard.
func (h *Handler) GetCachedUser(c *gin.Context) {
	address := c.Param("address")

	user, ok := h.store.FindByAddress(address)
	if !ok {
		c.Error(&errors.CacheMissError{Address: address})
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetProfile fetches and normalizes the on-chain profile for a wallet.
func (h *Handler) GetProfile(c *gin.Context) {
	address := c.Param("address")

	profile, err := h.onchain.FetchProfile(c.Request.Context(), address)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
