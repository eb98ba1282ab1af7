package onchain

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/enaqx/layer3board/internal/config"
	"github.com/enaqx/layer3board/internal/errors"
	"github.com/enaqx/layer3board/internal/types"
)

// Client fetches wallet data from Ethplorer and aggregates it into an
// OnchainProfile.
type Client struct {
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.httpClient = h
	}
}

// NewClient creates an on-chain profile client.
func NewClient(opts ...Option) *Client {
	c := &Client{httpClient: http.DefaultClient}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type infoResult struct {
	info addressInfoResponse
	err  error
}

// FetchProfile fetches address info and recent transactions concurrently and
// merges them into one profile. The two fetches are independent: a transactions
// failure degrades to an empty list, while an info failure is fatal because no
// balance can be safely assumed.
func (c *Client) FetchProfile(ctx context.Context, address string) (types.OnchainProfile, error) {
	if !common.IsHexAddress(address) {
		return types.OnchainProfile{}, &errors.InvalidAddressError{Address: address}
	}

	normalized := strings.ToLower(address)
	base := config.EthplorerBase()
	key := config.EthplorerKey()
	infoURL := fmt.Sprintf("%s/getAddressInfo/%s?apiKey=%s", base, normalized, key)
	txURL := fmt.Sprintf("%s/getAddressTransactions/%s?apiKey=%s&limit=10", base, normalized, key)

	infoCh := make(chan infoResult, 1)
	txCh := make(chan []rawTransaction, 1)

	go func() {
		var info addressInfoResponse
		err := c.fetchJSON(ctx, infoURL, &info)
		infoCh <- infoResult{info: info, err: err}
	}()

	go func() {
		var txs []rawTransaction
		if err := c.fetchJSON(ctx, txURL, &txs); err != nil {
			txs = nil
		}
		txCh <- txs
	}()

	res := <-infoCh
	txs := <-txCh
	if res.err != nil {
		return types.OnchainProfile{}, res.err
	}

	return buildProfile(res.info, txs), nil
}

// fetchJSON issues a GET and decodes the 2xx body into out.
func (c *Client) fetchJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &errors.TransportError{Operation: "build Ethplorer request", Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &errors.TransportError{Operation: "fetch Ethplorer data", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &errors.UpstreamStatusError{Endpoint: "Ethplorer API", StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &errors.ShapeError{Message: "Unexpected Ethplorer response shape"}
	}
	return nil
}
