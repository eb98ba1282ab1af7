package onchain

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/enaqx/layer3board/internal/types"
)

const (
	maxTokenHoldings      = 6
	maxRecentTransactions = 5

	unknownAddress = "unknown"
)

// Ethplorer response shapes. Fields the upstream may omit are pointers;
// decimals arrives as either a string or a number.

type tokenPrice struct {
	Rate *float64 `json:"rate"`
}

type tokenInfo struct {
	Address  *string         `json:"address"`
	Symbol   *string         `json:"symbol"`
	Name     *string         `json:"name"`
	Decimals json.RawMessage `json:"decimals"`
	Price    *tokenPrice     `json:"price"`
}

type rawToken struct {
	TokenInfo  *tokenInfo `json:"tokenInfo"`
	Balance    *float64   `json:"balance"`
	RawBalance string     `json:"rawBalance"`
}

type ethInfo struct {
	Balance *float64    `json:"balance"`
	Price   *tokenPrice `json:"price"`
}

type addressInfoResponse struct {
	ETH      *ethInfo   `json:"ETH"`
	Tokens   []rawToken `json:"tokens"`
	CountTxs *int       `json:"countTxs"`
}

type rawTransaction struct {
	Hash      string     `json:"hash"`
	Timestamp int64      `json:"timestamp"`
	Success   *bool      `json:"success"`
	From      *string    `json:"from"`
	To        *string    `json:"to"`
	Value     *float64   `json:"value"`
	TokenInfo *tokenInfo `json:"tokenInfo"`
}

// buildProfile merges the two Ethplorer responses into one OnchainProfile.
func buildProfile(info addressInfoResponse, txs []rawTransaction) types.OnchainProfile {
	var ethBalance float64
	var ethPriceUsd *float64
	if info.ETH != nil {
		if info.ETH.Balance != nil {
			ethBalance = *info.ETH.Balance
		}
		if info.ETH.Price != nil {
			ethPriceUsd = info.ETH.Price.Rate
		}
	}

	holdings := normalizeHoldings(info.Tokens)
	recent := normalizeTransactions(txs, ethPriceUsd)

	var totalValueUsd *float64
	if ethPriceUsd != nil {
		total := ethBalance * *ethPriceUsd
		for _, h := range holdings {
			if h.ValueUsd != nil {
				total += *h.ValueUsd
			}
		}
		totalValueUsd = &total
	}

	count := len(recent)
	if info.CountTxs != nil {
		count = *info.CountTxs
	}

	return types.OnchainProfile{
		EthBalance:         ethBalance,
		EthPriceUsd:        ethPriceUsd,
		TotalValueUsd:      totalValueUsd,
		TokenHoldings:      holdings,
		TransactionCount:   count,
		RecentTransactions: recent,
	}
}

// normalizeHoldings maps raw tokens to holdings, drops entries without a
// resolvable balance, sorts descending by USD value and caps the list. A
// missing value sorts as zero but stays nil in the stored holding.
func normalizeHoldings(tokens []rawToken) []types.TokenHolding {
	holdings := make([]types.TokenHolding, 0, len(tokens))
	for _, t := range tokens {
		if h, ok := formatTokenHolding(t); ok {
			holdings = append(holdings, h)
		}
	}

	sort.SliceStable(holdings, func(i, j int) bool {
		return valueOrZero(holdings[i].ValueUsd) > valueOrZero(holdings[j].ValueUsd)
	})

	if len(holdings) > maxTokenHoldings {
		holdings = holdings[:maxTokenHoldings]
	}
	return holdings
}

func formatTokenHolding(t rawToken) (types.TokenHolding, bool) {
	info := t.TokenInfo
	if info == nil {
		return types.TokenHolding{}, false
	}

	raw, ok := parseRawBalance(t)
	if !ok {
		return types.TokenHolding{}, false
	}

	decimals := parseDecimals(info.Decimals)
	amount := raw
	if decimals > 0 {
		amount = raw / math.Pow10(decimals)
	}

	var priceUsd, valueUsd *float64
	if info.Price != nil && info.Price.Rate != nil {
		priceUsd = info.Price.Rate
		v := amount * *priceUsd
		valueUsd = &v
	}

	name := "Unknown token"
	if info.Name != nil {
		name = *info.Name
	} else if info.Symbol != nil {
		name = *info.Symbol
	}

	return types.TokenHolding{
		Address:  stringOr(info.Address, unknownAddress),
		Symbol:   stringOr(info.Symbol, "UNKNOWN"),
		Name:     name,
		Amount:   amount,
		Decimals: decimals,
		PriceUsd: priceUsd,
		ValueUsd: valueUsd,
	}, true
}

func normalizeTransactions(txs []rawTransaction, ethPriceUsd *float64) []types.OnchainTransaction {
	if len(txs) > maxRecentTransactions {
		txs = txs[:maxRecentTransactions]
	}

	recent := make([]types.OnchainTransaction, len(txs))
	for i, tx := range txs {
		var value float64
		if tx.Value != nil {
			value = *tx.Value
		}

		var symbol *string
		if tx.TokenInfo != nil && tx.TokenInfo.Symbol != nil {
			symbol = tx.TokenInfo.Symbol
		} else if value > 0 {
			eth := "ETH"
			symbol = &eth
		}

		var valueUsd *float64
		if symbol != nil && *symbol == "ETH" && ethPriceUsd != nil {
			v := value * *ethPriceUsd
			valueUsd = &v
		}

		recent[i] = types.OnchainTransaction{
			Hash:        tx.Hash,
			Timestamp:   tx.Timestamp,
			From:        normalizeAddress(tx.From),
			To:          normalizeAddress(tx.To),
			Value:       value,
			ValueUsd:    valueUsd,
			TokenSymbol: symbol,
			Success:     tx.Success,
		}
	}
	return recent
}

// parseDecimals accepts a JSON string or number; anything unparseable means
// the raw balance is treated as whole units.
func parseDecimals(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return int(n)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			return int(n)
		}
	}
	return 0
}

// parseRawBalance prefers the numeric balance field, falling back to the
// stringly rawBalance. Tokens with neither are dropped by the caller.
func parseRawBalance(t rawToken) (float64, bool) {
	if t.Balance != nil {
		return *t.Balance, true
	}
	if t.RawBalance != "" {
		if n, err := strconv.ParseFloat(t.RawBalance, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

func normalizeAddress(v *string) string {
	if v == nil || *v == "" {
		return unknownAddress
	}
	return strings.ToLower(*v)
}

func stringOr(v *string, def string) string {
	if v != nil {
		return *v
	}
	return def
}

func valueOrZero(v *float64) float64 {
	if v != nil {
		return *v
	}
	return 0
}
