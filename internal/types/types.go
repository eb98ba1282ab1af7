package types

// LeaderboardUser is one ranked participant as returned by the Layer3 API.
// Instances are built by the layer3 normalizer and never mutated afterwards;
// a successful fetch replaces the whole slice.
type LeaderboardUser struct {
	Rank      int     `json:"rank"`
	Address   string  `json:"address"`
	AvatarCid *string `json:"avatarCid"`
	Username  *string `json:"username"`
	GmStreak  int     `json:"gmStreak"`
	XP        int     `json:"xp"`
	Level     int     `json:"level"`
}

// TokenHolding is one ERC-20 balance for a wallet. PriceUsd and ValueUsd are
// nil when Ethplorer has no price for the token; zero is a real price.
type TokenHolding struct {
	Address  string   `json:"address"`
	Symbol   string   `json:"symbol"`
	Name     string   `json:"name"`
	Amount   float64  `json:"amount"`
	Decimals int      `json:"decimals"`
	PriceUsd *float64 `json:"priceUsd"`
	ValueUsd *float64 `json:"valueUsd"`
}

// OnchainTransaction is one wallet transaction record. From/To are lowercased
// addresses or the literal "unknown" when the upstream omits them.
type OnchainTransaction struct {
	Hash        string   `json:"hash"`
	Timestamp   int64    `json:"timestamp"`
	From        string   `json:"from"`
	To          string   `json:"to"`
	Value       float64  `json:"value"`
	ValueUsd    *float64 `json:"valueUsd"`
	TokenSymbol *string  `json:"tokenSymbol"`
	Success     *bool    `json:"success,omitempty"`
}

// OnchainProfile is the aggregate wallet snapshot for one address.
//
// TotalValueUsd is nil whenever the ETH price is unknown: the total cannot be
// computed, which is a different state than a portfolio worth zero.
type OnchainProfile struct {
	EthBalance         float64              `json:"ethBalance"`
	EthPriceUsd        *float64             `json:"ethPriceUsd"`
	TotalValueUsd      *float64             `json:"totalValueUsd,omitempty"`
	TokenHoldings      []TokenHolding       `json:"tokenHoldings"`
	TransactionCount   int                  `json:"transactionCount"`
	RecentTransactions []OnchainTransaction `json:"recentTransactions"`
}
