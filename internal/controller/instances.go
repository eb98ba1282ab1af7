package controller

import (
	"context"

	"github.com/enaqx/layer3board/internal/cache"
	"github.com/enaqx/layer3board/internal/layer3"
	"github.com/enaqx/layer3board/internal/onchain"
	"github.com/enaqx/layer3board/internal/types"
)

// NewLeaderboard wires a controller to the Layer3 client and the injected
// cache. A non-empty cache seeds the initial state, and every successful fetch
// is written back to the cache before the snapshot is published.
func NewLeaderboard(client *layer3.Client, store *cache.Leaderboard) *Controller[[]types.LeaderboardUser] {
	opts := []Option[[]types.LeaderboardUser]{
		WithOnSuccess(store.Put),
	}
	if cached := store.Cached(); len(cached) > 0 {
		opts = append(opts, WithSeed(cached))
	}
	return New(client.FetchUsers, opts...)
}

// NewProfile wires a controller to the on-chain client for one wallet address.
func NewProfile(client *onchain.Client, address string) *Controller[types.OnchainProfile] {
	fetch := func(ctx context.Context) (types.OnchainProfile, error) {
		return client.FetchProfile(ctx, address)
	}
	return New(fetch)
}
