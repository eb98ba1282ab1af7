package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enaqx/layer3board/internal/cache"
	"github.com/enaqx/layer3board/internal/config"
	"github.com/enaqx/layer3board/internal/layer3"
	"github.com/enaqx/layer3board/internal/types"
)

func TestLeaderboardControllerWritesCache(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"users": [{"rank": 1, "address": "0xAbC", "gmStreak": 1, "xp": 10, "level": 1}]}`))
	}))
	defer server.Close()
	t.Setenv(config.EnvLayer3APIURL, server.URL)

	store := cache.NewLeaderboard()
	client := layer3.NewClient(layer3.RouteDirect)

	ctrl := NewLeaderboard(client, store)
	defer ctrl.Close()

	assert.True(t, ctrl.Snapshot().Loading, "empty cache means a first load")

	ctrl.Load(context.Background())

	snap := ctrl.Snapshot()
	require.NoError(t, snap.Err)
	require.Len(t, snap.Data, 1)

	// The fetch result landed in the cache, address lookup included.
	require.Equal(t, 1, store.Len())
	got, ok := store.FindByAddress("0xabc")
	require.True(t, ok)
	assert.Equal(t, 1, got.Rank)
}

func TestLeaderboardControllerHydratesFromCache(t *testing.T) {
	store := cache.NewLeaderboard()
	store.Put([]types.LeaderboardUser{{Rank: 1, Address: "0xabc"}})

	ctrl := NewLeaderboard(layer3.NewClient(layer3.RouteDirect), store)
	defer ctrl.Close()

	snap := ctrl.Snapshot()
	assert.True(t, snap.HasData, "cache hit seeds the initial state")
	assert.False(t, snap.Loading)
	require.Len(t, snap.Data, 1)
	assert.Equal(t, "0xabc", snap.Data[0].Address)
}
