package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enaqx/layer3board/internal/types"
)

func user(rank int, address string) types.LeaderboardUser {
	return types.LeaderboardUser{Rank: rank, Address: address}
}

func TestPutReplacesWholesale(t *testing.T) {
	store := NewLeaderboard()

	usersA := []types.LeaderboardUser{user(1, "0xaaa"), user(2, "0xbbb")}
	usersB := []types.LeaderboardUser{user(1, "0xccc")}

	store.Put(usersA)
	store.Put(usersB)

	cached := store.Cached()
	require.Len(t, cached, 1)
	assert.Equal(t, "0xccc", cached[0].Address)

	// The index reflects only the latest write; no merge with usersA.
	_, ok := store.FindByAddress("0xaaa")
	assert.False(t, ok)
	_, ok = store.FindByAddress("0xccc")
	assert.True(t, ok)
}

func TestFindByAddressCaseInsensitive(t *testing.T) {
	store := NewLeaderboard()
	store.Put([]types.LeaderboardUser{user(1, "0xAbCDef")})

	for _, query := range []string{"0xabcdef", "0XABCDEF", "0xAbCDef"} {
		got, ok := store.FindByAddress(query)
		require.True(t, ok, "lookup %q", query)
		assert.Equal(t, 1, got.Rank)
	}

	_, ok := store.FindByAddress("0x123456")
	assert.False(t, ok)
}

func TestEmptyCache(t *testing.T) {
	store := NewLeaderboard()

	assert.Empty(t, store.Cached())
	assert.Equal(t, 0, store.Len())

	_, ok := store.FindByAddress("0xaaa")
	assert.False(t, ok)
}
