package cache

import (
	"strings"
	"sync"

	"github.com/enaqx/layer3board/internal/types"
)

// Leaderboard holds the last successfully fetched leaderboard plus an
// address-keyed index for O(1) lookup. It is constructed once at composition
// time and injected wherever leaderboard data is read synchronously, so
// navigating to a user detail view never re-fetches.
//
// Writes replace the slice and rebuild the index as one step under the lock;
// readers always see the last fully completed write.
type Leaderboard struct {
	mu        sync.RWMutex
	users     []types.LeaderboardUser
	byAddress map[string]types.LeaderboardUser
}

// NewLeaderboard creates an empty leaderboard cache.
func NewLeaderboard() *Leaderboard {
	return &Leaderboard{
		byAddress: make(map[string]types.LeaderboardUser),
	}
}

// Put replaces the cached users wholesale and rebuilds the lowercase-address
// index. There is no incremental merge.
func (c *Leaderboard) Put(users []types.LeaderboardUser) {
	index := make(map[string]types.LeaderboardUser, len(users))
	for _, u := range users {
		index[strings.ToLower(u.Address)] = u
	}

	c.mu.Lock()
	c.users = users
	c.byAddress = index
	c.mu.Unlock()
}

// Cached returns the current users by reference. Callers must treat the slice
// as read-only; mutating it breaks index consistency.
func (c *Leaderboard) Cached() []types.LeaderboardUser {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.users
}

// FindByAddress looks up a cached user case-insensitively.
func (c *Leaderboard) FindByAddress(address string) (types.LeaderboardUser, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	u, ok := c.byAddress[strings.ToLower(address)]
	return u, ok
}

// Len returns the number of cached users.
func (c *Leaderboard) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.users)
}
