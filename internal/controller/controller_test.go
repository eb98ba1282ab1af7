package controller

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSuccess(t *testing.T) {
	c := New(func(ctx context.Context) (int, error) {
		return 42, nil
	})
	defer c.Close()

	assert.True(t, c.Snapshot().Loading, "unseeded controller starts loading")

	c.Load(context.Background())

	snap := c.Snapshot()
	assert.Equal(t, 42, snap.Data)
	assert.True(t, snap.HasData)
	assert.False(t, snap.Loading)
	assert.False(t, snap.Refreshing)
	assert.NoError(t, snap.Err)
}

func TestFailurePreservesLastGoodData(t *testing.T) {
	fail := false
	c := New(func(ctx context.Context) (int, error) {
		if fail {
			return 0, errors.New("upstream exploded")
		}
		return 7, nil
	})
	defer c.Close()

	c.Load(context.Background())
	fail = true
	c.Refresh(context.Background())

	snap := c.Snapshot()
	assert.Equal(t, 7, snap.Data, "stale data is kept for display")
	assert.True(t, snap.HasData)
	require.Error(t, snap.Err)
	assert.Equal(t, "upstream exploded", snap.Err.Error())

	// A later success clears the error.
	fail = false
	c.Refresh(context.Background())
	assert.NoError(t, c.Snapshot().Err)
}

func TestRefreshFlagDistinctFromLoading(t *testing.T) {
	release := make(chan struct{})
	c := New(func(ctx context.Context) (int, error) {
		select {
		case <-release:
			return 1, nil
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}, WithSeed(0))
	defer c.Close()

	done := make(chan struct{})
	go func() {
		c.Refresh(context.Background())
		close(done)
	}()

	require.Eventually(t, func() bool {
		return c.Snapshot().Refreshing
	}, time.Second, time.Millisecond)
	assert.False(t, c.Snapshot().Loading, "a refresh must not raise the first-load flag")

	close(release)
	<-done
	assert.False(t, c.Snapshot().Refreshing)
}

func TestSupersededLoadIsDiscarded(t *testing.T) {
	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})

	c := New(func(ctx context.Context) (int, error) {
		if calls.Add(1) == 1 {
			close(started)
			// Deliberately ignore ctx so the stale result resolves late.
			<-release
			return 1, nil
		}
		return 2, nil
	})
	defer c.Close()

	first := make(chan struct{})
	go func() {
		c.Load(context.Background())
		close(first)
	}()

	<-started
	c.Refresh(context.Background())
	require.Equal(t, 2, c.Snapshot().Data)

	// Now let the superseded fetch finish; its result must never apply.
	close(release)
	<-first

	snap := c.Snapshot()
	assert.Equal(t, 2, snap.Data, "stale result overwrote a newer one")
	assert.NoError(t, snap.Err)
	assert.False(t, snap.Loading)
}

func TestAbortIsSilent(t *testing.T) {
	c := New(func(ctx context.Context) (int, error) {
		return 0, ctx.Err()
	})
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c.Load(ctx)

	snap := c.Snapshot()
	assert.NoError(t, snap.Err, "cancellation must never surface as an error state")
	assert.False(t, snap.HasData)
	assert.False(t, snap.Loading)
}

func TestCloseCancelsInFlightLoad(t *testing.T) {
	var calls atomic.Int32
	started := make(chan struct{})

	c := New(func(ctx context.Context) (int, error) {
		calls.Add(1)
		close(started)
		<-ctx.Done()
		return 99, ctx.Err()
	})

	done := make(chan struct{})
	go func() {
		c.Load(context.Background())
		close(done)
	}()

	<-started
	c.Close()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("load did not return after Close")
	}

	snap := c.Snapshot()
	assert.False(t, snap.HasData, "post-Close result must be discarded")
	assert.NoError(t, snap.Err)

	// A closed controller ignores further loads.
	c.Load(context.Background())
	assert.Equal(t, int32(1), calls.Load())
}

func TestSeededControllerStartsInSuccess(t *testing.T) {
	c := New(func(ctx context.Context) (int, error) {
		return 2, nil
	}, WithSeed(1))
	defer c.Close()

	snap := c.Snapshot()
	assert.Equal(t, 1, snap.Data)
	assert.True(t, snap.HasData)
	assert.False(t, snap.Loading)
}

func TestWatchDeliversAppliedSnapshots(t *testing.T) {
	c := New(func(ctx context.Context) (int, error) {
		return 5, nil
	})
	defer c.Close()

	updates := c.Watch()
	c.Load(context.Background())

	var final Snapshot[int]
	require.Eventually(t, func() bool {
		select {
		case snap := <-updates:
			final = snap
			return snap.HasData
		default:
			return false
		}
	}, time.Second, time.Millisecond)

	assert.Equal(t, 5, final.Data)
	assert.False(t, final.Loading)
}

func TestOnSuccessRunsBeforePublication(t *testing.T) {
	var cached atomic.Int32
	c := New(func(ctx context.Context) (int, error) {
		return 3, nil
	}, WithOnSuccess(func(v int) {
		cached.Store(int32(v))
	}))
	defer c.Close()

	updates := c.Watch()
	c.Load(context.Background())

	require.Eventually(t, func() bool {
		select {
		case snap := <-updates:
			if !snap.HasData {
				return false
			}
			// By the time a success snapshot is observable the hook has run.
			assert.Equal(t, int32(3), cached.Load())
			return true
		default:
			return false
		}
	}, time.Second, time.Millisecond)
}
