package controller

import (
	"context"
	"sync"

	"github.com/enaqx/layer3board/internal/errors"
)

// Snapshot is an immutable view of a controller's state. Loading is set for a
// first load, Refreshing for an explicit refresh, so consumers can render a
// full-screen spinner and a pull-to-refresh indicator differently.
type Snapshot[T any] struct {
	Data       T
	HasData    bool
	Loading    bool
	Refreshing bool
	Err        error
}

// FetchFunc produces a value of T, honoring ctx cancellation.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Controller owns the load/refresh lifecycle for one data source. Each new
// load supersedes any in-flight one: the previous fetch is cancelled and its
// eventual result discarded via a generation check, so a slow stale response
// can never overwrite a newer one. A failed load keeps the last good data so
// consumers can show stale data with a warning instead of blanking the view.
type Controller[T any] struct {
	mu         sync.Mutex
	fetch      FetchFunc[T]
	onSuccess  func(T)
	snap       Snapshot[T]
	generation uint64
	cancel     context.CancelFunc
	watchers   []chan Snapshot[T]
	closed     bool
}

// Option configures a Controller.
type Option[T any] func(*Controller[T])

// WithSeed hydrates the controller with already-available data, so it starts
// in a non-loading success state. Used for the leaderboard, where a cache hit
// allows instant initial render.
func WithSeed[T any](data T) Option[T] {
	return func(c *Controller[T]) {
		c.snap.Data = data
		c.snap.HasData = true
		c.snap.Loading = false
	}
}

// WithOnSuccess registers a hook invoked with every successful fetch result
// before the success snapshot becomes observable. The leaderboard controller
// writes the cache here.
func WithOnSuccess[T any](fn func(T)) Option[T] {
	return func(c *Controller[T]) {
		c.onSuccess = fn
	}
}

// New creates a controller for the given fetch function.
func New[T any](fetch FetchFunc[T], opts ...Option[T]) *Controller[T] {
	c := &Controller[T]{
		fetch: fetch,
		snap:  Snapshot[T]{Loading: true},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns a copy of the current state.
func (c *Controller[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

// Load fetches and applies a result, superseding any in-flight load. It blocks
// until the fetch completes or is cancelled; run it in a goroutine when the
// caller must not block.
func (c *Controller[T]) Load(ctx context.Context) {
	c.run(ctx, false)
}

// Refresh is Load with the Refreshing flag instead of Loading.
func (c *Controller[T]) Refresh(ctx context.Context) {
	c.run(ctx, true)
}

func (c *Controller[T]) run(ctx context.Context, refresh bool) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.generation++
	gen := c.generation
	if refresh {
		c.snap.Refreshing = true
	} else {
		c.snap.Loading = true
	}
	snap := c.snap
	c.mu.Unlock()
	c.notify(snap)

	data, err := c.fetch(ctx)
	cancel()

	c.mu.Lock()
	if c.closed || gen != c.generation {
		// Superseded or disposed mid-flight; the result must not touch state.
		c.mu.Unlock()
		return
	}
	c.cancel = nil
	c.snap.Loading = false
	c.snap.Refreshing = false
	switch {
	case err == nil:
		if c.onSuccess != nil {
			c.onSuccess(data)
		}
		c.snap.Data = data
		c.snap.HasData = true
		c.snap.Err = nil
	case errors.IsAbort(err):
		// Cancellation is a silent no-op, never an error state.
	default:
		c.snap.Err = err
	}
	snap = c.snap
	c.mu.Unlock()
	c.notify(snap)
}

// Watch returns a channel receiving a snapshot after every applied state
// transition. Delivery coalesces: a slow receiver sees the latest snapshot,
// not every intermediate one. The channel stops receiving after Close;
// receivers should select on their own context as well.
func (c *Controller[T]) Watch() <-chan Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch := make(chan Snapshot[T], 1)
	c.watchers = append(c.watchers, ch)
	return ch
}

func (c *Controller[T]) notify(snap Snapshot[T]) {
	c.mu.Lock()
	watchers := make([]chan Snapshot[T], len(c.watchers))
	copy(watchers, c.watchers)
	closed := c.closed
	c.mu.Unlock()

	if closed {
		return
	}
	for _, ch := range watchers {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}

// Close cancels any in-flight load and detaches watchers. Results that
// resolve after Close are discarded.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.watchers = nil
}
