// Package factcache provides single-flight memoization for named facts about
// one identity. A cache instance is owned by exactly one evaluator and lives
// for one logical session; it is never invalidated or evicted.
package factcache

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Fact names a memoized derived value.
type Fact string

// ErrDependencyCycle reports that a fact's computation re-requested the same
// fact before it resolved. This is a contract violation by the compute
// function, never broken silently.
var ErrDependencyCycle = errors.New("fact dependency cycle")

// slot is the single state word for one fact. It transitions exactly once
// from computing to resolved; done is closed after value/err are set.
type slot struct {
	done  chan struct{}
	value any
	err   error
}

// Cache memoizes fact computations with a single-flight guarantee: for each
// fact, the compute function runs at most once per cache lifetime, and every
// caller (concurrent or sequential) observes the same value or error. Failed
// computations are cached and replayed like successes.
type Cache struct {
	mu    sync.Mutex
	slots map[Fact]*slot
}

// New returns an empty cache. A new session requires a new cache.
func New() *Cache {
	return &Cache{slots: make(map[Fact]*slot)}
}

// chainNode is an immutable linked list of facts in flight on the current
// computation chain. It rides on the context so recursion (same chain) is
// distinguishable from concurrency (different chains).
type chainNode struct {
	fact   Fact
	parent *chainNode
}

type chainKey struct{}

func chainFrom(ctx context.Context) *chainNode {
	n, _ := ctx.Value(chainKey{}).(*chainNode)
	return n
}

func (n *chainNode) contains(fact Fact) bool {
	for ; n != nil; n = n.parent {
		if n.fact == fact {
			return true
		}
	}
	return false
}

// Get returns the cached result for fact, computing it via compute on first
// request. Compute functions receive a context they must pass to any nested
// Get calls; a nested request for a fact still computing on the same chain
// fails with ErrDependencyCycle.
//
// Waiters blocked on another caller's in-flight computation honor their own
// context and may return early; the computation itself is not aborted and its
// result still lands in the cache for everyone else.
func (c *Cache) Get(ctx context.Context, fact Fact, compute func(ctx context.Context) (any, error)) (any, error) {
	if chainFrom(ctx).contains(fact) {
		return nil, fmt.Errorf("%w: %q re-requested before resolving", ErrDependencyCycle, fact)
	}

	c.mu.Lock()
	if s, ok := c.slots[fact]; ok {
		c.mu.Unlock()
		select {
		case <-s.done:
			return s.value, s.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	s := &slot{done: make(chan struct{})}
	c.slots[fact] = s
	c.mu.Unlock()

	// Detach from the first caller's cancellation so an abandoned request
	// cannot poison the slot other callers are awaiting. Chain values survive
	// the detach.
	computeCtx := context.WithValue(context.WithoutCancel(ctx), chainKey{}, &chainNode{fact: fact, parent: chainFrom(ctx)})
	s.value, s.err = compute(computeCtx)
	close(s.done)
	return s.value, s.err
}

// Resolved reports whether fact has finished computing. Intended for tests
// and diagnostics.
func (c *Cache) Resolved(fact Fact) bool {
	c.mu.Lock()
	s, ok := c.slots[fact]
	c.mu.Unlock()
	if !ok {
		return false
	}
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// Resolve is the typed front for Get. It asserts the cached value to T so
// fact accessors stay free of type assertions.
func Resolve[T any](ctx context.Context, c *Cache, fact Fact, compute func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	v, err := c.Get(ctx, fact, func(ctx context.Context) (any, error) {
		return compute(ctx)
	})
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("fact %q: cached value has type %T", fact, v)
	}
	return t, nil
}
