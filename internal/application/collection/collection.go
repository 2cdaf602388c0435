package collection

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/meditrack/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Identifiable constrains collection elements to things with a UUID
type Identifiable interface {
	GetID() uuid.UUID
}

// Invalidator evicts cached queries when the collection changes
type Invalidator interface {
	InvalidatePrefix(ctx context.Context, prefix string) error
}

// Subscriber receives a snapshot after every successful mutation
type Subscriber[T Identifiable] func(items []T)

// Collection holds an in-memory working set of entities and applies
// mutations optimistically: the in-memory state changes first, the
// persistence callback runs second, and a failed persist rolls the
// in-memory state back to the pre-mutation snapshot before the error
// is returned to the caller.
type Collection[T Identifiable] struct {
	mu          sync.RWMutex
	items       []T
	logger      *zap.Logger
	invalidator Invalidator
	cachePrefix string

	subMu   sync.Mutex
	subs    map[int]Subscriber[T]
	nextSub int
}

// Option configures a collection
type Option[T Identifiable] func(*Collection[T])

// WithInvalidator wires a cache invalidator; after every successful
// mutation all cached queries under the prefix are evicted.
func WithInvalidator[T Identifiable](inv Invalidator, prefix string) Option[T] {
	return func(c *Collection[T]) {
		c.invalidator = inv
		c.cachePrefix = prefix
	}
}

// New creates an empty collection
func New[T Identifiable](logger *zap.Logger, opts ...Option[T]) *Collection[T] {
	c := &Collection[T]{
		logger: logger,
		subs:   make(map[int]Subscriber[T]),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load replaces the working set from a fetch function. A failed fetch
// leaves the collection empty rather than poisoned with stale data.
func (c *Collection[T]) Load(ctx context.Context, fetch func(ctx context.Context) ([]T, error)) error {
	items, err := fetch(ctx)
	if err != nil {
		c.logger.Warn("collection load failed, starting empty", zap.Error(err))
		c.mu.Lock()
		c.items = nil
		c.mu.Unlock()
		return err
	}
	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	c.notify()
	return nil
}

// Items returns a copy of the current working set
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of items in the working set
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Find returns the item with the given ID, or false when absent
func (c *Collection[T]) Find(id uuid.UUID) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, item := range c.items {
		if item.GetID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Filter returns the items matching a predicate
func (c *Collection[T]) Filter(pred func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []T
	for _, item := range c.items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}

func (c *Collection[T]) snapshot() []T {
	snap := make([]T, len(c.items))
	copy(snap, c.items)
	return snap
}

// Insert adds an item optimistically and persists it. On persist
// failure the item is removed again and the error is returned.
func (c *Collection[T]) Insert(ctx context.Context, item T, persist func(ctx context.Context) error) error {
	c.mu.Lock()
	snap := c.snapshot()
	c.items = append(c.items, item)
	c.mu.Unlock()

	if err := persist(ctx); err != nil {
		c.logger.Error("insert persist failed, rolling back",
			zap.String("id", item.GetID().String()),
			zap.Error(err))
		c.mu.Lock()
		c.items = snap
		c.mu.Unlock()
		return err
	}

	c.afterMutation(ctx)
	return nil
}

// Update replaces the item with the same ID optimistically and persists
// it. An ID absent from the working set fails with not-found before the
// in-memory state is touched. On persist failure the previous state is
// restored.
func (c *Collection[T]) Update(ctx context.Context, item T, persist func(ctx context.Context) error) error {
	c.mu.Lock()
	pos := -1
	for idx := range c.items {
		if c.items[idx].GetID() == item.GetID() {
			pos = idx
			break
		}
	}
	if pos < 0 {
		c.mu.Unlock()
		return shared.ErrNotFound
	}
	snap := c.snapshot()
	c.items[pos] = item
	c.mu.Unlock()

	if err := persist(ctx); err != nil {
		c.logger.Error("update persist failed, rolling back",
			zap.String("id", item.GetID().String()),
			zap.Error(err))
		c.mu.Lock()
		c.items = snap
		c.mu.Unlock()
		return err
	}

	c.afterMutation(ctx)
	return nil
}

// Delete removes the item with the given ID optimistically and persists
// the removal. On persist failure the item is restored.
func (c *Collection[T]) Delete(ctx context.Context, id uuid.UUID, persist func(ctx context.Context) error) error {
	c.mu.Lock()
	snap := c.snapshot()
	for idx := range c.items {
		if c.items[idx].GetID() == id {
			c.items = append(c.items[:idx], c.items[idx+1:]...)
			break
		}
	}
	c.mu.Unlock()

	if err := persist(ctx); err != nil {
		c.logger.Error("delete persist failed, rolling back",
			zap.String("id", id.String()),
			zap.Error(err))
		c.mu.Lock()
		c.items = snap
		c.mu.Unlock()
		return err
	}

	c.afterMutation(ctx)
	return nil
}

// Subscribe registers a callback invoked with a snapshot after every
// successful mutation. The returned function cancels the subscription.
func (c *Collection[T]) Subscribe(fn Subscriber[T]) func() {
	c.subMu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.subMu.Unlock()

	return func() {
		c.subMu.Lock()
		delete(c.subs, id)
		c.subMu.Unlock()
	}
}

func (c *Collection[T]) afterMutation(ctx context.Context) {
	if c.invalidator != nil && c.cachePrefix != "" {
		if err := c.invalidator.InvalidatePrefix(ctx, c.cachePrefix); err != nil {
			c.logger.Warn("cache invalidation failed",
				zap.String("prefix", c.cachePrefix),
				zap.Error(err))
		}
	}
	c.notify()
}

func (c *Collection[T]) notify() {
	items := c.Items()
	c.subMu.Lock()
	subs := make([]Subscriber[T], 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.subMu.Unlock()

	for _, fn := range subs {
		fn(items)
	}
}
