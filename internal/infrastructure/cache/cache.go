package cache

import (
	"context"
	"time"
)

// QueryCache is a byte-oriented cache for query results. Keys are
// namespaced with a prefix per collection so whole namespaces can be
// dropped when the underlying data changes.
type QueryCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	InvalidatePrefix(ctx context.Context, prefix string) error
	Close() error
}
