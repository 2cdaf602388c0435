package settings

import (
	"context"

	"github.com/meditrack/backend/internal/domain/shared"
)

// Repository defines persistence operations for setting overrides
type Repository interface {
	shared.Repository[Setting]

	// FindByKey returns the override for a key, or shared.ErrNotFound
	FindByKey(ctx context.Context, key string) (*Setting, error)

	// FindByCategory returns all overrides in a category
	FindByCategory(ctx context.Context, category string) ([]Setting, error)

	// DeleteByKey removes the override for a key, restoring the default
	DeleteByKey(ctx context.Context, key string) error

	// DeleteByCategory removes all overrides in a category
	DeleteByCategory(ctx context.Context, category string) error
}
