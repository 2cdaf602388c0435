package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/meditrack/backend/internal/domain/shared"
)

// SupplierRepository defines persistence operations for suppliers
type SupplierRepository interface {
	shared.Repository[Supplier]

	// FindByName finds a supplier by its exact name
	FindByName(ctx context.Context, name string) (*Supplier, error)

	// FindActive returns all active, non-deleted suppliers
	FindActive(ctx context.Context) ([]Supplier, error)

	// ExistsByName reports whether a non-deleted supplier with the name exists
	ExistsByName(ctx context.Context, name string) (bool, error)

	// Restore clears the soft-delete marker for a supplier
	Restore(ctx context.Context, id uuid.UUID) error

	// Purge permanently removes a supplier, bypassing soft delete
	Purge(ctx context.Context, id uuid.UUID) error
}
