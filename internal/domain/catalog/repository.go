package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/meditrack/backend/internal/domain/shared"
)

// InventoryRepository defines persistence operations for inventory items
type InventoryRepository interface {
	shared.Repository[InventoryItem]

	// FindByBarcode finds the item carrying the given barcode
	FindByBarcode(ctx context.Context, code string) (*InventoryItem, error)

	// FindLowStock returns non-deleted items with 0 < quantity <= minimum level
	FindLowStock(ctx context.Context) ([]InventoryItem, error)

	// FindOutOfStock returns non-deleted items with zero quantity
	FindOutOfStock(ctx context.Context) ([]InventoryItem, error)

	// Restore clears the soft-delete marker for an item
	Restore(ctx context.Context, id uuid.UUID) error
}

// ManufacturerRepository defines persistence operations for manufacturers
type ManufacturerRepository interface {
	shared.Repository[Manufacturer]

	// FindByName finds a manufacturer by its exact name
	FindByName(ctx context.Context, name string) (*Manufacturer, error)

	// ExistsByName reports whether a manufacturer with the name exists
	ExistsByName(ctx context.Context, name string) (bool, error)
}

// MedicineFormRepository defines persistence operations for dosage forms
type MedicineFormRepository interface {
	shared.Repository[MedicineForm]

	// FindByName finds a form by its exact name
	FindByName(ctx context.Context, name string) (*MedicineForm, error)
}

// StockHistoryRepository defines persistence operations for stock history
type StockHistoryRepository interface {
	// Append stores a new history entry
	Append(ctx context.Context, entry *StockHistory) error

	// FindByItem returns entries for an item, newest first, up to limit.
	// A limit of zero returns all entries.
	FindByItem(ctx context.Context, itemID uuid.UUID, limit int) ([]StockHistory, error)

	// Latest returns the most recent entry for an item
	Latest(ctx context.Context, itemID uuid.UUID) (*StockHistory, error)
}

// PriceHistoryRepository defines persistence operations for price history
type PriceHistoryRepository interface {
	// Append stores a new history entry
	Append(ctx context.Context, entry *PriceHistory) error

	// FindByItem returns entries for an item, newest first, up to limit.
	// A limit of zero returns all entries.
	FindByItem(ctx context.Context, itemID uuid.UUID, limit int) ([]PriceHistory, error)
}
