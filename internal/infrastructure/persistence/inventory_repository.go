package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/meditrack/backend/internal/domain/catalog"
	"github.com/meditrack/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormInventoryRepository implements catalog.InventoryRepository using GORM
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewGormInventoryRepository creates a new GormInventoryRepository
func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// FindByID finds an inventory item with its barcodes by ID
func (r *GormInventoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.InventoryItem, error) {
	var item catalog.InventoryItem
	if err := r.db.WithContext(ctx).Preload("Barcodes").First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByBarcode finds the item carrying the given barcode
func (r *GormInventoryRepository) FindByBarcode(ctx context.Context, code string) (*catalog.InventoryItem, error) {
	var barcode catalog.Barcode
	if err := r.db.WithContext(ctx).First(&barcode, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return r.FindByID(ctx, barcode.ItemID)
}

// FindAll finds all inventory items matching the filter
func (r *GormInventoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.InventoryItem, error) {
	var items []catalog.InventoryItem
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.InventoryItem{}), filter)

	if err := query.Preload("Barcodes").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindLowStock returns non-deleted items with 0 < quantity <= minimum level
func (r *GormInventoryRepository) FindLowStock(ctx context.Context) ([]catalog.InventoryItem, error) {
	var items []catalog.InventoryItem
	if err := r.db.WithContext(ctx).Preload("Barcodes").
		Where("quantity > 0 AND quantity <= min_stock_level").
		Order("name ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindOutOfStock returns non-deleted items with zero quantity
func (r *GormInventoryRepository) FindOutOfStock(ctx context.Context) ([]catalog.InventoryItem, error) {
	var items []catalog.InventoryItem
	if err := r.db.WithContext(ctx).Preload("Barcodes").
		Where("quantity = 0").
		Order("name ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Save persists an item and its barcodes. Barcodes removed from the
// aggregate are deleted so the stored codes always mirror it.
func (r *GormInventoryRepository) Save(ctx context.Context, item *catalog.InventoryItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(item).Error; err != nil {
			return err
		}

		if len(item.Barcodes) == 0 {
			return tx.Where("item_id = ?", item.ID).Delete(&catalog.Barcode{}).Error
		}
		keepIDs := make([]uuid.UUID, 0, len(item.Barcodes))
		for _, barcode := range item.Barcodes {
			keepIDs = append(keepIDs, barcode.ID)
		}
		return tx.Where("item_id = ? AND id NOT IN ?", item.ID, keepIDs).
			Delete(&catalog.Barcode{}).Error
	})
}

// Delete soft-deletes an inventory item
func (r *GormInventoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.InventoryItem{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Restore clears the soft-delete marker for an item
func (r *GormInventoryRepository) Restore(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Unscoped().Model(&catalog.InventoryItem{}).
		Where("id = ?", id).
		Update("deleted_at", nil)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts inventory items matching the filter
func (r *GormInventoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&catalog.InventoryItem{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormInventoryRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, InventorySortFields, "name")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

func (r *GormInventoryRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(generic_name) LIKE ? OR LOWER(location) LIKE ? OR EXISTS ("+
				"SELECT 1 FROM inventory_barcodes "+
				"WHERE inventory_barcodes.item_id = inventory_items.id "+
				"AND inventory_barcodes.code LIKE ?)",
			pattern, pattern, pattern, "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "stock_status":
			switch value {
			case string(catalog.StockStatusOutOfStock):
				query = query.Where("quantity = 0")
			case string(catalog.StockStatusLowStock):
				query = query.Where("quantity > 0 AND quantity <= min_stock_level")
			case string(catalog.StockStatusInStock):
				query = query.Where("quantity > min_stock_level")
			}
		case "form":
			query = query.Where("form = ?", value)
		case "manufacturer_id":
			query = query.Where("manufacturer_id = ?", value)
		case "supplier_id":
			query = query.Where("supplier_id = ?", value)
		case "is_active":
			query = query.Where("is_active = ?", value)
		}
	}

	return query
}
