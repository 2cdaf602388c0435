package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/meditrack/backend/internal/domain/catalog"
	"github.com/meditrack/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormStockHistoryRepository implements catalog.StockHistoryRepository using GORM
type GormStockHistoryRepository struct {
	db *gorm.DB
}

// NewGormStockHistoryRepository creates a new GormStockHistoryRepository
func NewGormStockHistoryRepository(db *gorm.DB) *GormStockHistoryRepository {
	return &GormStockHistoryRepository{db: db}
}

// Append stores a new stock history entry
func (r *GormStockHistoryRepository) Append(ctx context.Context, entry *catalog.StockHistory) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindByItem returns entries for an item, newest first, up to limit.
// A limit of zero returns all entries.
func (r *GormStockHistoryRepository) FindByItem(ctx context.Context, itemID uuid.UUID, limit int) ([]catalog.StockHistory, error) {
	var entries []catalog.StockHistory
	query := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("recorded_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Latest returns the most recent entry for an item
func (r *GormStockHistoryRepository) Latest(ctx context.Context, itemID uuid.UUID) (*catalog.StockHistory, error) {
	var entry catalog.StockHistory
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("recorded_at DESC").
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// GormPriceHistoryRepository implements catalog.PriceHistoryRepository using GORM
type GormPriceHistoryRepository struct {
	db *gorm.DB
}

// NewGormPriceHistoryRepository creates a new GormPriceHistoryRepository
func NewGormPriceHistoryRepository(db *gorm.DB) *GormPriceHistoryRepository {
	return &GormPriceHistoryRepository{db: db}
}

// Append stores a new price history entry
func (r *GormPriceHistoryRepository) Append(ctx context.Context, entry *catalog.PriceHistory) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindByItem returns entries for an item, newest first, up to limit.
// A limit of zero returns all entries.
func (r *GormPriceHistoryRepository) FindByItem(ctx context.Context, itemID uuid.UUID, limit int) ([]catalog.PriceHistory, error) {
	var entries []catalog.PriceHistory
	query := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("recorded_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
