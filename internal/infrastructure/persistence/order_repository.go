package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/meditrack/backend/internal/domain/order"
	"github.com/meditrack/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order with its items by ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).Preload("Items").First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindByOrderNumber finds an order by its unique order number
func (r *GormOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).Preload("Items").
		First(&o, "order_number = ?", orderNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindAll finds all orders matching the filter
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	var orders []order.Order
	query := r.applyFilter(r.db.WithContext(ctx).Model(&order.Order{}), filter)

	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByStatus returns all orders in any of the given statuses
func (r *GormOrderRepository) FindByStatus(ctx context.Context, statuses ...order.Status) ([]order.Order, error) {
	var orders []order.Order
	if err := r.db.WithContext(ctx).Preload("Items").
		Where("status IN ?", statuses).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindActive returns orders in the pending, ordered or arrived statuses
func (r *GormOrderRepository) FindActive(ctx context.Context) ([]order.Order, error) {
	return r.FindByStatus(ctx, order.ActiveStatuses()...)
}

// FindDeliveredBefore returns delivered orders last updated before the cutoff
func (r *GormOrderRepository) FindDeliveredBefore(ctx context.Context, cutoff time.Time) ([]order.Order, error) {
	var orders []order.Order
	if err := r.db.WithContext(ctx).Preload("Items").
		Where("status = ? AND updated_at < ?", order.StatusDelivered, cutoff).
		Order("updated_at ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save persists an order and its items. Items removed from the
// aggregate are deleted so the stored lines always mirror it.
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(o).Error; err != nil {
			return err
		}

		if len(o.Items) == 0 {
			return tx.Where("order_id = ?", o.ID).Delete(&order.Item{}).Error
		}
		keepIDs := make([]uuid.UUID, 0, len(o.Items))
		for _, item := range o.Items {
			keepIDs = append(keepIDs, item.ID)
		}
		return tx.Where("order_id = ? AND id NOT IN ?", o.ID, keepIDs).
			Delete(&order.Item{}).Error
	})
}

// Delete permanently removes an order and its items
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&order.Item{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&order.Order{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&order.Order{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus returns the number of orders per status
func (r *GormOrderRepository) CountByStatus(ctx context.Context) (map[order.Status]int64, error) {
	var rows []struct {
		Status order.Status
		Total  int64
	}
	if err := r.db.WithContext(ctx).Model(&order.Order{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[order.Status]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, OrderSortFields, "created_at")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

func (r *GormOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Customer name and item names match case-insensitively, the phone
	// number matches as a raw substring.
	if filter.Search != "" {
		namePattern := "%" + strings.ToLower(filter.Search) + "%"
		phonePattern := "%" + filter.Search + "%"
		query = query.Where(
			"LOWER(customer_name) LIKE ? OR phone LIKE ? OR EXISTS ("+
				"SELECT 1 FROM special_order_items "+
				"WHERE special_order_items.order_id = special_orders.id "+
				"AND LOWER(special_order_items.name) LIKE ?)",
			namePattern, phonePattern, namePattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "status_in":
			query = query.Where("status IN ?", value)
		case "supplier_id":
			query = query.Where("supplier_id = ?", value)
		}
	}

	return query
}
