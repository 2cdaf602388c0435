package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/meditrack/backend/internal/domain/catalog"
	"github.com/meditrack/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// InventoryService handles inventory business operations. Stock changes
// are written through to the append-only stock history, and price
// changes to the price history.
type InventoryService struct {
	itemRepo  catalog.InventoryRepository
	stockRepo catalog.StockHistoryRepository
	priceRepo catalog.PriceHistoryRepository
	logger    *zap.Logger
}

// NewInventoryService creates a new inventory service
func NewInventoryService(
	itemRepo catalog.InventoryRepository,
	stockRepo catalog.StockHistoryRepository,
	priceRepo catalog.PriceHistoryRepository,
	logger *zap.Logger,
) *InventoryService {
	return &InventoryService{
		itemRepo:  itemRepo,
		stockRepo: stockRepo,
		priceRepo: priceRepo,
		logger:    logger,
	}
}

// Create creates a new inventory item with optional barcodes and an
// initial stock history entry when the starting quantity is non-zero.
func (s *InventoryService) Create(ctx context.Context, req CreateInventoryItemRequest) (*InventoryItemResponse, error) {
	item, err := catalog.NewInventoryItem(req.Name, req.Form, req.Quantity, req.MinStockLevel)
	if err != nil {
		return nil, err
	}

	if req.GenericName != "" || req.Concentration != "" || req.Location != "" || req.Description != "" || req.StorageInstructions != "" {
		if err := item.UpdateDetails(catalog.ItemDetails{
			Name:                req.Name,
			GenericName:         req.GenericName,
			Concentration:       req.Concentration,
			Form:                req.Form,
			Location:            req.Location,
			Description:         req.Description,
			StorageInstructions: req.StorageInstructions,
		}); err != nil {
			return nil, err
		}
	}
	if req.RequiresPrescription || req.IsControlled {
		item.SetRegulatoryFlags(req.RequiresPrescription, req.IsControlled)
	}
	if req.ManufacturerID != nil {
		item.SetManufacturer(req.ManufacturerID)
	}
	if req.SupplierID != nil {
		item.SetSupplier(req.SupplierID)
	}
	if req.UnitPrice != nil || req.CostPrice != nil {
		unit := decimal.Zero
		cost := decimal.Zero
		if req.UnitPrice != nil {
			unit = *req.UnitPrice
		}
		if req.CostPrice != nil {
			cost = *req.CostPrice
		}
		if err := item.SetPricing(unit, cost); err != nil {
			return nil, err
		}
	}
	for _, code := range req.Barcodes {
		if err := item.AddBarcode(code); err != nil {
			return nil, err
		}
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	if req.Quantity > 0 {
		entry := catalog.NewStockHistory(item.ID, catalog.AdjustmentInitial, 0, req.Quantity, "initial stock")
		if err := s.stockRepo.Append(ctx, entry); err != nil {
			s.logger.Warn("failed to record initial stock history",
				zap.String("item_id", item.ID.String()),
				zap.Error(err))
		}
	}

	s.logger.Info("inventory item created",
		zap.String("item_id", item.ID.String()),
		zap.String("name", item.Name))

	return ToInventoryItemResponse(item), nil
}

// Get returns an item by ID
func (s *InventoryService) Get(ctx context.Context, id uuid.UUID) (*InventoryItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToInventoryItemResponse(item), nil
}

// GetByBarcode returns the item carrying a barcode
func (s *InventoryService) GetByBarcode(ctx context.Context, code string) (*InventoryItemResponse, error) {
	item, err := s.itemRepo.FindByBarcode(ctx, code)
	if err != nil {
		return nil, err
	}
	return ToInventoryItemResponse(item), nil
}

// List returns items matching the query
func (s *InventoryService) List(ctx context.Context, query ListInventoryQuery) (*shared.Paginated[InventoryItemResponse], error) {
	filter := shared.DefaultFilter()
	filter.OrderBy = "name"
	filter.OrderDir = "asc"
	if query.Page > 0 {
		filter.Page = query.Page
	}
	if query.PageSize > 0 {
		filter.PageSize = query.PageSize
	}
	if query.Search != "" {
		filter.Search = query.Search
	}
	if query.StockStatus != "" {
		filter.Filters["stock_status"] = query.StockStatus
	}

	items, err := s.itemRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.itemRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToInventoryItemResponses(items), total, filter.Page, filter.PageSize)
	return &result, nil
}

// LowStock returns items at or below their minimum stock level
func (s *InventoryService) LowStock(ctx context.Context) ([]InventoryItemResponse, error) {
	items, err := s.itemRepo.FindLowStock(ctx)
	if err != nil {
		return nil, err
	}
	return ToInventoryItemResponses(items), nil
}

// OutOfStock returns items with zero quantity
func (s *InventoryService) OutOfStock(ctx context.Context) ([]InventoryItemResponse, error) {
	items, err := s.itemRepo.FindOutOfStock(ctx)
	if err != nil {
		return nil, err
	}
	return ToInventoryItemResponses(items), nil
}

// Update applies a partial update to an item, recording price history
// when the unit price changes.
func (s *InventoryService) Update(ctx context.Context, id uuid.UUID, req UpdateInventoryItemRequest) (*InventoryItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	details := catalog.ItemDetails{
		Name:                item.Name,
		GenericName:         item.GenericName,
		Concentration:       item.Concentration,
		Form:                item.Form,
		Location:            item.Location,
		Description:         item.Description,
		StorageInstructions: item.StorageInstructions,
	}
	detailsChanged := false
	if req.Name != nil {
		details.Name = *req.Name
		detailsChanged = true
	}
	if req.GenericName != nil {
		details.GenericName = *req.GenericName
		detailsChanged = true
	}
	if req.Concentration != nil {
		details.Concentration = *req.Concentration
		detailsChanged = true
	}
	if req.Form != nil {
		details.Form = *req.Form
		detailsChanged = true
	}
	if req.Location != nil {
		details.Location = *req.Location
		detailsChanged = true
	}
	if req.Description != nil {
		details.Description = *req.Description
		detailsChanged = true
	}
	if req.StorageInstructions != nil {
		details.StorageInstructions = *req.StorageInstructions
		detailsChanged = true
	}
	if detailsChanged {
		if err := item.UpdateDetails(details); err != nil {
			return nil, err
		}
	}
	if req.RequiresPrescription != nil || req.IsControlled != nil {
		requires := item.RequiresPrescription
		controlled := item.IsControlled
		if req.RequiresPrescription != nil {
			requires = *req.RequiresPrescription
		}
		if req.IsControlled != nil {
			controlled = *req.IsControlled
		}
		item.SetRegulatoryFlags(requires, controlled)
	}
	if req.ManufacturerID != nil {
		item.SetManufacturer(req.ManufacturerID)
	}
	if req.SupplierID != nil {
		item.SetSupplier(req.SupplierID)
	}
	if req.MinStockLevel != nil {
		if err := item.SetMinStockLevel(*req.MinStockLevel); err != nil {
			return nil, err
		}
	}
	var priceBefore decimal.Decimal
	priceChanged := false
	if req.UnitPrice != nil || req.CostPrice != nil {
		unit := item.UnitPrice
		cost := item.CostPrice
		if req.UnitPrice != nil {
			unit = *req.UnitPrice
		}
		if req.CostPrice != nil {
			cost = *req.CostPrice
		}
		priceBefore = item.UnitPrice
		if err := item.SetPricing(unit, cost); err != nil {
			return nil, err
		}
		priceChanged = req.UnitPrice != nil && !priceBefore.Equal(unit)
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	// History only after the item is persisted, so a failed save leaves
	// no record of a price change that never happened
	if priceChanged {
		entry := catalog.NewPriceHistory(item.ID, priceBefore, item.UnitPrice, "price update")
		if err := s.priceRepo.Append(ctx, entry); err != nil {
			s.logger.Warn("failed to record price history",
				zap.String("item_id", item.ID.String()),
				zap.Error(err))
		}
	}

	return ToInventoryItemResponse(item), nil
}

// UpdateStock sets an absolute quantity and records history
func (s *InventoryService) UpdateStock(ctx context.Context, id uuid.UUID, req UpdateStockRequest) (*InventoryItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	before := item.Quantity
	if err := item.UpdateStock(req.Quantity); err != nil {
		return nil, err
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	entry := catalog.NewStockHistory(item.ID, catalog.AdjustmentSet, before, item.Quantity, req.Reason)
	if err := s.stockRepo.Append(ctx, entry); err != nil {
		s.logger.Warn("failed to record stock history",
			zap.String("item_id", item.ID.String()),
			zap.Error(err))
	}

	return ToInventoryItemResponse(item), nil
}

// AdjustStock applies a signed delta and records history. Adjustments
// that would make the quantity negative are rejected.
func (s *InventoryService) AdjustStock(ctx context.Context, id uuid.UUID, req AdjustStockRequest) (*InventoryItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	before := item.Quantity
	if err := item.AdjustStock(req.Delta); err != nil {
		return nil, err
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	adjType := catalog.AdjustmentAdd
	if req.Delta < 0 {
		adjType = catalog.AdjustmentSubtract
	}
	entry := catalog.NewStockHistory(item.ID, adjType, before, item.Quantity, req.Reason)
	if err := s.stockRepo.Append(ctx, entry); err != nil {
		s.logger.Warn("failed to record stock history",
			zap.String("item_id", item.ID.String()),
			zap.Error(err))
	}

	return ToInventoryItemResponse(item), nil
}

// AddBarcode attaches a barcode to an item
func (s *InventoryService) AddBarcode(ctx context.Context, id uuid.UUID, code string) (*InventoryItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := item.AddBarcode(code); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	return ToInventoryItemResponse(item), nil
}

// RemoveBarcode detaches a barcode from an item
func (s *InventoryService) RemoveBarcode(ctx context.Context, id uuid.UUID, code string) (*InventoryItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := item.RemoveBarcode(code); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	return ToInventoryItemResponse(item), nil
}

// SetPrimaryBarcode marks one of the item's barcodes as primary
func (s *InventoryService) SetPrimaryBarcode(ctx context.Context, id uuid.UUID, code string) (*InventoryItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := item.SetPrimaryBarcode(code); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	return ToInventoryItemResponse(item), nil
}

// Delete soft-deletes an item
func (s *InventoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.itemRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.itemRepo.Delete(ctx, id)
}

// Restore brings back a soft-deleted item
func (s *InventoryService) Restore(ctx context.Context, id uuid.UUID) error {
	return s.itemRepo.Restore(ctx, id)
}

// StockHistory returns stock movements for an item, newest first
func (s *InventoryService) StockHistory(ctx context.Context, itemID uuid.UUID, limit int) ([]StockHistoryResponse, error) {
	if _, err := s.itemRepo.FindByID(ctx, itemID); err != nil {
		return nil, err
	}
	entries, err := s.stockRepo.FindByItem(ctx, itemID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]StockHistoryResponse, 0, len(entries))
	for idx := range entries {
		out = append(out, *ToStockHistoryResponse(&entries[idx]))
	}
	return out, nil
}

// PriceHistory returns price changes for an item, newest first
func (s *InventoryService) PriceHistory(ctx context.Context, itemID uuid.UUID, limit int) ([]PriceHistoryResponse, error) {
	if _, err := s.itemRepo.FindByID(ctx, itemID); err != nil {
		return nil, err
	}
	entries, err := s.priceRepo.FindByItem(ctx, itemID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]PriceHistoryResponse, 0, len(entries))
	for idx := range entries {
		out = append(out, *ToPriceHistoryResponse(&entries[idx]))
	}
	return out, nil
}

// StockStatistics derives movement statistics for an item
func (s *InventoryService) StockStatistics(ctx context.Context, itemID uuid.UUID) (*catalog.StockStatistics, error) {
	entries, err := s.stockRepo.FindByItem(ctx, itemID, 0)
	if err != nil {
		return nil, err
	}
	stats := catalog.ComputeStockStatistics(entries)
	return &stats, nil
}

// Statistics aggregates counts over the whole inventory in a single pass
func (s *InventoryService) Statistics(ctx context.Context) (*InventoryStatisticsResponse, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = 0

	items, err := s.itemRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	stats := &InventoryStatisticsResponse{TotalStockValue: decimal.Zero}
	for idx := range items {
		item := &items[idx]
		stats.TotalItems++
		switch item.StockStatus() {
		case catalog.StockStatusLowStock:
			stats.LowStockItems++
		case catalog.StockStatusOutOfStock:
			stats.OutOfStockItems++
		}
		stats.TotalStockValue = stats.TotalStockValue.Add(
			item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return stats, nil
}
