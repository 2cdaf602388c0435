package catalog

import "github.com/meditrack/backend/internal/domain/shared"

// Event types for the catalog aggregates
const (
	EventInventoryItemCreated = "inventory_item.created"
	EventStockAdjusted        = "inventory_item.stock_adjusted"
)

// InventoryItemCreatedEvent is raised when a new inventory item is created
type InventoryItemCreatedEvent struct {
	shared.BaseDomainEvent
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// NewInventoryItemCreatedEvent creates a new inventory item created event
func NewInventoryItemCreatedEvent(item *InventoryItem) *InventoryItemCreatedEvent {
	return &InventoryItemCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventInventoryItemCreated, "InventoryItem", item.ID),
		Name:            item.Name,
		Quantity:        item.Quantity,
	}
}

// StockAdjustedEvent is raised when an item's stock level changes
type StockAdjustedEvent struct {
	shared.BaseDomainEvent
	QuantityBefore int         `json:"quantity_before"`
	QuantityAfter  int         `json:"quantity_after"`
	Status         StockStatus `json:"status"`
}

// NewStockAdjustedEvent creates a new stock adjusted event
func NewStockAdjustedEvent(item *InventoryItem, before int) *StockAdjustedEvent {
	return &StockAdjustedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventStockAdjusted, "InventoryItem", item.ID),
		QuantityBefore:  before,
		QuantityAfter:   item.Quantity,
		Status:          item.StockStatus(),
	}
}
