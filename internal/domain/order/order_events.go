package order

import (
	"github.com/google/uuid"
	"github.com/meditrack/backend/internal/domain/shared"
)

// Event types for the order aggregate
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderArchived      = "order.archived"
)

// OrderCreatedEvent is raised when a new special order is created
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderNumber  string `json:"order_number"`
	CustomerName string `json:"customer_name"`
	ItemCount    int    `json:"item_count"`
}

// NewOrderCreatedEvent creates a new order created event
func NewOrderCreatedEvent(o *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventOrderCreated, "Order", o.ID),
		OrderNumber:     o.OrderNumber,
		CustomerName:    o.CustomerName,
		ItemCount:       len(o.Items),
	}
}

// OrderStatusChangedEvent is raised when an order moves between statuses
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string `json:"order_number"`
	OldStatus   Status `json:"old_status"`
	NewStatus   Status `json:"new_status"`
}

// NewOrderStatusChangedEvent creates a new status changed event
func NewOrderStatusChangedEvent(o *Order, oldStatus, newStatus Status) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventOrderStatusChanged, "Order", o.ID),
		OrderNumber:     o.OrderNumber,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

// OrderArchivedEvent is raised when an old delivered order is archived
type OrderArchivedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string `json:"order_number"`
	AgeDays     int    `json:"age_days"`
}

// NewOrderArchivedEvent creates a new order archived event
func NewOrderArchivedEvent(orderID uuid.UUID, orderNumber string, ageDays int) *OrderArchivedEvent {
	return &OrderArchivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventOrderArchived, "Order", orderID),
		OrderNumber:     orderNumber,
		AgeDays:         ageDays,
	}
}
