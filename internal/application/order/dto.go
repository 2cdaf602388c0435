package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/meditrack/backend/internal/domain/order"
	"github.com/shopspring/decimal"
)

// OrderItemRequest represents one line in a create or update request
type OrderItemRequest struct {
	InventoryItemID *uuid.UUID       `json:"inventory_item_id"`
	Name            string           `json:"name" binding:"required,min=1,max=200"`
	Concentration   string           `json:"concentration" binding:"required,min=1,max=100"`
	Form            string           `json:"form" binding:"required,min=1,max=100"`
	Quantity        int              `json:"quantity" binding:"required,min=1"`
	UnitPrice       *decimal.Decimal `json:"unit_price"`
	Notes           string           `json:"notes"`
}

// CreateOrderRequest represents a request to create a special order
type CreateOrderRequest struct {
	CustomerName string             `json:"customer_name" binding:"required,min=1,max=200"`
	Phone        string             `json:"phone" binding:"required,min=1,max=50"`
	Status       string             `json:"status" binding:"omitempty,oneof=pending ordered arrived ready_for_pickup delivered cancelled"`
	SupplierID   *uuid.UUID         `json:"supplier_id"`
	Items        []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	Notes        string             `json:"notes"`
	DepositPaid  *decimal.Decimal   `json:"deposit_paid"`
}

// UpdateOrderRequest represents a request to update a special order
type UpdateOrderRequest struct {
	CustomerName *string            `json:"customer_name" binding:"omitempty,min=1,max=200"`
	Phone        *string            `json:"phone" binding:"omitempty,min=1,max=50"`
	SupplierID   *uuid.UUID         `json:"supplier_id"`
	Items        []OrderItemRequest `json:"items" binding:"omitempty,min=1,dive"`
	Notes        *string            `json:"notes"`
	DepositPaid  *decimal.Decimal   `json:"deposit_paid"`
}

// ChangeStatusRequest represents a request to change an order's status
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending ordered arrived ready_for_pickup delivered cancelled"`
	Note   string `json:"note"`
}

// ListOrdersQuery represents query parameters for listing orders
type ListOrdersQuery struct {
	Status   string `form:"status" binding:"omitempty,oneof=pending ordered arrived ready_for_pickup delivered cancelled active"`
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// OrderItemResponse represents one order line in API responses
type OrderItemResponse struct {
	ID              uuid.UUID       `json:"id"`
	InventoryItemID *uuid.UUID      `json:"inventory_item_id,omitempty"`
	Name            string          `json:"name"`
	Concentration   string          `json:"concentration"`
	Form            string          `json:"form"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	LineTotal       decimal.Decimal `json:"line_total"`
	Notes           string          `json:"notes,omitempty"`
}

// OrderResponse represents a special order in API responses
type OrderResponse struct {
	ID            uuid.UUID           `json:"id"`
	OrderNumber   string              `json:"order_number"`
	CustomerName  string              `json:"customer_name"`
	Phone         string              `json:"phone"`
	SupplierID    *uuid.UUID          `json:"supplier_id,omitempty"`
	Status        string              `json:"status"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	DepositPaid   decimal.Decimal     `json:"deposit_paid"`
	Notes         string              `json:"notes,omitempty"`
	InternalNotes string              `json:"internal_notes,omitempty"`
	Items         []OrderItemResponse `json:"items"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
	Version       int                 `json:"version"`
}

// GetID returns the order ID so responses can live in a working set
func (r OrderResponse) GetID() uuid.UUID {
	return r.ID
}

// StatisticsResponse aggregates order counts in a single pass
type StatisticsResponse struct {
	Total         int64            `json:"total"`
	Active        int64            `json:"active"`
	ByStatus      map[string]int64 `json:"by_status"`
	TotalAmount   decimal.Decimal  `json:"total_amount"`
	ActiveAmount  decimal.Decimal  `json:"active_amount"`
	OldestPending *time.Time       `json:"oldest_pending,omitempty"`
}

// ToOrderResponse converts a domain order to a response DTO
func ToOrderResponse(o *order.Order) *OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ID:              item.ID,
			InventoryItemID: item.InventoryItemID,
			Name:            item.Name,
			Concentration:   item.Concentration,
			Form:            item.Form,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			LineTotal:       item.LineTotal(),
			Notes:           item.Notes,
		})
	}
	return &OrderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		CustomerName:  o.CustomerName,
		Phone:         o.Phone,
		SupplierID:    o.SupplierID,
		Status:        string(o.Status),
		TotalAmount:   o.TotalAmount,
		DepositPaid:   o.DepositPaid,
		Notes:         o.Notes,
		InternalNotes: o.InternalNotes,
		Items:         items,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
		Version:       o.Version,
	}
}

// ToOrderResponses converts a slice of domain orders
func ToOrderResponses(orders []order.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for idx := range orders {
		out = append(out, *ToOrderResponse(&orders[idx]))
	}
	return out
}

func toItemInputs(items []OrderItemRequest) []order.ItemInput {
	inputs := make([]order.ItemInput, 0, len(items))
	for _, item := range items {
		price := decimal.Zero
		if item.UnitPrice != nil {
			price = *item.UnitPrice
		}
		inputs = append(inputs, order.ItemInput{
			InventoryItemID: item.InventoryItemID,
			Name:            item.Name,
			Concentration:   item.Concentration,
			Form:            item.Form,
			Quantity:        item.Quantity,
			UnitPrice:       price,
			Notes:           item.Notes,
		})
	}
	return inputs
}
