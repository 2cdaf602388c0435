package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/meditrack/backend/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// CreateSupplierRequest represents a request to create a supplier
type CreateSupplierRequest struct {
	Name            string           `json:"name" binding:"required,min=1,max=200"`
	Phone           string           `json:"phone" binding:"required,min=1,max=50"`
	Whatsapp        string           `json:"whatsapp" binding:"max=50"`
	Email           string           `json:"email" binding:"omitempty,email,max=200"`
	Address         string           `json:"address" binding:"max=500"`
	Medicines       string           `json:"medicines"`
	AvgDeliveryDays *int             `json:"avg_delivery_days" binding:"omitempty,min=0"`
	Rating          *decimal.Decimal `json:"rating"`
	Notes           string           `json:"notes"`
}

// UpdateSupplierRequest represents a partial supplier update
type UpdateSupplierRequest struct {
	Name            *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Phone           *string          `json:"phone" binding:"omitempty,min=1,max=50"`
	Whatsapp        *string          `json:"whatsapp" binding:"omitempty,max=50"`
	Email           *string          `json:"email" binding:"omitempty,email,max=200"`
	Address         *string          `json:"address" binding:"omitempty,max=500"`
	Medicines       *string          `json:"medicines"`
	AvgDeliveryDays *int             `json:"avg_delivery_days" binding:"omitempty,min=0"`
	Rating          *decimal.Decimal `json:"rating"`
	Notes           *string          `json:"notes"`
	IsActive        *bool            `json:"is_active"`
}

// RateSupplierRequest carries a new supplier rating
type RateSupplierRequest struct {
	Rating decimal.Decimal `json:"rating" binding:"required"`
}

// ListSuppliersQuery represents query parameters for listing suppliers
type ListSuppliersQuery struct {
	Search   string `form:"search"`
	Active   *bool  `form:"active"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID               uuid.UUID       `json:"id"`
	Name             string          `json:"name"`
	Phone            string          `json:"phone"`
	Whatsapp         string          `json:"whatsapp,omitempty"`
	Email            string          `json:"email,omitempty"`
	Address          string          `json:"address,omitempty"`
	Medicines        string          `json:"medicines,omitempty"`
	AvgDeliveryDays  int             `json:"avg_delivery_days"`
	Rating           decimal.Decimal `json:"rating"`
	TotalOrdersCount int             `json:"total_orders_count"`
	Notes            string          `json:"notes,omitempty"`
	IsActive         bool            `json:"is_active"`
	IsDeleted        bool            `json:"is_deleted"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	Version          int             `json:"version"`
}

// ToSupplierResponse converts a domain supplier to a response DTO
func ToSupplierResponse(s *partner.Supplier) *SupplierResponse {
	return &SupplierResponse{
		ID:               s.ID,
		Name:             s.Name,
		Phone:            s.Phone,
		Whatsapp:         s.Whatsapp,
		Email:            s.Email,
		Address:          s.Address,
		Medicines:        s.Medicines,
		AvgDeliveryDays:  s.AvgDeliveryDays,
		Rating:           s.Rating,
		TotalOrdersCount: s.TotalOrdersCount,
		Notes:            s.Notes,
		IsActive:         s.IsActive,
		IsDeleted:        s.IsDeleted(),
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
		Version:          s.Version,
	}
}

// ToSupplierResponses converts a slice of domain suppliers
func ToSupplierResponses(suppliers []partner.Supplier) []SupplierResponse {
	out := make([]SupplierResponse, 0, len(suppliers))
	for idx := range suppliers {
		out = append(out, *ToSupplierResponse(&suppliers[idx]))
	}
	return out
}
