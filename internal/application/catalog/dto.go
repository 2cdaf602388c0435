package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/meditrack/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateInventoryItemRequest represents a request to create an inventory item
type CreateInventoryItemRequest struct {
	Name                 string           `json:"name" binding:"required,min=1,max=200"`
	GenericName          string           `json:"generic_name" binding:"max=200"`
	Concentration        string           `json:"concentration" binding:"max=100"`
	Form                 string           `json:"form" binding:"required,min=1,max=100"`
	ManufacturerID       *uuid.UUID       `json:"manufacturer_id"`
	SupplierID           *uuid.UUID       `json:"supplier_id"`
	Quantity             int              `json:"quantity" binding:"min=0"`
	MinStockLevel        int              `json:"min_stock_level" binding:"min=0"`
	UnitPrice            *decimal.Decimal `json:"unit_price"`
	CostPrice            *decimal.Decimal `json:"cost_price"`
	RequiresPrescription bool             `json:"requires_prescription"`
	IsControlled         bool             `json:"is_controlled"`
	StorageInstructions  string           `json:"storage_instructions"`
	Location             string           `json:"location" binding:"max=100"`
	Description          string           `json:"description"`
	Barcodes             []string         `json:"barcodes" binding:"omitempty,dive,min=1,max=100"`
}

// UpdateInventoryItemRequest represents a partial item update
type UpdateInventoryItemRequest struct {
	Name                 *string          `json:"name" binding:"omitempty,min=1,max=200"`
	GenericName          *string          `json:"generic_name" binding:"omitempty,max=200"`
	Concentration        *string          `json:"concentration" binding:"omitempty,max=100"`
	Form                 *string          `json:"form" binding:"omitempty,min=1,max=100"`
	ManufacturerID       *uuid.UUID       `json:"manufacturer_id"`
	SupplierID           *uuid.UUID       `json:"supplier_id"`
	MinStockLevel        *int             `json:"min_stock_level" binding:"omitempty,min=0"`
	UnitPrice            *decimal.Decimal `json:"unit_price"`
	CostPrice            *decimal.Decimal `json:"cost_price"`
	RequiresPrescription *bool            `json:"requires_prescription"`
	IsControlled         *bool            `json:"is_controlled"`
	StorageInstructions  *string          `json:"storage_instructions"`
	Location             *string          `json:"location" binding:"omitempty,max=100"`
	Description          *string          `json:"description"`
}

// UpdateStockRequest sets an absolute stock quantity
type UpdateStockRequest struct {
	Quantity int    `json:"quantity" binding:"min=0"`
	Reason   string `json:"reason"`
}

// AdjustStockRequest applies a signed stock delta
type AdjustStockRequest struct {
	Delta  int    `json:"delta" binding:"required"`
	Reason string `json:"reason"`
}

// BarcodeRequest carries a single barcode
type BarcodeRequest struct {
	Code string `json:"code" binding:"required,min=1,max=100"`
}

// ListInventoryQuery represents query parameters for listing items
type ListInventoryQuery struct {
	Search      string `form:"search"`
	StockStatus string `form:"stock_status" binding:"omitempty,oneof=in_stock low_stock out_of_stock"`
	Page        int    `form:"page" binding:"omitempty,min=1"`
	PageSize    int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// BarcodeResponse represents one barcode in API responses
type BarcodeResponse struct {
	Code      string `json:"code"`
	IsPrimary bool   `json:"is_primary"`
}

// InventoryItemResponse represents an inventory item in API responses
type InventoryItemResponse struct {
	ID                   uuid.UUID         `json:"id"`
	Name                 string            `json:"name"`
	GenericName          string            `json:"generic_name,omitempty"`
	Concentration        string            `json:"concentration,omitempty"`
	Form                 string            `json:"form"`
	ManufacturerID       *uuid.UUID        `json:"manufacturer_id,omitempty"`
	SupplierID           *uuid.UUID        `json:"supplier_id,omitempty"`
	Quantity             int               `json:"quantity"`
	MinStockLevel        int               `json:"min_stock_level"`
	StockStatus          string            `json:"stock_status"`
	UnitPrice            decimal.Decimal   `json:"unit_price"`
	CostPrice            decimal.Decimal   `json:"cost_price"`
	RequiresPrescription bool              `json:"requires_prescription"`
	IsControlled         bool              `json:"is_controlled"`
	StorageInstructions  string            `json:"storage_instructions,omitempty"`
	Location             string            `json:"location,omitempty"`
	Description          string            `json:"description,omitempty"`
	Barcodes             []BarcodeResponse `json:"barcodes"`
	IsActive             bool              `json:"is_active"`
	IsDeleted            bool              `json:"is_deleted"`
	LastRestockedAt      *time.Time        `json:"last_restocked_at,omitempty"`
	CreatedAt            time.Time         `json:"created_at"`
	UpdatedAt            time.Time         `json:"updated_at"`
}

// StockHistoryResponse represents a stock history entry in API responses
type StockHistoryResponse struct {
	ID               uuid.UUID `json:"id"`
	ItemID           uuid.UUID `json:"item_id"`
	AdjustmentType   string    `json:"adjustment_type"`
	QuantityBefore   int       `json:"quantity_before"`
	QuantityAfter    int       `json:"quantity_after"`
	AdjustmentAmount int       `json:"adjustment_amount"`
	Reason           string    `json:"reason,omitempty"`
	RecordedBy       string    `json:"recorded_by,omitempty"`
	RecordedAt       time.Time `json:"recorded_at"`
}

// PriceHistoryResponse represents a price history entry in API responses
type PriceHistoryResponse struct {
	ID          uuid.UUID       `json:"id"`
	ItemID      uuid.UUID       `json:"item_id"`
	PriceBefore decimal.Decimal `json:"price_before"`
	PriceAfter  decimal.Decimal `json:"price_after"`
	Reason      string          `json:"reason,omitempty"`
	RecordedAt  time.Time       `json:"recorded_at"`
}

// MedicineFormResponse represents a dosage form in API responses
type MedicineFormResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// InventoryStatisticsResponse aggregates inventory counts
type InventoryStatisticsResponse struct {
	TotalItems      int64           `json:"total_items"`
	LowStockItems   int64           `json:"low_stock_items"`
	OutOfStockItems int64           `json:"out_of_stock_items"`
	TotalStockValue decimal.Decimal `json:"total_stock_value"`
}

// CreateManufacturerRequest represents a request to create a manufacturer
type CreateManufacturerRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=200"`
	ShortName string `json:"short_name" binding:"max=50"`
	Country   string `json:"country" binding:"max=100"`
	Phone     string `json:"phone" binding:"max=50"`
	Email     string `json:"email" binding:"omitempty,email,max=200"`
	Website   string `json:"website" binding:"omitempty,url,max=200"`
	Notes     string `json:"notes"`
}

// UpdateManufacturerRequest represents a partial manufacturer update
type UpdateManufacturerRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=1,max=200"`
	ShortName *string `json:"short_name" binding:"omitempty,max=50"`
	Country   *string `json:"country" binding:"omitempty,max=100"`
	Phone     *string `json:"phone" binding:"omitempty,max=50"`
	Email     *string `json:"email" binding:"omitempty,email,max=200"`
	Website   *string `json:"website" binding:"omitempty,url,max=200"`
	Notes     *string `json:"notes"`
	IsActive  *bool   `json:"is_active"`
}

// ManufacturerResponse represents a manufacturer in API responses
type ManufacturerResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	ShortName string    `json:"short_name,omitempty"`
	Country   string    `json:"country,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Website   string    `json:"website,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToInventoryItemResponse converts a domain item to a response DTO
func ToInventoryItemResponse(item *catalog.InventoryItem) *InventoryItemResponse {
	barcodes := make([]BarcodeResponse, 0, len(item.Barcodes))
	for _, b := range item.Barcodes {
		barcodes = append(barcodes, BarcodeResponse{Code: b.Code, IsPrimary: b.IsPrimary})
	}
	return &InventoryItemResponse{
		ID:                   item.ID,
		Name:                 item.Name,
		GenericName:          item.GenericName,
		Concentration:        item.Concentration,
		Form:                 item.Form,
		ManufacturerID:       item.ManufacturerID,
		SupplierID:           item.SupplierID,
		Quantity:             item.Quantity,
		MinStockLevel:        item.MinStockLevel,
		StockStatus:          string(item.StockStatus()),
		UnitPrice:            item.UnitPrice,
		CostPrice:            item.CostPrice,
		RequiresPrescription: item.RequiresPrescription,
		IsControlled:         item.IsControlled,
		StorageInstructions:  item.StorageInstructions,
		Location:             item.Location,
		Description:          item.Description,
		Barcodes:             barcodes,
		IsActive:             item.IsActive,
		IsDeleted:            item.IsDeleted(),
		LastRestockedAt:      item.LastRestockedAt,
		CreatedAt:            item.CreatedAt,
		UpdatedAt:            item.UpdatedAt,
	}
}

// ToInventoryItemResponses converts a slice of domain items
func ToInventoryItemResponses(items []catalog.InventoryItem) []InventoryItemResponse {
	out := make([]InventoryItemResponse, 0, len(items))
	for idx := range items {
		out = append(out, *ToInventoryItemResponse(&items[idx]))
	}
	return out
}

// ToStockHistoryResponse converts a history entry to a response DTO
func ToStockHistoryResponse(h *catalog.StockHistory) *StockHistoryResponse {
	return &StockHistoryResponse{
		ID:               h.ID,
		ItemID:           h.ItemID,
		AdjustmentType:   string(h.AdjustmentType),
		QuantityBefore:   h.QuantityBefore,
		QuantityAfter:    h.QuantityAfter,
		AdjustmentAmount: h.AdjustmentAmount,
		Reason:           h.Reason,
		RecordedBy:       h.RecordedBy,
		RecordedAt:       h.RecordedAt,
	}
}

// ToPriceHistoryResponse converts a price history entry to a response DTO
func ToPriceHistoryResponse(h *catalog.PriceHistory) *PriceHistoryResponse {
	return &PriceHistoryResponse{
		ID:          h.ID,
		ItemID:      h.ItemID,
		PriceBefore: h.PriceBefore,
		PriceAfter:  h.PriceAfter,
		Reason:      h.Reason,
		RecordedAt:  h.RecordedAt,
	}
}

// ToMedicineFormResponse converts a domain form to a response DTO
func ToMedicineFormResponse(f *catalog.MedicineForm) *MedicineFormResponse {
	return &MedicineFormResponse{
		ID:        f.ID,
		Name:      f.Name,
		IsActive:  f.IsActive,
		CreatedAt: f.CreatedAt,
	}
}

// ToManufacturerResponse converts a domain manufacturer to a response DTO
func ToManufacturerResponse(m *catalog.Manufacturer) *ManufacturerResponse {
	return &ManufacturerResponse{
		ID:        m.ID,
		Name:      m.Name,
		ShortName: m.ShortName,
		Country:   m.Country,
		Phone:     m.Phone,
		Email:     m.Email,
		Website:   m.Website,
		Notes:     m.Notes,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ToManufacturerResponses converts a slice of domain manufacturers
func ToManufacturerResponses(manufacturers []catalog.Manufacturer) []ManufacturerResponse {
	out := make([]ManufacturerResponse, 0, len(manufacturers))
	for idx := range manufacturers {
		out = append(out, *ToManufacturerResponse(&manufacturers[idx]))
	}
	return out
}
