package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/meditrack/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StockStatus is a derived classification of an item's stock level
type StockStatus string

const (
	StockStatusInStock    StockStatus = "in_stock"
	StockStatusLowStock   StockStatus = "low_stock"
	StockStatusOutOfStock StockStatus = "out_of_stock"
)

// Barcode represents one scannable code attached to an inventory item
type Barcode struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ItemID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Code      string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	IsPrimary bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (Barcode) TableName() string {
	return "inventory_barcodes"
}

// InventoryItem represents a medicine kept in the pharmacy's own stock
type InventoryItem struct {
	shared.BaseAggregateRoot
	Name                 string          `gorm:"type:varchar(200);not null;index"`
	GenericName          string          `gorm:"type:varchar(200)"`
	Concentration        string          `gorm:"type:varchar(100)"`
	Form                 string          `gorm:"type:varchar(100);not null"`
	ManufacturerID       *uuid.UUID      `gorm:"type:uuid;index"`
	SupplierID           *uuid.UUID      `gorm:"type:uuid;index"`
	Quantity             int             `gorm:"not null;default:0"`
	MinStockLevel        int             `gorm:"not null;default:0"`
	UnitPrice            decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	CostPrice            decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	RequiresPrescription bool            `gorm:"not null;default:false"`
	IsControlled         bool            `gorm:"not null;default:false"`
	StorageInstructions  string          `gorm:"type:text"`
	Location             string          `gorm:"type:varchar(100)"`
	Description          string          `gorm:"type:text"`
	IsActive             bool            `gorm:"not null;default:true"`
	LastRestockedAt      *time.Time
	DeletedAt            gorm.DeletedAt `gorm:"index"`

	Barcodes []Barcode `gorm:"foreignKey:ItemID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// NewInventoryItem creates a new inventory item
func NewInventoryItem(name, form string, quantity, minStockLevel int) (*InventoryItem, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_ITEM_NAME", "Item name cannot be empty")
	}
	if strings.TrimSpace(form) == "" {
		return nil, shared.NewDomainError("INVALID_ITEM_FORM", "Item form cannot be empty")
	}
	if quantity < 0 {
		return nil, shared.ErrNegativeStock
	}
	if minStockLevel < 0 {
		return nil, shared.NewDomainError("INVALID_MIN_STOCK", "Minimum stock level cannot be negative")
	}

	item := &InventoryItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Form:              strings.TrimSpace(form),
		Quantity:          quantity,
		MinStockLevel:     minStockLevel,
		UnitPrice:         decimal.Zero,
		CostPrice:         decimal.Zero,
		IsActive:          true,
	}
	if quantity > 0 {
		now := time.Now()
		item.LastRestockedAt = &now
	}

	item.AddDomainEvent(NewInventoryItemCreatedEvent(item))

	return item, nil
}

// StockStatus derives the stock classification from quantity and threshold.
// Zero quantity is out of stock even when the minimum level is also zero.
func (i *InventoryItem) StockStatus() StockStatus {
	switch {
	case i.Quantity == 0:
		return StockStatusOutOfStock
	case i.Quantity <= i.MinStockLevel:
		return StockStatusLowStock
	default:
		return StockStatusInStock
	}
}

// IsLowStock reports whether the item is at or below its minimum level
func (i *InventoryItem) IsLowStock() bool {
	return i.Quantity > 0 && i.Quantity <= i.MinStockLevel
}

// UpdateStock sets the quantity to an absolute value
func (i *InventoryItem) UpdateStock(quantity int) error {
	if quantity < 0 {
		return shared.ErrNegativeStock
	}
	i.Quantity = quantity
	if quantity > 0 {
		now := time.Now()
		i.LastRestockedAt = &now
	}
	i.Touch()
	i.IncrementVersion()
	return nil
}

// AdjustStock applies a signed delta; the result may not go negative
func (i *InventoryItem) AdjustStock(delta int) error {
	result := i.Quantity + delta
	if result < 0 {
		return shared.ErrNegativeStock
	}
	i.Quantity = result
	if delta > 0 {
		now := time.Now()
		i.LastRestockedAt = &now
	}
	i.Touch()
	i.IncrementVersion()
	return nil
}

// SetPricing updates unit and cost prices
func (i *InventoryItem) SetPricing(unitPrice, costPrice decimal.Decimal) error {
	if unitPrice.IsNegative() || costPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Prices cannot be negative")
	}
	i.UnitPrice = unitPrice
	i.CostPrice = costPrice
	i.Touch()
	i.IncrementVersion()
	return nil
}

// SetMinStockLevel updates the low-stock threshold
func (i *InventoryItem) SetMinStockLevel(level int) error {
	if level < 0 {
		return shared.NewDomainError("INVALID_MIN_STOCK", "Minimum stock level cannot be negative")
	}
	i.MinStockLevel = level
	i.Touch()
	i.IncrementVersion()
	return nil
}

// ItemDetails carries the descriptive fields of an item for bulk updates
type ItemDetails struct {
	Name                string
	GenericName         string
	Concentration       string
	Form                string
	Location            string
	Description         string
	StorageInstructions string
}

// UpdateDetails updates the descriptive fields of the item
func (i *InventoryItem) UpdateDetails(d ItemDetails) error {
	if strings.TrimSpace(d.Name) == "" {
		return shared.NewDomainError("INVALID_ITEM_NAME", "Item name cannot be empty")
	}
	if strings.TrimSpace(d.Form) == "" {
		return shared.NewDomainError("INVALID_ITEM_FORM", "Item form cannot be empty")
	}
	i.Name = strings.TrimSpace(d.Name)
	i.GenericName = strings.TrimSpace(d.GenericName)
	i.Concentration = strings.TrimSpace(d.Concentration)
	i.Form = strings.TrimSpace(d.Form)
	i.Location = strings.TrimSpace(d.Location)
	i.Description = d.Description
	i.StorageInstructions = d.StorageInstructions
	i.Touch()
	i.IncrementVersion()
	return nil
}

// SetRegulatoryFlags marks the item as prescription-only or controlled
func (i *InventoryItem) SetRegulatoryFlags(requiresPrescription, isControlled bool) {
	i.RequiresPrescription = requiresPrescription
	i.IsControlled = isControlled
	i.Touch()
	i.IncrementVersion()
}

// AddBarcode attaches a new barcode; duplicate codes on the item are rejected.
// The first barcode on an item automatically becomes the primary one.
func (i *InventoryItem) AddBarcode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return shared.NewDomainError("INVALID_BARCODE", "Barcode cannot be empty")
	}
	for _, b := range i.Barcodes {
		if b.Code == code {
			return shared.NewDomainError("DUPLICATE_BARCODE", "Barcode already attached to this item")
		}
	}
	i.Barcodes = append(i.Barcodes, Barcode{
		ID:        uuid.New(),
		ItemID:    i.ID,
		Code:      code,
		IsPrimary: len(i.Barcodes) == 0,
		CreatedAt: time.Now(),
	})
	i.Touch()
	i.IncrementVersion()
	return nil
}

// RemoveBarcode detaches a barcode; the last remaining barcode cannot be
// removed. Removing the primary barcode promotes the first remaining one.
func (i *InventoryItem) RemoveBarcode(code string) error {
	if len(i.Barcodes) <= 1 {
		return shared.NewDomainError("LAST_BARCODE", "Cannot remove the last barcode from an item")
	}
	for idx := range i.Barcodes {
		if i.Barcodes[idx].Code == code {
			wasPrimary := i.Barcodes[idx].IsPrimary
			i.Barcodes = append(i.Barcodes[:idx], i.Barcodes[idx+1:]...)
			if wasPrimary && len(i.Barcodes) > 0 {
				i.Barcodes[0].IsPrimary = true
			}
			i.Touch()
			i.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("BARCODE_NOT_FOUND", "Barcode not attached to this item")
}

// SetPrimaryBarcode marks one barcode as primary and demotes the others
func (i *InventoryItem) SetPrimaryBarcode(code string) error {
	found := false
	for idx := range i.Barcodes {
		if i.Barcodes[idx].Code == code {
			found = true
			break
		}
	}
	if !found {
		return shared.NewDomainError("BARCODE_NOT_FOUND", "Barcode not attached to this item")
	}
	for idx := range i.Barcodes {
		i.Barcodes[idx].IsPrimary = i.Barcodes[idx].Code == code
	}
	i.Touch()
	i.IncrementVersion()
	return nil
}

// PrimaryBarcode returns the primary barcode, or nil when the item has none
func (i *InventoryItem) PrimaryBarcode() *Barcode {
	for idx := range i.Barcodes {
		if i.Barcodes[idx].IsPrimary {
			return &i.Barcodes[idx]
		}
	}
	return nil
}

// SetManufacturer associates the item with a manufacturer
func (i *InventoryItem) SetManufacturer(manufacturerID *uuid.UUID) {
	i.ManufacturerID = manufacturerID
	i.Touch()
	i.IncrementVersion()
}

// SetSupplier associates the item with a preferred supplier
func (i *InventoryItem) SetSupplier(supplierID *uuid.UUID) {
	i.SupplierID = supplierID
	i.Touch()
	i.IncrementVersion()
}

// IsDeleted reports whether the item has been soft-deleted
func (i *InventoryItem) IsDeleted() bool {
	return i.DeletedAt.Valid
}

// MarkDeleted soft-deletes the item
func (i *InventoryItem) MarkDeleted() {
	i.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	i.Touch()
	i.IncrementVersion()
}

// Restore clears the soft-delete marker
func (i *InventoryItem) Restore() {
	i.DeletedAt = gorm.DeletedAt{}
	i.Touch()
	i.IncrementVersion()
}
