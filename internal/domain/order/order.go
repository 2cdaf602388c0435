package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/meditrack/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle status of a special order
type Status string

const (
	StatusPending        Status = "pending"
	StatusOrdered        Status = "ordered"
	StatusArrived        Status = "arrived"
	StatusReadyForPickup Status = "ready_for_pickup"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
)

// AllStatuses returns every valid order status
func AllStatuses() []Status {
	return []Status{
		StatusPending,
		StatusOrdered,
		StatusArrived,
		StatusReadyForPickup,
		StatusDelivered,
		StatusCancelled,
	}
}

// IsValid reports whether the status is one of the known values
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusOrdered, StatusArrived, StatusReadyForPickup, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

// ActiveStatuses returns the statuses that count as "active" orders
// (awaiting some action from the pharmacy or the customer)
func ActiveStatuses() []Status {
	return []Status{StatusPending, StatusOrdered, StatusArrived}
}

// IsActive reports whether an order in this status is still in flight
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusOrdered || s == StatusArrived
}

// Item represents one requested medicine line on a special order
type Item struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	InventoryItemID *uuid.UUID      `gorm:"type:uuid"` // Set when the line references a catalog item
	Name            string          `gorm:"type:varchar(200);not null"`
	Concentration   string          `gorm:"type:varchar(100);not null"`
	Form            string          `gorm:"type:varchar(100);not null"`
	Quantity        int             `gorm:"not null"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Notes           string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "special_order_items"
}

// LineTotal returns quantity * unit price for this line
func (i Item) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order represents a special medicine order placed by a walk-in customer.
// It is the aggregate root for order operations; items are owned by the order.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber   string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerName  string          `gorm:"type:varchar(200);not null;index"`
	Phone         string          `gorm:"type:varchar(50);not null;index"`
	SupplierID    *uuid.UUID      `gorm:"type:uuid;index"`
	Status        Status          `gorm:"type:varchar(20);not null;default:'pending';index"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	DepositPaid   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Notes         string          `gorm:"type:text"`
	InternalNotes string          `gorm:"type:text"`

	Items []Item `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "special_orders"
}

// ItemInput carries the caller-supplied fields for one order line
type ItemInput struct {
	InventoryItemID *uuid.UUID
	Name            string
	Concentration   string
	Form            string
	Quantity        int
	UnitPrice       decimal.Decimal
	Notes           string
}

// NewOrder creates a new special order with at least one line item.
// Validation reports the first failing field, in declaration order.
func NewOrder(customerName, phone string, items []ItemInput, status Status) (*Order, error) {
	if strings.TrimSpace(customerName) == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if len(customerName) > 200 {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot exceed 200 characters")
	}
	if strings.TrimSpace(phone) == "" {
		return nil, shared.NewDomainError("INVALID_PHONE", "Phone number cannot be empty")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "Order must contain at least one item")
	}
	if status == "" {
		status = StatusPending
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown order status: %s", status))
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       generateOrderNumber(),
		CustomerName:      strings.TrimSpace(customerName),
		Phone:             strings.TrimSpace(phone),
		Status:            status,
		TotalAmount:       decimal.Zero,
		DepositPaid:       decimal.Zero,
		Items:             make([]Item, 0, len(items)),
	}

	for _, in := range items {
		if err := o.appendItem(in); err != nil {
			return nil, err
		}
	}
	o.recalculateTotal()

	o.AddDomainEvent(NewOrderCreatedEvent(o))

	return o, nil
}

// generateOrderNumber builds a human-readable unique order number
func generateOrderNumber() string {
	id := uuid.New()
	return fmt.Sprintf("SO-%s-%s", time.Now().Format("20060102"), strings.ToUpper(id.String()[:8]))
}

func validateItemInput(in ItemInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return shared.NewDomainError("INVALID_ITEM_NAME", "Item name cannot be empty")
	}
	if strings.TrimSpace(in.Concentration) == "" {
		return shared.NewDomainError("INVALID_ITEM_CONCENTRATION", "Item concentration cannot be empty")
	}
	if strings.TrimSpace(in.Form) == "" {
		return shared.NewDomainError("INVALID_ITEM_FORM", "Item form cannot be empty")
	}
	if in.Quantity <= 0 {
		return shared.NewDomainError("INVALID_ITEM_QUANTITY", "Item quantity must be a positive integer")
	}
	if in.UnitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_ITEM_PRICE", "Item unit price cannot be negative")
	}
	return nil
}

func (o *Order) appendItem(in ItemInput) error {
	if err := validateItemInput(in); err != nil {
		return err
	}
	o.Items = append(o.Items, Item{
		ID:              uuid.New(),
		OrderID:         o.ID,
		InventoryItemID: in.InventoryItemID,
		Name:            strings.TrimSpace(in.Name),
		Concentration:   strings.TrimSpace(in.Concentration),
		Form:            strings.TrimSpace(in.Form),
		Quantity:        in.Quantity,
		UnitPrice:       in.UnitPrice,
		Notes:           in.Notes,
	})
	return nil
}

func (o *Order) recalculateTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.LineTotal())
	}
	o.TotalAmount = total
}

// AddItem appends a new line item to the order
func (o *Order) AddItem(in ItemInput) error {
	if err := o.appendItem(in); err != nil {
		return err
	}
	o.recalculateTotal()
	o.Touch()
	o.IncrementVersion()
	return nil
}

// RemoveItem removes a line item; the last remaining item cannot be removed
func (o *Order) RemoveItem(itemID uuid.UUID) error {
	if len(o.Items) <= 1 {
		return shared.NewDomainError("LAST_ITEM", "Cannot remove the last item from an order")
	}
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
			o.recalculateTotal()
			o.Touch()
			o.IncrementVersion()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}

// ReplaceItems swaps the full item list; the new list must be non-empty
func (o *Order) ReplaceItems(items []ItemInput) error {
	if len(items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Order must contain at least one item")
	}
	for _, in := range items {
		if err := validateItemInput(in); err != nil {
			return err
		}
	}
	o.Items = o.Items[:0]
	for _, in := range items {
		// Already validated above, appendItem cannot fail here
		_ = o.appendItem(in)
	}
	o.recalculateTotal()
	o.Touch()
	o.IncrementVersion()
	return nil
}

// UpdateCustomer updates the customer contact fields
func (o *Order) UpdateCustomer(customerName, phone string) error {
	if strings.TrimSpace(customerName) == "" {
		return shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if strings.TrimSpace(phone) == "" {
		return shared.NewDomainError("INVALID_PHONE", "Phone number cannot be empty")
	}
	o.CustomerName = strings.TrimSpace(customerName)
	o.Phone = strings.TrimSpace(phone)
	o.Touch()
	o.IncrementVersion()
	return nil
}

// ChangeStatus moves the order to a new status. Transitions are not
// constrained: any status may move to any other status.
func (o *Order) ChangeStatus(status Status) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown order status: %s", status))
	}
	if status == o.Status {
		return nil
	}

	oldStatus := o.Status
	o.Status = status
	o.Touch()
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, oldStatus, status))

	return nil
}

// SetSupplier associates the order with a supplier
func (o *Order) SetSupplier(supplierID *uuid.UUID) {
	o.SupplierID = supplierID
	o.Touch()
	o.IncrementVersion()
}

// SetNotes sets the customer-visible notes
func (o *Order) SetNotes(notes string) {
	o.Notes = notes
	o.Touch()
	o.IncrementVersion()
}

// SetDeposit records the deposit paid by the customer
func (o *Order) SetDeposit(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Deposit cannot be negative")
	}
	o.DepositPaid = amount
	o.Touch()
	o.IncrementVersion()
	return nil
}

// AppendInternalNote adds a line to the internal notes, preserving history
func (o *Order) AppendInternalNote(note string) {
	if note == "" {
		return
	}
	if o.InternalNotes == "" {
		o.InternalNotes = note
	} else {
		o.InternalNotes = o.InternalNotes + "\n" + note
	}
	o.Touch()
	o.IncrementVersion()
}

// AgeSince returns full days elapsed between the last update and now
func (o *Order) AgeSince(now time.Time) int {
	return int(now.Sub(o.UpdatedAt).Hours() / 24)
}

// MatchesSearch reports whether the order matches a free-text search term.
// Customer name and item names match case-insensitively; the phone number
// matches by raw substring with no normalization.
func (o *Order) MatchesSearch(term string) bool {
	lower := strings.ToLower(term)
	if strings.Contains(strings.ToLower(o.CustomerName), lower) {
		return true
	}
	if strings.Contains(o.Phone, term) {
		return true
	}
	for _, item := range o.Items {
		if strings.Contains(strings.ToLower(item.Name), lower) {
			return true
		}
	}
	return false
}
