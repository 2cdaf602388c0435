package partner

import (
	"strings"
	"time"

	"github.com/meditrack/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Supplier represents a medicine supplier the pharmacy orders from
type Supplier struct {
	shared.BaseAggregateRoot
	Name             string          `gorm:"type:varchar(200);not null;uniqueIndex"`
	Phone            string          `gorm:"type:varchar(50);not null"`
	Whatsapp         string          `gorm:"type:varchar(50)"`
	Email            string          `gorm:"type:varchar(200)"`
	Address          string          `gorm:"type:text"`
	Medicines        string          `gorm:"type:text"` // Comma-separated list of carried medicines
	AvgDeliveryDays  int             `gorm:"not null;default:0"`
	Rating           decimal.Decimal `gorm:"type:decimal(3,2);not null;default:0"`
	TotalOrdersCount int             `gorm:"not null;default:0"`
	Notes            string          `gorm:"type:text"`
	IsActive         bool            `gorm:"not null;default:true"`
	DeletedAt        gorm.DeletedAt  `gorm:"index"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier with a required name and phone
func NewSupplier(name, phone string) (*Supplier, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER_NAME", "Supplier name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_SUPPLIER_NAME", "Supplier name cannot exceed 200 characters")
	}
	if strings.TrimSpace(phone) == "" {
		return nil, shared.NewDomainError("INVALID_PHONE", "Supplier phone cannot be empty")
	}

	s := &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Phone:             strings.TrimSpace(phone),
		Rating:            decimal.Zero,
		IsActive:          true,
	}

	s.AddDomainEvent(NewSupplierCreatedEvent(s))

	return s, nil
}

// UpdateContact updates the supplier contact information
func (s *Supplier) UpdateContact(phone, whatsapp, email, address string) error {
	if strings.TrimSpace(phone) == "" {
		return shared.NewDomainError("INVALID_PHONE", "Supplier phone cannot be empty")
	}
	s.Phone = strings.TrimSpace(phone)
	s.Whatsapp = strings.TrimSpace(whatsapp)
	s.Email = strings.TrimSpace(email)
	s.Address = strings.TrimSpace(address)
	s.Touch()
	s.IncrementVersion()
	return nil
}

// Rename changes the supplier name
func (s *Supplier) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_SUPPLIER_NAME", "Supplier name cannot be empty")
	}
	s.Name = strings.TrimSpace(name)
	s.Touch()
	s.IncrementVersion()
	return nil
}

// SetMedicines replaces the list of medicines the supplier carries
func (s *Supplier) SetMedicines(medicines string) {
	s.Medicines = strings.TrimSpace(medicines)
	s.Touch()
	s.IncrementVersion()
}

// SetAvgDeliveryDays records the typical delivery lead time
func (s *Supplier) SetAvgDeliveryDays(days int) error {
	if days < 0 {
		return shared.NewDomainError("INVALID_DELIVERY_DAYS", "Average delivery days cannot be negative")
	}
	s.AvgDeliveryDays = days
	s.Touch()
	s.IncrementVersion()
	return nil
}

// SetRating sets the supplier rating between 0 and 5
func (s *Supplier) SetRating(rating decimal.Decimal) error {
	if rating.IsNegative() || rating.GreaterThan(decimal.NewFromInt(5)) {
		return shared.NewDomainError("INVALID_RATING", "Rating must be between 0 and 5")
	}
	s.Rating = rating
	s.Touch()
	s.IncrementVersion()
	return nil
}

// SetNotes updates free-form notes about the supplier
func (s *Supplier) SetNotes(notes string) {
	s.Notes = notes
	s.Touch()
	s.IncrementVersion()
}

// RecordOrder increments the counter of orders placed with this supplier
func (s *Supplier) RecordOrder() {
	s.TotalOrdersCount++
	s.Touch()
	s.IncrementVersion()
}

// Activate marks the supplier as active
func (s *Supplier) Activate() {
	if s.IsActive {
		return
	}
	s.IsActive = true
	s.Touch()
	s.IncrementVersion()
}

// Deactivate marks the supplier as inactive without deleting it
func (s *Supplier) Deactivate() {
	if !s.IsActive {
		return
	}
	s.IsActive = false
	s.Touch()
	s.IncrementVersion()
}

// IsDeleted reports whether the supplier has been soft-deleted
func (s *Supplier) IsDeleted() bool {
	return s.DeletedAt.Valid
}

// MarkDeleted soft-deletes the supplier
func (s *Supplier) MarkDeleted() {
	s.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	s.Touch()
	s.IncrementVersion()
}

// Restore clears the soft-delete marker
func (s *Supplier) Restore() {
	s.DeletedAt = gorm.DeletedAt{}
	s.Touch()
	s.IncrementVersion()
}
