package catalog

import (
	"strings"

	"github.com/meditrack/backend/internal/domain/shared"
)

// MedicineForm is a lookup value for dosage forms (tablet, syrup, ...)
type MedicineForm struct {
	shared.BaseEntity
	Name     string `gorm:"type:varchar(100);not null;uniqueIndex"`
	IsActive bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (MedicineForm) TableName() string {
	return "medicine_forms"
}

// NewMedicineForm creates a new dosage form lookup entry
func NewMedicineForm(name string) (*MedicineForm, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_FORM_NAME", "Form name cannot be empty")
	}
	return &MedicineForm{
		BaseEntity: shared.NewBaseEntity(),
		Name:       strings.TrimSpace(name),
		IsActive:   true,
	}, nil
}

// DefaultMedicineForms returns the forms seeded for a new installation
func DefaultMedicineForms() []string {
	return []string{
		"tablet",
		"capsule",
		"syrup",
		"suspension",
		"injection",
		"cream",
		"ointment",
		"drops",
		"inhaler",
		"suppository",
	}
}
