package catalog

import (
	"strings"

	"github.com/meditrack/backend/internal/domain/shared"
)

// Manufacturer represents a pharmaceutical company producing medicines
type Manufacturer struct {
	shared.BaseAggregateRoot
	Name      string `gorm:"type:varchar(200);not null;uniqueIndex"`
	ShortName string `gorm:"type:varchar(50)"`
	Country   string `gorm:"type:varchar(100)"`
	Phone     string `gorm:"type:varchar(50)"`
	Email     string `gorm:"type:varchar(200)"`
	Website   string `gorm:"type:varchar(200)"`
	Notes     string `gorm:"type:text"`
	IsActive  bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Manufacturer) TableName() string {
	return "manufacturers"
}

// NewManufacturer creates a new manufacturer with a required unique name
func NewManufacturer(name string) (*Manufacturer, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_MANUFACTURER_NAME", "Manufacturer name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_MANUFACTURER_NAME", "Manufacturer name cannot exceed 200 characters")
	}

	return &Manufacturer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		IsActive:          true,
	}, nil
}

// Rename changes the manufacturer name
func (m *Manufacturer) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_MANUFACTURER_NAME", "Manufacturer name cannot be empty")
	}
	m.Name = strings.TrimSpace(name)
	m.Touch()
	m.IncrementVersion()
	return nil
}

// UpdateDetails updates the descriptive and contact fields
func (m *Manufacturer) UpdateDetails(shortName, country, phone, email, website, notes string) {
	m.ShortName = strings.TrimSpace(shortName)
	m.Country = strings.TrimSpace(country)
	m.Phone = strings.TrimSpace(phone)
	m.Email = strings.TrimSpace(email)
	m.Website = strings.TrimSpace(website)
	m.Notes = notes
	m.Touch()
	m.IncrementVersion()
}

// Activate marks the manufacturer as active
func (m *Manufacturer) Activate() {
	if m.IsActive {
		return
	}
	m.IsActive = true
	m.Touch()
	m.IncrementVersion()
}

// Deactivate marks the manufacturer as inactive
func (m *Manufacturer) Deactivate() {
	if !m.IsActive {
		return
	}
	m.IsActive = false
	m.Touch()
	m.IncrementVersion()
}
