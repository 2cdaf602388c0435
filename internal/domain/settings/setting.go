package settings

import (
	"github.com/meditrack/backend/internal/domain/shared"
)

// Setting stores one user override of a setting definition. Keys without
// a stored override fall back to the definition default.
type Setting struct {
	shared.BaseEntity
	Key       string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Value     string `gorm:"type:text;not null"`
	Category  string `gorm:"type:varchar(50);not null;index"`
	UpdatedBy string `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (Setting) TableName() string {
	return "settings"
}

// NewSetting creates an override for a known key; the value is validated
// against the definition before the override is created.
func NewSetting(key, value string) (*Setting, error) {
	def, err := Lookup(key)
	if err != nil {
		return nil, err
	}
	if err := def.Validate(value); err != nil {
		return nil, err
	}
	return &Setting{
		BaseEntity: shared.NewBaseEntity(),
		Key:        key,
		Value:      value,
		Category:   def.Category,
	}, nil
}

// UpdateValue replaces the override value after validating it
func (s *Setting) UpdateValue(value string) error {
	def, err := Lookup(s.Key)
	if err != nil {
		return err
	}
	if err := def.Validate(value); err != nil {
		return err
	}
	s.Value = value
	s.Touch()
	return nil
}

// SetUpdatedBy records who last changed the setting
func (s *Setting) SetUpdatedBy(user string) {
	s.UpdatedBy = user
}

// EffectiveValue resolves the value for a key: the override when one
// exists, the definition default otherwise.
func EffectiveValue(key string, override *Setting) (string, error) {
	def, err := Lookup(key)
	if err != nil {
		return "", err
	}
	if override != nil {
		return override.Value, nil
	}
	return def.Default, nil
}
