package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/meditrack/backend/internal/domain/catalog"
	"github.com/meditrack/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormMedicineFormRepository implements catalog.MedicineFormRepository using GORM
type GormMedicineFormRepository struct {
	db *gorm.DB
}

// NewGormMedicineFormRepository creates a new GormMedicineFormRepository
func NewGormMedicineFormRepository(db *gorm.DB) *GormMedicineFormRepository {
	return &GormMedicineFormRepository{db: db}
}

// FindByID finds a dosage form by its ID
func (r *GormMedicineFormRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.MedicineForm, error) {
	var form catalog.MedicineForm
	if err := r.db.WithContext(ctx).First(&form, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &form, nil
}

// FindByName finds a dosage form by its exact name
func (r *GormMedicineFormRepository) FindByName(ctx context.Context, name string) (*catalog.MedicineForm, error) {
	var form catalog.MedicineForm
	if err := r.db.WithContext(ctx).First(&form, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &form, nil
}

// FindAll finds all dosage forms, ordered by name
func (r *GormMedicineFormRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.MedicineForm, error) {
	var forms []catalog.MedicineForm
	query := r.db.WithContext(ctx).Model(&catalog.MedicineForm{}).Order("name ASC")

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Find(&forms).Error; err != nil {
		return nil, err
	}
	return forms, nil
}

// Save persists a dosage form
func (r *GormMedicineFormRepository) Save(ctx context.Context, form *catalog.MedicineForm) error {
	return r.db.WithContext(ctx).Save(form).Error
}

// Delete permanently removes a dosage form
func (r *GormMedicineFormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.MedicineForm{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts all dosage forms
func (r *GormMedicineFormRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&catalog.MedicineForm{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
