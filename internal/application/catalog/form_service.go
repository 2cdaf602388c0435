package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/meditrack/backend/internal/domain/catalog"
	"github.com/meditrack/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// FormService manages the dosage form lookup table
type FormService struct {
	formRepo catalog.MedicineFormRepository
	logger   *zap.Logger
}

// NewFormService creates a new form service
func NewFormService(formRepo catalog.MedicineFormRepository, logger *zap.Logger) *FormService {
	return &FormService{
		formRepo: formRepo,
		logger:   logger,
	}
}

// List returns all dosage forms ordered by name. Inactive forms are
// skipped unless includeInactive is set.
func (s *FormService) List(ctx context.Context, includeInactive bool) ([]MedicineFormResponse, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = 0

	forms, err := s.formRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]MedicineFormResponse, 0, len(forms))
	for idx := range forms {
		if !includeInactive && !forms[idx].IsActive {
			continue
		}
		out = append(out, *ToMedicineFormResponse(&forms[idx]))
	}
	return out, nil
}

// Create adds a new dosage form. A form that already exists but was
// deactivated is reactivated instead of duplicated.
func (s *FormService) Create(ctx context.Context, name string) (*MedicineFormResponse, error) {
	existing, err := s.formRepo.FindByName(ctx, name)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		if existing.IsActive {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A form with this name already exists")
		}
		existing.IsActive = true
		existing.Touch()
		if err := s.formRepo.Save(ctx, existing); err != nil {
			return nil, err
		}
		return ToMedicineFormResponse(existing), nil
	}

	form, err := catalog.NewMedicineForm(name)
	if err != nil {
		return nil, err
	}
	if err := s.formRepo.Save(ctx, form); err != nil {
		return nil, err
	}

	s.logger.Info("medicine form created", zap.String("name", form.Name))
	return ToMedicineFormResponse(form), nil
}

// Deactivate hides a dosage form from the active list. Items already
// referencing it keep their form string.
func (s *FormService) Deactivate(ctx context.Context, id uuid.UUID) error {
	form, err := s.formRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !form.IsActive {
		return nil
	}
	form.IsActive = false
	form.Touch()
	return s.formRepo.Save(ctx, form)
}

// EnsureDefaults seeds the standard dosage forms on an empty table
func (s *FormService) EnsureDefaults(ctx context.Context) error {
	count, err := s.formRepo.Count(ctx, shared.DefaultFilter())
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, name := range catalog.DefaultMedicineForms() {
		form, err := catalog.NewMedicineForm(name)
		if err != nil {
			return err
		}
		if err := s.formRepo.Save(ctx, form); err != nil {
			return err
		}
	}

	s.logger.Info("seeded default medicine forms",
		zap.Int("count", len(catalog.DefaultMedicineForms())))
	return nil
}
