package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/meditrack/backend/internal/domain/catalog"
	"github.com/meditrack/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ManufacturerService handles manufacturer business operations
type ManufacturerService struct {
	manufacturerRepo catalog.ManufacturerRepository
	logger           *zap.Logger
}

// NewManufacturerService creates a new manufacturer service
func NewManufacturerService(manufacturerRepo catalog.ManufacturerRepository, logger *zap.Logger) *ManufacturerService {
	return &ManufacturerService{
		manufacturerRepo: manufacturerRepo,
		logger:           logger,
	}
}

// Create creates a new manufacturer with a unique name
func (s *ManufacturerService) Create(ctx context.Context, req CreateManufacturerRequest) (*ManufacturerResponse, error) {
	exists, err := s.manufacturerRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Manufacturer with this name already exists")
	}

	m, err := catalog.NewManufacturer(req.Name)
	if err != nil {
		return nil, err
	}
	if req.ShortName != "" || req.Country != "" || req.Phone != "" || req.Email != "" || req.Website != "" || req.Notes != "" {
		m.UpdateDetails(req.ShortName, req.Country, req.Phone, req.Email, req.Website, req.Notes)
	}

	if err := s.manufacturerRepo.Save(ctx, m); err != nil {
		return nil, err
	}

	s.logger.Info("manufacturer created",
		zap.String("manufacturer_id", m.ID.String()),
		zap.String("name", m.Name))

	return ToManufacturerResponse(m), nil
}

// Get returns a manufacturer by ID
func (s *ManufacturerService) Get(ctx context.Context, id uuid.UUID) (*ManufacturerResponse, error) {
	m, err := s.manufacturerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToManufacturerResponse(m), nil
}

// List returns manufacturers with pagination. A nil active returns both
// active and deactivated manufacturers.
func (s *ManufacturerService) List(ctx context.Context, page, pageSize int, search string, active *bool) (*shared.Paginated[ManufacturerResponse], error) {
	filter := shared.DefaultFilter()
	filter.OrderBy = "name"
	filter.OrderDir = "asc"
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}
	filter.Search = search
	if active != nil {
		filter.Filters["is_active"] = *active
	}

	manufacturers, err := s.manufacturerRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.manufacturerRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToManufacturerResponses(manufacturers), total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update applies a partial update to a manufacturer
func (s *ManufacturerService) Update(ctx context.Context, id uuid.UUID, req UpdateManufacturerRequest) (*ManufacturerResponse, error) {
	m, err := s.manufacturerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != m.Name {
		exists, err := s.manufacturerRepo.ExistsByName(ctx, *req.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Manufacturer with this name already exists")
		}
		if err := m.Rename(*req.Name); err != nil {
			return nil, err
		}
	}

	shortName := m.ShortName
	country := m.Country
	phone := m.Phone
	email := m.Email
	website := m.Website
	notes := m.Notes
	changed := false
	if req.ShortName != nil {
		shortName = *req.ShortName
		changed = true
	}
	if req.Country != nil {
		country = *req.Country
		changed = true
	}
	if req.Phone != nil {
		phone = *req.Phone
		changed = true
	}
	if req.Email != nil {
		email = *req.Email
		changed = true
	}
	if req.Website != nil {
		website = *req.Website
		changed = true
	}
	if req.Notes != nil {
		notes = *req.Notes
		changed = true
	}
	if changed {
		m.UpdateDetails(shortName, country, phone, email, website, notes)
	}
	if req.IsActive != nil {
		if *req.IsActive {
			m.Activate()
		} else {
			m.Deactivate()
		}
	}

	if err := s.manufacturerRepo.Save(ctx, m); err != nil {
		return nil, err
	}

	return ToManufacturerResponse(m), nil
}

// Delete deactivates a manufacturer, hiding it from pickers. Inventory
// items referencing it keep their manufacturer name.
func (s *ManufacturerService) Delete(ctx context.Context, id uuid.UUID) error {
	m, err := s.manufacturerRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	m.Deactivate()
	return s.manufacturerRepo.Save(ctx, m)
}

// Restore reactivates a previously deactivated manufacturer
func (s *ManufacturerService) Restore(ctx context.Context, id uuid.UUID) error {
	m, err := s.manufacturerRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	m.Activate()
	return s.manufacturerRepo.Save(ctx, m)
}

// Purge permanently removes a manufacturer
func (s *ManufacturerService) Purge(ctx context.Context, id uuid.UUID) error {
	if err := s.manufacturerRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("manufacturer purged", zap.String("manufacturer_id", id.String()))
	return nil
}
