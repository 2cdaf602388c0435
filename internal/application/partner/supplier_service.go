package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/meditrack/backend/internal/domain/partner"
	"github.com/meditrack/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SupplierService handles supplier business operations
type SupplierService struct {
	supplierRepo partner.SupplierRepository
	logger       *zap.Logger
}

// NewSupplierService creates a new supplier service
func NewSupplierService(supplierRepo partner.SupplierRepository, logger *zap.Logger) *SupplierService {
	return &SupplierService{
		supplierRepo: supplierRepo,
		logger:       logger,
	}
}

// Create creates a new supplier; names must be unique among non-deleted
// suppliers.
func (s *SupplierService) Create(ctx context.Context, req CreateSupplierRequest) (*SupplierResponse, error) {
	exists, err := s.supplierRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Supplier with this name already exists")
	}

	supplier, err := partner.NewSupplier(req.Name, req.Phone)
	if err != nil {
		return nil, err
	}

	if req.Whatsapp != "" || req.Email != "" || req.Address != "" {
		if err := supplier.UpdateContact(req.Phone, req.Whatsapp, req.Email, req.Address); err != nil {
			return nil, err
		}
	}
	if req.Medicines != "" {
		supplier.SetMedicines(req.Medicines)
	}
	if req.AvgDeliveryDays != nil {
		if err := supplier.SetAvgDeliveryDays(*req.AvgDeliveryDays); err != nil {
			return nil, err
		}
	}
	if req.Rating != nil {
		if err := supplier.SetRating(*req.Rating); err != nil {
			return nil, err
		}
	}
	if req.Notes != "" {
		supplier.SetNotes(req.Notes)
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	s.logger.Info("supplier created",
		zap.String("supplier_id", supplier.ID.String()),
		zap.String("name", supplier.Name))

	return ToSupplierResponse(supplier), nil
}

// Get returns a supplier by ID
func (s *SupplierService) Get(ctx context.Context, id uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToSupplierResponse(supplier), nil
}

// List returns suppliers matching the query
func (s *SupplierService) List(ctx context.Context, query ListSuppliersQuery) (*shared.Paginated[SupplierResponse], error) {
	filter := shared.DefaultFilter()
	filter.OrderBy = "name"
	filter.OrderDir = "asc"
	if query.Page > 0 {
		filter.Page = query.Page
	}
	if query.PageSize > 0 {
		filter.PageSize = query.PageSize
	}
	if query.Search != "" {
		filter.Search = query.Search
	}
	if query.Active != nil {
		filter.Filters["is_active"] = *query.Active
	}

	suppliers, err := s.supplierRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.supplierRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToSupplierResponses(suppliers), total, filter.Page, filter.PageSize)
	return &result, nil
}

// Update applies a partial update to a supplier
func (s *SupplierService) Update(ctx context.Context, id uuid.UUID, req UpdateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != supplier.Name {
		exists, err := s.supplierRepo.ExistsByName(ctx, *req.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Supplier with this name already exists")
		}
		if err := supplier.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Phone != nil || req.Whatsapp != nil || req.Email != nil || req.Address != nil {
		phone := supplier.Phone
		whatsapp := supplier.Whatsapp
		email := supplier.Email
		address := supplier.Address
		if req.Phone != nil {
			phone = *req.Phone
		}
		if req.Whatsapp != nil {
			whatsapp = *req.Whatsapp
		}
		if req.Email != nil {
			email = *req.Email
		}
		if req.Address != nil {
			address = *req.Address
		}
		if err := supplier.UpdateContact(phone, whatsapp, email, address); err != nil {
			return nil, err
		}
	}
	if req.Medicines != nil {
		supplier.SetMedicines(*req.Medicines)
	}
	if req.AvgDeliveryDays != nil {
		if err := supplier.SetAvgDeliveryDays(*req.AvgDeliveryDays); err != nil {
			return nil, err
		}
	}
	if req.Rating != nil {
		if err := supplier.SetRating(*req.Rating); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		supplier.SetNotes(*req.Notes)
	}
	if req.IsActive != nil {
		if *req.IsActive {
			supplier.Activate()
		} else {
			supplier.Deactivate()
		}
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	return ToSupplierResponse(supplier), nil
}

// Rate sets the supplier rating
func (s *SupplierService) Rate(ctx context.Context, id uuid.UUID, rating decimal.Decimal) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := supplier.SetRating(rating); err != nil {
		return nil, err
	}
	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	return ToSupplierResponse(supplier), nil
}

// Delete soft-deletes a supplier
func (s *SupplierService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.supplierRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.supplierRepo.Delete(ctx, id)
}

// Restore brings back a soft-deleted supplier
func (s *SupplierService) Restore(ctx context.Context, id uuid.UUID) error {
	return s.supplierRepo.Restore(ctx, id)
}

// Purge permanently removes a supplier
func (s *SupplierService) Purge(ctx context.Context, id uuid.UUID) error {
	if err := s.supplierRepo.Purge(ctx, id); err != nil {
		return err
	}
	s.logger.Info("supplier purged", zap.String("supplier_id", id.String()))
	return nil
}

// RecordOrder increments the supplier's placed-order counter
func (s *SupplierService) RecordOrder(ctx context.Context, id uuid.UUID) error {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	supplier.RecordOrder()
	return s.supplierRepo.Save(ctx, supplier)
}
