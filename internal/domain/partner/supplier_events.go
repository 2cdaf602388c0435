package partner

import "github.com/meditrack/backend/internal/domain/shared"

// Event types for the supplier aggregate
const (
	EventSupplierCreated = "supplier.created"
	EventSupplierDeleted = "supplier.deleted"
)

// SupplierCreatedEvent is raised when a new supplier is registered
type SupplierCreatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewSupplierCreatedEvent creates a new supplier created event
func NewSupplierCreatedEvent(s *Supplier) *SupplierCreatedEvent {
	return &SupplierCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventSupplierCreated, "Supplier", s.ID),
		Name:            s.Name,
	}
}
