package order

import (
	"context"
	"time"

	"github.com/meditrack/backend/internal/domain/shared"
)

// Repository defines persistence operations for special orders
type Repository interface {
	shared.Repository[Order]

	// FindByOrderNumber finds an order by its unique order number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)

	// FindByStatus returns all orders in any of the given statuses
	FindByStatus(ctx context.Context, statuses ...Status) ([]Order, error)

	// FindActive returns orders in the pending, ordered or arrived statuses
	FindActive(ctx context.Context) ([]Order, error)

	// FindDeliveredBefore returns delivered orders last updated before the cutoff
	FindDeliveredBefore(ctx context.Context, cutoff time.Time) ([]Order, error)

	// CountByStatus returns the number of orders per status
	CountByStatus(ctx context.Context) (map[Status]int64, error)
}
