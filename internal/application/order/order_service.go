package order

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/meditrack/backend/internal/domain/order"
	"github.com/meditrack/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// MinSearchTermLength is the shortest free-text term that filters;
// shorter terms return the unfiltered set.
const MinSearchTermLength = 2

// StatusDefaults resolves the configured default status for new orders
type StatusDefaults interface {
	DefaultOrderStatus(ctx context.Context) order.Status
}

// Service handles special order business operations
type Service struct {
	orderRepo order.Repository
	defaults  StatusDefaults
	events    shared.EventPublisher
	logger    *zap.Logger
}

// NewService creates a new order service
func NewService(orderRepo order.Repository, defaults StatusDefaults, events shared.EventPublisher, logger *zap.Logger) *Service {
	return &Service{
		orderRepo: orderRepo,
		defaults:  defaults,
		events:    events,
		logger:    logger,
	}
}

// Create creates a new special order. When the request carries no status
// the configured default order status is applied.
func (s *Service) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	status := order.Status(req.Status)
	if status == "" && s.defaults != nil {
		status = s.defaults.DefaultOrderStatus(ctx)
	}

	o, err := order.NewOrder(req.CustomerName, req.Phone, toItemInputs(req.Items), status)
	if err != nil {
		return nil, err
	}

	if req.SupplierID != nil {
		o.SetSupplier(req.SupplierID)
	}
	if req.Notes != "" {
		o.SetNotes(req.Notes)
	}
	if req.DepositPaid != nil {
		if err := o.SetDeposit(*req.DepositPaid); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, o)

	s.logger.Info("special order created",
		zap.String("order_id", o.ID.String()),
		zap.String("order_number", o.OrderNumber),
		zap.String("status", string(o.Status)))

	return ToOrderResponse(o), nil
}

// Get returns an order by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(o), nil
}

// GetByNumber returns an order by its order number
func (s *Service) GetByNumber(ctx context.Context, orderNumber string) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	return ToOrderResponse(o), nil
}

// List returns orders matching the query. A status of "active" expands
// to the pending, ordered and arrived statuses.
func (s *Service) List(ctx context.Context, query ListOrdersQuery) (*shared.Paginated[OrderResponse], error) {
	filter := shared.DefaultFilter()
	if query.Page > 0 {
		filter.Page = query.Page
	}
	if query.PageSize > 0 {
		filter.PageSize = query.PageSize
	}
	if query.Status != "" && query.Status != "active" {
		filter.Filters["status"] = query.Status
	}
	if query.Status == "active" {
		filter.Filters["status_in"] = order.ActiveStatuses()
	}
	if term := strings.TrimSpace(query.Search); len([]rune(term)) >= MinSearchTermLength {
		filter.Search = term
	}

	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToOrderResponses(orders), total, filter.Page, filter.PageSize)
	return &result, nil
}

// Search returns orders matching a free-text term across customer name,
// phone and item names. Terms shorter than two characters apply no
// filter and return the unfiltered set.
func (s *Service) Search(ctx context.Context, term string) ([]OrderResponse, error) {
	term = strings.TrimSpace(term)

	filter := shared.DefaultFilter()
	filter.PageSize = 100
	if len([]rune(term)) >= MinSearchTermLength {
		filter.Search = term
	}

	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToOrderResponses(orders), nil
}

// Active returns all orders in the pending, ordered or arrived statuses
func (s *Service) Active(ctx context.Context) ([]OrderResponse, error) {
	orders, err := s.orderRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	return ToOrderResponses(orders), nil
}

// Update applies a partial update to an order
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CustomerName != nil || req.Phone != nil {
		name := o.CustomerName
		phone := o.Phone
		if req.CustomerName != nil {
			name = *req.CustomerName
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		if err := o.UpdateCustomer(name, phone); err != nil {
			return nil, err
		}
	}
	if req.Items != nil {
		if err := o.ReplaceItems(toItemInputs(req.Items)); err != nil {
			return nil, err
		}
	}
	if req.SupplierID != nil {
		o.SetSupplier(req.SupplierID)
	}
	if req.Notes != nil {
		o.SetNotes(*req.Notes)
	}
	if req.DepositPaid != nil {
		if err := o.SetDeposit(*req.DepositPaid); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	return ToOrderResponse(o), nil
}

// ChangeStatus moves an order to a new status, optionally recording an
// internal note about the change.
func (s *Service) ChangeStatus(ctx context.Context, id uuid.UUID, req ChangeStatusRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := o.ChangeStatus(order.Status(req.Status)); err != nil {
		return nil, err
	}
	if req.Note != "" {
		o.AppendInternalNote(req.Note)
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, o)

	s.logger.Info("order status changed",
		zap.String("order_id", o.ID.String()),
		zap.String("status", string(o.Status)))

	return ToOrderResponse(o), nil
}

// Delete permanently removes an order
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.orderRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.orderRepo.Delete(ctx, id)
}

// Statistics computes order counts and totals in a single pass over the
// order list, rather than one query per status.
func (s *Service) Statistics(ctx context.Context) (*StatisticsResponse, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = 0 // no pagination, scan everything

	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	stats := &StatisticsResponse{
		ByStatus:     make(map[string]int64, len(order.AllStatuses())),
		TotalAmount:  decimal.Zero,
		ActiveAmount: decimal.Zero,
	}
	for _, st := range order.AllStatuses() {
		stats.ByStatus[string(st)] = 0
	}

	for idx := range orders {
		o := &orders[idx]
		stats.Total++
		stats.ByStatus[string(o.Status)]++
		stats.TotalAmount = stats.TotalAmount.Add(o.TotalAmount)
		if o.Status.IsActive() {
			stats.Active++
			stats.ActiveAmount = stats.ActiveAmount.Add(o.TotalAmount)
		}
		if o.Status == order.StatusPending {
			if stats.OldestPending == nil || o.CreatedAt.Before(*stats.OldestPending) {
				createdAt := o.CreatedAt
				stats.OldestPending = &createdAt
			}
		}
	}

	return stats, nil
}

func (s *Service) publishEvents(ctx context.Context, o *order.Order) {
	if s.events == nil {
		return
	}
	events := o.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.events.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish order events", zap.Error(err))
	}
	o.ClearDomainEvents()
}
