package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	appCatalog "github.com/meditrack/backend/internal/application/catalog"
	"github.com/meditrack/backend/internal/application/collection"
	appOrder "github.com/meditrack/backend/internal/application/order"
	"github.com/meditrack/backend/internal/domain/order"
	"go.uber.org/zap"
)

const (
	cachePrefix     = "dashboard:"
	summaryCacheKey = cachePrefix + "summary"
	summaryCacheTTL = 30 * time.Second
)

// Cache stores computed summaries between refreshes
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	InvalidatePrefix(ctx context.Context, prefix string) error
}

// OrderStats is the slice of the order service the dashboard needs
type OrderStats interface {
	Statistics(ctx context.Context) (*appOrder.StatisticsResponse, error)
	Active(ctx context.Context) ([]appOrder.OrderResponse, error)
	ChangeStatus(ctx context.Context, id uuid.UUID, req appOrder.ChangeStatusRequest) (*appOrder.OrderResponse, error)
}

// InventoryStats is the slice of the inventory service the dashboard needs
type InventoryStats interface {
	Statistics(ctx context.Context) (*appCatalog.InventoryStatisticsResponse, error)
}

// UnreadCounter reports how many notifications are unread
type UnreadCounter interface {
	UnreadCount(ctx context.Context) (int, error)
}

// Summary is the aggregate view shown on the start screen
type Summary struct {
	Orders       *appOrder.StatisticsResponse            `json:"orders"`
	Inventory    *appCatalog.InventoryStatisticsResponse `json:"inventory"`
	ActiveOrders int                                     `json:"active_orders"`
	UnreadCount  int                                     `json:"unread_count"`
	GeneratedAt  time.Time                               `json:"generated_at"`
}

// Service aggregates statistics from the other services and keeps an
// in-memory working set of active orders so the start screen does not
// hit the database on every poll.
type Service struct {
	orders    OrderStats
	inventory InventoryStats
	center    UnreadCounter
	cache     Cache
	active    *collection.Collection[appOrder.OrderResponse]
	logger    *zap.Logger
}

// NewService creates a dashboard service
func NewService(
	orders OrderStats,
	inventory InventoryStats,
	center UnreadCounter,
	cache Cache,
	logger *zap.Logger,
) *Service {
	s := &Service{
		orders:    orders,
		inventory: inventory,
		center:    center,
		cache:     cache,
		active: collection.New[appOrder.OrderResponse](logger,
			collection.WithInvalidator[appOrder.OrderResponse](cache, cachePrefix)),
		logger: logger,
	}
	// A refreshed working set makes any cached summary stale
	s.active.Subscribe(func([]appOrder.OrderResponse) {
		if err := cache.InvalidatePrefix(context.Background(), cachePrefix); err != nil {
			logger.Warn("dashboard cache invalidation failed", zap.Error(err))
		}
	})
	return s
}

// Name implements the scheduler task interface
func (s *Service) Name() string { return "dashboard-refresh" }

// Run implements the scheduler task interface by refreshing the
// active order working set.
func (s *Service) Run(ctx context.Context) error {
	return s.Refresh(ctx)
}

// Refresh reloads the active order working set from the database
func (s *Service) Refresh(ctx context.Context) error {
	return s.active.Load(ctx, func(ctx context.Context) ([]appOrder.OrderResponse, error) {
		return s.orders.Active(ctx)
	})
}

// ActiveOrders returns the current working set without touching the
// database
func (s *Service) ActiveOrders() []appOrder.OrderResponse {
	return s.active.Items()
}

// ChangeOrderStatus routes a status change through the working set:
// the in-memory entry changes first (it is removed when the new status
// leaves the active set), the database write runs second, and a failed
// write restores the entry before the error is returned. Orders outside
// the working set are written directly.
func (s *Service) ChangeOrderStatus(ctx context.Context, id uuid.UUID, req appOrder.ChangeStatusRequest) (*appOrder.OrderResponse, error) {
	current, ok := s.active.Find(id)
	if !ok {
		return s.orders.ChangeStatus(ctx, id, req)
	}

	var resp *appOrder.OrderResponse
	persist := func(ctx context.Context) error {
		r, err := s.orders.ChangeStatus(ctx, id, req)
		if err != nil {
			return err
		}
		resp = r
		return nil
	}

	var err error
	if order.Status(req.Status).IsActive() {
		optimistic := current
		optimistic.Status = req.Status
		err = s.active.Update(ctx, optimistic, persist)
	} else {
		err = s.active.Delete(ctx, id, persist)
	}
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ActiveOrdersForSupplier filters the working set by supplier
func (s *Service) ActiveOrdersForSupplier(supplierID string) []appOrder.OrderResponse {
	return s.active.Filter(func(o appOrder.OrderResponse) bool {
		return o.SupplierID != nil && o.SupplierID.String() == supplierID
	})
}

// Summary returns the aggregate statistics view, cached briefly
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	if data, ok, err := s.cache.Get(ctx, summaryCacheKey); err == nil && ok {
		var cached Summary
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
		s.logger.Warn("discarding unreadable cached summary")
	}

	orderStats, err := s.orders.Statistics(ctx)
	if err != nil {
		return nil, err
	}
	inventoryStats, err := s.inventory.Statistics(ctx)
	if err != nil {
		return nil, err
	}
	unread, err := s.center.UnreadCount(ctx)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Orders:       orderStats,
		Inventory:    inventoryStats,
		ActiveOrders: s.active.Len(),
		UnreadCount:  unread,
		GeneratedAt:  time.Now(),
	}

	if data, err := json.Marshal(summary); err == nil {
		if err := s.cache.Set(ctx, summaryCacheKey, data, summaryCacheTTL); err != nil {
			s.logger.Warn("failed to cache dashboard summary", zap.Error(err))
		}
	}

	return summary, nil
}
