package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	appCatalog "github.com/meditrack/backend/internal/application/catalog"
	appOrder "github.com/meditrack/backend/internal/application/order"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeOrderStats struct {
	statsCalls  int
	activeCalls int
	changeCalls int
	active      []appOrder.OrderResponse
	changeErr   error
}

func (f *fakeOrderStats) Statistics(context.Context) (*appOrder.StatisticsResponse, error) {
	f.statsCalls++
	return &appOrder.StatisticsResponse{
		Total:       12,
		Active:      3,
		ByStatus:    map[string]int64{"pending": 2, "ordered": 1},
		TotalAmount: decimal.NewFromInt(450),
	}, nil
}

func (f *fakeOrderStats) Active(context.Context) ([]appOrder.OrderResponse, error) {
	f.activeCalls++
	return f.active, nil
}

func (f *fakeOrderStats) ChangeStatus(_ context.Context, id uuid.UUID, req appOrder.ChangeStatusRequest) (*appOrder.OrderResponse, error) {
	f.changeCalls++
	if f.changeErr != nil {
		return nil, f.changeErr
	}
	return &appOrder.OrderResponse{ID: id, Status: req.Status}, nil
}

type fakeInventoryStats struct{}

func (fakeInventoryStats) Statistics(context.Context) (*appCatalog.InventoryStatisticsResponse, error) {
	return &appCatalog.InventoryStatisticsResponse{
		TotalItems:    40,
		LowStockItems: 5,
	}, nil
}

type fakeUnreadCounter struct{ count int }

func (f fakeUnreadCounter) UnreadCount(context.Context) (int, error) { return f.count, nil }

type memoryCache struct {
	mu    sync.Mutex
	items map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.items[key]
	return data, ok, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
	return nil
}

func (c *memoryCache) InvalidatePrefix(_ context.Context, _ string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string][]byte)
	return nil
}

func newTestService(orders *fakeOrderStats, cache Cache) *Service {
	return NewService(orders, fakeInventoryStats{}, fakeUnreadCounter{count: 2}, cache, zap.NewNop())
}

func TestSummary_ComputesAndCaches(t *testing.T) {
	orders := &fakeOrderStats{}
	svc := newTestService(orders, newMemoryCache())

	first, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), first.Orders.Total)
	assert.Equal(t, int64(5), first.Inventory.LowStockItems)
	assert.Equal(t, 2, first.UnreadCount)

	second, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.GeneratedAt.Unix(), second.GeneratedAt.Unix())
	assert.Equal(t, 1, orders.statsCalls, "second call should be served from cache")
}

func TestRefresh_InvalidatesCachedSummary(t *testing.T) {
	orders := &fakeOrderStats{
		active: []appOrder.OrderResponse{{ID: uuid.New(), Status: "pending"}},
	}
	svc := newTestService(orders, newMemoryCache())

	_, err := svc.Summary(context.Background())
	require.NoError(t, err)

	require.NoError(t, svc.Refresh(context.Background()))
	assert.Len(t, svc.ActiveOrders(), 1)

	_, err = svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, orders.statsCalls, "refresh should evict the cached summary")
}

func TestChangeOrderStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("terminal status removes the order from the working set", func(t *testing.T) {
		id := uuid.New()
		orders := &fakeOrderStats{active: []appOrder.OrderResponse{{ID: id, Status: "arrived"}}}
		svc := newTestService(orders, newMemoryCache())
		require.NoError(t, svc.Refresh(ctx))

		resp, err := svc.ChangeOrderStatus(ctx, id, appOrder.ChangeStatusRequest{Status: "delivered"})
		require.NoError(t, err)
		assert.Equal(t, "delivered", resp.Status)
		assert.Empty(t, svc.ActiveOrders())
	})

	t.Run("active status updates the entry in place", func(t *testing.T) {
		id := uuid.New()
		orders := &fakeOrderStats{active: []appOrder.OrderResponse{{ID: id, Status: "pending"}}}
		svc := newTestService(orders, newMemoryCache())
		require.NoError(t, svc.Refresh(ctx))

		_, err := svc.ChangeOrderStatus(ctx, id, appOrder.ChangeStatusRequest{Status: "ordered"})
		require.NoError(t, err)
		require.Len(t, svc.ActiveOrders(), 1)
		assert.Equal(t, "ordered", svc.ActiveOrders()[0].Status)
	})

	t.Run("failed write restores the entry", func(t *testing.T) {
		id := uuid.New()
		orders := &fakeOrderStats{
			active:    []appOrder.OrderResponse{{ID: id, Status: "arrived"}},
			changeErr: errors.New("db down"),
		}
		svc := newTestService(orders, newMemoryCache())
		require.NoError(t, svc.Refresh(ctx))

		_, err := svc.ChangeOrderStatus(ctx, id, appOrder.ChangeStatusRequest{Status: "delivered"})
		require.Error(t, err)
		require.Len(t, svc.ActiveOrders(), 1)
		assert.Equal(t, "arrived", svc.ActiveOrders()[0].Status)
	})

	t.Run("order outside the working set writes directly", func(t *testing.T) {
		orders := &fakeOrderStats{}
		svc := newTestService(orders, newMemoryCache())

		resp, err := svc.ChangeOrderStatus(ctx, uuid.New(), appOrder.ChangeStatusRequest{Status: "cancelled"})
		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)
		assert.Equal(t, 1, orders.changeCalls)
	})
}

func TestActiveOrdersForSupplier(t *testing.T) {
	supplierID := uuid.New()
	other := uuid.New()
	orders := &fakeOrderStats{
		active: []appOrder.OrderResponse{
			{ID: uuid.New(), SupplierID: &supplierID},
			{ID: uuid.New(), SupplierID: &other},
			{ID: uuid.New()},
		},
	}
	svc := newTestService(orders, newMemoryCache())
	require.NoError(t, svc.Refresh(context.Background()))

	matched := svc.ActiveOrdersForSupplier(supplierID.String())
	require.Len(t, matched, 1)
	assert.Equal(t, supplierID, *matched[0].SupplierID)
}
