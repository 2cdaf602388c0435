package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/meditrack/backend/internal/domain/catalog"
	"github.com/meditrack/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockInventoryRepository is a mock implementation of catalog.InventoryRepository
type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.InventoryItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.InventoryItem, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) Save(ctx context.Context, item *catalog.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockInventoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInventoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInventoryRepository) FindByBarcode(ctx context.Context, code string) (*catalog.InventoryItem, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) FindLowStock(ctx context.Context) ([]catalog.InventoryItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) FindOutOfStock(ctx context.Context) ([]catalog.InventoryItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.InventoryItem), args.Error(1)
}

func (m *MockInventoryRepository) Restore(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockStockHistoryRepository is a mock implementation of catalog.StockHistoryRepository
type MockStockHistoryRepository struct {
	mock.Mock
}

func (m *MockStockHistoryRepository) Append(ctx context.Context, entry *catalog.StockHistory) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockStockHistoryRepository) FindByItem(ctx context.Context, itemID uuid.UUID, limit int) ([]catalog.StockHistory, error) {
	args := m.Called(ctx, itemID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.StockHistory), args.Error(1)
}

func (m *MockStockHistoryRepository) Latest(ctx context.Context, itemID uuid.UUID) (*catalog.StockHistory, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.StockHistory), args.Error(1)
}

// MockPriceHistoryRepository is a mock implementation of catalog.PriceHistoryRepository
type MockPriceHistoryRepository struct {
	mock.Mock
}

func (m *MockPriceHistoryRepository) Append(ctx context.Context, entry *catalog.PriceHistory) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockPriceHistoryRepository) FindByItem(ctx context.Context, itemID uuid.UUID, limit int) ([]catalog.PriceHistory, error) {
	args := m.Called(ctx, itemID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.PriceHistory), args.Error(1)
}

type inventoryMocks struct {
	items *MockInventoryRepository
	stock *MockStockHistoryRepository
	price *MockPriceHistoryRepository
}

func newInventoryService() (*InventoryService, inventoryMocks) {
	m := inventoryMocks{
		items: new(MockInventoryRepository),
		stock: new(MockStockHistoryRepository),
		price: new(MockPriceHistoryRepository),
	}
	return NewInventoryService(m.items, m.stock, m.price, zap.NewNop()), m
}

func mustItem(t *testing.T, quantity, minLevel int) *catalog.InventoryItem {
	t.Helper()
	item, err := catalog.NewInventoryItem("Paracetamol", "tablet", quantity, minLevel)
	require.NoError(t, err)
	item.ClearDomainEvents()
	return item
}

func TestInventoryService_Create(t *testing.T) {
	t.Run("creates item and records initial stock", func(t *testing.T) {
		svc, m := newInventoryService()

		m.items.On("Save", mock.Anything, mock.AnythingOfType("*catalog.InventoryItem")).Return(nil)
		m.stock.On("Append", mock.Anything, mock.MatchedBy(func(e *catalog.StockHistory) bool {
			return e.AdjustmentType == catalog.AdjustmentInitial && e.QuantityAfter == 50
		})).Return(nil)

		resp, err := svc.Create(context.Background(), CreateInventoryItemRequest{
			Name:          "Paracetamol",
			Form:          "tablet",
			Quantity:      50,
			MinStockLevel: 10,
			Barcodes:      []string{"4006381333931"},
		})

		require.NoError(t, err)
		assert.Equal(t, "in_stock", resp.StockStatus)
		require.Len(t, resp.Barcodes, 1)
		assert.True(t, resp.Barcodes[0].IsPrimary)
		m.stock.AssertExpectations(t)
	})

	t.Run("zero quantity skips history", func(t *testing.T) {
		svc, m := newInventoryService()

		m.items.On("Save", mock.Anything, mock.Anything).Return(nil)

		resp, err := svc.Create(context.Background(), CreateInventoryItemRequest{
			Name: "Paracetamol",
			Form: "tablet",
		})

		require.NoError(t, err)
		assert.Equal(t, "out_of_stock", resp.StockStatus)
		m.stock.AssertNotCalled(t, "Append")
	})

	t.Run("duplicate barcode in request fails", func(t *testing.T) {
		svc, m := newInventoryService()

		_, err := svc.Create(context.Background(), CreateInventoryItemRequest{
			Name:     "Paracetamol",
			Form:     "tablet",
			Barcodes: []string{"123", "123"},
		})
		assert.Error(t, err)
		m.items.AssertNotCalled(t, "Save")
	})
}

func TestInventoryService_AdjustStock(t *testing.T) {
	t.Run("positive delta records add history", func(t *testing.T) {
		svc, m := newInventoryService()
		item := mustItem(t, 10, 5)

		m.items.On("FindByID", mock.Anything, item.ID).Return(item, nil)
		m.items.On("Save", mock.Anything, item).Return(nil)
		m.stock.On("Append", mock.Anything, mock.MatchedBy(func(e *catalog.StockHistory) bool {
			return e.AdjustmentType == catalog.AdjustmentAdd && e.AdjustmentAmount == 5
		})).Return(nil)

		resp, err := svc.AdjustStock(context.Background(), item.ID, AdjustStockRequest{Delta: 5, Reason: "restock"})
		require.NoError(t, err)
		assert.Equal(t, 15, resp.Quantity)
	})

	t.Run("negative result rejected without persisting", func(t *testing.T) {
		svc, m := newInventoryService()
		item := mustItem(t, 10, 5)

		m.items.On("FindByID", mock.Anything, item.ID).Return(item, nil)

		_, err := svc.AdjustStock(context.Background(), item.ID, AdjustStockRequest{Delta: -11})
		assert.Error(t, err)
		m.items.AssertNotCalled(t, "Save")
		m.stock.AssertNotCalled(t, "Append")
	})
}

func TestInventoryService_UpdateStock(t *testing.T) {
	svc, m := newInventoryService()
	item := mustItem(t, 10, 5)

	m.items.On("FindByID", mock.Anything, item.ID).Return(item, nil)
	m.items.On("Save", mock.Anything, item).Return(nil)
	m.stock.On("Append", mock.Anything, mock.MatchedBy(func(e *catalog.StockHistory) bool {
		return e.AdjustmentType == catalog.AdjustmentSet && e.QuantityBefore == 10 && e.QuantityAfter == 0
	})).Return(nil)

	resp, err := svc.UpdateStock(context.Background(), item.ID, UpdateStockRequest{Quantity: 0, Reason: "stocktake"})
	require.NoError(t, err)
	assert.Equal(t, "out_of_stock", resp.StockStatus)
	m.stock.AssertExpectations(t)
}

func TestInventoryService_Update_PriceHistory(t *testing.T) {
	t.Run("unit price change appends history", func(t *testing.T) {
		svc, m := newInventoryService()
		item := mustItem(t, 10, 5)
		require.NoError(t, item.SetPricing(decimal.NewFromInt(10), decimal.NewFromInt(5)))

		m.items.On("FindByID", mock.Anything, item.ID).Return(item, nil)
		m.items.On("Save", mock.Anything, item).Return(nil)
		m.price.On("Append", mock.Anything, mock.MatchedBy(func(e *catalog.PriceHistory) bool {
			return e.PriceBefore.Equal(decimal.NewFromInt(10)) && e.PriceAfter.Equal(decimal.NewFromInt(12))
		})).Return(nil)

		newPrice := decimal.NewFromInt(12)
		_, err := svc.Update(context.Background(), item.ID, UpdateInventoryItemRequest{UnitPrice: &newPrice})
		require.NoError(t, err)
		m.price.AssertExpectations(t)
	})

	t.Run("unchanged price skips history", func(t *testing.T) {
		svc, m := newInventoryService()
		item := mustItem(t, 10, 5)
		require.NoError(t, item.SetPricing(decimal.NewFromInt(10), decimal.NewFromInt(5)))

		m.items.On("FindByID", mock.Anything, item.ID).Return(item, nil)
		m.items.On("Save", mock.Anything, item).Return(nil)

		samePrice := decimal.NewFromInt(10)
		_, err := svc.Update(context.Background(), item.ID, UpdateInventoryItemRequest{UnitPrice: &samePrice})
		require.NoError(t, err)
		m.price.AssertNotCalled(t, "Append")
	})

	t.Run("failed save records no price history", func(t *testing.T) {
		svc, m := newInventoryService()
		item := mustItem(t, 10, 5)
		require.NoError(t, item.SetPricing(decimal.NewFromInt(10), decimal.NewFromInt(5)))

		m.items.On("FindByID", mock.Anything, item.ID).Return(item, nil)
		m.items.On("Save", mock.Anything, item).Return(errors.New("db down"))

		newPrice := decimal.NewFromInt(12)
		_, err := svc.Update(context.Background(), item.ID, UpdateInventoryItemRequest{UnitPrice: &newPrice})
		require.Error(t, err)
		m.price.AssertNotCalled(t, "Append")
	})
}

func TestInventoryService_Statistics(t *testing.T) {
	svc, m := newInventoryService()

	inStock := mustItem(t, 100, 10)
	require.NoError(t, inStock.SetPricing(decimal.NewFromInt(2), decimal.Zero))
	low := mustItem(t, 5, 10)
	out := mustItem(t, 0, 10)

	m.items.On("FindAll", mock.Anything, mock.Anything).Return([]catalog.InventoryItem{*inStock, *low, *out}, nil)

	stats, err := svc.Statistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalItems)
	assert.Equal(t, int64(1), stats.LowStockItems)
	assert.Equal(t, int64(1), stats.OutOfStockItems)
	assert.True(t, stats.TotalStockValue.Equal(decimal.NewFromInt(200)))
}

func TestManufacturerService_Create(t *testing.T) {
	t.Run("rejects duplicate name", func(t *testing.T) {
		repo := new(MockManufacturerRepository)
		svc := NewManufacturerService(repo, zap.NewNop())

		repo.On("ExistsByName", mock.Anything, "Bayer AG").Return(true, nil)

		_, err := svc.Create(context.Background(), CreateManufacturerRequest{Name: "Bayer AG"})
		require.Error(t, err)
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("creates manufacturer with details", func(t *testing.T) {
		repo := new(MockManufacturerRepository)
		svc := NewManufacturerService(repo, zap.NewNop())

		repo.On("ExistsByName", mock.Anything, "Bayer AG").Return(false, nil)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Manufacturer")).Return(nil)

		resp, err := svc.Create(context.Background(), CreateManufacturerRequest{
			Name:    "Bayer AG",
			Country: "Germany",
		})
		require.NoError(t, err)
		assert.Equal(t, "Germany", resp.Country)
	})
}

func TestManufacturerService_List_ActiveFilter(t *testing.T) {
	repo := new(MockManufacturerRepository)
	svc := NewManufacturerService(repo, zap.NewNop())

	repo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		active, ok := f.Filters["is_active"]
		return ok && active == true
	})).Return([]catalog.Manufacturer{}, nil)
	repo.On("Count", mock.Anything, mock.Anything).Return(int64(0), nil)

	active := true
	_, err := svc.List(context.Background(), 1, 20, "", &active)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestManufacturerService_DeleteRestorePurge(t *testing.T) {
	t.Run("delete deactivates", func(t *testing.T) {
		repo := new(MockManufacturerRepository)
		svc := NewManufacturerService(repo, zap.NewNop())
		m, err := catalog.NewManufacturer("Bayer AG")
		require.NoError(t, err)

		repo.On("FindByID", mock.Anything, m.ID).Return(m, nil)
		repo.On("Save", mock.Anything, m).Return(nil)

		require.NoError(t, svc.Delete(context.Background(), m.ID))
		assert.False(t, m.IsActive)
		repo.AssertNotCalled(t, "Delete")
	})

	t.Run("restore reactivates", func(t *testing.T) {
		repo := new(MockManufacturerRepository)
		svc := NewManufacturerService(repo, zap.NewNop())
		m, err := catalog.NewManufacturer("Bayer AG")
		require.NoError(t, err)
		m.Deactivate()

		repo.On("FindByID", mock.Anything, m.ID).Return(m, nil)
		repo.On("Save", mock.Anything, m).Return(nil)

		require.NoError(t, svc.Restore(context.Background(), m.ID))
		assert.True(t, m.IsActive)
	})

	t.Run("purge removes the row", func(t *testing.T) {
		repo := new(MockManufacturerRepository)
		svc := NewManufacturerService(repo, zap.NewNop())
		id := uuid.New()

		repo.On("Delete", mock.Anything, id).Return(nil)

		require.NoError(t, svc.Purge(context.Background(), id))
		repo.AssertExpectations(t)
	})
}

// MockManufacturerRepository is a mock implementation of catalog.ManufacturerRepository
type MockManufacturerRepository struct {
	mock.Mock
}

func (m *MockManufacturerRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Manufacturer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Manufacturer), args.Error(1)
}

func (m *MockManufacturerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Manufacturer, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Manufacturer), args.Error(1)
}

func (m *MockManufacturerRepository) Save(ctx context.Context, mf *catalog.Manufacturer) error {
	args := m.Called(ctx, mf)
	return args.Error(0)
}

func (m *MockManufacturerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockManufacturerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockManufacturerRepository) FindByName(ctx context.Context, name string) (*catalog.Manufacturer, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Manufacturer), args.Error(1)
}

func (m *MockManufacturerRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}
