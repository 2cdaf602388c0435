package onboarding

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	appcatalog "github.com/meditrack/backend/internal/application/catalog"
	apporder "github.com/meditrack/backend/internal/application/order"
	apppartner "github.com/meditrack/backend/internal/application/partner"
	appsettings "github.com/meditrack/backend/internal/application/settings"
	"github.com/meditrack/backend/internal/domain/catalog"
	"github.com/meditrack/backend/internal/domain/order"
	"github.com/meditrack/backend/internal/domain/partner"
	"github.com/meditrack/backend/internal/domain/settings"
	"github.com/meditrack/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// The seed fakes accept every write and remember how many they saw.

type fakeSupplierRepo struct{ saves int }

func (f *fakeSupplierRepo) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	return nil, shared.ErrNotFound
}
func (f *fakeSupplierRepo) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Supplier, error) {
	return nil, nil
}
func (f *fakeSupplierRepo) Save(ctx context.Context, s *partner.Supplier) error {
	f.saves++
	return nil
}
func (f *fakeSupplierRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (f *fakeSupplierRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return 0, nil
}
func (f *fakeSupplierRepo) FindByName(ctx context.Context, name string) (*partner.Supplier, error) {
	return nil, shared.ErrNotFound
}
func (f *fakeSupplierRepo) FindActive(ctx context.Context) ([]partner.Supplier, error) {
	return nil, nil
}
func (f *fakeSupplierRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	return false, nil
}
func (f *fakeSupplierRepo) Restore(ctx context.Context, id uuid.UUID) error { return nil }
func (f *fakeSupplierRepo) Purge(ctx context.Context, id uuid.UUID) error   { return nil }

type fakeManufacturerRepo struct{ saves int }

func (f *fakeManufacturerRepo) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Manufacturer, error) {
	return nil, shared.ErrNotFound
}
func (f *fakeManufacturerRepo) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Manufacturer, error) {
	return nil, nil
}
func (f *fakeManufacturerRepo) Save(ctx context.Context, m *catalog.Manufacturer) error {
	f.saves++
	return nil
}
func (f *fakeManufacturerRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (f *fakeManufacturerRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return 0, nil
}
func (f *fakeManufacturerRepo) FindByName(ctx context.Context, name string) (*catalog.Manufacturer, error) {
	return nil, shared.ErrNotFound
}
func (f *fakeManufacturerRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	return false, nil
}

type fakeInventoryRepo struct{ saves int }

func (f *fakeInventoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*catalog.InventoryItem, error) {
	return nil, shared.ErrNotFound
}
func (f *fakeInventoryRepo) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.InventoryItem, error) {
	return nil, nil
}
func (f *fakeInventoryRepo) Save(ctx context.Context, item *catalog.InventoryItem) error {
	f.saves++
	return nil
}
func (f *fakeInventoryRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (f *fakeInventoryRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return 0, nil
}
func (f *fakeInventoryRepo) FindByBarcode(ctx context.Context, code string) (*catalog.InventoryItem, error) {
	return nil, shared.ErrNotFound
}
func (f *fakeInventoryRepo) FindLowStock(ctx context.Context) ([]catalog.InventoryItem, error) {
	return nil, nil
}
func (f *fakeInventoryRepo) FindOutOfStock(ctx context.Context) ([]catalog.InventoryItem, error) {
	return nil, nil
}
func (f *fakeInventoryRepo) Restore(ctx context.Context, id uuid.UUID) error { return nil }

type fakeStockHistoryRepo struct{ appends int }

func (f *fakeStockHistoryRepo) Append(ctx context.Context, e *catalog.StockHistory) error {
	f.appends++
	return nil
}
func (f *fakeStockHistoryRepo) FindByItem(ctx context.Context, itemID uuid.UUID, limit int) ([]catalog.StockHistory, error) {
	return nil, nil
}
func (f *fakeStockHistoryRepo) Latest(ctx context.Context, itemID uuid.UUID) (*catalog.StockHistory, error) {
	return nil, shared.ErrNotFound
}

type fakePriceHistoryRepo struct{}

func (f *fakePriceHistoryRepo) Append(ctx context.Context, e *catalog.PriceHistory) error { return nil }
func (f *fakePriceHistoryRepo) FindByItem(ctx context.Context, itemID uuid.UUID, limit int) ([]catalog.PriceHistory, error) {
	return nil, nil
}

type fakeOrderRepo struct{ saves int }

func (f *fakeOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return nil, shared.ErrNotFound
}
func (f *fakeOrderRepo) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	return nil, nil
}
func (f *fakeOrderRepo) Save(ctx context.Context, o *order.Order) error {
	f.saves++
	return nil
}
func (f *fakeOrderRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (f *fakeOrderRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return 0, nil
}
func (f *fakeOrderRepo) FindByOrderNumber(ctx context.Context, n string) (*order.Order, error) {
	return nil, shared.ErrNotFound
}
func (f *fakeOrderRepo) FindByStatus(ctx context.Context, statuses ...order.Status) ([]order.Order, error) {
	return nil, nil
}
func (f *fakeOrderRepo) FindActive(ctx context.Context) ([]order.Order, error) { return nil, nil }
func (f *fakeOrderRepo) FindDeliveredBefore(ctx context.Context, cutoff time.Time) ([]order.Order, error) {
	return nil, nil
}
func (f *fakeOrderRepo) CountByStatus(ctx context.Context) (map[order.Status]int64, error) {
	return nil, nil
}

type fakeSettingRepo struct{ saved map[string]string }

func (f *fakeSettingRepo) FindByID(ctx context.Context, id uuid.UUID) (*settings.Setting, error) {
	return nil, shared.ErrNotFound
}
func (f *fakeSettingRepo) FindAll(ctx context.Context, filter shared.Filter) ([]settings.Setting, error) {
	return nil, nil
}
func (f *fakeSettingRepo) Save(ctx context.Context, s *settings.Setting) error {
	if f.saved == nil {
		f.saved = make(map[string]string)
	}
	f.saved[s.Key] = s.Value
	return nil
}
func (f *fakeSettingRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (f *fakeSettingRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return 0, nil
}
func (f *fakeSettingRepo) FindByKey(ctx context.Context, key string) (*settings.Setting, error) {
	return nil, shared.ErrNotFound
}
func (f *fakeSettingRepo) FindByCategory(ctx context.Context, category string) ([]settings.Setting, error) {
	return nil, nil
}
func (f *fakeSettingRepo) DeleteByKey(ctx context.Context, key string) error      { return nil }
func (f *fakeSettingRepo) DeleteByCategory(ctx context.Context, cat string) error { return nil }

type fixedDefaults struct{}

func (fixedDefaults) DefaultOrderStatus(ctx context.Context) order.Status {
	return order.StatusPending
}

func TestSeedService_Run(t *testing.T) {
	logger := zap.NewNop()

	supplierRepo := &fakeSupplierRepo{}
	manufacturerRepo := &fakeManufacturerRepo{}
	inventoryRepo := &fakeInventoryRepo{}
	stockRepo := &fakeStockHistoryRepo{}
	orderRepo := &fakeOrderRepo{}
	settingRepo := &fakeSettingRepo{}

	svc := NewSeedService(
		apppartner.NewSupplierService(supplierRepo, logger),
		appcatalog.NewManufacturerService(manufacturerRepo, logger),
		appcatalog.NewInventoryService(inventoryRepo, stockRepo, &fakePriceHistoryRepo{}, logger),
		apporder.NewService(orderRepo, fixedDefaults{}, nil, logger),
		appsettings.NewService(settingRepo, logger),
		logger,
	)
	svc.delay = 0

	summary, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Suppliers)
	assert.Equal(t, 3, summary.Manufacturers)
	assert.Equal(t, 3, summary.Items)
	assert.Equal(t, 2, summary.Orders)
	assert.Empty(t, summary.Errors)

	assert.Equal(t, 3, supplierRepo.saves)
	assert.Equal(t, 3, manufacturerRepo.saves)
	assert.Equal(t, 3, inventoryRepo.saves)
	assert.Equal(t, 2, orderRepo.saves)
	// Only items with a non-zero starting quantity record initial history
	assert.Equal(t, 2, stockRepo.appends)
	assert.Equal(t, "true", settingRepo.saved[settings.KeyOnboardingCompleted])
}
