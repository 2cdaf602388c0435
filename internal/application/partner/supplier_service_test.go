package partner

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/meditrack/backend/internal/domain/partner"
	"github.com/meditrack/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockSupplierRepository is a mock implementation of partner.SupplierRepository
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Supplier, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) Save(ctx context.Context, s *partner.Supplier) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSupplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSupplierRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSupplierRepository) FindByName(ctx context.Context, name string) (*partner.Supplier, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindActive(ctx context.Context) ([]partner.Supplier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockSupplierRepository) Restore(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSupplierRepository) Purge(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestSupplierService_Create(t *testing.T) {
	t.Run("creates supplier", func(t *testing.T) {
		repo := new(MockSupplierRepository)
		svc := NewSupplierService(repo, zap.NewNop())

		repo.On("ExistsByName", mock.Anything, "PharmaDirect").Return(false, nil)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*partner.Supplier")).Return(nil)

		rating := decimal.NewFromFloat(4.5)
		days := 3
		resp, err := svc.Create(context.Background(), CreateSupplierRequest{
			Name:            "PharmaDirect",
			Phone:           "555-0100",
			Rating:          &rating,
			AvgDeliveryDays: &days,
		})

		require.NoError(t, err)
		assert.Equal(t, "PharmaDirect", resp.Name)
		assert.Equal(t, 3, resp.AvgDeliveryDays)
		repo.AssertExpectations(t)
	})

	t.Run("rejects duplicate name", func(t *testing.T) {
		repo := new(MockSupplierRepository)
		svc := NewSupplierService(repo, zap.NewNop())

		repo.On("ExistsByName", mock.Anything, "PharmaDirect").Return(true, nil)

		_, err := svc.Create(context.Background(), CreateSupplierRequest{
			Name:  "PharmaDirect",
			Phone: "555-0100",
		})

		require.Error(t, err)
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "ALREADY_EXISTS", de.Code)
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("rejects invalid rating", func(t *testing.T) {
		repo := new(MockSupplierRepository)
		svc := NewSupplierService(repo, zap.NewNop())

		repo.On("ExistsByName", mock.Anything, mock.Anything).Return(false, nil)

		rating := decimal.NewFromInt(6)
		_, err := svc.Create(context.Background(), CreateSupplierRequest{
			Name:   "PharmaDirect",
			Phone:  "555-0100",
			Rating: &rating,
		})
		assert.Error(t, err)
	})
}

func TestSupplierService_Update(t *testing.T) {
	newSupplier := func(t *testing.T) *partner.Supplier {
		s, err := partner.NewSupplier("PharmaDirect", "555-0100")
		require.NoError(t, err)
		s.ClearDomainEvents()
		return s
	}

	t.Run("rename checks uniqueness", func(t *testing.T) {
		repo := new(MockSupplierRepository)
		svc := NewSupplierService(repo, zap.NewNop())
		s := newSupplier(t)

		repo.On("FindByID", mock.Anything, s.ID).Return(s, nil)
		repo.On("ExistsByName", mock.Anything, "MediSupply").Return(true, nil)

		name := "MediSupply"
		_, err := svc.Update(context.Background(), s.ID, UpdateSupplierRequest{Name: &name})
		assert.Error(t, err)
	})

	t.Run("same name skips uniqueness check", func(t *testing.T) {
		repo := new(MockSupplierRepository)
		svc := NewSupplierService(repo, zap.NewNop())
		s := newSupplier(t)

		repo.On("FindByID", mock.Anything, s.ID).Return(s, nil)
		repo.On("Save", mock.Anything, s).Return(nil)

		name := "PharmaDirect"
		_, err := svc.Update(context.Background(), s.ID, UpdateSupplierRequest{Name: &name})
		require.NoError(t, err)
		repo.AssertNotCalled(t, "ExistsByName")
	})

	t.Run("deactivation", func(t *testing.T) {
		repo := new(MockSupplierRepository)
		svc := NewSupplierService(repo, zap.NewNop())
		s := newSupplier(t)

		repo.On("FindByID", mock.Anything, s.ID).Return(s, nil)
		repo.On("Save", mock.Anything, s).Return(nil)

		active := false
		resp, err := svc.Update(context.Background(), s.ID, UpdateSupplierRequest{IsActive: &active})
		require.NoError(t, err)
		assert.False(t, resp.IsActive)
	})
}

func TestSupplierService_DeleteAndRestore(t *testing.T) {
	repo := new(MockSupplierRepository)
	svc := NewSupplierService(repo, zap.NewNop())
	s, err := partner.NewSupplier("PharmaDirect", "555-0100")
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, s.ID).Return(s, nil)
	repo.On("Delete", mock.Anything, s.ID).Return(nil)
	repo.On("Restore", mock.Anything, s.ID).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), s.ID))
	require.NoError(t, svc.Restore(context.Background(), s.ID))
	repo.AssertExpectations(t)
}

func TestSupplierService_Rate(t *testing.T) {
	repo := new(MockSupplierRepository)
	svc := NewSupplierService(repo, zap.NewNop())
	s, err := partner.NewSupplier("PharmaDirect", "555-0100")
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, s.ID).Return(s, nil)
	repo.On("Save", mock.Anything, s).Return(nil)

	resp, err := svc.Rate(context.Background(), s.ID, decimal.NewFromFloat(4.5))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromFloat(4.5).Equal(resp.Rating))

	_, err = svc.Rate(context.Background(), s.ID, decimal.NewFromInt(6))
	assert.Error(t, err)
}

func TestSupplierService_Purge(t *testing.T) {
	repo := new(MockSupplierRepository)
	svc := NewSupplierService(repo, zap.NewNop())
	id := uuid.New()

	repo.On("Purge", mock.Anything, id).Return(nil)

	require.NoError(t, svc.Purge(context.Background(), id))
	repo.AssertExpectations(t)
}

func TestSupplierService_RecordOrder(t *testing.T) {
	repo := new(MockSupplierRepository)
	svc := NewSupplierService(repo, zap.NewNop())
	s, err := partner.NewSupplier("PharmaDirect", "555-0100")
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, s.ID).Return(s, nil)
	repo.On("Save", mock.Anything, s).Return(nil)

	require.NoError(t, svc.RecordOrder(context.Background(), s.ID))
	assert.Equal(t, 1, s.TotalOrdersCount)
}
