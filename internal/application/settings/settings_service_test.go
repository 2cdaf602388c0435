package settings

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/meditrack/backend/internal/domain/order"
	"github.com/meditrack/backend/internal/domain/settings"
	"github.com/meditrack/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockSettingRepository is a mock implementation of settings.Repository
type MockSettingRepository struct {
	mock.Mock
}

func (m *MockSettingRepository) FindByID(ctx context.Context, id uuid.UUID) (*settings.Setting, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settings.Setting), args.Error(1)
}

func (m *MockSettingRepository) FindAll(ctx context.Context, filter shared.Filter) ([]settings.Setting, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]settings.Setting), args.Error(1)
}

func (m *MockSettingRepository) Save(ctx context.Context, s *settings.Setting) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSettingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSettingRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSettingRepository) FindByKey(ctx context.Context, key string) (*settings.Setting, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settings.Setting), args.Error(1)
}

func (m *MockSettingRepository) FindByCategory(ctx context.Context, category string) ([]settings.Setting, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]settings.Setting), args.Error(1)
}

func (m *MockSettingRepository) DeleteByKey(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockSettingRepository) DeleteByCategory(ctx context.Context, category string) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func TestService_Get(t *testing.T) {
	t.Run("returns default when no override", func(t *testing.T) {
		repo := new(MockSettingRepository)
		svc := NewService(repo, zap.NewNop())

		repo.On("FindByKey", mock.Anything, settings.KeyAutoArchiveDays).Return(nil, shared.ErrNotFound)

		resp, err := svc.Get(context.Background(), settings.KeyAutoArchiveDays)
		require.NoError(t, err)
		assert.Equal(t, "30", resp.Value)
		assert.False(t, resp.IsOverridden)
	})

	t.Run("override wins", func(t *testing.T) {
		repo := new(MockSettingRepository)
		svc := NewService(repo, zap.NewNop())

		override, err := settings.NewSetting(settings.KeyAutoArchiveDays, "14")
		require.NoError(t, err)
		repo.On("FindByKey", mock.Anything, settings.KeyAutoArchiveDays).Return(override, nil)

		resp, err := svc.Get(context.Background(), settings.KeyAutoArchiveDays)
		require.NoError(t, err)
		assert.Equal(t, "14", resp.Value)
		assert.True(t, resp.IsOverridden)
	})

	t.Run("unknown key errors", func(t *testing.T) {
		repo := new(MockSettingRepository)
		svc := NewService(repo, zap.NewNop())

		_, err := svc.Get(context.Background(), "bogus")
		assert.Error(t, err)
	})
}

func TestService_Set(t *testing.T) {
	t.Run("creates override when absent", func(t *testing.T) {
		repo := new(MockSettingRepository)
		svc := NewService(repo, zap.NewNop())

		repo.On("FindByKey", mock.Anything, settings.KeyLanguage).Return(nil, shared.ErrNotFound)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*settings.Setting")).Return(nil)

		resp, err := svc.Set(context.Background(), settings.KeyLanguage, "ar", "admin")
		require.NoError(t, err)
		assert.Equal(t, "ar", resp.Value)
		assert.True(t, resp.IsOverridden)
	})

	t.Run("updates existing override", func(t *testing.T) {
		repo := new(MockSettingRepository)
		svc := NewService(repo, zap.NewNop())

		existing, err := settings.NewSetting(settings.KeyLanguage, "ar")
		require.NoError(t, err)
		repo.On("FindByKey", mock.Anything, settings.KeyLanguage).Return(existing, nil)
		repo.On("Save", mock.Anything, existing).Return(nil)

		resp, err := svc.Set(context.Background(), settings.KeyLanguage, "en", "")
		require.NoError(t, err)
		assert.Equal(t, "en", resp.Value)
	})

	t.Run("invalid value rejected before save", func(t *testing.T) {
		repo := new(MockSettingRepository)
		svc := NewService(repo, zap.NewNop())

		repo.On("FindByKey", mock.Anything, settings.KeyAlertCheckInterval).Return(nil, shared.ErrNotFound)

		_, err := svc.Set(context.Background(), settings.KeyAlertCheckInterval, "200", "")
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Save")
	})
}

func TestService_SetMultiple(t *testing.T) {
	t.Run("first failure aborts the batch", func(t *testing.T) {
		repo := new(MockSettingRepository)
		svc := NewService(repo, zap.NewNop())

		repo.On("FindByKey", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)
		repo.On("Save", mock.Anything, mock.Anything).Return(nil)

		_, err := svc.SetMultiple(context.Background(), map[string]string{
			"unknown_key": "x",
		}, "")
		assert.Error(t, err)
	})

	t.Run("applies all valid writes", func(t *testing.T) {
		repo := new(MockSettingRepository)
		svc := NewService(repo, zap.NewNop())

		repo.On("FindByKey", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)
		repo.On("Save", mock.Anything, mock.Anything).Return(nil)

		out, err := svc.SetMultiple(context.Background(), map[string]string{
			settings.KeyLanguage:   "ar",
			settings.KeyThemeColor: "#ff0000",
		}, "admin")
		require.NoError(t, err)
		assert.Len(t, out, 2)
	})
}

func TestService_TypedGetters(t *testing.T) {
	repo := new(MockSettingRepository)
	svc := NewService(repo, zap.NewNop())

	interval, err := settings.NewSetting(settings.KeyAlertCheckInterval, "45")
	require.NoError(t, err)
	repo.On("FindByKey", mock.Anything, settings.KeyAlertCheckInterval).Return(interval, nil)
	repo.On("FindByKey", mock.Anything, settings.KeyNotificationsEnabled).Return(nil, shared.ErrNotFound)

	assert.Equal(t, 45, svc.GetInt(context.Background(), settings.KeyAlertCheckInterval))
	assert.True(t, svc.GetBool(context.Background(), settings.KeyNotificationsEnabled))
	assert.Equal(t, "", svc.GetString(context.Background(), "bogus"))
}

func TestService_DefaultOrderStatus(t *testing.T) {
	t.Run("resolves configured status", func(t *testing.T) {
		repo := new(MockSettingRepository)
		svc := NewService(repo, zap.NewNop())

		override, err := settings.NewSetting(settings.KeyDefaultOrderStatus, "ordered")
		require.NoError(t, err)
		repo.On("FindByKey", mock.Anything, settings.KeyDefaultOrderStatus).Return(override, nil)

		assert.Equal(t, order.StatusOrdered, svc.DefaultOrderStatus(context.Background()))
	})

	t.Run("falls back to pending", func(t *testing.T) {
		repo := new(MockSettingRepository)
		svc := NewService(repo, zap.NewNop())

		repo.On("FindByKey", mock.Anything, settings.KeyDefaultOrderStatus).Return(nil, shared.ErrNotFound)

		assert.Equal(t, order.StatusPending, svc.DefaultOrderStatus(context.Background()))
	})
}

func TestService_Reset(t *testing.T) {
	repo := new(MockSettingRepository)
	svc := NewService(repo, zap.NewNop())

	repo.On("DeleteByKey", mock.Anything, settings.KeyLanguage).Return(nil)

	require.NoError(t, svc.Reset(context.Background(), settings.KeyLanguage))
	assert.Error(t, svc.Reset(context.Background(), "bogus"))
}
