package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/meditrack/backend/internal/domain/identity"
	"github.com/meditrack/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockUserRepository is a mock implementation of identity.Repository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, u *identity.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

type stubIssuer struct{}

func (stubIssuer) Issue(userID uuid.UUID, username string, role string) (string, time.Time, error) {
	return "token-" + username, time.Now().Add(time.Hour), nil
}

func TestAuthService_Login(t *testing.T) {
	newUser := func(t *testing.T) *identity.User {
		u, err := identity.NewUser("alice", "correct-horse", identity.RolePharmacist)
		require.NoError(t, err)
		return u
	}

	t.Run("valid credentials return token", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewAuthService(repo, stubIssuer{}, zap.NewNop())
		u := newUser(t)

		repo.On("FindByUsername", mock.Anything, "alice").Return(u, nil)
		repo.On("Save", mock.Anything, u).Return(nil)

		resp, err := svc.Login(context.Background(), LoginRequest{Username: "alice", Password: "correct-horse"})
		require.NoError(t, err)
		assert.Equal(t, "token-alice", resp.Token)
		assert.NotNil(t, u.LastLoginAt)
	})

	t.Run("wrong password and unknown user return the same error", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewAuthService(repo, stubIssuer{}, zap.NewNop())
		u := newUser(t)

		repo.On("FindByUsername", mock.Anything, "alice").Return(u, nil)
		repo.On("FindByUsername", mock.Anything, "bob").Return(nil, shared.ErrNotFound)

		_, errWrongPass := svc.Login(context.Background(), LoginRequest{Username: "alice", Password: "nope"})
		_, errNoUser := svc.Login(context.Background(), LoginRequest{Username: "bob", Password: "nope"})

		require.Error(t, errWrongPass)
		require.Error(t, errNoUser)
		assert.Equal(t, errWrongPass.Error(), errNoUser.Error())
	})

	t.Run("disabled account rejected", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewAuthService(repo, stubIssuer{}, zap.NewNop())
		u := newUser(t)
		u.Deactivate()

		repo.On("FindByUsername", mock.Anything, "alice").Return(u, nil)

		_, err := svc.Login(context.Background(), LoginRequest{Username: "alice", Password: "correct-horse"})
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "ACCOUNT_DISABLED", de.Code)
	})
}

func TestAuthService_Register(t *testing.T) {
	t.Run("creates account with default role", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewAuthService(repo, stubIssuer{}, zap.NewNop())

		repo.On("ExistsByUsername", mock.Anything, "alice").Return(false, nil)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)

		resp, err := svc.Register(context.Background(), RegisterRequest{
			Username: "alice",
			Password: "long-enough-pass",
		})
		require.NoError(t, err)
		assert.Equal(t, "assistant", resp.Role)
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewAuthService(repo, stubIssuer{}, zap.NewNop())

		repo.On("ExistsByUsername", mock.Anything, "alice").Return(true, nil)

		_, err := svc.Register(context.Background(), RegisterRequest{
			Username: "alice",
			Password: "long-enough-pass",
		})
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Save")
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, stubIssuer{}, zap.NewNop())
	u, err := identity.NewUser("alice", "correct-horse", identity.RoleAdmin)
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, u.ID).Return(u, nil)
	repo.On("Save", mock.Anything, u).Return(nil)

	t.Run("wrong old password rejected", func(t *testing.T) {
		err := svc.ChangePassword(context.Background(), u.ID, ChangePasswordRequest{
			OldPassword: "wrong",
			NewPassword: "new-password-123",
		})
		assert.Error(t, err)
	})

	t.Run("valid change succeeds", func(t *testing.T) {
		err := svc.ChangePassword(context.Background(), u.ID, ChangePasswordRequest{
			OldPassword: "correct-horse",
			NewPassword: "new-password-123",
		})
		require.NoError(t, err)
		assert.True(t, u.CheckPassword("new-password-123"))
	})
}
