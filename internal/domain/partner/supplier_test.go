package partner

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSupplier(t *testing.T) {
	t.Run("creates valid supplier", func(t *testing.T) {
		s, err := NewSupplier("PharmaDirect GmbH", "+49 30 1234567")

		require.NoError(t, err)
		assert.Equal(t, "PharmaDirect GmbH", s.Name)
		assert.Equal(t, "+49 30 1234567", s.Phone)
		assert.True(t, s.IsActive)
		assert.False(t, s.IsDeleted())
		assert.Len(t, s.GetDomainEvents(), 1)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewSupplier("  ", "555-0100")
		assert.Error(t, err)
	})

	t.Run("fails with empty phone", func(t *testing.T) {
		_, err := NewSupplier("PharmaDirect", "")
		assert.Error(t, err)
	})
}

func TestSupplier_SetRating(t *testing.T) {
	s, err := NewSupplier("PharmaDirect", "555-0100")
	require.NoError(t, err)

	t.Run("accepts boundary ratings", func(t *testing.T) {
		assert.NoError(t, s.SetRating(decimal.Zero))
		assert.NoError(t, s.SetRating(decimal.NewFromInt(5)))
		assert.NoError(t, s.SetRating(decimal.NewFromFloat(4.5)))
	})

	t.Run("rejects out-of-range ratings", func(t *testing.T) {
		assert.Error(t, s.SetRating(decimal.NewFromFloat(-0.1)))
		assert.Error(t, s.SetRating(decimal.NewFromFloat(5.1)))
	})
}

func TestSupplier_Lifecycle(t *testing.T) {
	s, err := NewSupplier("PharmaDirect", "555-0100")
	require.NoError(t, err)

	t.Run("deactivate and activate", func(t *testing.T) {
		s.Deactivate()
		assert.False(t, s.IsActive)

		s.Activate()
		assert.True(t, s.IsActive)
	})

	t.Run("soft delete and restore", func(t *testing.T) {
		s.MarkDeleted()
		assert.True(t, s.IsDeleted())

		s.Restore()
		assert.False(t, s.IsDeleted())
	})
}

func TestSupplier_RecordOrder(t *testing.T) {
	s, err := NewSupplier("PharmaDirect", "555-0100")
	require.NoError(t, err)

	s.RecordOrder()
	s.RecordOrder()
	assert.Equal(t, 2, s.TotalOrdersCount)
}

func TestSupplier_UpdateContact(t *testing.T) {
	s, err := NewSupplier("PharmaDirect", "555-0100")
	require.NoError(t, err)

	t.Run("updates all contact fields", func(t *testing.T) {
		err := s.UpdateContact("555-0200", "555-0201", "orders@pharmadirect.example", "Main St 1")
		require.NoError(t, err)
		assert.Equal(t, "555-0200", s.Phone)
		assert.Equal(t, "555-0201", s.Whatsapp)
		assert.Equal(t, "orders@pharmadirect.example", s.Email)
		assert.Equal(t, "Main St 1", s.Address)
	})

	t.Run("rejects empty phone", func(t *testing.T) {
		err := s.UpdateContact("", "", "", "")
		assert.Error(t, err)
		assert.Equal(t, "555-0200", s.Phone)
	})
}

func TestSupplier_SetAvgDeliveryDays(t *testing.T) {
	s, err := NewSupplier("PharmaDirect", "555-0100")
	require.NoError(t, err)

	assert.NoError(t, s.SetAvgDeliveryDays(3))
	assert.Equal(t, 3, s.AvgDeliveryDays)
	assert.Error(t, s.SetAvgDeliveryDays(-1))
}
