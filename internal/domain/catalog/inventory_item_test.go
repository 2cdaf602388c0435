package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInventoryItem(t *testing.T) {
	t.Run("creates valid item", func(t *testing.T) {
		item, err := NewInventoryItem("Paracetamol", "tablet", 50, 10)

		require.NoError(t, err)
		assert.Equal(t, "Paracetamol", item.Name)
		assert.Equal(t, 50, item.Quantity)
		assert.Equal(t, 10, item.MinStockLevel)
		assert.True(t, item.IsActive)
		assert.NotNil(t, item.LastRestockedAt)
	})

	t.Run("zero initial stock leaves restock timestamp unset", func(t *testing.T) {
		item, err := NewInventoryItem("Paracetamol", "tablet", 0, 10)
		require.NoError(t, err)
		assert.Nil(t, item.LastRestockedAt)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewInventoryItem("", "tablet", 0, 0)
		assert.Error(t, err)
	})

	t.Run("fails with negative quantity", func(t *testing.T) {
		_, err := NewInventoryItem("Paracetamol", "tablet", -1, 0)
		assert.Error(t, err)
	})
}

func TestInventoryItem_StockStatus(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		minLevel int
		want     StockStatus
	}{
		{"zero quantity is out of stock", 0, 10, StockStatusOutOfStock},
		{"zero quantity with zero threshold is out of stock", 0, 0, StockStatusOutOfStock},
		{"at threshold is low stock", 10, 10, StockStatusLowStock},
		{"below threshold is low stock", 5, 10, StockStatusLowStock},
		{"above threshold is in stock", 11, 10, StockStatusInStock},
		{"positive quantity with zero threshold is in stock", 1, 0, StockStatusInStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := &InventoryItem{Quantity: tt.quantity, MinStockLevel: tt.minLevel}
			assert.Equal(t, tt.want, item.StockStatus())
		})
	}
}

func TestInventoryItem_AdjustStock(t *testing.T) {
	t.Run("applies positive and negative deltas", func(t *testing.T) {
		item, err := NewInventoryItem("Paracetamol", "tablet", 10, 5)
		require.NoError(t, err)

		require.NoError(t, item.AdjustStock(5))
		assert.Equal(t, 15, item.Quantity)

		require.NoError(t, item.AdjustStock(-15))
		assert.Equal(t, 0, item.Quantity)
	})

	t.Run("rejects adjustment below zero", func(t *testing.T) {
		item, err := NewInventoryItem("Paracetamol", "tablet", 10, 5)
		require.NoError(t, err)

		err = item.AdjustStock(-11)
		assert.Error(t, err)
		assert.Equal(t, 10, item.Quantity)
	})

	t.Run("restock updates last restocked timestamp", func(t *testing.T) {
		item, err := NewInventoryItem("Paracetamol", "tablet", 0, 5)
		require.NoError(t, err)
		require.Nil(t, item.LastRestockedAt)

		require.NoError(t, item.AdjustStock(20))
		assert.NotNil(t, item.LastRestockedAt)
	})
}

func TestInventoryItem_UpdateStock(t *testing.T) {
	item, err := NewInventoryItem("Paracetamol", "tablet", 10, 5)
	require.NoError(t, err)

	require.NoError(t, item.UpdateStock(0))
	assert.Equal(t, 0, item.Quantity)

	assert.Error(t, item.UpdateStock(-1))
}

func TestInventoryItem_Barcodes(t *testing.T) {
	newItem := func(t *testing.T) *InventoryItem {
		item, err := NewInventoryItem("Paracetamol", "tablet", 10, 5)
		require.NoError(t, err)
		return item
	}

	t.Run("first barcode becomes primary", func(t *testing.T) {
		item := newItem(t)
		require.NoError(t, item.AddBarcode("4006381333931"))
		require.NoError(t, item.AddBarcode("4006381333948"))

		primary := item.PrimaryBarcode()
		require.NotNil(t, primary)
		assert.Equal(t, "4006381333931", primary.Code)
	})

	t.Run("duplicate barcode rejected", func(t *testing.T) {
		item := newItem(t)
		require.NoError(t, item.AddBarcode("4006381333931"))
		assert.Error(t, item.AddBarcode("4006381333931"))
	})

	t.Run("cannot remove last barcode", func(t *testing.T) {
		item := newItem(t)
		require.NoError(t, item.AddBarcode("4006381333931"))
		assert.Error(t, item.RemoveBarcode("4006381333931"))
	})

	t.Run("removing primary promotes another", func(t *testing.T) {
		item := newItem(t)
		require.NoError(t, item.AddBarcode("4006381333931"))
		require.NoError(t, item.AddBarcode("4006381333948"))

		require.NoError(t, item.RemoveBarcode("4006381333931"))
		primary := item.PrimaryBarcode()
		require.NotNil(t, primary)
		assert.Equal(t, "4006381333948", primary.Code)
	})

	t.Run("set primary demotes others", func(t *testing.T) {
		item := newItem(t)
		require.NoError(t, item.AddBarcode("4006381333931"))
		require.NoError(t, item.AddBarcode("4006381333948"))

		require.NoError(t, item.SetPrimaryBarcode("4006381333948"))
		assert.False(t, item.Barcodes[0].IsPrimary)
		assert.True(t, item.Barcodes[1].IsPrimary)
	})

	t.Run("set primary fails for unknown code", func(t *testing.T) {
		item := newItem(t)
		require.NoError(t, item.AddBarcode("4006381333931"))
		assert.Error(t, item.SetPrimaryBarcode("0000000000000"))
	})
}

func TestInventoryItem_SetPricing(t *testing.T) {
	item, err := NewInventoryItem("Paracetamol", "tablet", 10, 5)
	require.NoError(t, err)

	require.NoError(t, item.SetPricing(decimal.NewFromFloat(9.99), decimal.NewFromFloat(4.50)))
	assert.True(t, item.UnitPrice.Equal(decimal.NewFromFloat(9.99)))

	assert.Error(t, item.SetPricing(decimal.NewFromFloat(-1), decimal.Zero))
}

func TestInventoryItem_SoftDelete(t *testing.T) {
	item, err := NewInventoryItem("Paracetamol", "tablet", 10, 5)
	require.NoError(t, err)

	item.MarkDeleted()
	assert.True(t, item.IsDeleted())

	item.Restore()
	assert.False(t, item.IsDeleted())
}

func TestComputeStockStatistics(t *testing.T) {
	item, err := NewInventoryItem("Paracetamol", "tablet", 10, 5)
	require.NoError(t, err)

	entries := []StockHistory{
		*NewStockHistory(item.ID, AdjustmentInitial, 0, 10, "initial stock"),
		*NewStockHistory(item.ID, AdjustmentAdd, 10, 25, "restock"),
		*NewStockHistory(item.ID, AdjustmentSubtract, 25, 20, "sale"),
		*NewStockHistory(item.ID, AdjustmentAdd, 20, 30, "restock"),
	}

	stats := ComputeStockStatistics(entries)
	assert.Equal(t, int64(4), stats.TotalAdjustments)
	assert.Equal(t, int64(35), stats.TotalAdded)
	assert.Equal(t, int64(5), stats.TotalRemoved)
	assert.Equal(t, AdjustmentAdd, stats.MostCommonAdjustmentType)
}
