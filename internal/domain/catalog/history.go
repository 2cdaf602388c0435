package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AdjustmentType classifies how a stock quantity was changed
type AdjustmentType string

const (
	AdjustmentInitial  AdjustmentType = "initial"
	AdjustmentSet      AdjustmentType = "set"
	AdjustmentAdd      AdjustmentType = "add"
	AdjustmentSubtract AdjustmentType = "subtract"
)

// StockHistory is an append-only record of one stock change
type StockHistory struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey"`
	ItemID           uuid.UUID      `gorm:"type:uuid;not null;index"`
	AdjustmentType   AdjustmentType `gorm:"type:varchar(20);not null"`
	QuantityBefore   int            `gorm:"not null"`
	QuantityAfter    int            `gorm:"not null"`
	AdjustmentAmount int            `gorm:"not null"`
	Reason           string         `gorm:"type:text"`
	ReferenceID      *uuid.UUID     `gorm:"type:uuid"`
	ReferenceType    string         `gorm:"type:varchar(50)"`
	RecordedBy       string         `gorm:"type:varchar(100)"`
	RecordedAt       time.Time      `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (StockHistory) TableName() string {
	return "inventory_stock_history"
}

// NewStockHistory records one stock change for an item
func NewStockHistory(itemID uuid.UUID, adjType AdjustmentType, before, after int, reason string) *StockHistory {
	return &StockHistory{
		ID:               uuid.New(),
		ItemID:           itemID,
		AdjustmentType:   adjType,
		QuantityBefore:   before,
		QuantityAfter:    after,
		AdjustmentAmount: after - before,
		Reason:           reason,
		RecordedAt:       time.Now(),
	}
}

// WithReference attaches the source record that caused the adjustment
func (h *StockHistory) WithReference(refID uuid.UUID, refType string) *StockHistory {
	h.ReferenceID = &refID
	h.ReferenceType = refType
	return h
}

// WithRecorder attaches the user who made the adjustment
func (h *StockHistory) WithRecorder(recordedBy string) *StockHistory {
	h.RecordedBy = recordedBy
	return h
}

// PriceHistory is an append-only record of one price change
type PriceHistory struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ItemID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	PriceBefore decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PriceAfter  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Reason      string          `gorm:"type:text"`
	RecordedAt  time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (PriceHistory) TableName() string {
	return "inventory_price_history"
}

// NewPriceHistory records one unit price change for an item
func NewPriceHistory(itemID uuid.UUID, before, after decimal.Decimal, reason string) *PriceHistory {
	return &PriceHistory{
		ID:          uuid.New(),
		ItemID:      itemID,
		PriceBefore: before,
		PriceAfter:  after,
		Reason:      reason,
		RecordedAt:  time.Now(),
	}
}

// StockStatistics aggregates stock movement data for one item
type StockStatistics struct {
	TotalAdjustments         int64          `json:"total_adjustments"`
	TotalAdded               int64          `json:"total_added"`
	TotalRemoved             int64          `json:"total_removed"`
	MostCommonAdjustmentType AdjustmentType `json:"most_common_adjustment_type"`
}

// ComputeStockStatistics derives statistics from a list of history entries
func ComputeStockStatistics(entries []StockHistory) StockStatistics {
	stats := StockStatistics{}
	counts := make(map[AdjustmentType]int64)
	for _, e := range entries {
		stats.TotalAdjustments++
		if e.AdjustmentAmount > 0 {
			stats.TotalAdded += int64(e.AdjustmentAmount)
		} else {
			stats.TotalRemoved += int64(-e.AdjustmentAmount)
		}
		counts[e.AdjustmentType]++
	}
	var best int64
	for adjType, n := range counts {
		if n > best || (n == best && adjType < stats.MostCommonAdjustmentType) {
			best = n
			stats.MostCommonAdjustmentType = adjType
		}
	}
	return stats
}
