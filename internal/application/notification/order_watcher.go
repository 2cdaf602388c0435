package notification

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/meditrack/backend/internal/domain/order"
	"go.uber.org/zap"
)

// OrderWatcher detects order changes between scans by diffing status
// snapshots. The first run only seeds the baseline; notifications are
// raised from the second run onward.
type OrderWatcher struct {
	orders   order.Repository
	settings Settings
	center   *Center
	logger   *zap.Logger

	mu       sync.Mutex
	seeded   bool
	snapshot map[uuid.UUID]order.Status
}

// NewOrderWatcher creates a new order watcher
func NewOrderWatcher(orders order.Repository, s Settings, center *Center, logger *zap.Logger) *OrderWatcher {
	return &OrderWatcher{
		orders:   orders,
		settings: s,
		center:   center,
		logger:   logger,
		snapshot: make(map[uuid.UUID]order.Status),
	}
}

// Name implements the scheduler task interface
func (w *OrderWatcher) Name() string { return "order-watcher" }

// Run performs one watch cycle: load the live order list, diff against
// the previous snapshot, notify about new orders and status changes,
// and store the new snapshot. The diff covers every status so that
// transitions into ready_for_pickup, delivered or cancelled are
// reported too, not just moves between the active statuses.
func (w *OrderWatcher) Run(ctx context.Context) error {
	orders, err := w.orders.FindByStatus(ctx, order.AllStatuses()...)
	if err != nil {
		return err
	}

	current := make(map[uuid.UUID]order.Status, len(orders))
	byID := make(map[uuid.UUID]*order.Order, len(orders))
	for idx := range orders {
		o := &orders[idx]
		current[o.ID] = o.Status
		byID[o.ID] = o
	}

	w.mu.Lock()
	previous := w.snapshot
	wasSeeded := w.seeded
	w.snapshot = current
	w.seeded = true
	w.mu.Unlock()

	if !wasSeeded {
		w.logger.Debug("order watcher baseline seeded", zap.Int("orders", len(current)))
		return nil
	}

	for id, status := range current {
		o := byID[id]
		prevStatus, known := previous[id]
		if !known {
			w.post(ctx, Notification{
				Kind:    KindNewOrder,
				Key:     DedupeKey(KindNewOrder, id),
				Title:   "New order",
				Message: fmt.Sprintf("Order %s for %s was created", o.OrderNumber, o.CustomerName),
				OrderID: &o.ID,
			})
			continue
		}
		if prevStatus != status {
			label := StatusLabel(ctx, w.settings, status)
			w.post(ctx, Notification{
				Kind:    KindStatusChange,
				Key:     fmt.Sprintf("%s-%s-%s", KindStatusChange, id, status),
				Title:   "Order updated",
				Message: fmt.Sprintf("Order %s moved to %s", o.OrderNumber, label),
				OrderID: &o.ID,
			})
		}
	}

	return nil
}

func (w *OrderWatcher) post(ctx context.Context, n Notification) {
	if _, err := w.center.Post(ctx, n); err != nil {
		w.logger.Warn("failed to post watcher notification",
			zap.String("key", n.Key),
			zap.Error(err))
	}
}
