package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/meditrack/backend/internal/domain/catalog"
	"github.com/meditrack/backend/internal/domain/order"
	"github.com/meditrack/backend/internal/domain/settings"
	"go.uber.org/zap"
)

// OrderAlerts runs the periodic alert scan: stale pending orders,
// delayed supplier orders, arrived orders waiting for pickup, and low
// or exhausted stock.
type OrderAlerts struct {
	orders   order.Repository
	items    catalog.InventoryRepository
	settings Settings
	center   *Center
	logger   *zap.Logger
	now      func() time.Time
}

// AlertCounts summarizes what a scan would flag without posting
// anything to the notification center.
type AlertCounts struct {
	StaleOrders     int `json:"stale_orders"`
	DelayedOrders   int `json:"delayed_orders"`
	PickupReminders int `json:"pickup_reminders"`
	LowStockItems   int `json:"low_stock_items"`
}

// Total returns the sum of all alert counts
func (c AlertCounts) Total() int {
	return c.StaleOrders + c.DelayedOrders + c.PickupReminders + c.LowStockItems
}

// NewOrderAlerts creates a new alert scanner
func NewOrderAlerts(orders order.Repository, items catalog.InventoryRepository, s Settings, center *Center, logger *zap.Logger) *OrderAlerts {
	return &OrderAlerts{
		orders:   orders,
		items:    items,
		settings: s,
		center:   center,
		logger:   logger,
		now:      time.Now,
	}
}

// Run performs one alert scan, posting deduplicated notifications
func (a *OrderAlerts) Run(ctx context.Context) (AlertCounts, error) {
	counts, err := a.scan(ctx, true)
	if err != nil {
		return counts, err
	}
	a.logger.Info("alert scan finished",
		zap.Int("stale_orders", counts.StaleOrders),
		zap.Int("delayed_orders", counts.DelayedOrders),
		zap.Int("pickup_reminders", counts.PickupReminders),
		zap.Int("low_stock_items", counts.LowStockItems))
	return counts, nil
}

// Counts performs a read-only scan, reporting what would be flagged
// without writing any notifications.
func (a *OrderAlerts) Counts(ctx context.Context) (AlertCounts, error) {
	return a.scan(ctx, false)
}

func (a *OrderAlerts) scan(ctx context.Context, post bool) (AlertCounts, error) {
	var counts AlertCounts
	now := a.now()

	staleDays := a.settings.GetInt(ctx, settings.KeyOldOrderThreshold)
	pickupDays := a.settings.GetInt(ctx, settings.KeyPickupReminderDays)

	active, err := a.orders.FindActive(ctx)
	if err != nil {
		return counts, err
	}

	for idx := range active {
		o := &active[idx]
		age := o.AgeSince(now)

		switch {
		case o.Status == order.StatusPending && age > staleDays:
			counts.StaleOrders++
			if post {
				a.post(ctx, Notification{
					Kind:    KindOldOrder,
					Key:     DedupeKey(KindOldOrder, o.ID),
					Title:   "Stale order",
					Message: fmt.Sprintf("Order %s for %s has been pending for %d days", o.OrderNumber, o.CustomerName, age),
					OrderID: &o.ID,
				})
			}
		case o.Status == order.StatusOrdered && age > staleDays-2:
			counts.DelayedOrders++
			if post {
				a.post(ctx, Notification{
					Kind:    KindDelayedOrder,
					Key:     DedupeKey(KindDelayedOrder, o.ID),
					Title:   "Delayed order",
					Message: fmt.Sprintf("Order %s for %s was sent to the supplier %d days ago and has not arrived", o.OrderNumber, o.CustomerName, age),
					OrderID: &o.ID,
				})
			}
		case o.Status == order.StatusArrived && age > pickupDays:
			counts.PickupReminders++
			if post {
				a.post(ctx, Notification{
					Kind:    KindPickupReminder,
					Key:     DedupeKey(KindPickupReminder, o.ID),
					Title:   "Pickup reminder",
					Message: fmt.Sprintf("Order %s for %s arrived %d days ago and has not been picked up", o.OrderNumber, o.CustomerName, age),
					OrderID: &o.ID,
				})
			}
		}
	}

	if a.settings.GetBool(ctx, settings.KeyLowStockAlertsEnabled) {
		low, err := a.items.FindLowStock(ctx)
		if err != nil {
			return counts, err
		}
		out, err := a.items.FindOutOfStock(ctx)
		if err != nil {
			return counts, err
		}
		for _, item := range append(low, out...) {
			counts.LowStockItems++
			if post {
				status := "running low"
				if item.Quantity == 0 {
					status = "out of stock"
				}
				a.post(ctx, Notification{
					Kind:    KindLowStock,
					Key:     DedupeKey(KindLowStock, item.ID),
					Title:   "Stock alert",
					Message: fmt.Sprintf("%s is %s (%d remaining)", item.Name, status, item.Quantity),
				})
			}
		}
	}

	return counts, nil
}

func (a *OrderAlerts) post(ctx context.Context, n Notification) {
	if _, err := a.center.Post(ctx, n); err != nil {
		a.logger.Warn("failed to post alert notification",
			zap.String("key", n.Key),
			zap.Error(err))
	}
}
