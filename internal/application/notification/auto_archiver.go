package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/meditrack/backend/internal/domain/order"
	"github.com/meditrack/backend/internal/domain/settings"
	"go.uber.org/zap"
)

// AutoArchiver moves delivered orders older than the configured age to
// the cancelled status, marking them with an archive note. A single
// aggregate notification summarizes each run that archived anything.
type AutoArchiver struct {
	orders   order.Repository
	settings Settings
	center   *Center
	logger   *zap.Logger
	now      func() time.Time
}

// NewAutoArchiver creates a new auto archiver
func NewAutoArchiver(orders order.Repository, s Settings, center *Center, logger *zap.Logger) *AutoArchiver {
	return &AutoArchiver{
		orders:   orders,
		settings: s,
		center:   center,
		logger:   logger,
		now:      time.Now,
	}
}

// Run performs one archive scan. A configured age of zero disables
// archiving entirely. Failures on individual orders are logged and the
// scan continues with the remaining ones.
func (a *AutoArchiver) Run(ctx context.Context) (int, error) {
	days := a.settings.GetInt(ctx, settings.KeyAutoArchiveDays)
	if days <= 0 {
		a.logger.Debug("auto archive disabled")
		return 0, nil
	}

	now := a.now()
	cutoff := now.Add(-time.Duration(days) * 24 * time.Hour)

	candidates, err := a.orders.FindDeliveredBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	archived := 0
	for idx := range candidates {
		o := &candidates[idx]
		age := o.AgeSince(now)

		if err := o.ChangeStatus(order.StatusCancelled); err != nil {
			a.logger.Error("failed to archive order",
				zap.String("order_id", o.ID.String()),
				zap.Error(err))
			continue
		}
		o.AppendInternalNote(fmt.Sprintf("Archived automatically after %d days", age))
		o.AddDomainEvent(order.NewOrderArchivedEvent(o.ID, o.OrderNumber, age))

		if err := a.orders.Save(ctx, o); err != nil {
			a.logger.Error("failed to persist archived order",
				zap.String("order_id", o.ID.String()),
				zap.Error(err))
			continue
		}
		archived++
	}

	if archived > 0 {
		_, err := a.center.Post(ctx, Notification{
			Kind:    KindAutoArchive,
			Key:     fmt.Sprintf("%s-%s", KindAutoArchive, now.Format("2006-01-02")),
			Title:   "Orders archived",
			Message: fmt.Sprintf("%d delivered orders were archived automatically", archived),
		})
		if err != nil {
			a.logger.Warn("failed to post archive notification", zap.Error(err))
		}
	}

	a.logger.Info("auto archive scan finished",
		zap.Int("archived", archived),
		zap.Int("candidates", len(candidates)))

	return archived, nil
}
