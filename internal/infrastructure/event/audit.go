package event

import (
	"context"

	"github.com/meditrack/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// AuditHandler writes every domain event to the structured log so
// order history survives in the log stream even after records are
// cleared.
type AuditHandler struct {
	logger *zap.Logger
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(logger *zap.Logger) *AuditHandler {
	return &AuditHandler{logger: logger}
}

// Handle logs one domain event
func (h *AuditHandler) Handle(_ context.Context, evt shared.DomainEvent) error {
	h.logger.Info("domain event",
		zap.String("event_type", evt.EventType()),
		zap.String("event_id", evt.EventID().String()),
		zap.String("aggregate_type", evt.AggregateType()),
		zap.String("aggregate_id", evt.AggregateID().String()),
		zap.Time("occurred_at", evt.OccurredAt()))
	return nil
}

// EventTypes returns an empty slice; the audit handler must be
// subscribed with an explicit type list.
func (h *AuditHandler) EventTypes() []string { return nil }
