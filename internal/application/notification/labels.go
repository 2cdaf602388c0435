package notification

import (
	"context"

	"github.com/meditrack/backend/internal/domain/order"
	"github.com/meditrack/backend/internal/domain/settings"
)

var statusLabels = map[string]map[order.Status]string{
	"en": {
		order.StatusPending:        "Pending",
		order.StatusOrdered:        "Ordered",
		order.StatusArrived:        "Arrived",
		order.StatusReadyForPickup: "Ready for pickup",
		order.StatusDelivered:      "Delivered",
		order.StatusCancelled:      "Cancelled",
	},
	"ar": {
		order.StatusPending:        "قيد الانتظار",
		order.StatusOrdered:        "تم الطلب",
		order.StatusArrived:        "وصل",
		order.StatusReadyForPickup: "جاهز للاستلام",
		order.StatusDelivered:      "تم التسليم",
		order.StatusCancelled:      "ملغي",
	},
}

// StatusLabel returns the localized display label for an order status
// in the configured interface language. Unknown statuses or languages
// fall back to the raw status string.
func StatusLabel(ctx context.Context, s Settings, status order.Status) string {
	lang := s.GetString(ctx, settings.KeyLanguage)
	labels, ok := statusLabels[lang]
	if !ok {
		labels = statusLabels["en"]
	}
	if label, ok := labels[status]; ok {
		return label
	}
	return string(status)
}
