package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/meditrack/backend/internal/domain/settings"
	"github.com/meditrack/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Kind classifies a notification
type Kind string

const (
	KindOldOrder       Kind = "old_order"
	KindDelayedOrder   Kind = "delayed_order"
	KindPickupReminder Kind = "pickup_reminder"
	KindLowStock       Kind = "low_stock"
	KindAutoArchive    Kind = "auto_archive"
	KindStatusChange   Kind = "status_change"
	KindNewOrder       Kind = "new_order"
)

// Notification is one entry in the in-app notification center
type Notification struct {
	ID        uuid.UUID  `json:"id"`
	Kind      Kind       `json:"kind"`
	Key       string     `json:"key"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	OrderID   *uuid.UUID `json:"order_id,omitempty"`
	Read      bool       `json:"read"`
	CreatedAt time.Time  `json:"created_at"`
}

// GetID returns the notification ID
func (n Notification) GetID() uuid.UUID { return n.ID }

// DedupeKey builds the deduplication key for a kind and subject ID
func DedupeKey(kind Kind, subjectID uuid.UUID) string {
	return fmt.Sprintf("%s-%s", kind, subjectID)
}

// Store persists notifications
type Store interface {
	Save(ctx context.Context, n *Notification) error
	FindAll(ctx context.Context) ([]Notification, error)
	FindByKey(ctx context.Context, key string) (*Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) error
}

// Settings resolves the notification-related configuration values
type Settings interface {
	GetInt(ctx context.Context, key string) int
	GetBool(ctx context.Context, key string) bool
	GetString(ctx context.Context, key string) string
}

// Center manages in-app notifications. Posting is idempotent per
// deduplication key: a second notification with a key that is already
// present is dropped until the first one is dismissed.
type Center struct {
	store    Store
	settings Settings
	logger   *zap.Logger
}

// NewCenter creates a new notification center
func NewCenter(store Store, settings Settings, logger *zap.Logger) *Center {
	return &Center{
		store:    store,
		settings: settings,
		logger:   logger,
	}
}

// Enabled reports whether notifications are switched on
func (c *Center) Enabled(ctx context.Context) bool {
	return c.settings.GetBool(ctx, settings.KeyNotificationsEnabled)
}

// Post stores a notification unless one with the same key already
// exists or notifications are disabled. It reports whether the
// notification was actually stored.
func (c *Center) Post(ctx context.Context, n Notification) (bool, error) {
	if !c.Enabled(ctx) {
		return false, nil
	}
	if n.Key != "" {
		existing, err := c.store.FindByKey(ctx, n.Key)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return false, err
		}
		if existing != nil {
			return false, nil
		}
	}

	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	if err := c.store.Save(ctx, &n); err != nil {
		return false, err
	}

	c.logger.Debug("notification posted",
		zap.String("kind", string(n.Kind)),
		zap.String("key", n.Key))

	return true, nil
}

// List returns all notifications, newest first
func (c *Center) List(ctx context.Context) ([]Notification, error) {
	items, err := c.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	// Stores return in insertion order; present newest first
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return items, nil
}

// UnreadCount returns the number of unread notifications
func (c *Center) UnreadCount(ctx context.Context) (int, error) {
	items, err := c.store.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, n := range items {
		if !n.Read {
			count++
		}
	}
	return count, nil
}

// MarkRead marks one notification as read
func (c *Center) MarkRead(ctx context.Context, id uuid.UUID) error {
	return c.store.MarkRead(ctx, id)
}

// MarkAllRead marks every notification as read
func (c *Center) MarkAllRead(ctx context.Context) error {
	return c.store.MarkAllRead(ctx)
}

// Dismiss removes one notification, which also frees its dedupe key
func (c *Center) Dismiss(ctx context.Context, id uuid.UUID) error {
	return c.store.Delete(ctx, id)
}

// Clear removes all notifications
func (c *Center) Clear(ctx context.Context) error {
	return c.store.DeleteAll(ctx)
}
