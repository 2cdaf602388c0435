package localstore

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/meditrack/backend/internal/application/notification"
	"github.com/meditrack/backend/internal/domain/shared"
	bolt "go.etcd.io/bbolt"
)

var (
	bucketNotifications   = []byte("notifications")
	bucketDedupeKeys      = []byte("notification_keys")
	bucketNotificationIDs = []byte("notification_ids")
)

// NotificationStore implements notification.Store on top of bbolt.
// Entries are keyed by creation time so iteration yields chronological
// order; two index buckets map dedupe keys and IDs back to entries.
type NotificationStore struct {
	store *Store
}

// NewNotificationStore creates the store and its buckets
func NewNotificationStore(store *Store) (*NotificationStore, error) {
	err := store.DB().Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketNotifications, bucketDedupeKeys, bucketNotificationIDs} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create notification buckets: %w", err)
	}
	return &NotificationStore{store: store}, nil
}

// entryKey orders entries by creation time, with the ID as tiebreaker
func entryKey(n *notification.Notification) []byte {
	key := make([]byte, 8+16)
	binary.BigEndian.PutUint64(key[:8], uint64(n.CreatedAt.UnixNano()))
	copy(key[8:], n.ID[:])
	return key
}

// Save stores a notification
func (s *NotificationStore) Save(ctx context.Context, n *notification.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}

	key := entryKey(n)
	return s.store.DB().Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketNotifications).Put(key, payload); err != nil {
			return err
		}
		if err := tx.Bucket(bucketNotificationIDs).Put(n.ID[:], key); err != nil {
			return err
		}
		if n.Key != "" {
			return tx.Bucket(bucketDedupeKeys).Put([]byte(n.Key), key)
		}
		return nil
	})
}

// FindAll returns all notifications in chronological order
func (s *NotificationStore) FindAll(ctx context.Context) ([]notification.Notification, error) {
	var notifications []notification.Notification
	err := s.store.DB().View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketNotifications).ForEach(func(_, payload []byte) error {
			var n notification.Notification
			if err := json.Unmarshal(payload, &n); err != nil {
				return err
			}
			notifications = append(notifications, n)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

// FindByKey returns the notification stored under a dedupe key
func (s *NotificationStore) FindByKey(ctx context.Context, key string) (*notification.Notification, error) {
	var n *notification.Notification
	err := s.store.DB().View(func(tx *bolt.Tx) error {
		entry := tx.Bucket(bucketDedupeKeys).Get([]byte(key))
		if entry == nil {
			return shared.ErrNotFound
		}
		payload := tx.Bucket(bucketNotifications).Get(entry)
		if payload == nil {
			return shared.ErrNotFound
		}
		n = &notification.Notification{}
		return json.Unmarshal(payload, n)
	})
	if err != nil {
		return nil, err
	}
	return n, nil
}

// MarkRead marks one notification as read
func (s *NotificationStore) MarkRead(ctx context.Context, id uuid.UUID) error {
	return s.store.DB().Update(func(tx *bolt.Tx) error {
		entry := tx.Bucket(bucketNotificationIDs).Get(id[:])
		if entry == nil {
			return shared.ErrNotFound
		}
		bucket := tx.Bucket(bucketNotifications)
		payload := bucket.Get(entry)
		if payload == nil {
			return shared.ErrNotFound
		}

		var n notification.Notification
		if err := json.Unmarshal(payload, &n); err != nil {
			return err
		}
		n.Read = true

		updated, err := json.Marshal(&n)
		if err != nil {
			return err
		}
		return bucket.Put(entry, updated)
	})
}

// MarkAllRead marks every notification as read. Writes happen after the
// scan: putting through a bucket while a cursor iterates it invalidates
// the cursor, and the rewritten payloads change length.
func (s *NotificationStore) MarkAllRead(ctx context.Context) error {
	return s.store.DB().Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketNotifications)

		type rewrite struct {
			key     []byte
			payload []byte
		}
		var rewrites []rewrite

		cursor := bucket.Cursor()
		for key, payload := cursor.First(); key != nil; key, payload = cursor.Next() {
			var n notification.Notification
			if err := json.Unmarshal(payload, &n); err != nil {
				return err
			}
			if n.Read {
				continue
			}
			n.Read = true
			updated, err := json.Marshal(&n)
			if err != nil {
				return err
			}
			rewrites = append(rewrites, rewrite{key: bytes.Clone(key), payload: updated})
		}

		for _, rw := range rewrites {
			if err := bucket.Put(rw.key, rw.payload); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes one notification and frees its dedupe key
func (s *NotificationStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.DB().Update(func(tx *bolt.Tx) error {
		idBucket := tx.Bucket(bucketNotificationIDs)
		entry := idBucket.Get(id[:])
		if entry == nil {
			return shared.ErrNotFound
		}

		bucket := tx.Bucket(bucketNotifications)
		payload := bucket.Get(entry)
		if payload != nil {
			var n notification.Notification
			if err := json.Unmarshal(payload, &n); err != nil {
				return err
			}
			if n.Key != "" {
				if err := tx.Bucket(bucketDedupeKeys).Delete([]byte(n.Key)); err != nil {
					return err
				}
			}
		}

		if err := bucket.Delete(entry); err != nil {
			return err
		}
		return idBucket.Delete(id[:])
	})
}

// DeleteAll removes every notification and all dedupe keys
func (s *NotificationStore) DeleteAll(ctx context.Context) error {
	return s.store.DB().Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketNotifications, bucketDedupeKeys, bucketNotificationIDs} {
			if err := tx.DeleteBucket(name); err != nil {
				return err
			}
			if _, err := tx.CreateBucket(name); err != nil {
				return err
			}
		}
		return nil
	})
}

var _ notification.Store = (*NotificationStore)(nil)
