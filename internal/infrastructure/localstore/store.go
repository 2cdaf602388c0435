package localstore

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Store wraps a bbolt database file. It backs the notification center
// and keeps working without postgres, matching the single-pharmacy
// desktop deployment.
type Store struct {
	db *bolt.DB
}

// Open opens or creates the database file at path
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database file
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the underlying bbolt handle for bucket-specific stores
func (s *Store) DB() *bolt.DB {
	return s.db
}
