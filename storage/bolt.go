package storage

import (
	"fmt"
	"os"
	"path/filepath"

	bolt "go.etcd.io/bbolt"
)

var bucketSlots = []byte("slots")

// BoltSlots stores slots in a single bbolt bucket.
type BoltSlots struct {
	db *bolt.DB
}

// NewBoltSlots opens (or creates) the bbolt file at path.
func NewBoltSlots(path string) (*BoltSlots, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data dir: %w", err)
		}
	}

	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketSlots); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", bucketSlots, err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltSlots{db: db}, nil
}

func (s *BoltSlots) Get(key string) (string, bool, error) {
	var (
		value string
		found bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketSlots).Get([]byte(key))
		if data != nil {
			// data is only valid inside the transaction
			value = string(data)
			found = true
		}
		return nil
	})
	return value, found, err
}

func (s *BoltSlots) Set(key, value string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSlots).Put([]byte(key), []byte(value))
	})
}

func (s *BoltSlots) Remove(key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSlots).Delete([]byte(key))
	})
}

// Close closes the database
func (s *BoltSlots) Close() error {
	return s.db.Close()
}
