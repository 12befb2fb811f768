// Package storage provides named string slots backed by a pluggable engine.
// Every backend stores opaque values; callers own the encoding.
package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/javaloayza/postboard/config"
	"github.com/javaloayza/postboard/utils"
)

// ErrUnavailable is returned when the backing engine cannot be reached.
var ErrUnavailable = errors.New("storage unavailable")

// Slots is a tiny key/value surface: named slots holding string values.
type Slots interface {
	// Get returns the value of key and whether it exists.
	Get(key string) (string, bool, error)
	// Set overwrites the value of key.
	Set(key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(key string) error
	Close() error
}

// Open builds the Slots backend selected by cfg.StorageDriver.
func Open(cfg config.AppConfig) (Slots, error) {
	driver := strings.ToLower(cfg.StorageDriver)
	switch driver {
	case "memory":
		return NewMemorySlots(), nil
	case "bolt", "bbolt":
		return NewBoltSlots(cfg.BoltPath)
	case "redis":
		client, err := utils.NewRedisClient(cfg)
		if err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("%w: redis: %v", ErrUnavailable, err)
		}
		return NewRedisSlots(client), nil
	case "sqlite", "mysql", "postgres", "":
		db, err := config.OpenDatabase(cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return NewGormSlots(db), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
