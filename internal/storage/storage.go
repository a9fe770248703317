// Package storage provides the durable device-local cache behind the
// client state store. It is a namespaced key-value store of whole JSON
// payloads: values are always written and replaced in full, never patched.
package storage

import "context"

// Storage defines the interface for the durable key-value cache.
// Implementations: LocalStorage (filesystem), MockStorage (tests).
type Storage interface {
	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Get retrieves the value stored under key.
	// Returns an error satisfying IsNotFound when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes key. Deleting an absent key is not an error
	// (idempotent): absence of a key and an empty value are treated
	// identically by readers.
	Delete(ctx context.Context, key string) error

	// Exists checks if a value is stored under key.
	Exists(ctx context.Context, key string) (bool, error)
}

// Config selects and configures a Storage implementation.
type Config struct {
	Provider string // "local" or "mock"
	Path     string // Root directory for the local provider
}

// NewStorage creates a Storage implementation based on configuration.
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Provider {
	case "local", "":
		return NewLocalStorage(cfg.Path)
	case "mock":
		return NewMockStorage(), nil
	default:
		return nil, ErrUnknownProvider(cfg.Provider)
	}
}
