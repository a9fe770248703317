package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage implements Storage on the local filesystem, one file per
// key. This is the on-device durable cache for cart and wishlist state.
type LocalStorage struct {
	basePath string // Root directory for stored values (e.g., "~/.smartg5")
}

// NewLocalStorage creates a filesystem-backed storage implementation.
// basePath is created if it does not exist.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{basePath: basePath}, nil
}

// Put writes value to the key's file. The write goes through a temp file
// and rename so a crash mid-write cannot leave a truncated value behind.
func (s *LocalStorage) Put(ctx context.Context, key string, value []byte) error {
	path := s.path(key)

	tmp, err := os.CreateTemp(s.basePath, filename(key)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write value: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace value file: %w", err)
	}
	return nil
}

// Get reads the value stored under key.
func (s *LocalStorage) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrKeyNotFound(key)
		}
		return nil, fmt.Errorf("failed to read value: %w", err)
	}
	return value, nil
}

// Delete removes the key's file. Missing files are ignored.
func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete value: %w", err)
	}
	return nil
}

// Exists checks if a value file exists for key.
func (s *LocalStorage) Exists(ctx context.Context, key string) (bool, error) {
	_, err := os.Stat(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check key existence: %w", err)
	}
	return true, nil
}

func (s *LocalStorage) path(key string) string {
	return filepath.Join(s.basePath, filename(key)+".json")
}

// filename maps a key to a safe file name. Keys are dotted namespaces
// (e.g., "smartg5.cart"), never user input.
func filename(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, key)
}
