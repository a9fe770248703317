package storage

import "fmt"

// ============================================================================
// STORAGE ERROR CODES
// ============================================================================
// These constants mirror domain error codes to avoid circular imports.

const (
	codeInvalid  = "invalid"
	codeNotFound = "not_found"
)

// StorageError represents a storage-specific error with a code and message.
type StorageError struct {
	Code    string
	Message string
}

func (e *StorageError) Error() string {
	return e.Message
}

// ErrorCode returns the error code for classification.
func (e *StorageError) ErrorCode() string {
	return e.Code
}

// ErrKeyNotFound creates an error for a missing key. Callers treat this as
// "empty", never as fatal.
func ErrKeyNotFound(key string) error {
	return &StorageError{
		Code:    codeNotFound,
		Message: fmt.Sprintf("key not found: %s", key),
	}
}

// ErrUnknownProvider creates an error for unknown storage providers.
func ErrUnknownProvider(provider string) error {
	return &StorageError{
		Code:    codeInvalid,
		Message: fmt.Sprintf("unknown storage provider: %s", provider),
	}
}

// IsNotFound reports whether err is a missing-key storage error.
func IsNotFound(err error) bool {
	se, ok := err.(*StorageError)
	return ok && se.Code == codeNotFound
}
