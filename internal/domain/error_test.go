package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smartg5/storefront/internal/domain"
)

// Test_ErrorCode_Classification validates code extraction through wrapping.
func Test_ErrorCode_Classification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil error", err: nil, want: ""},
		{
			name: "domain error",
			err:  domain.Invalid("store.add_to_cart", "bad quantity"),
			want: domain.EINVALID,
		},
		{
			name: "wrapped domain error",
			err:  fmt.Errorf("failed to refresh: %w", domain.NotFound("api.product", "product", "p1")),
			want: domain.ENOTFOUND,
		},
		{name: "plain error", err: errors.New("boom"), want: domain.EINTERNAL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ErrorCode(tt.err))
		})
	}
}

// Test_ErrorMessage_HidesInternalDetails validates that internal errors
// never leak their underlying message to users.
func Test_ErrorMessage_HidesInternalDetails(t *testing.T) {
	internal := domain.Internal(errors.New("pq: connection refused"), "storage.get", "read failed")
	assert.NotContains(t, domain.ErrorMessage(internal), "connection refused")

	invalid := domain.Invalid("store.add_to_cart", "Quantity must be greater than 0")
	assert.Equal(t, "Quantity must be greater than 0", domain.ErrorMessage(invalid))

	assert.NotEmpty(t, domain.ErrorMessage(errors.New("raw")))
}

// Test_Error_FormatsOpAndCause validates the rendered error string.
func Test_Error_FormatsOpAndCause(t *testing.T) {
	cause := errors.New("dial tcp: timeout")
	err := domain.Unavailable(cause, "api.categories", "request failed")

	assert.Contains(t, err.Error(), "api.categories")
	assert.Contains(t, err.Error(), "request failed")
	assert.Contains(t, err.Error(), "dial tcp")
	assert.ErrorIs(t, err, cause, "unwrapping reaches the cause")
}

// Test_IsCode validates classification through wrapped chains.
func Test_IsCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", domain.ErrCartNotFound)

	assert.True(t, domain.IsCode(err, domain.ENOTFOUND))
	assert.False(t, domain.IsCode(err, domain.EINVALID))
	assert.False(t, domain.IsCode(nil, domain.ENOTFOUND))
}
