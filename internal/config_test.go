package internal_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartg5/storefront/internal"
)

// Test_NewConfig_Defaults validates the baked-in defaults when nothing is
// configured.
func Test_NewConfig_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

	cfg, err := internal.NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "https://smartg5.com/api", cfg.APIBaseURL)
	assert.Equal(t, "https://smartg5.com", cfg.AssetBaseURL)
	assert.Equal(t, uint16(30), cfg.HTTPTimeoutSeconds)
	assert.True(t, cfg.RemoteCartSync)
	assert.Equal(t, "local", cfg.Storage.Provider)
	assert.NotEmpty(t, cfg.Storage.Path)
}

// Test_NewConfig_FileThenEnvPrecedence validates the merge order: defaults,
// then the YAML file, then environment variables.
func Test_NewConfig_FileThenEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "storefront.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
env: prod
api_base_url: https://staging.smartg5.com/api
checkout:
  shipping_flat_fee_cents: 500
  tax_rate: 0.08
`), 0o644))

	t.Setenv("CONFIG_FILE", file)
	t.Setenv("API_BASE_URL", "https://override.smartg5.com/api")

	cfg, err := internal.NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env, "file overrides default")
	assert.Equal(t, "https://override.smartg5.com/api", cfg.APIBaseURL, "env overrides file")
	assert.Equal(t, int64(500), cfg.Checkout.ShippingFlatFeeCents)
	assert.Equal(t, 0.08, cfg.Checkout.TaxRate)
}

// Test_NewConfig_RejectsBadValues validates the validation pass.
func Test_NewConfig_RejectsBadValues(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("TAX_RATE", "1.5")

	_, err := internal.NewConfig()
	assert.Error(t, err)
}

// Test_NewConfig_MalformedFileIsError validates that a present but broken
// config file fails loudly instead of being skipped.
func Test_NewConfig_MalformedFileIsError(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "storefront.yaml")
	require.NoError(t, os.WriteFile(file, []byte("env: [unclosed"), 0o644))
	t.Setenv("CONFIG_FILE", file)

	_, err := internal.NewConfig()
	assert.Error(t, err)
}
