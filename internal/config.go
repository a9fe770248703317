package internal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Env          string `yaml:"env"`
	LogLevel     string `yaml:"log_level"`
	APIBaseURL   string `yaml:"api_base_url"`
	AssetBaseURL string `yaml:"asset_base_url"`

	// HTTPTimeoutSeconds bounds every request to the remote API.
	HTTPTimeoutSeconds uint16 `yaml:"http_timeout_seconds"`

	// RemoteCartSync mirrors cart mutations to the backend cart endpoints.
	RemoteCartSync bool `yaml:"remote_cart_sync"`

	MetricsNamespace string `yaml:"metrics_namespace"`

	Checkout CheckoutConfig `yaml:"checkout"`
	Storage  StorageConfig  `yaml:"storage"`
}

// CheckoutConfig holds the pricing policy applied to cart totals.
type CheckoutConfig struct {
	// ShippingFlatFeeCents is charged once per non-empty cart. Zero means
	// free shipping.
	ShippingFlatFeeCents int64 `yaml:"shipping_flat_fee_cents"`

	// TaxRate is a fraction, e.g. 0.08 for 8%. Zero disables tax.
	TaxRate float64 `yaml:"tax_rate"`
}

type StorageConfig struct {
	Provider string `yaml:"provider"` // "local" or "mock"
	Path     string `yaml:"path"`
}

// NewConfig builds configuration from defaults, an optional storefront.yaml
// in the working directory, then environment variables (optionally via a
// .env file). Environment values win over the file.
func NewConfig() (*Config, error) {
	// Try to load .env from current directory, then walk up to find it (max 2 levels)
	err := godotenv.Load()
	if err != nil {
		dir, _ := os.Getwd()
		found := false
		for i := 0; i < 2; i++ {
			dir = filepath.Join(dir, "..")
			if err := godotenv.Load(filepath.Join(dir, ".env")); err == nil {
				found = true
				break
			}
		}
		if !found {
			slog.Default().Warn("Warning: .env file not found, using environment variables and defaults")
		}
	}

	cfg := &Config{
		Env:                "dev",
		LogLevel:           "info",
		APIBaseURL:         "https://smartg5.com/api",
		AssetBaseURL:       "https://smartg5.com",
		HTTPTimeoutSeconds: 30,
		RemoteCartSync:     true,
		MetricsNamespace:   "smartg5",
		Storage: StorageConfig{
			Provider: "local",
			Path:     defaultStoragePath(),
		},
	}

	if err := loadConfigFile(cfg, getEnv("CONFIG_FILE", "storefront.yaml")); err != nil {
		return nil, err
	}

	cfg.Env = getEnv("ENV", cfg.Env)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.APIBaseURL = getEnv("API_BASE_URL", cfg.APIBaseURL)
	cfg.AssetBaseURL = getEnv("ASSET_BASE_URL", cfg.AssetBaseURL)
	cfg.HTTPTimeoutSeconds = getEnvInt("HTTP_TIMEOUT_SECONDS", cfg.HTTPTimeoutSeconds)
	cfg.RemoteCartSync = getEnvBool("REMOTE_CART_SYNC", cfg.RemoteCartSync)
	cfg.MetricsNamespace = getEnv("METRICS_NAMESPACE", cfg.MetricsNamespace)
	cfg.Checkout.ShippingFlatFeeCents = getEnvInt64("SHIPPING_FLAT_FEE_CENTS", cfg.Checkout.ShippingFlatFeeCents)
	cfg.Checkout.TaxRate = getEnvFloat("TAX_RATE", cfg.Checkout.TaxRate)
	cfg.Storage.Provider = getEnv("STORAGE_PROVIDER", cfg.Storage.Provider)
	cfg.Storage.Path = getEnv("STORAGE_PATH", cfg.Storage.Path)

	// Validate env
	validEnv := cfg.Env == "dev" || cfg.Env == "prod"
	if !validEnv {
		slog.Default().Warn("Invalid environment. Using default: prod", slog.String("env", cfg.Env))
		cfg.Env = "prod"
	}

	// Validate log level
	validLevel := cfg.LogLevel == "info" || cfg.LogLevel == "debug" || cfg.LogLevel == "warn" || cfg.LogLevel == "error"
	if !validLevel {
		slog.Default().Warn("Invalid log level. Using default: info", slog.String("value", cfg.LogLevel))
		cfg.LogLevel = "info"
	}

	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL must not be empty")
	}
	if cfg.Checkout.TaxRate < 0 || cfg.Checkout.TaxRate >= 1 {
		return nil, fmt.Errorf("TAX_RATE must be a fraction in [0, 1), got %v", cfg.Checkout.TaxRate)
	}
	if cfg.Checkout.ShippingFlatFeeCents < 0 {
		return nil, fmt.Errorf("SHIPPING_FLAT_FEE_CENTS must not be negative")
	}

	return cfg, nil
}

// loadConfigFile merges a YAML config file into cfg. A missing file is
// fine; a malformed one is an error.
func loadConfigFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func defaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".storefront"
	}
	return filepath.Join(home, ".storefront")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue uint16) uint16 {
	if value := os.Getenv(key); value != "" {
		var intValue uint16
		if _, err := fmt.Sscanf(value, "%d", &intValue); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		var intValue int64
		if _, err := fmt.Sscanf(value, "%d", &intValue); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		var floatValue float64
		if _, err := fmt.Sscanf(value, "%f", &floatValue); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
