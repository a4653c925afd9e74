package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"

	DriverDynamoDB = "dynamodb"
	DriverMemory   = "memory"
)

// Config holds every setting the reconciliation service recognizes.
//
// Values come from an optional YAML file (CONFIG_PATH) and are then
// overridden by environment variables, so a .env file loaded by godotenv
// always wins over the file.
type Config struct {
	Environment string          `yaml:"environment"`
	Port        int             `yaml:"port"`
	Webhook     WebhookConfig   `yaml:"webhook"`
	Reconcile   ReconcileConfig `yaml:"reconcile"`
	Storage     StorageConfig   `yaml:"storage"`
	Currency    string          `yaml:"currency"`
}

// WebhookConfig controls signature verification of provider notifications.
type WebhookConfig struct {
	Secret           string        `yaml:"secret"`
	ToleranceSeconds int           `yaml:"tolerance_seconds"`
	AllowUnsigned    bool          `yaml:"allow_unsigned"`
	Production       bool          `yaml:"-"`
	Tolerance        time.Duration `yaml:"-"`
}

type ReconcileConfig struct {
	MaxAttempts int `yaml:"max_attempts"`
}

type StorageConfig struct {
	Driver              string `yaml:"driver"` // "dynamodb" or "memory"
	TimeoutSeconds      int    `yaml:"timeout_seconds"`
	PaymentPlansTable   string `yaml:"payment_plans_table"`
	InstallmentsTable   string `yaml:"installments_table"`
	ServicePaymentTable string `yaml:"service_payments_table"`
	ReceiptsTable       string `yaml:"receipts_table"`
}

func Default() Config {
	return Config{
		Environment: EnvDevelopment,
		Port:        8080,
		Webhook:     WebhookConfig{ToleranceSeconds: 300},
		Reconcile:   ReconcileConfig{MaxAttempts: 3},
		Storage: StorageConfig{
			Driver:              DriverDynamoDB,
			TimeoutSeconds:      10,
			PaymentPlansTable:   "payment_plans",
			InstallmentsTable:   "monthly_payments",
			ServicePaymentTable: "service_payments",
			ReceiptsTable:       "receipts",
		},
		Currency: "PHP",
	}
}

// Load builds the configuration from CONFIG_PATH (when set) and the environment.
func Load() (Config, error) {
	cfg := Default()

	if path := strings.TrimSpace(os.Getenv("CONFIG_PATH")); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.overrideWithEnv(); err != nil {
		return Config{}, err
	}
	cfg.finalize()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) overrideWithEnv() error {
	if v := os.Getenv("APP_ENV"); v != "" {
		c.Environment = v
	}
	if v := os.Getenv("WEBHOOK_SECRET"); v != "" {
		c.Webhook.Secret = v
	}
	if v := os.Getenv("CURRENCY"); v != "" {
		c.Currency = v
	}
	if v := os.Getenv("PERSISTENCE_DRIVER"); v != "" {
		c.Storage.Driver = v
	}
	if v := os.Getenv("PAYMENT_PLANS_TABLE"); v != "" {
		c.Storage.PaymentPlansTable = v
	}
	if v := os.Getenv("MONTHLY_PAYMENTS_TABLE"); v != "" {
		c.Storage.InstallmentsTable = v
	}
	if v := os.Getenv("SERVICE_PAYMENTS_TABLE"); v != "" {
		c.Storage.ServicePaymentTable = v
	}
	if v := os.Getenv("RECEIPTS_TABLE"); v != "" {
		c.Storage.ReceiptsTable = v
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"PORT", &c.Port},
		{"WEBHOOK_TOLERANCE_SECONDS", &c.Webhook.ToleranceSeconds},
		{"RECONCILE_MAX_ATTEMPTS", &c.Reconcile.MaxAttempts},
		{"STORAGE_TIMEOUT_SECONDS", &c.Storage.TimeoutSeconds},
	}
	for _, it := range ints {
		v := strings.TrimSpace(os.Getenv(it.key))
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", it.key, err)
		}
		*it.dst = n
	}

	if v := strings.TrimSpace(os.Getenv("WEBHOOK_ALLOW_UNSIGNED")); v != "" {
		c.Webhook.AllowUnsigned = isTruthy(v)
	}
	return nil
}

func (c *Config) finalize() {
	c.Environment = strings.ToLower(strings.TrimSpace(c.Environment))
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	c.Webhook.Production = c.IsProduction()
	c.Webhook.Tolerance = time.Duration(c.Webhook.ToleranceSeconds) * time.Second
}

// Validate rejects settings that would make the service unsafe or unusable.
func (c Config) Validate() error {
	if c.Port <= 0 {
		return errors.New("port must be positive")
	}
	if c.Webhook.ToleranceSeconds <= 0 {
		return errors.New("webhook tolerance must be positive")
	}
	if c.IsProduction() && c.Webhook.AllowUnsigned {
		return errors.New("unsigned webhooks cannot be allowed in production")
	}
	if c.Reconcile.MaxAttempts <= 0 {
		return errors.New("reconcile max attempts must be positive")
	}
	if c.Storage.TimeoutSeconds <= 0 {
		return errors.New("storage timeout must be positive")
	}
	switch c.Storage.Driver {
	case DriverDynamoDB, DriverMemory:
	default:
		return fmt.Errorf("unknown persistence driver %q", c.Storage.Driver)
	}
	return nil
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), EnvProduction)
}

func (c Config) StorageTimeout() time.Duration {
	return time.Duration(c.Storage.TimeoutSeconds) * time.Second
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
