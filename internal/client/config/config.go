package config

import (
	"time"

	"github.com/dmitrijs2005/foodorder/internal/cart"
	"github.com/shopspring/decimal"
)

// Config holds runtime settings for the storefront CLI.
type Config struct {
	ServerURL      string
	CartDBPath     string
	SessionName    string
	RequestTimeout time.Duration
	LogLevel       string

	DeliveryFee           decimal.Decimal
	FreeDeliveryThreshold decimal.Decimal
	FrozenSurcharge       decimal.Decimal
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:8080"
	c.CartDBPath = "storefront.db"
	c.SessionName = "default"
	c.RequestTimeout = 10 * time.Second
	c.LogLevel = "warn"
	c.DeliveryFee = decimal.RequireFromString("3.50")
	c.FreeDeliveryThreshold = decimal.RequireFromString("30")
	c.FrozenSurcharge = decimal.RequireFromString("1.50")
}

// DeliveryPolicy returns the pricing rules used for checkout quotes.
func (c *Config) DeliveryPolicy() cart.DeliveryPolicy {
	return cart.DeliveryPolicy{
		Fee:             c.DeliveryFee,
		FreeThreshold:   c.FreeDeliveryThreshold,
		FrozenSurcharge: c.FrozenSurcharge,
	}
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
