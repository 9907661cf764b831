package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/foodorder/internal/flagx"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const envPrefix = "FOODORDER_STOREFRONT_"

// parseEnv loads the -env dotenv file when given, then copies
// FOODORDER_STOREFRONT_* variables into cfg. Bad values panic.
func parseEnv(cfg *Config) {
	if path := flagx.EnvFile(os.Args[1:]); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
	}
	if err := applyEnv(cfg, os.LookupEnv); err != nil {
		panic(err)
	}
}

func applyEnv(c *Config, lookup func(string) (string, bool)) error {
	var err error
	str := func(name string, dst *string) {
		if v, ok := lookup(envPrefix + name); ok {
			*dst = v
		}
	}
	money := func(name string, dst *decimal.Decimal) {
		if v, ok := lookup(envPrefix + name); ok && err == nil {
			*dst, err = decimal.NewFromString(v)
		}
	}

	str("SERVER_URL", &c.ServerURL)
	str("CART_DB_PATH", &c.CartDBPath)
	str("SESSION_NAME", &c.SessionName)
	str("LOG_LEVEL", &c.LogLevel)
	if v, ok := lookup(envPrefix + "REQUEST_TIMEOUT"); ok {
		var d time.Duration
		if d, err = time.ParseDuration(v); err == nil {
			c.RequestTimeout = d
		}
	}
	money("DELIVERY_FEE", &c.DeliveryFee)
	money("FREE_DELIVERY_THRESHOLD", &c.FreeDeliveryThreshold)
	money("FROZEN_SURCHARGE", &c.FrozenSurcharge)
	return err
}
