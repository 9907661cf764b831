package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/foodorder/internal/flagx"
	"github.com/dmitrijs2005/foodorder/internal/timex"
	"github.com/shopspring/decimal"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent
// fields leave the current value alone.
type JsonConfig struct {
	ServerURL      *string         `json:"server_url"`
	CartDBPath     *string         `json:"cart_db_path"`
	SessionName    *string         `json:"session_name"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	LogLevel       *string         `json:"log_level"`

	DeliveryFee           *decimal.Decimal `json:"delivery_fee"`
	FreeDeliveryThreshold *decimal.Decimal `json:"free_delivery_threshold"`
	FrozenSurcharge       *decimal.Decimal `json:"frozen_surcharge"`
}

// parseJson overlays Config with values loaded from the -c/-config file.
// Read and unmarshal errors panic.
func parseJson(cfg *Config) {
	path := flagx.ConfigFile(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}
	jc.apply(cfg)
}

func (j *JsonConfig) apply(c *Config) {
	for _, f := range []struct {
		dst *string
		v   *string
	}{
		{&c.ServerURL, j.ServerURL},
		{&c.CartDBPath, j.CartDBPath},
		{&c.SessionName, j.SessionName},
		{&c.LogLevel, j.LogLevel},
	} {
		if f.v != nil {
			*f.dst = *f.v
		}
	}
	if j.RequestTimeout != nil {
		c.RequestTimeout = j.RequestTimeout.Duration
	}
	if j.DeliveryFee != nil {
		c.DeliveryFee = *j.DeliveryFee
	}
	if j.FreeDeliveryThreshold != nil {
		c.FreeDeliveryThreshold = *j.FreeDeliveryThreshold
	}
	if j.FrozenSurcharge != nil {
		c.FrozenSurcharge = *j.FrozenSurcharge
	}
}
