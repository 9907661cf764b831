// Package config loads runtime configuration for the storefront CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. FOODORDER_STOREFRONT_* environment variables.
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string        base URL of the auth/menu server
//	-db string       path of the local cart database
//	-session string  name of the saved cart to resume
//	-t int           request timeout (seconds)
//
// # JSON schema
//
// Durations accept "10s" style strings or integer nanoseconds. Money values
// accept strings or numbers:
//
//	{
//	  "server_url": "http://localhost:8080",
//	  "cart_db_path": "storefront.db",
//	  "session_name": "default",
//	  "request_timeout": "10s",
//	  "delivery_fee": "3.50",
//	  "free_delivery_threshold": "30",
//	  "frozen_surcharge": "1.50"
//	}
package config
