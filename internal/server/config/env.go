package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/foodorder/internal/flagx"
	"github.com/joho/godotenv"
)

const envPrefix = "FOODORDER_"

// parseEnv loads a dotenv file (the -env flag, else ./.env when present) into
// the process environment and then copies FOODORDER_* variables into config.
// Variables already set in the environment win over the file.
// A malformed value panics, as with the JSON and flag layers.
func parseEnv(config *Config) {
	path := flagx.EnvFile(os.Args[1:])
	if path == "" {
		path = ".env"
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			path = ""
		}
	}
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
	}

	if err := applyEnv(config, os.LookupEnv); err != nil {
		panic(err)
	}
}

func applyEnv(c *Config, lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(envPrefix + name); ok {
			*dst = v
		}
	}

	var err error
	num := func(name string, dst *int) {
		if v, ok := lookup(envPrefix + name); ok && err == nil {
			*dst, err = strconv.Atoi(v)
		}
	}
	dur := func(name string, dst *time.Duration) {
		if v, ok := lookup(envPrefix + name); ok && err == nil {
			*dst, err = time.ParseDuration(v)
		}
	}
	boolean := func(name string, dst *bool) {
		if v, ok := lookup(envPrefix + name); ok && err == nil {
			*dst, err = strconv.ParseBool(v)
		}
	}

	str("HTTP_ADDR", &c.HTTPAddr)
	str("DATABASE_DSN", &c.DatabaseDSN)
	str("SECRET_KEY", &c.SecretKey)
	str("LOG_LEVEL", &c.LogLevel)
	dur("TOKEN_VALIDITY", &c.TokenValidity)
	boolean("PRODUCTION", &c.Production)
	if v, ok := lookup(envPrefix + "CORS_ORIGINS"); ok {
		c.CORSOrigins = splitList(v)
	}
	dur("SESSION_CLEANUP_INTERVAL", &c.SessionCleanupInterval)

	str("REDIS_ADDR", &c.RedisAddr)
	str("REDIS_PASSWORD", &c.RedisPassword)
	num("REDIS_DB", &c.RedisDB)
	num("LOGIN_MAX_ATTEMPTS", &c.LoginMaxAttempts)
	dur("LOGIN_WINDOW", &c.LoginWindow)

	str("SMTP_HOST", &c.SMTPHost)
	num("SMTP_PORT", &c.SMTPPort)
	str("SMTP_USERNAME", &c.SMTPUsername)
	str("SMTP_PASSWORD", &c.SMTPPassword)
	str("SMTP_FROM", &c.SMTPFrom)

	str("S3_ACCESS_KEY", &c.S3AccessKey)
	str("S3_SECRET_KEY", &c.S3SecretKey)
	str("S3_BUCKET", &c.S3Bucket)
	str("S3_REGION", &c.S3Region)
	str("S3_BASE_ENDPOINT", &c.S3BaseEndpoint)
	dur("IMAGE_URL_TTL", &c.ImageURLTTL)

	str("BOOTSTRAP_ADMIN_USERNAME", &c.BootstrapAdminUsername)
	str("BOOTSTRAP_ADMIN_EMAIL", &c.BootstrapAdminEmail)
	str("BOOTSTRAP_ADMIN_PASSWORD", &c.BootstrapAdminPassword)

	return err
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
