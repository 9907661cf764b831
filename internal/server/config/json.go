package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/foodorder/internal/flagx"
	"github.com/dmitrijs2005/foodorder/internal/timex"
)

// JsonConfig is the on-disk shape of the JSON config file. Pointer fields
// distinguish "absent" from a zero value so a partial file only overrides
// what it names.
type JsonConfig struct {
	HTTPAddr               *string         `json:"http_addr"`
	DatabaseDSN            *string         `json:"database_dsn"`
	SecretKey              *string         `json:"secret_key"`
	LogLevel               *string         `json:"log_level"`
	TokenValidity          *timex.Duration `json:"token_validity"`
	Production             *bool           `json:"production"`
	CORSOrigins            []string        `json:"cors_origins"`
	SessionCleanupInterval *timex.Duration `json:"session_cleanup_interval"`

	RedisAddr        *string         `json:"redis_addr"`
	RedisPassword    *string         `json:"redis_password"`
	RedisDB          *int            `json:"redis_db"`
	LoginMaxAttempts *int            `json:"login_max_attempts"`
	LoginWindow      *timex.Duration `json:"login_window"`

	SMTPHost     *string `json:"smtp_host"`
	SMTPPort     *int    `json:"smtp_port"`
	SMTPUsername *string `json:"smtp_username"`
	SMTPPassword *string `json:"smtp_password"`
	SMTPFrom     *string `json:"smtp_from"`

	S3AccessKey    *string         `json:"s3_access_key"`
	S3SecretKey    *string         `json:"s3_secret_key"`
	S3Bucket       *string         `json:"s3_bucket"`
	S3Region       *string         `json:"s3_region"`
	S3BaseEndpoint *string         `json:"s3_base_endpoint"`
	ImageURLTTL    *timex.Duration `json:"image_url_ttl"`
}

// parseJson overlays the file named by -c/-config onto config. Without the
// flag nothing is loaded. Unreadable files and invalid JSON panic.
func parseJson(config *Config) {
	path := flagx.ConfigFile(os.Args[1:])
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	c.apply(config)
}

func (j *JsonConfig) apply(c *Config) {
	setString(&c.HTTPAddr, j.HTTPAddr)
	setString(&c.DatabaseDSN, j.DatabaseDSN)
	setString(&c.SecretKey, j.SecretKey)
	setString(&c.LogLevel, j.LogLevel)
	setDuration(&c.TokenValidity, j.TokenValidity)
	if j.Production != nil {
		c.Production = *j.Production
	}
	if j.CORSOrigins != nil {
		c.CORSOrigins = j.CORSOrigins
	}
	setDuration(&c.SessionCleanupInterval, j.SessionCleanupInterval)

	setString(&c.RedisAddr, j.RedisAddr)
	setString(&c.RedisPassword, j.RedisPassword)
	setInt(&c.RedisDB, j.RedisDB)
	setInt(&c.LoginMaxAttempts, j.LoginMaxAttempts)
	setDuration(&c.LoginWindow, j.LoginWindow)

	setString(&c.SMTPHost, j.SMTPHost)
	setInt(&c.SMTPPort, j.SMTPPort)
	setString(&c.SMTPUsername, j.SMTPUsername)
	setString(&c.SMTPPassword, j.SMTPPassword)
	setString(&c.SMTPFrom, j.SMTPFrom)

	setString(&c.S3AccessKey, j.S3AccessKey)
	setString(&c.S3SecretKey, j.S3SecretKey)
	setString(&c.S3Bucket, j.S3Bucket)
	setString(&c.S3Region, j.S3Region)
	setString(&c.S3BaseEndpoint, j.S3BaseEndpoint)
	setDuration(&c.ImageURLTTL, j.ImageURLTTL)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *timex.Duration) {
	if v != nil {
		*dst = v.Duration
	}
}
