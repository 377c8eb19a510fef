// Package minio provides MinIO configuration for the object-storage artifact backend.
package minio

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Config represents MinIO configuration.
type Config struct {
	// Endpoint is the MinIO server address (e.g., "minio:9000")
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	// Bucket receives text_out/ and image_out/ objects.
	Bucket string
	// StateBucket receives completion markers. Defaults to Bucket.
	StateBucket string
	// CreateBucket creates missing buckets on startup.
	CreateBucket  bool
	UploadTimeout time.Duration
}

const defaultUploadTimeout = 30 * time.Second

// NewConfig returns a MinIO configuration with default values.
func NewConfig() *Config {
	return &Config{
		Endpoint:      "localhost:9000",
		UseSSL:        false,
		Bucket:        "pattern-artifacts",
		CreateBucket:  true,
		UploadTimeout: defaultUploadTimeout,
	}
}

// LoadFromViper loads MinIO configuration from Viper with environment variable overrides.
func LoadFromViper(v *viper.Viper) *Config {
	cfg := NewConfig()

	if v.IsSet("minio.endpoint") {
		cfg.Endpoint = v.GetString("minio.endpoint")
	}
	if v.IsSet("minio.access_key") {
		cfg.AccessKey = v.GetString("minio.access_key")
	}
	if v.IsSet("minio.secret_key") {
		cfg.SecretKey = v.GetString("minio.secret_key")
	}
	if v.IsSet("minio.use_ssl") {
		cfg.UseSSL = v.GetBool("minio.use_ssl")
	}
	if v.IsSet("minio.bucket") {
		cfg.Bucket = v.GetString("minio.bucket")
	}
	if v.IsSet("minio.state_bucket") {
		cfg.StateBucket = v.GetString("minio.state_bucket")
	}
	if v.IsSet("minio.create_bucket") {
		cfg.CreateBucket = v.GetBool("minio.create_bucket")
	}
	if v.IsSet("minio.upload_timeout") {
		cfg.UploadTimeout = v.GetDuration("minio.upload_timeout")
	}

	// Environment variable overrides
	if v.IsSet("HARVESTER_MINIO_ENDPOINT") {
		cfg.Endpoint = v.GetString("HARVESTER_MINIO_ENDPOINT")
	}
	if v.IsSet("HARVESTER_MINIO_ACCESS_KEY") {
		cfg.AccessKey = v.GetString("HARVESTER_MINIO_ACCESS_KEY")
	}
	if v.IsSet("HARVESTER_MINIO_SECRET_KEY") {
		cfg.SecretKey = v.GetString("HARVESTER_MINIO_SECRET_KEY")
	}
	if v.IsSet("HARVESTER_MINIO_BUCKET") {
		cfg.Bucket = v.GetString("HARVESTER_MINIO_BUCKET")
	}

	if cfg.StateBucket == "" {
		cfg.StateBucket = cfg.Bucket
	}

	return cfg
}

// Validate validates the MinIO configuration.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return errors.New("minio endpoint required")
	}
	if c.AccessKey == "" {
		return errors.New("minio access_key required")
	}
	if c.SecretKey == "" {
		return errors.New("minio secret_key required")
	}
	if c.Bucket == "" {
		return errors.New("minio bucket required")
	}
	if c.UploadTimeout <= 0 {
		return errors.New("minio upload_timeout must be greater than 0")
	}
	return nil
}
