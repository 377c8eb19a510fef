// Package config provides the typed harvester configuration loaded through Viper.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/config/minio"
	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/logger"
)

// Storage backends.
const (
	BackendLocal = "local"
	BackendMinIO = "minio"
)

// Completion policies.
const (
	// CompletionPerArtifact treats a document as complete when its text exists and its image
	// either exists or was recorded as absent.
	CompletionPerArtifact = "per_artifact"
	// CompletionStrict requires both the text and the image artifact to exist.
	CompletionStrict = "strict"
)

// Config is the complete harvester configuration.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Logger    logger.Config   `mapstructure:"logger"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Paths     PathsConfig     `mapstructure:"paths"`
	Crawler   CrawlerConfig   `mapstructure:"crawler"`
	Fetcher   FetcherConfig   `mapstructure:"fetcher"`
	Extractor ExtractorConfig `mapstructure:"extractor"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Pipeline  PipelineConfig  `mapstructure:"pipeline"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Schedule  ScheduleConfig  `mapstructure:"schedule"`

	// MinIO is loaded separately so its environment overrides apply.
	MinIO *minio.Config `mapstructure:"-"`
}

// AppConfig holds application identity settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// CatalogConfig points at the catalog definitions file.
type CatalogConfig struct {
	File string `mapstructure:"file"`
}

// PathsConfig holds the roots of the mirrored artifact trees.
type PathsConfig struct {
	Input string `mapstructure:"input"`
	Text  string `mapstructure:"text"`
	Image string `mapstructure:"image"`
	State string `mapstructure:"state"`
}

// CrawlerConfig configures the listing page session.
type CrawlerConfig struct {
	UserAgent        string        `mapstructure:"user_agent"`
	PageTimeout      time.Duration `mapstructure:"page_timeout"`
	PageDelay        time.Duration `mapstructure:"page_delay"`
	RespectRobotsTxt bool          `mapstructure:"respect_robots_txt"`
	StopOnEmptyPage  bool          `mapstructure:"stop_on_empty_page"`
	MaxBodySize      int           `mapstructure:"max_body_size"`
}

// FetcherConfig configures document downloads.
type FetcherConfig struct {
	UserAgent        string        `mapstructure:"user_agent"`
	RequestTimeout   time.Duration `mapstructure:"request_timeout"`
	ChunkSize        int           `mapstructure:"chunk_size"`
	MaxDocumentBytes int64         `mapstructure:"max_document_bytes"`
	MaxRedirects     int           `mapstructure:"max_redirects"`
	Refetch          bool          `mapstructure:"refetch"`
}

// ExtractorConfig configures document extraction.
type ExtractorConfig struct {
	DPI          float64 `mapstructure:"dpi"`
	MaxImageSide int     `mapstructure:"max_image_side"`
}

// StorageConfig selects the artifact backend and completion policy.
type StorageConfig struct {
	Backend    string `mapstructure:"backend"`
	Completion string `mapstructure:"completion"`
}

// PipelineConfig configures batching and politeness between documents.
type PipelineConfig struct {
	BatchSize  int           `mapstructure:"batch_size"`
	BatchDelay time.Duration `mapstructure:"batch_delay"`
}

// MetricsConfig configures the optional Prometheus endpoint.
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// ScheduleConfig configures recurring harvests.
type ScheduleConfig struct {
	Cron string `mapstructure:"cron"`
}

// Load unmarshals v into a Config and validates it.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &ViperError{Operation: "unmarshal", Err: err}
	}

	cfg.MinIO = minio.LoadFromViper(v)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigInvalid, err)
	}

	return &cfg, nil
}
