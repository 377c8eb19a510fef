package config

import (
	"time"

	"github.com/spf13/viper"
)

// Default values shared by the CLI and tests.
const (
	DefaultUserAgent        = "NorthCloud-PatternHarvester/1.0"
	DefaultChunkSize        = 32 * 1024
	DefaultMaxDocumentBytes = 100 * 1024 * 1024
	DefaultMaxRedirects     = 10
	DefaultDPI              = 144
	DefaultMaxImageSide     = 2048
	DefaultBatchSize        = 10
	DefaultCatalogFile      = "catalogs.yml"
	DefaultPageTimeout      = 10 * time.Second
	DefaultRequestTimeout   = 60 * time.Second
)

// SetDefaults registers production-safe defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("app", map[string]any{
		"name":        "pattern-harvester",
		"environment": "production",
		"debug":       false,
	})

	v.SetDefault("logger", map[string]any{
		"level":        "info",
		"encoding":     "json",
		"development":  false,
		"output_paths": []string{"stdout"},
	})

	v.SetDefault("catalog", map[string]any{
		"file": DefaultCatalogFile,
	})

	v.SetDefault("paths", map[string]any{
		"input": "input",
		"text":  "text_out",
		"image": "image_out",
		"state": ".harvest",
	})

	v.SetDefault("crawler", map[string]any{
		"user_agent":         DefaultUserAgent,
		"page_timeout":       DefaultPageTimeout,
		"page_delay":         "1s",
		"respect_robots_txt": true,
		"stop_on_empty_page": false,
		"max_body_size":      10 * 1024 * 1024,
	})

	v.SetDefault("fetcher", map[string]any{
		"user_agent":         DefaultUserAgent,
		"request_timeout":    DefaultRequestTimeout,
		"chunk_size":         DefaultChunkSize,
		"max_document_bytes": DefaultMaxDocumentBytes,
		"max_redirects":      DefaultMaxRedirects,
		"refetch":            false,
	})

	v.SetDefault("extractor", map[string]any{
		"dpi":            DefaultDPI,
		"max_image_side": DefaultMaxImageSide,
	})

	v.SetDefault("storage", map[string]any{
		"backend":    BackendLocal,
		"completion": CompletionPerArtifact,
	})

	v.SetDefault("pipeline", map[string]any{
		"batch_size":  DefaultBatchSize,
		"batch_delay": "1s",
	})

	v.SetDefault("metrics", map[string]any{
		"addr": "",
	})

	v.SetDefault("schedule", map[string]any{
		"cron": "0 3 * * *",
	})
}
