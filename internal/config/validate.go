package config

import (
	"errors"
	"strings"
)

// Validate checks every section and returns all problems joined.
func (c *Config) Validate() error {
	var errs []error

	add := func(field string, value any, reason string) {
		errs = append(errs, &ValidationError{Field: field, Value: value, Reason: reason})
	}

	for field, value := range map[string]string{
		"paths.input": c.Paths.Input,
		"paths.text":  c.Paths.Text,
		"paths.image": c.Paths.Image,
		"paths.state": c.Paths.State,
	} {
		if strings.TrimSpace(value) == "" {
			add(field, value, "must not be empty")
		}
	}

	if c.Crawler.PageTimeout <= 0 {
		add("crawler.page_timeout", c.Crawler.PageTimeout, "must be greater than 0")
	}
	if c.Crawler.PageDelay < 0 {
		add("crawler.page_delay", c.Crawler.PageDelay, "must not be negative")
	}
	if c.Fetcher.RequestTimeout <= 0 {
		add("fetcher.request_timeout", c.Fetcher.RequestTimeout, "must be greater than 0")
	}
	if c.Fetcher.ChunkSize <= 0 {
		add("fetcher.chunk_size", c.Fetcher.ChunkSize, "must be greater than 0")
	}
	if c.Fetcher.MaxDocumentBytes <= 0 {
		add("fetcher.max_document_bytes", c.Fetcher.MaxDocumentBytes, "must be greater than 0")
	}
	if c.Extractor.DPI <= 0 {
		add("extractor.dpi", c.Extractor.DPI, "must be greater than 0")
	}
	if c.Extractor.MaxImageSide < 0 {
		add("extractor.max_image_side", c.Extractor.MaxImageSide, "must not be negative")
	}
	if c.Pipeline.BatchSize <= 0 {
		add("pipeline.batch_size", c.Pipeline.BatchSize, "must be greater than 0")
	}
	if c.Pipeline.BatchDelay < 0 {
		add("pipeline.batch_delay", c.Pipeline.BatchDelay, "must not be negative")
	}

	switch c.Storage.Backend {
	case BackendLocal:
	case BackendMinIO:
		if c.MinIO == nil {
			add("minio", nil, "required when storage.backend is minio")
		} else if err := c.MinIO.Validate(); err != nil {
			errs = append(errs, err)
		}
	default:
		add("storage.backend", c.Storage.Backend, "must be local or minio")
	}

	switch c.Storage.Completion {
	case CompletionPerArtifact, CompletionStrict:
	default:
		add("storage.completion", c.Storage.Completion, "must be per_artifact or strict")
	}

	return errors.Join(errs...)
}
