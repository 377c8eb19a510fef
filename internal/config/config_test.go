package config_test

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/config"
)

func newViper(t *testing.T) *viper.Viper {
	t.Helper()

	v := viper.New()
	config.SetDefaults(v)
	return v
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(newViper(t))
	require.NoError(t, err)

	assert.Equal(t, "input", cfg.Paths.Input)
	assert.Equal(t, "text_out", cfg.Paths.Text)
	assert.Equal(t, "image_out", cfg.Paths.Image)
	assert.Equal(t, 10*time.Second, cfg.Crawler.PageTimeout)
	assert.False(t, cfg.Crawler.StopOnEmptyPage)
	assert.Equal(t, config.DefaultChunkSize, cfg.Fetcher.ChunkSize)
	assert.Equal(t, int64(config.DefaultMaxDocumentBytes), cfg.Fetcher.MaxDocumentBytes)
	assert.Equal(t, time.Second, cfg.Pipeline.BatchDelay)
	assert.Equal(t, config.BackendLocal, cfg.Storage.Backend)
	assert.Equal(t, config.CompletionPerArtifact, cfg.Storage.Completion)
	require.NotNil(t, cfg.MinIO)
	assert.Equal(t, cfg.MinIO.Bucket, cfg.MinIO.StateBucket)
}

func TestLoad_Overrides(t *testing.T) {
	t.Parallel()

	v := newViper(t)
	v.Set("paths.text", "/data/instructions")
	v.Set("crawler.stop_on_empty_page", true)
	v.Set("pipeline.batch_delay", "250ms")
	v.Set("storage.completion", config.CompletionStrict)

	cfg, err := config.Load(v)
	require.NoError(t, err)

	assert.Equal(t, "/data/instructions", cfg.Paths.Text)
	assert.True(t, cfg.Crawler.StopOnEmptyPage)
	assert.Equal(t, 250*time.Millisecond, cfg.Pipeline.BatchDelay)
	assert.Equal(t, config.CompletionStrict, cfg.Storage.Completion)
}

func TestLoad_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		key   string
		value any
	}{
		{"unknown backend", "storage.backend", "s3"},
		{"unknown completion", "storage.completion", "lenient"},
		{"empty text root", "paths.text", " "},
		{"zero chunk", "fetcher.chunk_size", 0},
		{"zero batch", "pipeline.batch_size", 0},
		{"negative delay", "pipeline.batch_delay", "-1s"},
		{"zero dpi", "extractor.dpi", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v := newViper(t)
			v.Set(tt.key, tt.value)

			_, err := config.Load(v)
			require.ErrorIs(t, err, config.ErrConfigInvalid)
		})
	}
}

func TestLoad_MinIOBackendRequiresCredentials(t *testing.T) {
	t.Parallel()

	v := newViper(t)
	v.Set("storage.backend", config.BackendMinIO)

	_, err := config.Load(v)
	require.ErrorIs(t, err, config.ErrConfigInvalid)
	assert.Contains(t, err.Error(), "access_key")

	v.Set("minio.access_key", "harvester")
	v.Set("minio.secret_key", "secret")
	v.Set("minio.bucket", "patterns")

	cfg, err := config.Load(v)
	require.NoError(t, err)
	assert.Equal(t, "patterns", cfg.MinIO.Bucket)
	assert.Equal(t, "patterns", cfg.MinIO.StateBucket)
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	err := &config.ValidationError{Field: "pipeline.batch_size", Value: 0, Reason: "must be greater than 0"}
	assert.Equal(t, `invalid config: field "pipeline.batch_size" with value 0: must be greater than 0`, err.Error())
}
