package logger_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/logger"
)

func TestConfigSetDefaults(t *testing.T) {
	t.Parallel()

	cfg := logger.Config{Encoding: "xml"}
	cfg.SetDefaults()

	assert.Equal(t, logger.DefaultLevel, cfg.Level)
	assert.Equal(t, logger.EncodingJSON, cfg.Encoding)
	assert.Equal(t, []string{"stdout"}, cfg.OutputPaths)
}

func TestNew_WritesJSONWithFields(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "harvester.log")
	log, err := logger.New(logger.Config{Level: "debug", OutputPaths: []string{out}})
	require.NoError(t, err)

	log.With(logger.String("run_id", "r-1")).Info("document processed",
		logger.String("category", "Tops"),
		logger.Int("page", 2),
		logger.Error(errors.New("boom")),
	)
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	line := string(data)
	assert.True(t, strings.HasPrefix(line, "{"))
	assert.Contains(t, line, `"run_id":"r-1"`)
	assert.Contains(t, line, `"category":"Tops"`)
	assert.Contains(t, line, `"page":2`)
	assert.Contains(t, line, `"error":"boom"`)
}

func TestNew_LevelFiltersDebug(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "harvester.log")
	log, err := logger.New(logger.Config{Level: "warn", OutputPaths: []string{out}})
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("hidden too")
	log.Warn("visible")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "visible")
}

func TestNop(t *testing.T) {
	t.Parallel()

	log := logger.NewNop()
	log.Info("ignored", logger.String("k", "v"))
	assert.Same(t, log, log.With(logger.Bool("x", true)))
	assert.NoError(t, log.Sync())
}
