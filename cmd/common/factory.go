package common

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/catalog"
	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/domain"
	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/extractor"
	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/fetcher"
	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/logger"
	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/metrics"
	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/pipeline"
	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/storage"
)

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// NewMetrics creates a registry with the runtime collectors and the harvester metrics.
func NewMetrics() (*metrics.Metrics, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return metrics.New(reg), reg
}

// ServeMetrics exposes reg in the background when metrics.addr is configured.
func (d CommandDeps) ServeMetrics(ctx context.Context, reg *prometheus.Registry) {
	addr := d.Config.Metrics.Addr
	if addr == "" {
		return
	}
	go func() {
		if err := metrics.Serve(ctx, addr, reg, d.Logger); err != nil {
			d.Logger.Error("Metrics server failed", logger.Error(err))
		}
	}()
}

// NewStore builds the artifact store selected in the configuration.
func (d CommandDeps) NewStore(ctx context.Context) (*storage.ArtifactStore, error) {
	store, err := storage.New(ctx, d.Config, d.Logger)
	if err != nil {
		return nil, domain.ConfigError("create artifact store", err)
	}
	return store, nil
}

// LoadCatalog returns the catalog called name, or the first one when name is empty.
func (d CommandDeps) LoadCatalog(name string) (catalog.Definition, error) {
	def, err := catalog.NewLoader(d.Config.Catalog.File).Find(name)
	if err != nil {
		return catalog.Definition{}, domain.ConfigError("load catalog", err)
	}
	return def, nil
}

// NewRunner wires the fetcher, extractor and store into a pipeline runner.
func (d CommandDeps) NewRunner(store *storage.ArtifactStore, m *metrics.Metrics) (*pipeline.Runner, error) {
	r, err := pipeline.New(pipeline.Params{
		Store:      store,
		Fetcher:    fetcher.New(d.Config.Fetcher, d.Logger),
		Extractor:  extractor.New(d.Config.Extractor, d.Logger),
		Logger:     d.Logger,
		Metrics:    m,
		InputRoot:  d.Config.Paths.Input,
		BatchSize:  d.Config.Pipeline.BatchSize,
		BatchDelay: d.Config.Pipeline.BatchDelay,
	})
	if err != nil {
		return nil, fmt.Errorf("create pipeline: %w", err)
	}
	return r, nil
}
