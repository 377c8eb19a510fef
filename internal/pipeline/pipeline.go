// Package pipeline sequences harvest runs: catalog pages, downloads, extraction and storage.
package pipeline

//go:generate mockgen -destination=../testutils/mocks/pipeline/mocks.go -package=pipelinemocks . ArtifactStore,DocumentFetcher,DocumentExtractor,CatalogHarvester

import (
	"context"
	"errors"
	"image"
	"iter"
	"time"

	"github.com/google/uuid"

	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/domain"
	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/logger"
	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/metrics"
)

// Run modes.
const (
	ModeHarvest = "harvest"
	ModeExtract = "extract"
)

// ArtifactStore persists derived artifacts and answers the completion check.
type ArtifactStore interface {
	IsComplete(ctx context.Context, category, baseName string) bool
	WriteText(ctx context.Context, category, baseName, text string) error
	WriteImage(ctx context.Context, category, baseName string, img image.Image) error
	MarkComplete(ctx context.Context, category, baseName string, hasImage bool) error
}

// DocumentFetcher downloads one document to a local path.
type DocumentFetcher interface {
	Fetch(ctx context.Context, url, destination string) (int64, error)
}

// DocumentExtractor produces text and an optional image from document bytes.
type DocumentExtractor interface {
	Extract(data []byte, sourceID string) (domain.ExtractionResult, error)
}

// CatalogHarvester lazily yields the document links of a category.
type CatalogHarvester interface {
	Harvest(ctx context.Context, category string, maxPages int) iter.Seq[domain.CatalogEntry]
}

// Params holds the dependencies of a Runner.
type Params struct {
	Store     ArtifactStore
	Fetcher   DocumentFetcher
	Extractor DocumentExtractor
	Logger    logger.Logger
	Metrics   *metrics.Metrics

	// InputRoot is where downloaded documents are kept, mirrored by category.
	InputRoot string
	// BatchSize documents are processed between politeness delays. Zero disables the delay.
	BatchSize  int
	BatchDelay time.Duration
}

// Runner processes documents one at a time.
type Runner struct {
	store      ArtifactStore
	fetcher    DocumentFetcher
	extractor  DocumentExtractor
	log        logger.Logger
	metrics    *metrics.Metrics
	inputRoot  string
	batchSize  int
	batchDelay time.Duration
}

// New creates a Runner.
func New(p Params) (*Runner, error) {
	if p.Store == nil || p.Extractor == nil || p.Logger == nil {
		return nil, domain.ConfigError("create pipeline", errors.New("store, extractor and logger are required"))
	}
	if p.InputRoot == "" {
		return nil, domain.ConfigError("create pipeline", errors.New("input root is required"))
	}
	return &Runner{
		store:      p.Store,
		fetcher:    p.Fetcher,
		extractor:  p.Extractor,
		log:        p.Logger,
		metrics:    p.Metrics,
		inputRoot:  p.InputRoot,
		batchSize:  p.BatchSize,
		batchDelay: p.BatchDelay,
	}, nil
}

// run is the state of one Run or RunLocal call.
type run struct {
	*Runner
	log        logger.Logger
	summary    *Summary
	sinceDelay int
}

func (r *Runner) newRun(mode string) *run {
	id := uuid.NewString()
	return &run{
		Runner:  r,
		log:     r.log.With(logger.String("run_id", id), logger.String("mode", mode)),
		summary: newSummary(id, mode),
	}
}

// Run harvests each category through h and processes every discovered document.
// Per-document failures are recorded in the summary; only cancellation and errors that are
// neither network, parse nor write failures stop the run.
func (r *Runner) Run(ctx context.Context, h CatalogHarvester, categories []string, maxPages int) (*Summary, error) {
	if r.fetcher == nil {
		return nil, domain.ConfigError("run harvest", errors.New("fetcher is required"))
	}

	rn := r.newRun(ModeHarvest)
	rn.log.Info("Harvest started",
		logger.Strings("categories", categories),
		logger.Int("max_pages", maxPages),
	)

	err := rn.harvest(ctx, h, categories, maxPages)
	rn.finish(err)
	return rn.summary, err
}

func (rn *run) harvest(ctx context.Context, h CatalogHarvester, categories []string, maxPages int) error {
	for _, category := range categories {
		rn.summary.touch(category)

		for entry := range h.Harvest(ctx, category, maxPages) {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := rn.handle(ctx, category, rn.processEntry(ctx, entry)); err != nil {
				return err
			}
		}

		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}

// handle records a document outcome, decides whether the run continues and applies the
// batch delay.
func (rn *run) handle(ctx context.Context, category string, out outcome) error {
	if out.fatal != nil {
		return out.fatal
	}

	rn.summary.record(category, out.status)
	rn.metrics.RecordDocument(category, string(out.status), out.duration)

	if out.status == domain.StatusSkippedExisting {
		return nil
	}
	return rn.pause(ctx)
}

// pause sleeps for the batch delay after every batchSize processed documents.
func (rn *run) pause(ctx context.Context) error {
	if rn.batchSize <= 0 || rn.batchDelay <= 0 {
		return nil
	}
	rn.sinceDelay++
	if rn.sinceDelay < rn.batchSize {
		return nil
	}
	rn.sinceDelay = 0

	timer := time.NewTimer(rn.batchDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (rn *run) finish(err error) {
	rn.summary.FinishedAt = time.Now()
	rn.metrics.RecordRun(rn.summary.Mode, err)

	totals := rn.summary.Totals()
	fields := []logger.Field{
		logger.Int("succeeded", totals[domain.StatusSuccess]),
		logger.Int("skipped", totals[domain.StatusSkippedExisting]),
		logger.Int("failed", rn.summary.Failed()),
		logger.Duration("duration", rn.summary.FinishedAt.Sub(rn.summary.StartedAt)),
	}

	switch {
	case err == nil:
		rn.log.Info("Run finished", fields...)
	case errors.Is(err, context.Canceled):
		rn.log.Warn("Run cancelled", fields...)
	default:
		rn.log.Error("Run aborted", append(fields, logger.Error(err))...)
	}
}
