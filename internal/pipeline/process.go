package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/domain"
	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/logger"
)

var errNoFileName = errors.New("document URL has no file name")

// outcome is the result of one document. fatal is set when the run must stop.
type outcome struct {
	status   domain.Status
	duration time.Duration
	fatal    error
}

// processEntry takes a catalog entry through the completion check, download and extraction.
func (rn *run) processEntry(ctx context.Context, entry domain.CatalogEntry) outcome {
	start := time.Now()
	log := rn.log.With(
		logger.String("category", entry.Category),
		logger.String("url", entry.DocumentURL),
	)

	fileName := entry.FileName()
	baseName := domain.BaseName(fileName)
	if baseName == "" || baseName == "." || baseName == ".." {
		return rn.fail(ctx, log, start, domain.NetworkError("derive file name", errNoFileName))
	}
	log = log.With(logger.String("base_name", baseName))

	if rn.store.IsComplete(ctx, entry.Category, baseName) {
		log.Debug("Document already processed")
		return outcome{status: domain.StatusSkippedExisting, duration: time.Since(start)}
	}

	localPath := filepath.Join(rn.inputRoot, filepath.FromSlash(entry.Category), fileName)
	n, err := rn.fetcher.Fetch(ctx, entry.DocumentURL, localPath)
	if err != nil {
		return rn.fail(ctx, log, start, err)
	}
	rn.metrics.RecordDownload(entry.Category, n)

	data, err := os.ReadFile(localPath)
	if err != nil {
		return rn.fail(ctx, log, start, domain.ParseError("read downloaded document", err))
	}

	doc := domain.DownloadedDocument{
		Category:  entry.Category,
		FileName:  fileName,
		RawBytes:  data,
		LocalPath: localPath,
	}
	return rn.processDocument(ctx, log, start, doc)
}

// processDocument extracts a document that is already on disk and persists its artifacts.
func (rn *run) processDocument(
	ctx context.Context,
	log logger.Logger,
	start time.Time,
	doc domain.DownloadedDocument,
) outcome {
	baseName := doc.BaseName()
	sourceID := path.Join(doc.Category, doc.FileName)

	result, err := rn.extractor.Extract(doc.RawBytes, sourceID)
	if err != nil {
		return rn.fail(ctx, log, start, err)
	}

	// Text first: an image without its text never counts as complete.
	if err = rn.store.WriteText(ctx, doc.Category, baseName, result.Text); err != nil {
		return rn.fail(ctx, log, start, err)
	}
	if result.ImageFailed() {
		// Not marked complete, so the next run retries the image.
		duration := time.Since(start)
		log.Warn("Document text stored, image pending",
			logger.Int("text_bytes", len(result.Text)),
			logger.Error(result.ImageErr),
			logger.Duration("duration", duration),
		)
		return outcome{status: domain.StatusSuccess, duration: duration}
	}
	if result.HasImage() {
		if err = rn.store.WriteImage(ctx, doc.Category, baseName, result.Image); err != nil {
			return rn.fail(ctx, log, start, err)
		}
	}
	if err = rn.store.MarkComplete(ctx, doc.Category, baseName, result.HasImage()); err != nil {
		return rn.fail(ctx, log, start, err)
	}

	duration := time.Since(start)
	log.Info("Document processed",
		logger.Int("text_bytes", len(result.Text)),
		logger.Bool("has_image", result.HasImage()),
		logger.Duration("duration", duration),
	)
	return outcome{status: domain.StatusSuccess, duration: duration}
}

// fail converts err into a failure status, or into a fatal outcome for cancellation and
// unclassified errors.
func (rn *run) fail(ctx context.Context, log logger.Logger, start time.Time, err error) outcome {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return outcome{fatal: ctxErr}
	}

	status, ok := domain.StatusFor(domain.KindOf(err))
	if !ok {
		log.Error("Unexpected failure, aborting run", logger.Error(err))
		return outcome{fatal: fmt.Errorf("process document: %w", err)}
	}

	log.Warn("Document failed",
		logger.String("status", string(status)),
		logger.Error(err),
	)
	return outcome{status: status, duration: time.Since(start)}
}
