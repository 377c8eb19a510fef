package pipeline

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/domain"
	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/logger"
)

// LocalDocument is a document found under the input root.
type LocalDocument struct {
	Category string
	FileName string
	Path     string
}

// RunLocal extracts every document already present under the input root without touching
// the network. The category of a document is its directory relative to the root.
func (r *Runner) RunLocal(ctx context.Context, suffix string) (*Summary, error) {
	rn := r.newRun(ModeExtract)

	docs, err := r.ScanInput(suffix)
	if err != nil {
		rn.finish(err)
		return rn.summary, err
	}
	rn.log.Info("Extraction started",
		logger.String("input", r.inputRoot),
		logger.Int("documents", len(docs)),
	)

	err = rn.extractLocal(ctx, docs)
	rn.finish(err)
	return rn.summary, err
}

func (rn *run) extractLocal(ctx context.Context, docs []LocalDocument) error {
	for _, d := range docs {
		if err := ctx.Err(); err != nil {
			return err
		}
		rn.summary.touch(d.Category)
		if err := rn.handle(ctx, d.Category, rn.processLocal(ctx, d)); err != nil {
			return err
		}
	}
	return nil
}

func (rn *run) processLocal(ctx context.Context, d LocalDocument) outcome {
	start := time.Now()
	baseName := domain.BaseName(d.FileName)
	log := rn.log.With(
		logger.String("category", d.Category),
		logger.String("base_name", baseName),
	)

	if rn.store.IsComplete(ctx, d.Category, baseName) {
		log.Debug("Document already processed")
		return outcome{status: domain.StatusSkippedExisting, duration: time.Since(start)}
	}

	data, err := os.ReadFile(d.Path)
	if err != nil {
		return rn.fail(ctx, log, start, domain.ParseError("read document", err))
	}

	return rn.processDocument(ctx, log, start, domain.DownloadedDocument{
		Category:  d.Category,
		FileName:  d.FileName,
		RawBytes:  data,
		LocalPath: d.Path,
	})
}

// ScanInput lists documents under the input root whose name ends with suffix, ignoring case.
// Files directly in the root have no category and are skipped, as are hidden and partial files.
func (r *Runner) ScanInput(suffix string) ([]LocalDocument, error) {
	suffix = strings.ToLower(suffix)
	var docs []LocalDocument

	err := filepath.WalkDir(r.inputRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		hidden := strings.HasPrefix(d.Name(), ".") && p != r.inputRoot
		if d.IsDir() {
			if hidden {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden {
			return nil
		}
		if !strings.HasSuffix(strings.ToLower(d.Name()), suffix) {
			return nil
		}

		rel, err := filepath.Rel(r.inputRoot, filepath.Dir(p))
		if err != nil {
			return err
		}
		if rel == "." {
			r.log.Warn("Skipping document outside any category", logger.String("path", p))
			return nil
		}

		docs = append(docs, LocalDocument{
			Category: filepath.ToSlash(rel),
			FileName: d.Name(),
			Path:     p,
		})
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ConfigError("scan input", err)
	}
	if err != nil {
		return nil, domain.NewError(domain.KindUnexpected, "scan input", err)
	}
	return docs, nil
}
