// Package fetcher downloads catalog documents to the local content tree.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/config"
	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/domain"
	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/logger"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// ErrDocumentTooLarge is returned when a response body exceeds the configured limit.
var ErrDocumentTooLarge = errors.New("document exceeds size limit")

// withDefaults returns a copy of cfg with default values applied for zero-value fields.
func withDefaults(cfg config.FetcherConfig) config.FetcherConfig {
	if cfg.UserAgent == "" {
		cfg.UserAgent = config.DefaultUserAgent
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = config.DefaultRequestTimeout
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = config.DefaultChunkSize
	}
	if cfg.MaxDocumentBytes <= 0 {
		cfg.MaxDocumentBytes = config.DefaultMaxDocumentBytes
	}
	if cfg.MaxRedirects <= 0 {
		cfg.MaxRedirects = config.DefaultMaxRedirects
	}
	return cfg
}

// Fetcher performs at most one GET per document and streams the body to disk.
type Fetcher struct {
	client *http.Client
	cfg    config.FetcherConfig
	log    logger.Logger
}

// New creates a fetcher.
func New(cfg config.FetcherConfig, log logger.Logger) *Fetcher {
	cfg = withDefaults(cfg)
	return &Fetcher{
		client: &http.Client{
			Timeout:       cfg.RequestTimeout,
			CheckRedirect: RedirectPolicy(cfg.MaxRedirects),
		},
		cfg: cfg,
		log: log,
	}
}

// Fetch downloads rawURL to destination and returns the number of bytes written.
// The body is streamed in chunks through a temp file next to destination and renamed into
// place, so destination is either the whole document or absent. An existing destination is
// reused unless refetch is configured. Transport errors and error statuses are network errors.
func (f *Fetcher) Fetch(ctx context.Context, rawURL, destination string) (int64, error) {
	if !f.cfg.Refetch {
		if info, err := os.Stat(destination); err == nil && info.Mode().IsRegular() {
			f.log.Debug("Reusing downloaded document",
				logger.String("path", destination),
				logger.Int64("bytes", info.Size()),
			)
			return info.Size(), nil
		} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return 0, domain.WriteError("stat "+destination, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return 0, domain.NetworkError("create request", err)
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, domain.NetworkError("http fetch "+rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return 0, domain.NetworkError("http fetch "+rawURL, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
	if resp.ContentLength > f.cfg.MaxDocumentBytes {
		return 0, domain.NetworkError("http fetch "+rawURL, ErrDocumentTooLarge)
	}

	n, err := f.stream(resp.Body, destination)
	if err != nil {
		return 0, err
	}

	f.log.Debug("Document downloaded",
		logger.String("url", rawURL),
		logger.String("path", destination),
		logger.Int64("bytes", n),
	)
	return n, nil
}

// stream copies body into destination through a temp file.
func (f *Fetcher) stream(body io.Reader, destination string) (n int64, err error) {
	dir := filepath.Dir(destination)
	if err = os.MkdirAll(dir, dirPerm); err != nil {
		return 0, domain.WriteError("create directory "+dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(destination)+".part-*")
	if err != nil {
		return 0, domain.WriteError("create temp file", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	limited := io.LimitReader(body, f.cfg.MaxDocumentBytes+1)
	buf := make([]byte, f.cfg.ChunkSize)

	n, err = io.CopyBuffer(onlyWriter{tmp}, limited, buf)
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return 0, domain.WriteError("write "+destination, err)
		}
		return 0, domain.NetworkError("read response body", err)
	}
	if n > f.cfg.MaxDocumentBytes {
		return 0, domain.NetworkError("read response body", ErrDocumentTooLarge)
	}

	if err = tmp.Close(); err != nil {
		return 0, domain.WriteError("close temp file", err)
	}
	if err = os.Chmod(tmp.Name(), filePerm); err != nil {
		return 0, domain.WriteError("chmod temp file", err)
	}
	if err = os.Rename(tmp.Name(), destination); err != nil {
		return 0, domain.WriteError("rename into place", err)
	}
	return n, nil
}

// onlyWriter hides ReadFrom so io.CopyBuffer uses the chunk buffer.
type onlyWriter struct {
	io.Writer
}
