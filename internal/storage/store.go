// Package storage persists derived artifacts under the mirrored category tree and answers
// whether a document has already been processed.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"time"

	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/config"
	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/domain"
	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/logger"
)

// Content types recorded by object-store backends.
const (
	contentTypeText  = "text/plain; charset=utf-8"
	contentTypeImage = "image/png"
	contentTypeJSON  = "application/json"
)

// Backend stores opaque blobs by slash-separated key. Put must be atomic per key:
// a concurrent reader sees either the whole blob or nothing.
type Backend interface {
	Exists(ctx context.Context, key string) (bool, error)
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

// ArtifactStore owns the artifact layout and the completion check.
type ArtifactStore struct {
	backend    Backend
	layout     Layout
	completion string
	log        logger.Logger
}

// NewArtifactStore creates a store over backend. completion is one of the config.Completion* policies.
func NewArtifactStore(backend Backend, layout Layout, completion string, log logger.Logger) *ArtifactStore {
	if completion == "" {
		completion = config.CompletionPerArtifact
	}
	return &ArtifactStore{
		backend:    backend,
		layout:     layout,
		completion: completion,
		log:        log,
	}
}

// Layout returns the store's path conventions.
func (s *ArtifactStore) Layout() Layout {
	return s.layout
}

// noImageMarker is written once a document completed without a representative image.
type noImageMarker struct {
	Category    string    `json:"category"`
	BaseName    string    `json:"base_name"`
	TextPath    string    `json:"text_path"`
	CompletedAt time.Time `json:"completed_at"`
}

// Record reports which artifacts of the document already exist.
func (s *ArtifactStore) Record(ctx context.Context, category, baseName string) (domain.ArtifactRecord, error) {
	rec := domain.ArtifactRecord{
		Category:  category,
		BaseName:  baseName,
		TextPath:  s.layout.TextKey(category, baseName),
		ImagePath: s.layout.ImageKey(category, baseName),
	}
	if err := s.layout.check(category, baseName); err != nil {
		return rec, err
	}

	var err error
	if rec.ExistingText, err = s.backend.Exists(ctx, rec.TextPath); err != nil {
		return rec, fmt.Errorf("stat text artifact: %w", err)
	}
	if rec.ExistingImage, err = s.backend.Exists(ctx, rec.ImagePath); err != nil {
		return rec, fmt.Errorf("stat image artifact: %w", err)
	}
	if !rec.ExistingImage {
		marker := s.layout.NoImageMarkerKey(category, baseName)
		if rec.ImageAbsent, err = s.backend.Exists(ctx, marker); err != nil {
			return rec, fmt.Errorf("stat completion marker: %w", err)
		}
	}

	return rec, nil
}

// IsComplete reports whether the document can be skipped. Backend errors count as incomplete,
// so the document is simply processed again.
func (s *ArtifactStore) IsComplete(ctx context.Context, category, baseName string) bool {
	rec, err := s.Record(ctx, category, baseName)
	if err != nil {
		s.log.Warn("Completion check failed, treating document as incomplete",
			logger.String("category", category),
			logger.String("base_name", baseName),
			logger.Error(err),
		)
		return false
	}
	return s.complete(rec)
}

func (s *ArtifactStore) complete(rec domain.ArtifactRecord) bool {
	if !rec.ExistingText {
		return false
	}
	if rec.ExistingImage {
		return true
	}
	return s.completion == config.CompletionPerArtifact && rec.ImageAbsent
}

// WriteText persists the text artifact. Empty text is written as an empty file.
func (s *ArtifactStore) WriteText(ctx context.Context, category, baseName, text string) error {
	if err := s.layout.check(category, baseName); err != nil {
		return domain.WriteError("write text", err)
	}
	key := s.layout.TextKey(category, baseName)
	if err := s.backend.Put(ctx, key, []byte(text), contentTypeText); err != nil {
		return domain.WriteError("write text "+key, err)
	}
	s.log.Debug("Text artifact written", logger.String("path", key), logger.Int("bytes", len(text)))
	return nil
}

// WriteImage encodes img as PNG and persists it. A nil image writes nothing.
func (s *ArtifactStore) WriteImage(ctx context.Context, category, baseName string, img image.Image) error {
	if img == nil {
		return nil
	}
	if err := s.layout.check(category, baseName); err != nil {
		return domain.WriteError("write image", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return domain.WriteError("encode png", err)
	}

	key := s.layout.ImageKey(category, baseName)
	if err := s.backend.Put(ctx, key, buf.Bytes(), contentTypeImage); err != nil {
		return domain.WriteError("write image "+key, err)
	}
	s.log.Debug("Image artifact written", logger.String("path", key), logger.Int("bytes", buf.Len()))
	return nil
}

// MarkComplete records the outcome of a finished extraction. Only documents without an image
// need a marker; an existing image artifact is its own proof of completion.
func (s *ArtifactStore) MarkComplete(ctx context.Context, category, baseName string, hasImage bool) error {
	if hasImage {
		return nil
	}
	if err := s.layout.check(category, baseName); err != nil {
		return domain.WriteError("mark complete", err)
	}

	data, err := json.Marshal(noImageMarker{
		Category:    category,
		BaseName:    baseName,
		TextPath:    s.layout.TextKey(category, baseName),
		CompletedAt: time.Now().UTC(),
	})
	if err != nil {
		return domain.WriteError("encode completion marker", err)
	}

	key := s.layout.NoImageMarkerKey(category, baseName)
	if err = s.backend.Put(ctx, key, data, contentTypeJSON); err != nil {
		return domain.WriteError("write completion marker "+key, err)
	}
	return nil
}
