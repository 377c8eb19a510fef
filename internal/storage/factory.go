package storage

import (
	"context"
	"fmt"

	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/config"
	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/logger"
)

// New builds the artifact store selected by cfg.Storage.Backend.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (*ArtifactStore, error) {
	layout := Layout{
		TextRoot:  cfg.Paths.Text,
		ImageRoot: cfg.Paths.Image,
		StateRoot: cfg.Paths.State,
	}

	var backend Backend
	switch cfg.Storage.Backend {
	case config.BackendLocal, "":
		backend = NewFilesystemBackend()
	case config.BackendMinIO:
		mb, err := NewMinIOBackend(ctx, cfg.MinIO, cfg.Paths.State, log)
		if err != nil {
			return nil, err
		}
		backend = mb
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	return NewArtifactStore(backend, layout, cfg.Storage.Completion, log), nil
}
