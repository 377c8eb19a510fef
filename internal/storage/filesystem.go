package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// FilesystemBackend stores blobs as files. Keys are interpreted as slash-separated paths.
type FilesystemBackend struct{}

// NewFilesystemBackend creates a filesystem backend.
func NewFilesystemBackend() *FilesystemBackend {
	return &FilesystemBackend{}
}

// Exists reports whether a regular file exists at key.
func (b *FilesystemBackend) Exists(_ context.Context, key string) (bool, error) {
	info, err := os.Stat(filepath.FromSlash(key))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// Put writes data to a temp file in the target directory and renames it into place.
func (b *FilesystemBackend) Put(_ context.Context, key string, data []byte, _ string) error {
	return WriteFileAtomic(filepath.FromSlash(key), data)
}

// WriteFileAtomic creates missing parent directories, then writes data through a temp file
// and a rename so the destination is either complete or absent.
func WriteFileAtomic(dest string, data []byte) (err error) {
	dir := filepath.Dir(dest)
	if err = os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dest)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Chmod(tmp.Name(), filePerm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err = os.Rename(tmp.Name(), dest); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}
