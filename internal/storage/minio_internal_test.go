package storage

import (
	"context"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/config"
	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/config/minio"
	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/logger"
)

type fakeObjects struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeObjects) StatObject(
	_ context.Context, bucket, object string, _ miniogo.StatObjectOptions,
) (miniogo.ObjectInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, ok := f.objects[bucket+"/"+object]
	if !ok {
		return miniogo.ObjectInfo{}, miniogo.ErrorResponse{
			Code:       "NoSuchKey",
			StatusCode: http.StatusNotFound,
			BucketName: bucket,
			Key:        object,
		}
	}
	return miniogo.ObjectInfo{Key: object, Size: int64(len(data))}, nil
}

func (f *fakeObjects) PutObject(
	_ context.Context, bucket, object string, reader io.Reader, _ int64, opts miniogo.PutObjectOptions,
) (miniogo.UploadInfo, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return miniogo.UploadInfo{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[bucket+"/"+object] = data
	f.types[bucket+"/"+object] = opts.ContentType
	return miniogo.UploadInfo{Bucket: bucket, Key: object, Size: int64(len(data))}, nil
}

func newTestMinIOStore(objects *fakeObjects, completion string) *ArtifactStore {
	cfg := &minio.Config{
		Bucket:        "artifacts",
		StateBucket:   "state",
		UploadTimeout: time.Second,
	}
	layout := Layout{TextRoot: "text_out", ImageRoot: "image_out", StateRoot: ".harvest"}
	return NewArtifactStore(newMinIOBackend(objects, cfg, layout.StateRoot), layout, completion, logger.NewNop())
}

func TestMinIOBackend_ArtifactKeys(t *testing.T) {
	t.Parallel()

	objects := newFakeObjects()
	store := newTestMinIOStore(objects, config.CompletionPerArtifact)
	ctx := context.Background()

	require.NoError(t, store.WriteText(ctx, "Tops", "p1", "hello"))
	require.NoError(t, store.MarkComplete(ctx, "Tops", "p1", false))

	assert.Equal(t, []byte("hello"), objects.objects["artifacts/text_out/Tops/p1.txt"])
	assert.Equal(t, contentTypeText, objects.types["artifacts/text_out/Tops/p1.txt"])
	assert.Contains(t, objects.objects, "state/.harvest/Tops/p1.noimage.json")
	assert.True(t, store.IsComplete(ctx, "Tops", "p1"))
}

func TestMinIOBackend_MissingObjectIsNotAnError(t *testing.T) {
	t.Parallel()

	backend := newMinIOBackend(newFakeObjects(), &minio.Config{Bucket: "b", UploadTimeout: time.Second}, ".harvest")

	exists, err := backend.Exists(context.Background(), "text_out/Tops/missing.txt")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMinIOBackend_AbsoluteRootsTrimmed(t *testing.T) {
	t.Parallel()

	objects := newFakeObjects()
	backend := newMinIOBackend(objects, &minio.Config{Bucket: "b", UploadTimeout: time.Second}, "/var/state")

	require.NoError(t, backend.Put(context.Background(), "/data/text/Tops/p1.txt", []byte("x"), contentTypeText))
	require.NoError(t, backend.Put(context.Background(), "/var/state/Tops/p1.noimage.json", []byte("{}"), contentTypeJSON))

	assert.Contains(t, objects.objects, "b/data/text/Tops/p1.txt")
	assert.Contains(t, objects.objects, "b/var/state/Tops/p1.noimage.json")
}

func TestUniqueBuckets(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a"}, uniqueBuckets("a", "a"))
	assert.Equal(t, []string{"a", "b"}, uniqueBuckets("a", "", "b"))
}
