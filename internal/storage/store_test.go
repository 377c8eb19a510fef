package storage_test

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/config"
	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/domain"
	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/logger"
	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/storage"
)

func newLocalStore(t *testing.T, completion string) (*storage.ArtifactStore, storage.Layout) {
	t.Helper()

	root := t.TempDir()
	layout := storage.Layout{
		TextRoot:  filepath.ToSlash(filepath.Join(root, "text_out")),
		ImageRoot: filepath.ToSlash(filepath.Join(root, "image_out")),
		StateRoot: filepath.ToSlash(filepath.Join(root, ".harvest")),
	}
	return storage.NewArtifactStore(storage.NewFilesystemBackend(), layout, completion, logger.NewNop()), layout
}

func testImage() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.NRGBA{R: 200, A: 255})
	return img
}

func TestArtifactStore_WriteTextMirrorsCategory(t *testing.T) {
	t.Parallel()

	store, layout := newLocalStore(t, config.CompletionPerArtifact)
	ctx := context.Background()

	require.NoError(t, store.WriteText(ctx, "Tops", "p1", "Row 1\nRow 2\n"))

	data, err := os.ReadFile(filepath.Join(filepath.FromSlash(layout.TextRoot), "Tops", "p1.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Row 1\nRow 2\n", string(data))
}

func TestArtifactStore_EmptyTextStillWritten(t *testing.T) {
	t.Parallel()

	store, layout := newLocalStore(t, config.CompletionPerArtifact)

	require.NoError(t, store.WriteText(context.Background(), "Skirts", "blank", ""))

	info, err := os.Stat(filepath.Join(filepath.FromSlash(layout.TextRoot), "Skirts", "blank.txt"))
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestArtifactStore_WriteImageProducesPNG(t *testing.T) {
	t.Parallel()

	store, layout := newLocalStore(t, config.CompletionPerArtifact)

	require.NoError(t, store.WriteImage(context.Background(), "Dresses", "d1", testImage()))

	f, err := os.Open(filepath.Join(filepath.FromSlash(layout.ImageRoot), "Dresses", "d1.png"))
	require.NoError(t, err)
	defer f.Close()

	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 3), decoded.Bounds())
}

func TestArtifactStore_NilImageWritesNothing(t *testing.T) {
	t.Parallel()

	store, layout := newLocalStore(t, config.CompletionPerArtifact)

	require.NoError(t, store.WriteImage(context.Background(), "Pants", "p2", nil))

	_, err := os.Stat(filepath.Join(filepath.FromSlash(layout.ImageRoot), "Pants", "p2.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestArtifactStore_NoTempFilesLeftBehind(t *testing.T) {
	t.Parallel()

	store, layout := newLocalStore(t, config.CompletionPerArtifact)
	ctx := context.Background()

	require.NoError(t, store.WriteText(ctx, "Tops", "p1", "first"))
	require.NoError(t, store.WriteText(ctx, "Tops", "p1", "second"))

	entries, err := os.ReadDir(filepath.Join(filepath.FromSlash(layout.TextRoot), "Tops"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "p1.txt", entries[0].Name())
}

func TestArtifactStore_IsComplete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		completion string
		text       bool
		img        bool
		marker     bool
		want       bool
	}{
		{name: "nothing written", completion: config.CompletionPerArtifact},
		{name: "text only", completion: config.CompletionPerArtifact, text: true},
		{name: "image only", completion: config.CompletionPerArtifact, img: true},
		{name: "both", completion: config.CompletionPerArtifact, text: true, img: true, want: true},
		{name: "text with no-image marker", completion: config.CompletionPerArtifact, text: true, marker: true, want: true},
		{name: "strict needs both", completion: config.CompletionStrict, text: true, marker: true},
		{name: "strict both", completion: config.CompletionStrict, text: true, img: true, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store, _ := newLocalStore(t, tt.completion)
			ctx := context.Background()

			if tt.text {
				require.NoError(t, store.WriteText(ctx, "Tops", "p1", "text"))
			}
			if tt.img {
				require.NoError(t, store.WriteImage(ctx, "Tops", "p1", testImage()))
			}
			if tt.marker {
				require.NoError(t, store.MarkComplete(ctx, "Tops", "p1", false))
			}

			assert.Equal(t, tt.want, store.IsComplete(ctx, "Tops", "p1"))
		})
	}
}

func TestArtifactStore_MarkCompleteWithImageWritesNoMarker(t *testing.T) {
	t.Parallel()

	store, layout := newLocalStore(t, config.CompletionPerArtifact)

	require.NoError(t, store.MarkComplete(context.Background(), "Tops", "p1", true))

	_, err := os.Stat(filepath.FromSlash(layout.NoImageMarkerKey("Tops", "p1")))
	assert.True(t, os.IsNotExist(err))
}

func TestArtifactStore_Record(t *testing.T) {
	t.Parallel()

	store, layout := newLocalStore(t, config.CompletionPerArtifact)
	ctx := context.Background()
	require.NoError(t, store.WriteText(ctx, "Jackets", "j1", "text"))

	rec, err := store.Record(ctx, "Jackets", "j1")
	require.NoError(t, err)

	assert.True(t, rec.ExistingText)
	assert.False(t, rec.ExistingImage)
	assert.False(t, rec.ImageAbsent)
	assert.Equal(t, layout.TextKey("Jackets", "j1"), rec.TextPath)
	assert.Equal(t, layout.ImageKey("Jackets", "j1"), rec.ImagePath)
}

func TestArtifactStore_NestedCategory(t *testing.T) {
	t.Parallel()

	store, layout := newLocalStore(t, config.CompletionPerArtifact)

	require.NoError(t, store.WriteText(context.Background(), "Tops/Summer", "t1", "x"))

	_, err := os.Stat(filepath.Join(filepath.FromSlash(layout.TextRoot), "Tops", "Summer", "t1.txt"))
	assert.NoError(t, err)
}

func TestArtifactStore_RejectsEscapingNames(t *testing.T) {
	t.Parallel()

	store, _ := newLocalStore(t, config.CompletionPerArtifact)
	ctx := context.Background()

	for _, tc := range []struct{ category, base string }{
		{"../etc", "p1"},
		{"Tops", "../p1"},
		{"", "p1"},
		{"Tops", ""},
	} {
		err := store.WriteText(ctx, tc.category, tc.base, "x")
		require.Error(t, err, "category=%q base=%q", tc.category, tc.base)
		assert.True(t, domain.IsKind(err, domain.KindWrite))
	}
}

func TestArtifactStore_WriteFailureIsWriteError(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	blocker := filepath.Join(root, "text_out")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0o600))

	layout := storage.Layout{TextRoot: filepath.ToSlash(blocker), ImageRoot: root, StateRoot: root}
	store := storage.NewArtifactStore(storage.NewFilesystemBackend(), layout, "", logger.NewNop())

	err := store.WriteText(context.Background(), "Tops", "p1", "x")
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindWrite))
}
