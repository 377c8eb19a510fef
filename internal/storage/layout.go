package storage

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// Artifact file extensions.
const (
	TextExt          = ".txt"
	ImageExt         = ".png"
	noImageMarkerExt = ".noimage.json"
)

var errInvalidName = errors.New("invalid artifact name")

// Layout maps a (category, base name) pair onto the mirrored artifact trees.
// Keys are slash-separated; backends translate them to their own addressing.
type Layout struct {
	TextRoot  string
	ImageRoot string
	StateRoot string
}

// TextKey returns <text_root>/<category>/<base>.txt.
func (l Layout) TextKey(category, baseName string) string {
	return path.Join(l.TextRoot, category, baseName+TextExt)
}

// ImageKey returns <image_root>/<category>/<base>.png.
func (l Layout) ImageKey(category, baseName string) string {
	return path.Join(l.ImageRoot, category, baseName+ImageExt)
}

// NoImageMarkerKey returns <state_root>/<category>/<base>.noimage.json.
func (l Layout) NoImageMarkerKey(category, baseName string) string {
	return path.Join(l.StateRoot, category, baseName+noImageMarkerExt)
}

// check rejects names that would escape the mirrored tree.
func (l Layout) check(category, baseName string) error {
	if baseName == "" || strings.ContainsAny(baseName, `/\`) || baseName == "." || baseName == ".." {
		return fmt.Errorf("%w: base name %q", errInvalidName, baseName)
	}
	if category == "" {
		return fmt.Errorf("%w: empty category", errInvalidName)
	}
	for _, part := range strings.Split(category, "/") {
		if part == "" || part == "." || part == ".." {
			return fmt.Errorf("%w: category %q", errInvalidName, category)
		}
	}
	return nil
}
