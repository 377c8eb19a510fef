// Package domain holds the types that flow through the harvest pipeline.
package domain

import (
	"image"
	"path"
	"strings"
)

// CatalogEntry is a document link discovered on a catalog listing page.
type CatalogEntry struct {
	Category    string
	PageNumber  int
	DocumentURL string
}

// FileName returns the last path segment of the document URL.
func (e CatalogEntry) FileName() string {
	return FileNameFromURL(e.DocumentURL)
}

// DownloadedDocument is a document whose bytes have been written to the content location.
type DownloadedDocument struct {
	Category  string
	FileName  string
	RawBytes  []byte
	LocalPath string
}

// BaseName is the file name without its extension.
func (d DownloadedDocument) BaseName() string {
	return BaseName(d.FileName)
}

// PageGeometry is the size of a page in PDF points. Origin is top-left.
type PageGeometry struct {
	Width  float64
	Height float64
}

// BBox is an axis-aligned box in page coordinates (top-left origin, y grows downward).
// Candidates read from a document are unclamped and may lie partly off the page.
type BBox struct {
	X0, Y0, X1, Y1 float64
}

// ExtractionResult is the output of extracting a single document.
// Text and Image are independent: either, both or neither may be present.
type ExtractionResult struct {
	Text     string
	Image    image.Image
	SourceID string
	// ImageErr is set when the text was read but the image could not be determined.
	// Image is nil and the document must not be recorded as having no image.
	ImageErr error
}

// ImageFailed reports whether image extraction failed after the text was read.
func (r ExtractionResult) ImageFailed() bool {
	return r.ImageErr != nil
}

// HasImage reports whether a representative image was found.
func (r ExtractionResult) HasImage() bool {
	return r.Image != nil
}

// ArtifactRecord describes the derived artifacts of one document.
type ArtifactRecord struct {
	Category      string
	BaseName      string
	TextPath      string
	ImagePath     string
	ExistingText  bool
	ExistingImage bool
	// ImageAbsent is set when a completed extraction recorded that the document has no image.
	ImageAbsent bool
}

// FileNameFromURL returns the final path segment of rawURL, ignoring query and fragment.
// It returns "" when the path is empty or ends in a slash.
func FileNameFromURL(rawURL string) string {
	s := rawURL
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	if s == "" || strings.HasSuffix(s, "/") {
		return ""
	}
	return path.Base(s)
}

// BaseName strips the extension from a file name.
func BaseName(fileName string) string {
	return strings.TrimSuffix(fileName, path.Ext(fileName))
}
