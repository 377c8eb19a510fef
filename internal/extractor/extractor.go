// Package extractor turns document bytes into instruction text and a representative image.
package extractor

import (
	"errors"
	"fmt"
	"image"
	"math"
	"strings"

	"golang.org/x/image/draw"

	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/config"
	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/domain"
	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/logger"
)

// Extractor extracts text and the representative image of a document.
type Extractor struct {
	open   OpenFunc
	layout LayoutReader
	cfg    config.ExtractorConfig
	log    logger.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithOpener replaces the document opener.
func WithOpener(open OpenFunc) Option {
	return func(e *Extractor) {
		e.open = open
	}
}

// WithLayoutReader replaces the page layout reader.
func WithLayoutReader(r LayoutReader) Option {
	return func(e *Extractor) {
		e.layout = r
	}
}

// New creates an extractor backed by MuPDF for text and rendering and pdfcpu for layout.
func New(cfg config.ExtractorConfig, log logger.Logger, opts ...Option) *Extractor {
	if cfg.DPI <= 0 {
		cfg.DPI = config.DefaultDPI
	}
	e := &Extractor{
		open:   OpenFitz,
		layout: PDFLayoutReader{},
		cfg:    cfg,
		log:    log,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract runs text and image extraction on one document. Only an unopenable document or
// unreadable text is an error; an image-side failure is reported in ImageErr.
func (e *Extractor) Extract(data []byte, sourceID string) (domain.ExtractionResult, error) {
	doc, err := e.openDocument(data)
	if err != nil {
		return domain.ExtractionResult{}, err
	}
	defer e.closeDocument(doc)

	text, err := e.text(doc)
	if err != nil {
		return domain.ExtractionResult{}, err
	}

	result := domain.ExtractionResult{Text: text, SourceID: sourceID}

	// The text stands on its own: an unreadable layout or a failed render only loses the image.
	result.Image, result.ImageErr = e.representativeImage(doc, data)
	if result.ImageErr != nil {
		e.log.Warn("Image extraction failed, keeping text",
			logger.String("source", sourceID),
			logger.Error(result.ImageErr),
		)
		result.Image = nil
	}
	return result, nil
}

// ExtractText returns the text of every page in order, each non-empty page followed by a
// newline. A document without a text layer yields an empty string.
func (e *Extractor) ExtractText(data []byte) (string, error) {
	doc, err := e.openDocument(data)
	if err != nil {
		return "", err
	}
	defer e.closeDocument(doc)

	return e.text(doc)
}

// ExtractRepresentativeImage returns the first page's largest painted image, cropped from a
// rendering of that page, or nil when the page has no usable image.
func (e *Extractor) ExtractRepresentativeImage(data []byte) (image.Image, error) {
	doc, err := e.openDocument(data)
	if err != nil {
		return nil, err
	}
	defer e.closeDocument(doc)

	return e.representativeImage(doc, data)
}

func (e *Extractor) openDocument(data []byte) (Document, error) {
	if len(data) == 0 {
		return nil, domain.ParseError("open document", errors.New("empty document"))
	}
	doc, err := e.open(data)
	if err != nil {
		return nil, domain.ParseError("open document", err)
	}
	if doc.NumPage() <= 0 {
		e.closeDocument(doc)
		return nil, domain.ParseError("open document", errNoPages)
	}
	return doc, nil
}

func (e *Extractor) closeDocument(doc Document) {
	if err := doc.Close(); err != nil {
		e.log.Warn("Failed to close document", logger.Error(err))
	}
}

func (e *Extractor) text(doc Document) (string, error) {
	var sb strings.Builder
	for page := range doc.NumPage() {
		t, err := doc.Text(page)
		if err != nil {
			return "", domain.ParseError(fmt.Sprintf("extract text of page %d", page+1), err)
		}
		t = strings.TrimRight(t, "\r\n")
		if strings.TrimSpace(t) == "" {
			continue
		}
		sb.WriteString(t)
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

func (e *Extractor) representativeImage(doc Document, data []byte) (image.Image, error) {
	geometry, candidates, err := e.layout.FirstPageLayout(data)
	if err != nil {
		return nil, domain.ParseError("read first page layout", err)
	}

	box, ok := SelectRepresentative(candidates, geometry)
	if !ok {
		e.log.Debug("No representative image on first page", logger.Int("candidates", len(candidates)))
		return nil, nil
	}

	page, err := doc.Render(0, e.cfg.DPI)
	if err != nil {
		return nil, domain.ParseError("render first page", err)
	}

	cropped := crop(page, box, geometry)
	if cropped == nil {
		return nil, nil
	}
	return downscale(cropped, e.cfg.MaxImageSide), nil
}

// crop cuts box out of a rendering of the page and returns it as NRGBA.
// The rendering's scale is derived from its size relative to the page geometry.
func crop(page image.Image, box domain.BBox, geometry domain.PageGeometry) *image.NRGBA {
	bounds := page.Bounds()
	if geometry.Width <= 0 || geometry.Height <= 0 {
		return nil
	}
	sx := float64(bounds.Dx()) / geometry.Width
	sy := float64(bounds.Dy()) / geometry.Height

	r := image.Rect(
		bounds.Min.X+int(math.Floor(box.X0*sx)),
		bounds.Min.Y+int(math.Floor(box.Y0*sy)),
		bounds.Min.X+int(math.Ceil(box.X1*sx)),
		bounds.Min.Y+int(math.Ceil(box.Y1*sy)),
	).Intersect(bounds)
	if r.Empty() {
		return nil
	}

	dst := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), page, r.Min, draw.Src)
	return dst
}

// downscale shrinks img so its longest side is at most maxSide. maxSide <= 0 disables it.
func downscale(img *image.NRGBA, maxSide int) *image.NRGBA {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	longest := max(w, h)
	if maxSide <= 0 || longest <= maxSide {
		return img
	}

	scale := float64(maxSide) / float64(longest)
	nw := max(1, int(math.Round(float64(w)*scale)))
	nh := max(1, int(math.Round(float64(h)*scale)))

	dst := image.NewNRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}
