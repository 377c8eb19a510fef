package extractor_test

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/config"
	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/domain"
	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/extractor"
	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/logger"
)

var red = color.RGBA{R: 255, A: 255}

// fakeDocument renders its page at twice the page geometry: 200x200 px for a 100x100 pt page,
// with a red square at points (50,50)-(90,90).
type fakeDocument struct {
	pages     []string
	renders   int
	closed    bool
	textErr   error
	renderErr error
	rendered  image.Image
}

func (d *fakeDocument) NumPage() int { return len(d.pages) }

func (d *fakeDocument) Text(page int) (string, error) {
	if d.textErr != nil {
		return "", d.textErr
	}
	return d.pages[page], nil
}

func (d *fakeDocument) Render(_ int, _ float64) (image.Image, error) {
	d.renders++
	if d.renderErr != nil {
		return nil, d.renderErr
	}
	if d.rendered != nil {
		return d.rendered, nil
	}
	img := image.NewRGBA(image.Rect(0, 0, 200, 200))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(100, 100, 180, 180), image.NewUniform(red), image.Point{}, draw.Src)
	return img, nil
}

func (d *fakeDocument) Close() error {
	d.closed = true
	return nil
}

type fakeLayout struct {
	geometry   domain.PageGeometry
	candidates []domain.BBox
	err        error
}

func (l fakeLayout) FirstPageLayout([]byte) (domain.PageGeometry, []domain.BBox, error) {
	return l.geometry, l.candidates, l.err
}

var square = domain.PageGeometry{Width: 100, Height: 100}

func newTestExtractor(doc *fakeDocument, layout extractor.LayoutReader, cfg config.ExtractorConfig) *extractor.Extractor {
	return extractor.New(cfg, logger.NewNop(),
		extractor.WithOpener(func([]byte) (extractor.Document, error) { return doc, nil }),
		extractor.WithLayoutReader(layout),
	)
}

var pdfBytes = []byte("%PDF-1.7")

func TestExtractText_PageOrderAndSeparators(t *testing.T) {
	t.Parallel()

	doc := &fakeDocument{pages: []string{"Row 1\n", "", "  \n", "Row 2\nRow 3"}}
	e := newTestExtractor(doc, fakeLayout{geometry: square}, config.ExtractorConfig{})

	text, err := e.ExtractText(pdfBytes)
	require.NoError(t, err)

	assert.Equal(t, "Row 1\nRow 2\nRow 3\n", text)
	assert.True(t, doc.closed)
}

func TestExtractText_NoTextLayerIsNotAnError(t *testing.T) {
	t.Parallel()

	doc := &fakeDocument{pages: []string{"", ""}}
	e := newTestExtractor(doc, fakeLayout{geometry: square}, config.ExtractorConfig{})

	text, err := e.ExtractText(pdfBytes)
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestExtract_UnparseableDocument(t *testing.T) {
	t.Parallel()

	e := extractor.New(config.ExtractorConfig{}, logger.NewNop(),
		extractor.WithOpener(func([]byte) (extractor.Document, error) { return nil, errors.New("corrupt xref") }),
		extractor.WithLayoutReader(fakeLayout{geometry: square}),
	)

	_, err := e.ExtractText(pdfBytes)
	assert.True(t, domain.IsKind(err, domain.KindParse))

	_, err = e.ExtractRepresentativeImage(pdfBytes)
	assert.True(t, domain.IsKind(err, domain.KindParse))

	_, err = e.Extract(pdfBytes, "Tops/p1")
	assert.True(t, domain.IsKind(err, domain.KindParse))
}

func TestExtract_ZeroPagesAndEmptyInput(t *testing.T) {
	t.Parallel()

	doc := &fakeDocument{}
	e := newTestExtractor(doc, fakeLayout{geometry: square}, config.ExtractorConfig{})

	_, err := e.ExtractText(pdfBytes)
	assert.True(t, domain.IsKind(err, domain.KindParse))
	assert.True(t, doc.closed)

	_, err = e.ExtractRepresentativeImage(nil)
	assert.True(t, domain.IsKind(err, domain.KindParse))
}

func TestExtract_TextFailureIsParseError(t *testing.T) {
	t.Parallel()

	doc := &fakeDocument{pages: []string{"a"}, textErr: errors.New("bad font")}
	e := newTestExtractor(doc, fakeLayout{geometry: square}, config.ExtractorConfig{})

	_, err := e.ExtractText(pdfBytes)
	assert.True(t, domain.IsKind(err, domain.KindParse))
}

func TestExtractRepresentativeImage_CropsLargestCandidate(t *testing.T) {
	t.Parallel()

	doc := &fakeDocument{pages: []string{""}}
	layout := fakeLayout{
		geometry: square,
		candidates: []domain.BBox{
			{X0: 10, Y0: 10, X1: 20, Y1: 20},
			{X0: 50, Y0: 50, X1: 90, Y1: 90},
		},
	}
	e := newTestExtractor(doc, layout, config.ExtractorConfig{})

	img, err := e.ExtractRepresentativeImage(pdfBytes)
	require.NoError(t, err)
	require.NotNil(t, img)

	nrgba, ok := img.(*image.NRGBA)
	require.True(t, ok, "image must be normalized to NRGBA")
	assert.Equal(t, image.Rect(0, 0, 80, 80), nrgba.Bounds())
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, nrgba.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, nrgba.NRGBAAt(79, 79))
}

func TestExtractRepresentativeImage_ClampsToPage(t *testing.T) {
	t.Parallel()

	doc := &fakeDocument{pages: []string{""}}
	layout := fakeLayout{
		geometry:   square,
		candidates: []domain.BBox{{X0: 50, Y0: 50, X1: 150, Y1: 400}},
	}
	e := newTestExtractor(doc, layout, config.ExtractorConfig{})

	img, err := e.ExtractRepresentativeImage(pdfBytes)
	require.NoError(t, err)
	require.NotNil(t, img)
	assert.Equal(t, image.Rect(0, 0, 100, 100), img.Bounds())
}

func TestExtractRepresentativeImage_DegenerateYieldsNoImage(t *testing.T) {
	t.Parallel()

	doc := &fakeDocument{pages: []string{""}}
	layout := fakeLayout{
		geometry:   square,
		candidates: []domain.BBox{{X0: 60, Y0: 10, X1: 40, Y1: 20}},
	}
	e := newTestExtractor(doc, layout, config.ExtractorConfig{})

	img, err := e.ExtractRepresentativeImage(pdfBytes)
	require.NoError(t, err)
	assert.Nil(t, img)
	assert.Zero(t, doc.renders)
}

func TestExtractRepresentativeImage_LayoutFailureIsParseError(t *testing.T) {
	t.Parallel()

	doc := &fakeDocument{pages: []string{""}}
	e := newTestExtractor(doc, fakeLayout{err: errors.New("broken page tree")}, config.ExtractorConfig{})

	_, err := e.ExtractRepresentativeImage(pdfBytes)
	assert.True(t, domain.IsKind(err, domain.KindParse))

	result, err := e.Extract(pdfBytes, "Tops/p1")
	require.NoError(t, err)
	assert.True(t, domain.IsKind(result.ImageErr, domain.KindParse))
}

func TestExtractRepresentativeImage_Downscales(t *testing.T) {
	t.Parallel()

	doc := &fakeDocument{pages: []string{""}}
	layout := fakeLayout{
		geometry:   square,
		candidates: []domain.BBox{{X0: 0, Y0: 0, X1: 100, Y1: 50}},
	}
	e := newTestExtractor(doc, layout, config.ExtractorConfig{MaxImageSide: 50})

	img, err := e.ExtractRepresentativeImage(pdfBytes)
	require.NoError(t, err)
	require.NotNil(t, img)
	assert.Equal(t, image.Rect(0, 0, 50, 25), img.Bounds())
}

func TestExtract_TextWithoutImage(t *testing.T) {
	t.Parallel()

	doc := &fakeDocument{pages: []string{"Cast on 40 stitches."}}
	e := newTestExtractor(doc, fakeLayout{geometry: square}, config.ExtractorConfig{})

	result, err := e.Extract(pdfBytes, "Tops/p1")
	require.NoError(t, err)

	assert.Equal(t, "Cast on 40 stitches.\n", result.Text)
	assert.False(t, result.HasImage())
	assert.Equal(t, "Tops/p1", result.SourceID)
	assert.True(t, doc.closed)
}

func TestExtract_LayoutFailureKeepsText(t *testing.T) {
	t.Parallel()

	doc := &fakeDocument{pages: []string{"Row 1: purl.", "Row 2: knit."}}
	e := newTestExtractor(doc, fakeLayout{err: errors.New("broken page tree")}, config.ExtractorConfig{})

	result, err := e.Extract(pdfBytes, "Skirts/s1")
	require.NoError(t, err)

	assert.Equal(t, "Row 1: purl.\nRow 2: knit.\n", result.Text)
	assert.False(t, result.HasImage())
	assert.True(t, result.ImageFailed())
	assert.True(t, domain.IsKind(result.ImageErr, domain.KindParse))
	assert.Zero(t, doc.renders)
}

func TestExtract_RenderFailureKeepsText(t *testing.T) {
	t.Parallel()

	doc := &fakeDocument{pages: []string{"Bind off."}, renderErr: errors.New("out of pixmap memory")}
	layout := fakeLayout{
		geometry:   square,
		candidates: []domain.BBox{{X0: 10, Y0: 10, X1: 60, Y1: 60}},
	}
	e := newTestExtractor(doc, layout, config.ExtractorConfig{})

	result, err := e.Extract(pdfBytes, "Pants/p9")
	require.NoError(t, err)

	assert.Equal(t, "Bind off.\n", result.Text)
	assert.Nil(t, result.Image)
	assert.True(t, result.ImageFailed())
	assert.Equal(t, 1, doc.renders)
}
