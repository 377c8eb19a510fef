package extractor

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/domain"
)

var (
	errNoPages   = errors.New("document has no pages")
	errNoPageBox = errors.New("first page has no media box")
)

// LayoutReader reports the geometry of the first page and where images are painted on it.
type LayoutReader interface {
	FirstPageLayout(data []byte) (domain.PageGeometry, []domain.BBox, error)
}

// PDFLayoutReader reads page structure with pdfcpu.
type PDFLayoutReader struct{}

// FirstPageLayout parses the document and scans the first page's content stream.
func (PDFLayoutReader) FirstPageLayout(data []byte) (domain.PageGeometry, []domain.BBox, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadAndValidate(bytes.NewReader(data), conf)
	if err != nil {
		return domain.PageGeometry{}, nil, fmt.Errorf("read document structure: %w", err)
	}
	if ctx.PageCount == 0 {
		return domain.PageGeometry{}, nil, errNoPages
	}

	pageDict, _, inherited, err := ctx.PageDict(1, false)
	if err != nil {
		return domain.PageGeometry{}, nil, fmt.Errorf("read first page: %w", err)
	}
	if pageDict == nil {
		return domain.PageGeometry{}, nil, errNoPages
	}

	box, ok := pageBox(ctx, pageDict, inherited)
	if !ok {
		return domain.PageGeometry{}, nil, errNoPageBox
	}
	geometry := domain.PageGeometry{
		Width:  box.UR.X - box.LL.X,
		Height: box.UR.Y - box.LL.Y,
	}

	content, err := pageContent(ctx, pageDict)
	if err != nil {
		return domain.PageGeometry{}, nil, fmt.Errorf("read first page content: %w", err)
	}

	resources := (&placementScanner{resolver: ctx}).dict(pageDict["Resources"])
	if resources == nil && inherited != nil {
		resources = inherited.Resources
	}

	return geometry, scanPlacements(ctx, content, resources, box), nil
}

// pageBox returns the visible page box: the crop box if present, else the media box.
// Both may be inherited from the page tree.
func pageBox(r resolver, pageDict types.Dict, inherited *model.InheritedPageAttrs) (types.Rectangle, bool) {
	s := &placementScanner{resolver: r}
	for _, key := range []string{"CropBox", "MediaBox"} {
		if arr, ok := s.deref(pageDict[key]).(types.Array); ok {
			if rect, ok := rectFromArray(s, arr); ok {
				return rect, true
			}
		}
	}
	if inherited != nil {
		if inherited.CropBox != nil {
			return *inherited.CropBox, true
		}
		if inherited.MediaBox != nil {
			return *inherited.MediaBox, true
		}
	}
	return types.Rectangle{}, false
}

func rectFromArray(s *placementScanner, arr types.Array) (types.Rectangle, bool) {
	const rectLen = 4
	if len(arr) != rectLen {
		return types.Rectangle{}, false
	}
	var v [rectLen]float64
	for i, o := range arr {
		n, ok := s.number(o)
		if !ok {
			return types.Rectangle{}, false
		}
		v[i] = n
	}
	rect := types.Rectangle{
		LL: types.Point{X: min(v[0], v[2]), Y: min(v[1], v[3])},
		UR: types.Point{X: max(v[0], v[2]), Y: max(v[1], v[3])},
	}
	if rect.UR.X <= rect.LL.X || rect.UR.Y <= rect.LL.Y {
		return types.Rectangle{}, false
	}
	return rect, true
}

// pageContent decodes and concatenates the page's content streams.
// A page without Contents has an empty content stream.
func pageContent(r resolver, pageDict types.Dict) ([]byte, error) {
	s := &placementScanner{resolver: r}

	var parts []types.Object
	switch v := s.deref(pageDict["Contents"]).(type) {
	case nil:
		return nil, nil
	case types.Array:
		parts = v
	default:
		parts = []types.Object{pageDict["Contents"]}
	}

	var buf bytes.Buffer
	for _, part := range parts {
		sd := s.stream(part)
		if sd == nil {
			continue
		}
		if err := sd.Decode(); err != nil {
			return nil, err
		}
		buf.Write(sd.Content)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}
