package extractor

import (
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/domain"
)

// maxFormDepth bounds form XObject nesting, which also breaks reference cycles.
const maxFormDepth = 8

// resolver dereferences indirect objects of the document.
type resolver interface {
	Dereference(o types.Object) (types.Object, error)
}

// placementScanner walks a page content stream and records where raster images are painted.
type placementScanner struct {
	resolver resolver
	box      types.Rectangle
	found    []domain.BBox
}

// scanPlacements returns the page-space boxes of image XObjects (including those inside
// forms) and inline images in content, in paint order. box is the visible page box.
func scanPlacements(r resolver, content []byte, resources types.Dict, box types.Rectangle) []domain.BBox {
	s := &placementScanner{resolver: r, box: box}
	s.run(content, resources, identity, 0)
	return s.found
}

func (s *placementScanner) run(content []byte, resources types.Dict, ctm matrix, depth int) {
	lex := &lexer{data: content}
	var (
		operands []token
		saved    []matrix
	)

	for {
		tok := lex.next()
		switch tok.kind {
		case tokEOF:
			return
		case tokArrayStart, tokDictStart:
			skipComposite(lex)
			operands = append(operands, token{kind: tokString})
			continue
		case tokKeyword:
		default:
			operands = append(operands, tok)
			continue
		}

		switch tok.text {
		case "q":
			saved = append(saved, ctm)
		case "Q":
			if n := len(saved); n > 0 {
				ctm, saved = saved[n-1], saved[:n-1]
			}
		case "cm":
			if m, ok := matrixOperands(operands); ok {
				ctm = m.multiply(ctm)
			}
		case "Do":
			if n := len(operands); n > 0 && operands[n-1].kind == tokName {
				s.paintXObject(operands[n-1].text, resources, ctm, depth)
			}
		case "BI":
			skipInlineImageDict(lex)
			lex.skipInlineImageData()
			s.record(ctm)
		}
		operands = operands[:0]
	}
}

func (s *placementScanner) paintXObject(name string, resources types.Dict, ctm matrix, depth int) {
	xobjects := s.dict(resources["XObject"])
	if xobjects == nil {
		return
	}
	sd := s.stream(xobjects[name])
	if sd == nil {
		return
	}

	switch s.name(sd.Dict["Subtype"]) {
	case "Image":
		s.record(ctm)
	case "Form":
		if depth >= maxFormDepth {
			return
		}
		if err := sd.Decode(); err != nil {
			return
		}
		formMatrix := identity
		if arr, ok := s.deref(sd.Dict["Matrix"]).(types.Array); ok {
			if m, ok := matrixFromArray(s, arr); ok {
				formMatrix = m
			}
		}
		formResources := s.dict(sd.Dict["Resources"])
		if formResources == nil {
			formResources = resources
		}
		s.run(sd.Content, formResources, formMatrix.multiply(ctm), depth+1)
	}
}

// record converts the unit square under ctm to top-left page coordinates.
func (s *placementScanner) record(ctm matrix) {
	minX, minY, maxX, maxY := ctm.unitSquareBounds()
	s.found = append(s.found, domain.BBox{
		X0: minX - s.box.LL.X,
		Y0: s.box.UR.Y - maxY,
		X1: maxX - s.box.LL.X,
		Y1: s.box.UR.Y - minY,
	})
}

func (s *placementScanner) deref(o types.Object) types.Object {
	if o == nil {
		return nil
	}
	v, err := s.resolver.Dereference(o)
	if err != nil {
		return nil
	}
	return v
}

func (s *placementScanner) dict(o types.Object) types.Dict {
	if d, ok := s.deref(o).(types.Dict); ok {
		return d
	}
	return nil
}

func (s *placementScanner) stream(o types.Object) *types.StreamDict {
	switch v := s.deref(o).(type) {
	case types.StreamDict:
		return &v
	case *types.StreamDict:
		return v
	}
	return nil
}

func (s *placementScanner) name(o types.Object) string {
	if n, ok := s.deref(o).(types.Name); ok {
		return string(n)
	}
	return ""
}

// number converts a PDF numeric object.
func (s *placementScanner) number(o types.Object) (float64, bool) {
	switch v := s.deref(o).(type) {
	case types.Integer:
		return float64(v), true
	case types.Float:
		return float64(v), true
	}
	return 0, false
}

func matrixFromArray(s *placementScanner, arr types.Array) (matrix, bool) {
	if len(arr) != len(matrix{}) {
		return identity, false
	}
	var m matrix
	for i, o := range arr {
		v, ok := s.number(o)
		if !ok {
			return identity, false
		}
		m[i] = v
	}
	return m, true
}

// matrixOperands reads the six numeric operands of cm.
func matrixOperands(operands []token) (matrix, bool) {
	n := len(operands)
	if n < len(matrix{}) {
		return identity, false
	}
	var m matrix
	for i, tok := range operands[n-len(matrix{}):] {
		if tok.kind != tokNumber {
			return identity, false
		}
		m[i] = tok.num
	}
	return m, true
}

// skipComposite consumes tokens up to the close of an array or dictionary.
func skipComposite(lex *lexer) {
	depth := 1
	for depth > 0 {
		switch lex.next().kind {
		case tokEOF:
			return
		case tokArrayStart, tokDictStart:
			depth++
		case tokArrayEnd, tokDictEnd:
			depth--
		}
	}
}

// skipInlineImageDict consumes the key/value pairs between BI and ID.
func skipInlineImageDict(lex *lexer) {
	for {
		tok := lex.next()
		if tok.kind == tokEOF || (tok.kind == tokKeyword && tok.text == "ID") {
			return
		}
	}
}
