package extractor

import (
	"math"

	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/domain"
)

// Clamp limits b to the page rectangle [0,W]×[0,H]. Reversed boxes stay reversed.
func Clamp(b domain.BBox, page domain.PageGeometry) domain.BBox {
	return domain.BBox{
		X0: clampFloat(b.X0, 0, page.Width),
		Y0: clampFloat(b.Y0, 0, page.Height),
		X1: clampFloat(b.X1, 0, page.Width),
		Y1: clampFloat(b.Y1, 0, page.Height),
	}
}

// Degenerate reports whether b encloses no area.
func Degenerate(b domain.BBox) bool {
	return b.X1 <= b.X0 || b.Y1 <= b.Y0
}

// Area returns (x1-x0)*(y1-y0), or 0 for a degenerate box.
func Area(b domain.BBox) float64 {
	if Degenerate(b) {
		return 0
	}
	return (b.X1 - b.X0) * (b.Y1 - b.Y0)
}

// SelectRepresentative clamps every candidate to the page and returns the one with the
// largest clamped area. Ties go to the earliest candidate. ok is false when there are no
// candidates or the best one is degenerate after clamping.
func SelectRepresentative(candidates []domain.BBox, page domain.PageGeometry) (best domain.BBox, ok bool) {
	bestArea := 0.0
	for _, c := range candidates {
		clamped := Clamp(c, page)
		if a := Area(clamped); a > bestArea {
			best, bestArea, ok = clamped, a, true
		}
	}
	return best, ok
}

func clampFloat(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Min(math.Max(v, lo), hi)
}
