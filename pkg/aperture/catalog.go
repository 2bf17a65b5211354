package aperture

import(
	"fmt"

	"github.com/astrocadence/tpfphot/pkg/pmath"
)

// A Candidate is one entry in the fixed aperture catalog: a shape, the
// weighting method used to rasterize it, and the resulting mask.
type Candidate struct {
	Shape  Shape
	Method Method
	Mask   pmath.Grid
}

func (c Candidate)String() string {
	switch c.Shape.Kind {
	case KindCircle:
		return fmt.Sprintf("circle[r=%.1f, %s]", c.Shape.R, c.Method)
	default:
		return fmt.Sprintf("rect[%.1fx%.1f, %s]", c.Shape.L, c.Shape.W, c.Method)
	}
}

// The candidate radii run from 1.5 up to (but not including) 4.0
// pixels, in steps of 0.5.
const (
	RadiusMin  = 1.5
	RadiusMax  = 4.0
	RadiusStep = 0.5
)

// GenerateCatalog builds the fixed, ordered list of candidate aperture
// masks for a w x h cutout, centered on the cutout's geometric center.
// For each radius both a circle and a square of matching size are
// rasterized with each weighting method, giving 5 x 2 x 2 = 20
// candidates. The order is stable: for each radius, circle then
// rectangle under "center", then circle then rectangle under "exact".
func GenerateCatalog(w, h int) []Candidate {
	cx, cy := float64(w/2), float64(h/2)

	cands := []Candidate{}
	for r:=RadiusMin; r<RadiusMax; r+=RadiusStep {
		circ := Circle(cx, cy, r)
		rect := Rectangle(cx, cy, r, r, 0.0)
		for _, m := range []Method{MethodCenter, MethodExact} {
			cands = append(cands, Candidate{Shape: circ, Method: m, Mask: circ.Rasterize(w, h, m)})
			cands = append(cands, Candidate{Shape: rect, Method: m, Mask: rect.Rasterize(w, h, m)})
		}
	}
	return cands
}
