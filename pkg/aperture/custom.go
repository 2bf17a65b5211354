package aperture

import(
	"fmt"
	"strings"

	"github.com/astrocadence/tpfphot/pkg/pmath"
)

// InvalidParamsError means a custom aperture was requested with a
// missing or non-positive size parameter. Field names which one.
type InvalidParamsError struct {
	Field  string
	Reason string
}

func (e InvalidParamsError)Error() string {
	return fmt.Sprintf("invalid aperture parameter '%s': %s", e.Field, e.Reason)
}

// UnsupportedShapeError means a custom aperture was requested with a
// shape kind other than circle or rectangle.
type UnsupportedShapeError struct {
	Shape string
}

func (e UnsupportedShapeError)Error() string {
	return fmt.Sprintf("unsupported aperture shape '%s' (want 'circle' or 'rectangle')", e.Shape)
}

// CustomParams describes a single user-specified aperture outside the
// fixed catalog. Zero-valued X,Y mean "use the cutout center"; an
// empty Method means "exact".
type CustomParams struct {
	Shape  string
	R      float64 // circle radius
	L, W   float64 // rectangle length and width
	Theta  float64 // rectangle rotation, radians
	X, Y   float64 // position in pixel coords
	HasPos bool    // false: position defaults to the cutout center
	Method Method
}

// BuildCustom validates the parameters and rasterizes one mask over a
// w x h cutout, using the same primitive as the catalog generator.
func BuildCustom(p CustomParams, w, h int) (pmath.Grid, error) {
	cx, cy := float64(w/2), float64(h/2)
	if p.HasPos {
		cx, cy = p.X, p.Y
	}

	m := p.Method
	if m == "" {
		m = MethodExact
	}
	if m != MethodCenter && m != MethodExact {
		return pmath.Grid{}, InvalidParamsError{Field: "method", Reason: fmt.Sprintf("'%s' is not a weighting method", m)}
	}

	switch strings.ToLower(p.Shape) {
	case string(KindCircle):
		if p.R <= 0 {
			return pmath.Grid{}, InvalidParamsError{Field: "r", Reason: "circle needs a radius > 0"}
		}
		return Circle(cx, cy, p.R).Rasterize(w, h, m), nil

	case string(KindRectangle):
		if p.L <= 0 {
			return pmath.Grid{}, InvalidParamsError{Field: "l", Reason: "rectangle needs a length > 0"}
		}
		if p.W <= 0 {
			return pmath.Grid{}, InvalidParamsError{Field: "w", Reason: "rectangle needs a width > 0"}
		}
		return Rectangle(cx, cy, p.L, p.W, p.Theta).Rasterize(w, h, m), nil

	default:
		return pmath.Grid{}, UnsupportedShapeError{Shape: p.Shape}
	}
}
