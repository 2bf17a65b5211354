package photometry

import(
	"fmt"
	"math"

	"github.com/astrocadence/tpfphot/pkg/pmath"
	"github.com/astrocadence/tpfphot/pkg/tpf"
)

// Evaluate runs aperture photometry over every cadence of the cutout:
// flux(t) is the mask-weighted pixel sum, and the error is propagated
// as sqrt(sum(err^2 * mask^2)) assuming independent pixel noise.
//
// A zero-total-weight mask just yields zero flux. Non-finite pixel
// values propagate into the output rather than being masked.
func Evaluate(t *tpf.TargetPixelFile, mask pmath.Grid) (LightCurve, error) {
	n := t.NCadences()
	if n > 0 && !mask.SameShape(t.Flux[0]) {
		return LightCurve{}, tpf.ShapeMismatchError{What: "aperture mask",
			Want: fmt.Sprintf("%dx%d", t.Flux[0].Dx(), t.Flux[0].Dy()),
			Got:  fmt.Sprintf("%dx%d", mask.Dx(), mask.Dy())}
	}

	lc := LightCurve{
		Flux:    make([]float64, n),
		FluxErr: make([]float64, n),
	}
	for cad:=0; cad<n; cad++ {
		lc.Flux[cad] = t.Flux[cad].Dot(mask)
		lc.FluxErr[cad] = math.Sqrt(t.FluxErr[cad].DotSq(mask))
	}
	return lc, nil
}
