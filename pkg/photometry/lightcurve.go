package photometry

import(
	"github.com/astrocadence/tpfphot/pkg/aperture"
	"github.com/astrocadence/tpfphot/pkg/pmath"
)

// A LightCurve is the flux time series extracted through one aperture
// mask, with the propagated per-cadence uncertainty alongside.
type LightCurve struct {
	Flux    []float64
	FluxErr []float64
}

func (lc LightCurve)Len() int { return len(lc.Flux) }

// WithFlux returns a new curve carrying the given flux values and this
// curve's uncertainties. The corrections only adjust flux; error
// propagation through detrending isn't attempted.
func (lc LightCurve)WithFlux(flux []float64) LightCurve {
	errs := make([]float64, len(lc.FluxErr))
	copy(errs, lc.FluxErr)
	return LightCurve{Flux: flux, FluxErr: errs}
}

// A SelectedResult is the outcome of an aperture sweep: the winning
// curve and mask, plus every candidate's curve and score for
// inspection. It is built once and never mutated; re-running the
// pipeline or requesting custom photometry yields a fresh one.
type SelectedResult struct {
	Best       LightCurve
	BestMask   pmath.Grid
	BestIndex  int  // index into Candidates; -1 for a custom aperture
	Custom     bool // true when the mask came from outside the catalog

	Candidates []aperture.Candidate
	Curves     []LightCurve
	Scores     []float64
}
