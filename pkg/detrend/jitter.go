package detrend

import(
	"fmt"
	"log"
	"math"

	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"

	"github.com/astrocadence/tpfphot/pkg/photometry"
	"github.com/astrocadence/tpfphot/pkg/tpf"
)

// The round count and outlier threshold come straight from the
// original pipeline with no documented derivation; they bound the
// runtime rather than guarantee convergence. Treat them as tunables.
const (
	jitterRounds  = 5
	outlierSigma  = 2.5
	coeffBound    = 15.0
	maxFitIters   = 2000
)

// The quadratic surface is centered on the cutout's half-width, 4.0
// in the 9x9 reference geometry.
const centroidOrigin = 4.0

// quadFactor is the 5-coefficient correction surface evaluated at one
// centroid position:
//   c0 + c1*dx + c2*dx^2 + c3*dy + c4*dy^2, with dx = x - x0 etc.
func quadFactor(c []float64, x, y float64) float64 {
	dx, dy := x - centroidOrigin, y - centroidOrigin
	return c[0] + c[1]*dx + c[2]*dx*dx + c[3]*dy + c[4]*dy*dy
}

// ApplyJitter removes sub-pixel pointing noise from the light curve by
// regressing flux against the centroid trace. Each of the 5 rounds
// marks deep negative outliers (flux <= mean - 2.5 sigma) with
// infinite weight so the fit ignores them, fits the bounded quadratic
// surface warm-started from the previous round, and recomputes the
// curve as flux * factor. A round whose optimizer fails to improve
// keeps the previous round's coefficients and carries on.
func ApplyJitter(cfg tpf.Config, lc photometry.LightCurve, cx, cy []float64) (photometry.LightCurve, error) {
	n := lc.Len()
	if len(cx) != n || len(cy) != n {
		return photometry.LightCurve{}, tpf.ShapeMismatchError{What: "centroid trace",
			Want: fmt.Sprintf("%d", n), Got: fmt.Sprintf("(%d,%d)", len(cx), len(cy))}
	}
	if n == 0 {
		return lc.WithFlux(nil), nil
	}

	flux := make([]float64, n)
	copy(flux, lc.Flux)

	included := make([]bool, n)
	weights := make([]float64, n)
	for i := range included {
		included[i] = true
		weights[i] = 1.0
	}

	coeffs := []float64{3, 3, 3, 3, 3}

	for round:=0; round<jitterRounds; round++ {
		markOutliers(flux, included, weights)

		objective := func(c []float64) float64 {
			for _, v := range c {
				if v < -coeffBound || v > coeffBound {
					return math.Inf(1)
				}
			}
			sum := 0.0
			for i:=0; i<n; i++ {
				if math.IsInf(weights[i], 1) {
					continue // 1/inf weight, contributes nothing
				}
				r := (1 - flux[i]*quadFactor(c, cx[i], cy[i])) / weights[i]
				sum += r * r
			}
			return sum
		}

		next, err := fitRound(objective, coeffs)
		if err != nil {
			// Recoverable: keep the previous round's coefficients
			if cfg.Verbosity > 0 {
				log.Printf("jitter round %d: %v; keeping previous coefficients\n", round, err)
			}
		} else {
			coeffs = next
		}

		for i:=0; i<n; i++ {
			flux[i] *= quadFactor(coeffs, cx[i], cy[i])
		}
	}

	return lc.WithFlux(flux), nil
}

// markOutliers flags cadences far below the included mean, assigning
// them infinite weight-uncertainty so the fit skips them without
// shortening the series. A non-finite scale estimate skips the whole
// exclusion step for this round.
func markOutliers(flux []float64, included []bool, weights []float64) {
	kept := []float64{}
	for i, ok := range included {
		if ok {
			kept = append(kept, flux[i])
		}
	}

	std := stat.StdDev(kept, nil)
	if std <= 0 || math.IsNaN(std) || math.IsInf(std, 0) {
		// Zero or undefined scatter: there are no outliers to mark,
		// and a zero threshold would flag every cadence at the mean
		return
	}
	thresh := stat.Mean(kept, nil) - outlierSigma*std

	for i, f := range flux {
		if f <= thresh {
			included[i] = false
			weights[i] = math.Inf(1)
		}
	}
}

// OptimizerDivergenceError means one round's bounded fit failed to
// improve on its starting point. It never escapes ApplyJitter: the
// round keeps the previous coefficients and the correction continues.
type OptimizerDivergenceError struct {
	Before, After float64
}

func (e OptimizerDivergenceError)Error() string {
	return fmt.Sprintf("optimizer diverged (%.4g -> %.4g)", e.Before, e.After)
}

// fitRound is a var so tests can force a round to fail.
var fitRound = nelderMeadFit

// nelderMeadFit minimizes the objective over the 5 coefficients with
// Nelder-Mead, the bound constraint enforced by the +Inf wall in the
// objective and the iteration count capped so the fit can't run away.
func nelderMeadFit(objective func([]float64) float64, init []float64) ([]float64, error) {
	before := objective(init)

	start := make([]float64, len(init))
	copy(start, init)

	problem := optimize.Problem{Func: objective}
	settings := &optimize.Settings{MajorIterations: maxFitIters}

	result, err := optimize.Minimize(problem, start, settings, &optimize.NelderMead{})
	if err != nil {
		return nil, fmt.Errorf("optimizer: %v", err)
	}
	if math.IsNaN(result.F) || result.F > before {
		return nil, OptimizerDivergenceError{Before: before, After: result.F}
	}
	return result.X, nil
}
