package detrend

import(
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// A Detrender removes a centroid-correlated trend from a flux series.
// t is the time axis (any monotonic sequence; the roll correction uses
// the cadence index), cx/cy the centroid trace, windows how many
// sub-series to detrend independently, polyOrder the order of the
// trend polynomial, and iters how many passes to make. Implementations
// must return a series the same length as flux.
type Detrender interface {
	Detrend(t, flux, cx, cy []float64, windows, polyOrder, iters int) ([]float64, error)
}

// SelfFlatFielder models flux as a polynomial in the arc length the
// centroid traverses through (x,y) space, and divides the fitted
// trend out. This is the classic self-flat-fielding correction for
// flux trends locked to spacecraft roll.
type SelfFlatFielder struct{}

func (SelfFlatFielder)Detrend(t, flux, cx, cy []float64, windows, polyOrder, iters int) ([]float64, error) {
	n := len(flux)
	if len(t) != n || len(cx) != n || len(cy) != n {
		return nil, fmt.Errorf("detrend: series lengths disagree (t=%d flux=%d cx=%d cy=%d)",
			len(t), n, len(cx), len(cy))
	}
	if windows < 1 {
		windows = 1
	}

	out := make([]float64, n)
	copy(out, flux)

	for pass:=0; pass<iters; pass++ {
		for w:=0; w<windows; w++ {
			lo := w * n / windows
			hi := (w + 1) * n / windows
			if hi > lo {
				detrendWindow(out[lo:hi], cx[lo:hi], cy[lo:hi], polyOrder)
			}
		}
	}
	return out, nil
}

// detrendWindow removes the arc-length trend from one window in place.
// Degenerate windows (no centroid motion, too few points for the fit,
// or a singular design matrix) are left untouched.
func detrendWindow(flux, cx, cy []float64, polyOrder int) {
	n := len(flux)

	// Cumulative arc length through centroid space
	steps := make([]float64, n)
	for i:=1; i<n; i++ {
		steps[i] = math.Hypot(cx[i]-cx[i-1], cy[i]-cy[i-1])
	}
	s := make([]float64, n)
	floats.CumSum(s, steps)

	if s[n-1] < 1e-12 {
		return // centroid never moved; nothing roll-locked to remove
	}

	mean := floats.Sum(flux) / float64(n)
	if mean == 0 || math.IsNaN(mean) || math.IsInf(mean, 0) {
		return
	}

	order := polyOrder
	if order > n-1 {
		order = n - 1
	}
	if order < 1 {
		return
	}

	coeffs, err := polyFit(s, flux, mean, order)
	if err != nil {
		return
	}

	for i:=0; i<n; i++ {
		trend := polyEval(coeffs, s[i])
		if math.Abs(trend) < 1e-9 {
			continue
		}
		flux[i] /= trend
	}
}

// polyFit least-squares fits flux/mean as a polynomial in s, returning
// coefficients lowest order first.
func polyFit(s, flux []float64, mean float64, order int) ([]float64, error) {
	n := len(s)

	a := mat.NewDense(n, order+1, nil)
	b := mat.NewDense(n, 1, nil)
	for i:=0; i<n; i++ {
		v := 1.0
		for j:=0; j<=order; j++ {
			a.Set(i, j, v)
			v *= s[i]
		}
		b.Set(i, 0, flux[i]/mean)
	}

	var c mat.Dense
	if err := c.Solve(a, b); err != nil {
		return nil, fmt.Errorf("polynomial fit: %v", err)
	}

	coeffs := make([]float64, order+1)
	for j := range coeffs {
		coeffs[j] = c.At(j, 0)
	}
	return coeffs, nil
}

func polyEval(coeffs []float64, x float64) float64 {
	v := 0.0
	for j:=len(coeffs)-1; j>=0; j-- {
		v = v*x + coeffs[j]
	}
	return v
}
