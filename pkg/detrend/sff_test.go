package detrend

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/astrocadence/tpfphot/pkg/photometry"
	"github.com/astrocadence/tpfphot/pkg/tpf"
)

func TestSFFRemovesArcLengthTrend(t *testing.T) {
	// Centroid drifts steadily, flux follows a quadratic in the arc
	// length: a 5th-order trend fit should flatten it almost exactly
	n := 50
	cx := make([]float64, n)
	cy := make([]float64, n)
	flux := make([]float64, n)
	tAxis := make([]float64, n)
	for i := 0; i < n; i++ {
		tAxis[i] = float64(i)
		cx[i] = 4.0 + 0.05*float64(i)
		cy[i] = 4.0
		s := 0.05 * float64(i)
		flux[i] = 10.0 * (1.0 + 0.4*s - 0.1*s*s)
	}

	out, err := SelfFlatFielder{}.Detrend(tAxis, flux, cx, cy, 1, 5, 1)
	require.NoError(t, err)
	require.Len(t, out, n)

	before := stat.StdDev(flux, nil)
	after := stat.StdDev(out, nil)
	assert.Less(t, after, before/10, "trend should be mostly removed (%.4f -> %.4f)", before, after)
}

func TestSFFConstantFluxUnchanged(t *testing.T) {
	n := 30
	cx := make([]float64, n)
	flux := make([]float64, n)
	tAxis := make([]float64, n)
	for i := 0; i < n; i++ {
		tAxis[i] = float64(i)
		cx[i] = 4.0 + 0.1*float64(i)
		flux[i] = 7.0
	}

	out, err := SelfFlatFielder{}.Detrend(tAxis, flux, cx, constSlice(n, 4.0), 1, 5, 1)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		assert.InDelta(t, 7.0, out[i], 1e-6)
	}
}

func TestSFFNoCentroidMotionLeavesFluxAlone(t *testing.T) {
	n := 20
	flux := make([]float64, n)
	tAxis := make([]float64, n)
	for i := 0; i < n; i++ {
		tAxis[i] = float64(i)
		flux[i] = 3.0 + float64(i)*0.5
	}

	out, err := SelfFlatFielder{}.Detrend(tAxis, flux, constSlice(n, 4.0), constSlice(n, 4.0), 1, 5, 1)
	require.NoError(t, err)
	assert.Equal(t, flux, out)
}

func TestSFFLengthMismatch(t *testing.T) {
	_, err := SelfFlatFielder{}.Detrend(constSlice(5, 0), constSlice(5, 1), constSlice(4, 0), constSlice(5, 0), 1, 5, 1)
	assert.Error(t, err)
}

// fake Detrender capturing the parameters the roll entry point passes
type recordingDetrender struct {
	t, flux, cx, cy            []float64
	windows, polyOrder, iters  int
}

func (r *recordingDetrender)Detrend(t, flux, cx, cy []float64, windows, polyOrder, iters int) ([]float64, error) {
	r.t, r.flux, r.cx, r.cy = t, flux, cx, cy
	r.windows, r.polyOrder, r.iters = windows, polyOrder, iters

	out := make([]float64, len(flux))
	copy(out, flux)
	return out, nil
}

func TestApplyRollUsesCadenceIndexAndFixedParams(t *testing.T) {
	n := 12
	lc := photometry.LightCurve{Flux: constSlice(n, 2.0), FluxErr: constSlice(n, 0.1)}
	rec := &recordingDetrender{}

	out, err := ApplyRoll(tpf.NewConfig(), lc, constSlice(n, 4), constSlice(n, 4), rec)
	require.NoError(t, err)
	assert.Equal(t, lc.Flux, out.Flux)

	assert.Equal(t, 1, rec.windows)
	assert.Equal(t, 5, rec.polyOrder)
	assert.Equal(t, 1, rec.iters)
	for i := 0; i < n; i++ {
		assert.Equal(t, float64(i), rec.t[i])
	}
}

func TestCorrectOrderAndModes(t *testing.T) {
	// Flux trend correlated with x centroid plus an arc-length drift;
	// "both" must reduce scatter at least as much as doing nothing
	n := 60
	cx := make([]float64, n)
	cy := constSlice(n, 4.0)
	flux := make([]float64, n)
	for i := 0; i < n; i++ {
		cx[i] = 4.0 + 0.03*float64(i)
		flux[i] = 5.0 * (1.0 + 0.02*(cx[i]-4.0)*float64(i)/float64(n))
	}
	lc := photometry.LightCurve{Flux: flux, FluxErr: constSlice(n, 0.05)}

	cfgNone := tpf.NewConfig()
	out, err := Correct(cfgNone, lc, cx, cy)
	require.NoError(t, err)
	assert.Equal(t, lc.Flux, out.Flux, "correction mode 'none' must be a no-op")

	cfgBoth := tpf.NewConfig()
	cfgBoth.Correction = "both"
	out, err = Correct(cfgBoth, lc, cx, cy)
	require.NoError(t, err)
	require.Equal(t, n, out.Len())

	before := stat.StdDev(lc.Flux, nil)
	after := stat.StdDev(out.Flux, nil)
	assert.LessOrEqual(t, after, before)
	assert.True(t, math.IsInf(before, 0) == false)
}
