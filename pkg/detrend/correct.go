package detrend

import(
	"log"

	"github.com/astrocadence/tpfphot/pkg/photometry"
	"github.com/astrocadence/tpfphot/pkg/tpf"
)

// Roll correction parameters handed to the Detrender: one window over
// the whole series, a 5th-order trend polynomial, a single pass.
const (
	rollWindows   = 1
	rollPolyOrder = 5
	rollIters     = 1
)

// ApplyRoll removes the spacecraft-roll trend from the light curve,
// delegating the actual detrending to d. The time axis is the
// synthetic cadence index 0..N-1.
func ApplyRoll(cfg tpf.Config, lc photometry.LightCurve, cx, cy []float64, d Detrender) (photometry.LightCurve, error) {
	t := make([]float64, lc.Len())
	for i := range t {
		t[i] = float64(i)
	}

	flux, err := d.Detrend(t, lc.Flux, cx, cy, rollWindows, rollPolyOrder, rollIters)
	if err != nil {
		return photometry.LightCurve{}, err
	}
	return lc.WithFlux(flux), nil
}

// Correct applies the systematics corrections the config asks for, in
// the fixed order jitter-then-roll: sub-pixel jitter is taken out
// before the roll fit, whose arc-length model is sensitive to
// jitter-induced centroid noise.
func Correct(cfg tpf.Config, lc photometry.LightCurve, cx, cy []float64) (photometry.LightCurve, error) {
	out := lc

	if cfg.DoJitter() {
		corrected, err := ApplyJitter(cfg, out, cx, cy)
		if err != nil {
			return photometry.LightCurve{}, err
		}
		out = corrected
		if cfg.Verbosity > 0 {
			log.Printf("jitter correction applied over %d cadences\n", out.Len())
		}
	}

	if cfg.DoRoll() {
		corrected, err := ApplyRoll(cfg, out, cx, cy, SelfFlatFielder{})
		if err != nil {
			return photometry.LightCurve{}, err
		}
		out = corrected
		if cfg.Verbosity > 0 {
			log.Printf("roll correction applied over %d cadences\n", out.Len())
		}
	}

	return out, nil
}
