package tpf

import(
	"fmt"

	"github.com/astrocadence/tpfphot/pkg/pmath"
)

// ShapeMismatchError means the cutout, error cutout, and centroid
// trace don't agree on spatial shape or cadence count. It fails the
// pipeline before any photometry runs.
type ShapeMismatchError struct {
	What string
	Want string
	Got  string
}

func (e ShapeMismatchError)Error() string {
	return fmt.Sprintf("shape mismatch in %s: want %s, got %s", e.What, e.Want, e.Got)
}

// A TargetPixelFile is a small pixel cutout sequence centered on one
// source: per-cadence flux grids, matching per-pixel error grids, the
// cadence times, and the pointing-corrected sub-pixel centroid trace.
// The fields are borrowed, read-only inputs from the acquisition
// pipeline; nothing in this package mutates them.
type TargetPixelFile struct {
	Time      []float64
	Flux      []pmath.Grid
	FluxErr   []pmath.Grid
	CentroidX []float64
	CentroidY []float64
}

func (t *TargetPixelFile)NCadences() int { return len(t.Flux) }

func (t *TargetPixelFile)Width() int {
	if len(t.Flux) == 0 { return 0 }
	return t.Flux[0].Dx()
}

func (t *TargetPixelFile)Height() int {
	if len(t.Flux) == 0 { return 0 }
	return t.Flux[0].Dy()
}

// Validate fails fast if the flux stack, error stack, and centroid
// trace disagree on shape or length.
func (t *TargetPixelFile)Validate() error {
	n := len(t.Flux)

	if len(t.FluxErr) != n {
		return ShapeMismatchError{What: "error cutout cadences",
			Want: fmt.Sprintf("%d", n), Got: fmt.Sprintf("%d", len(t.FluxErr))}
	}
	if len(t.CentroidX) != n || len(t.CentroidY) != n {
		return ShapeMismatchError{What: "centroid trace",
			Want: fmt.Sprintf("%d", n), Got: fmt.Sprintf("(%d,%d)", len(t.CentroidX), len(t.CentroidY))}
	}
	if len(t.Time) != 0 && len(t.Time) != n {
		return ShapeMismatchError{What: "time axis",
			Want: fmt.Sprintf("%d", n), Got: fmt.Sprintf("%d", len(t.Time))}
	}

	for i:=0; i<n; i++ {
		if !t.Flux[i].SameShape(t.Flux[0]) {
			return ShapeMismatchError{What: fmt.Sprintf("flux cadence %d", i),
				Want: shapeStr(t.Flux[0]), Got: shapeStr(t.Flux[i])}
		}
		if !t.FluxErr[i].SameShape(t.Flux[0]) {
			return ShapeMismatchError{What: fmt.Sprintf("error cadence %d", i),
				Want: shapeStr(t.Flux[0]), Got: shapeStr(t.FluxErr[i])}
		}
	}
	return nil
}

func shapeStr(g pmath.Grid) string { return fmt.Sprintf("%dx%d", g.Dx(), g.Dy()) }
