package tpf

import (
	"errors"
	"strings"
	"testing"

	"github.com/astrocadence/tpfphot/pkg/pmath"
)

func makeValidTPF(w, h, n int) *TargetPixelFile {
	t := &TargetPixelFile{}
	for i := 0; i < n; i++ {
		t.Flux = append(t.Flux, pmath.NewGrid(w, h))
		t.FluxErr = append(t.FluxErr, pmath.NewGrid(w, h))
		t.Time = append(t.Time, float64(i))
		t.CentroidX = append(t.CentroidX, float64(w/2))
		t.CentroidY = append(t.CentroidY, float64(h/2))
	}
	return t
}

func TestValidateAccepts(t *testing.T) {
	tp := makeValidTPF(9, 9, 5)
	if err := tp.Validate(); err != nil {
		t.Fatalf("valid TPF rejected: %v", err)
	}
	if tp.Width() != 9 || tp.Height() != 9 || tp.NCadences() != 5 {
		t.Errorf("got %dx%d x%d", tp.Width(), tp.Height(), tp.NCadences())
	}
}

func TestValidateCatchesMismatches(t *testing.T) {
	var mismatch ShapeMismatchError

	tp := makeValidTPF(9, 9, 5)
	tp.FluxErr = tp.FluxErr[:4]
	if err := tp.Validate(); !errors.As(err, &mismatch) {
		t.Errorf("short error stack: got %v", err)
	}

	tp = makeValidTPF(9, 9, 5)
	tp.CentroidX = tp.CentroidX[:3]
	if err := tp.Validate(); !errors.As(err, &mismatch) {
		t.Errorf("short centroid trace: got %v", err)
	}

	tp = makeValidTPF(9, 9, 5)
	tp.Flux[2] = pmath.NewGrid(5, 5)
	if err := tp.Validate(); !errors.As(err, &mismatch) {
		t.Errorf("odd-shaped cadence: got %v", err)
	}

	tp = makeValidTPF(9, 9, 5)
	tp.Time = tp.Time[:2]
	if err := tp.Validate(); !errors.As(err, &mismatch) {
		t.Errorf("short time axis: got %v", err)
	}
}

func TestShapeMismatchErrorMessage(t *testing.T) {
	err := ShapeMismatchError{What: "centroid trace", Want: "5", Got: "(4,5)"}
	msg := err.Error()
	if !strings.Contains(msg, "centroid trace") || !strings.Contains(msg, "want 5") {
		t.Errorf("unhelpful message: %q", msg)
	}
}
