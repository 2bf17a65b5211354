package photometry

import(
	"errors"
	"log"
	"math"
	"runtime"

	"github.com/skypies/util/histogram"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/astrocadence/tpfphot/pkg/aperture"
	"github.com/astrocadence/tpfphot/pkg/pmath"
	"github.com/astrocadence/tpfphot/pkg/tpf"
)

// ErrNoValidAperture means selection couldn't proceed: the catalog or
// cutout was empty, or every candidate's scatter score was non-finite.
var ErrNoValidAperture = errors.New("no valid aperture: empty catalog/cutout or all scores non-finite")

// SelectBest evaluates photometry for every candidate in the catalog,
// scores each curve by the sample standard deviation of its flux, and
// picks the minimum. Ties break to the earliest catalog index, so the
// result is deterministic even though the sweep runs on a worker pool;
// scores are always compared in catalog order, never completion order.
func SelectBest(cfg tpf.Config, t *tpf.TargetPixelFile, catalog []aperture.Candidate) (SelectedResult, error) {
	if len(catalog) == 0 || t.NCadences() == 0 {
		return SelectedResult{}, ErrNoValidAperture
	}

	curves := make([]LightCurve, len(catalog))

	g := new(errgroup.Group)
	g.SetLimit(runtime.NumCPU())
	for i := range catalog {
		i := i
		g.Go(func() error {
			lc, err := Evaluate(t, catalog[i].Mask)
			if err != nil {
				return err
			}
			curves[i] = lc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return SelectedResult{}, err
	}

	scores := make([]float64, len(catalog))
	bestIdx := -1
	for i := range catalog {
		scores[i] = stat.StdDev(curves[i].Flux, nil)
		if math.IsNaN(scores[i]) || math.IsInf(scores[i], 0) {
			continue
		}
		if bestIdx < 0 || scores[i] < scores[bestIdx] {
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return SelectedResult{}, ErrNoValidAperture
	}

	res := SelectedResult{
		Best:       curves[bestIdx],
		BestMask:   catalog[bestIdx].Mask.Copy(),
		BestIndex:  bestIdx,
		Candidates: catalog,
		Curves:     curves,
		Scores:     scores,
	}

	if cfg.Verbosity > 0 {
		mask := catalog[bestIdx].Mask
		log.Printf("aperture sweep: %d candidates, best is #%d %s (std %.4f) %s\n",
			len(catalog), bestIdx, catalog[bestIdx], scores[bestIdx], mask.Stats())
		if cfg.Verbosity > 1 {
			logFluxDistribution(res.Best)
		}
	}

	return res, nil
}

// logFluxDistribution dumps a histogram of the winning curve's flux
// values, bucketed by deviation from the mean in half-sigma steps.
func logFluxDistribution(lc LightCurve) {
	mean := stat.Mean(lc.Flux, nil)
	std := stat.StdDev(lc.Flux, nil)
	if std == 0 || math.IsNaN(std) {
		return
	}

	h := histogram.Histogram{NumBuckets: 16, ValMin: -8, ValMax: 8}
	for _, f := range lc.Flux {
		dev := pmath.Clamp((f-mean)/std*2.0, -8, 8)
		h.Add(histogram.ScalarVal(int(dev)))
	}
	log.Printf("flux distribution (half-sigma buckets): %v\n", h)
}

// EvaluateCustom runs photometry through one user-built mask and wraps
// it as a non-catalog selection, replacing whatever the sweep picked.
func EvaluateCustom(t *tpf.TargetPixelFile, mask pmath.Grid) (SelectedResult, error) {
	lc, err := Evaluate(t, mask)
	if err != nil {
		return SelectedResult{}, err
	}
	return SelectedResult{
		Best:      lc,
		BestMask:  mask.Copy(),
		BestIndex: -1,
		Custom:    true,
	}, nil
}
