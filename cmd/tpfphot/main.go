package main

import(
	"flag"
	"fmt"
	"log"

	"github.com/astrocadence/tpfphot/pkg/aperture"
	"github.com/astrocadence/tpfphot/pkg/detrend"
	"github.com/astrocadence/tpfphot/pkg/photometry"
	"github.com/astrocadence/tpfphot/pkg/tpf"
)

var(
	fConfigFilename string
	fCorrection string
	fVerbosity int

	fCustomShape string
	fCustomRadius float64
	fCustomLength float64
	fCustomWidth float64
)

func init() {
	flag.StringVar(&fConfigFilename, "c", "", "yaml config file")
	flag.StringVar(&fCorrection, "correction", "", "systematics correction: none, jitter, roll, both")
	flag.IntVar(&fVerbosity, "v", 0, "verbosity level")

	flag.StringVar(&fCustomShape, "shape", "", "use a custom aperture of this shape (circle, rectangle)")
	flag.Float64Var(&fCustomRadius, "r", 0, "custom circle radius, in pixels")
	flag.Float64Var(&fCustomLength, "l", 0, "custom rectangle length, in pixels")
	flag.Float64Var(&fCustomWidth, "w", 0, "custom rectangle width, in pixels")
	flag.Parse()
}

func main() {
	cfg := tpf.NewConfig()
	if fConfigFilename != "" {
		var err error
		if cfg, err = tpf.LoadConfig(fConfigFilename); err != nil {
			log.Fatalf("config load failed: %v\n", err)
		}
	}

	// Override the config file with command line args, if relevant
	if fCorrection != "" { cfg.Correction = fCorrection }
	if fVerbosity > 0 { cfg.Verbosity = fVerbosity }
	if fCustomShape != "" {
		cfg.CustomAperture.Enabled = true
		cfg.CustomAperture.Shape = fCustomShape
		cfg.CustomAperture.R = fCustomRadius
		cfg.CustomAperture.L = fCustomLength
		cfg.CustomAperture.W = fCustomWidth
	}
	if err := cfg.FinalizeConfig(); err != nil {
		log.Fatalf("bad config: %v\n", err)
	}

	if flag.NArg() != 1 {
		log.Fatalf("usage: tpfphot [flags] cutouts.json\n")
	}

	t, err := tpf.LoadJSON(flag.Arg(0))
	if err != nil {
		log.Fatalf("cutout load failed: %v\n", err)
	}
	log.Printf("loaded %d cadences of %dx%d cutouts\n", t.NCadences(), t.Width(), t.Height())

	var res photometry.SelectedResult
	if cfg.CustomAperture.Enabled {
		mask, err := aperture.BuildCustom(customParams(cfg), t.Width(), t.Height())
		if err != nil {
			log.Fatalf("custom aperture: %v\n", err)
		}
		if res, err = photometry.EvaluateCustom(t, mask); err != nil {
			log.Fatalf("custom photometry: %v\n", err)
		}
	} else {
		catalog := aperture.GenerateCatalog(t.Width(), t.Height())
		if res, err = photometry.SelectBest(cfg, t, catalog); err != nil {
			log.Fatalf("aperture selection: %v\n", err)
		}
	}

	lc, err := detrend.Correct(cfg, res.Best, t.CentroidX, t.CentroidY)
	if err != nil {
		log.Printf("systematics correction failed (%v); reporting the uncorrected curve\n", err)
		lc = res.Best
	}

	for i:=0; i<lc.Len(); i++ {
		when := float64(i)
		if len(t.Time) > i { when = t.Time[i] }
		fmt.Printf("%f\t%f\t%f\n", when, lc.Flux[i], lc.FluxErr[i])
	}
}

func customParams(cfg tpf.Config) aperture.CustomParams {
	ca := cfg.CustomAperture
	return aperture.CustomParams{
		Shape:  ca.Shape,
		R:      ca.R,
		L:      ca.L,
		W:      ca.W,
		Theta:  ca.Theta,
		X:      ca.X,
		Y:      ca.Y,
		HasPos: ca.HasPos,
		Method: aperture.Method(ca.Method),
	}
}
