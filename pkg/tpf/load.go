package tpf

import(
	"encoding/json"
	"fmt"
	"io/ioutil"

	"github.com/astrocadence/tpfphot/pkg/pmath"
)

// The JSON cutout bundle is the wire format the acquisition pipeline
// hands us: per-cadence 2D flux and error arrays (row-major, indexed
// [cadence][y][x]) plus the cadence times and the pointing-corrected
// centroid trace. This package never does WCS or pointing math; the
// centroids arrive precomputed.
type cutoutBundle struct {
	Time      []float64     `json:"time"`
	Flux      [][][]float64 `json:"flux"`
	FluxErr   [][][]float64 `json:"flux_err"`
	CentroidX []float64     `json:"centroid_x"`
	CentroidY []float64     `json:"centroid_y"`
}

// LoadJSON reads a cutout bundle file and validates its shapes.
func LoadJSON(filename string) (*TargetPixelFile, error) {
	contents, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read '%s': %v", filename, err)
	}

	b := cutoutBundle{}
	if err := json.Unmarshal(contents, &b); err != nil {
		return nil, fmt.Errorf("parse '%s': %v", filename, err)
	}

	t := &TargetPixelFile{
		Time:      b.Time,
		CentroidX: b.CentroidX,
		CentroidY: b.CentroidY,
	}

	for i, cad := range b.Flux {
		g, err := gridFromRows(cad)
		if err != nil {
			return nil, fmt.Errorf("'%s' flux cadence %d: %v", filename, i, err)
		}
		t.Flux = append(t.Flux, g)
	}
	for i, cad := range b.FluxErr {
		g, err := gridFromRows(cad)
		if err != nil {
			return nil, fmt.Errorf("'%s' error cadence %d: %v", filename, i, err)
		}
		t.FluxErr = append(t.FluxErr, g)
	}

	return t, t.Validate()
}

func gridFromRows(rows [][]float64) (pmath.Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return pmath.Grid{}, fmt.Errorf("empty 2D array")
	}

	g := pmath.NewGrid(len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != g.Dx() {
			return pmath.Grid{}, fmt.Errorf("ragged row %d: want %d values, got %d", y, g.Dx(), len(row))
		}
		for x, v := range row {
			g.Set(x, y, v)
		}
	}
	return g, nil
}
