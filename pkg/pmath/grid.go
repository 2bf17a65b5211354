package pmath

import(
	"fmt"
	"math"
)

// A Grid is a fixed-shape 2D grid of float64 values, e.g. one cadence
// of a pixel cutout, or an aperture weight mask rasterized over it.
type Grid struct {
	stride int
	values []float64
}

func NewGrid(w, h int) Grid {
	return Grid{
		stride: w,
		values: make([]float64, w*h),
	}
}

func (g *Grid)Set(x, y int, v float64)      { g.values[g.stride*y + x] = v }
func (g *Grid)Get(x, y int) float64         { return g.values[g.stride*y + x] }
func (g *Grid)Dx() int                      { return g.stride }

// Dy tolerates a zero-value grid, so shapes can be reported in error
// messages without first checking for one.
func (g *Grid)Dy() int {
	if g.stride == 0 { return 0 }
	return len(g.values) / g.stride
}

func (g1 *Grid)Copy() Grid {
	g2 := Grid{stride: g1.stride, values: make([]float64, len(g1.values))}
	copy(g2.values, g1.values)
	return g2
}

func (g1 *Grid)SameShape(g2 Grid) bool {
	return g1.stride == g2.stride && len(g1.values) == len(g2.values)
}

func (g *Grid)Sum() float64 {
	tot := 0.0
	for i:=0; i<len(g.values); i++ {
		tot += g.values[i]
	}
	return tot
}

// Dot is the elementwise weighted sum: sum over pixels of g1*g2. The
// grids must have the same shape.
func (g1 *Grid)Dot(g2 Grid) float64 {
	tot := 0.0
	for i:=0; i<len(g1.values); i++ {
		tot += g1.values[i] * g2.values[i]
	}
	return tot
}

// DotSq is sum over pixels of g1^2 * g2^2, the variance sum used for
// propagating independent per-pixel errors through a weighted sum.
func (g1 *Grid)DotSq(g2 Grid) float64 {
	tot := 0.0
	for i:=0; i<len(g1.values); i++ {
		tot += g1.values[i] * g1.values[i] * g2.values[i] * g2.values[i]
	}
	return tot
}

func (g *Grid)Stats() string {
	min := math.MaxFloat64
	max := -1.0 * min

	for i:=0 ; i<len(g.values); i++ {
		if g.values[i] > max { max = g.values[i] }
		if g.values[i] < min { min = g.values[i] }
	}
	return fmt.Sprintf("grid[%dx%d, vals{%f,%f}]", g.Dx(), g.Dy(), min, max)
}
