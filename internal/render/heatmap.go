// Package render draws rank-2 models, usually chains of cross-sections
// through a 5D field, as heatmap images.
package render

import (
	"fmt"
	"image/color"
	"math"
	"math/big"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/hypergrid/internal/grid"
)

// Field is a rank-2 model sampled onto its bounding box. Cells outside a
// ragged domain are NaN. It implements plotter.GridXYZ.
type Field struct {
	x0, y0   int
	data     *mat.Dense // rows are y, columns are x
	min, max float64
}

// Sample evaluates m over its bounding box.
func Sample[T any](m grid.Model[T], toFloat func(T) float64) (*Field, error) {
	if m.Rank() != 2 {
		return nil, fmt.Errorf("heatmap of rank %d model %s: %w", m.Rank(), m.SubfolderPath(), grid.ErrIllegalArgument)
	}
	x0, x1 := m.Min(0, grid.Free()), m.Max(0, grid.Free())
	y0, y1 := m.Min(1, grid.Free()), m.Max(1, grid.Free())
	if x0 > x1 || y0 > y1 {
		return nil, fmt.Errorf("heatmap of %s: %w", m.SubfolderPath(), grid.ErrEmptyShape)
	}

	nx, ny := x1-x0+1, y1-y0+1
	data := mat.NewDense(ny, nx, nil)
	for r := 0; r < ny; r++ {
		for c := 0; c < nx; c++ {
			data.Set(r, c, math.NaN())
		}
	}
	var seen []float64
	grid.Walk(m, func(c grid.Coords) {
		v := toFloat(m.ValueAt(c))
		data.Set(c[1]-y0, c[0]-x0, v)
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			seen = append(seen, v)
		}
	})

	f := &Field{x0: x0, y0: y0, data: data, min: 0, max: 1}
	if len(seen) > 0 {
		f.min, f.max = floats.Min(seen), floats.Max(seen)
		if f.min == f.max {
			f.max = f.min + 1
		}
	}
	return f, nil
}

func (f *Field) Dims() (c, r int)   { r, c = f.data.Dims(); return c, r }
func (f *Field) Z(c, r int) float64 { return f.data.At(r, c) }
func (f *Field) X(c int) float64    { return float64(f.x0 + c) }
func (f *Field) Y(r int) float64    { return float64(f.y0 + r) }

// Min and Max give the colour range. A constant field gets a unit range.
func (f *Field) Min() float64 { return f.min }
func (f *Field) Max() float64 { return f.max }

// Options controls heatmap rendering.
type Options struct {
	Title string
	// Diverging selects a blue-red palette centred on zero, for delta views.
	Diverging bool
	Width     vg.Length
	Height    vg.Length
}

// Heatmap renders m to file. The image format follows the file extension.
func Heatmap[T any](m grid.Model[T], toFloat func(T) float64, file string, opts Options) error {
	f, err := Sample(m, toFloat)
	if err != nil {
		return err
	}

	var pal palette.Palette
	if opts.Diverging {
		bound := math.Max(math.Abs(f.min), math.Abs(f.max))
		if bound == 0 {
			bound = 1
		}
		f.min, f.max = -bound, bound
		pal = moreland.SmoothBlueRed().Palette(255)
	} else {
		pal = moreland.ExtendedBlackBody().Palette(255)
	}

	p := plot.New()
	p.Title.Text = opts.Title
	if p.Title.Text == "" {
		p.Title.Text = m.SubfolderPath()
	}
	p.X.Label.Text = m.AxisLabel(0)
	p.Y.Label.Text = m.AxisLabel(1)

	hm := plotter.NewHeatMap(f, pal)
	hm.NaN = color.Transparent
	p.Add(hm)

	w, h := opts.Width, opts.Height
	if w == 0 {
		w = 6 * vg.Inch
	}
	if h == 0 {
		h = 6 * vg.Inch
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return fmt.Errorf("failed to create heatmap directory: %w", err)
	}
	if err := p.Save(w, h, file); err != nil {
		return fmt.Errorf("failed to save heatmap %s: %w", file, err)
	}
	return nil
}

// Value conversions for the numeric variants.

func Int32(v int32) float64 { return float64(v) }
func Int64(v int64) float64 { return float64(v) }

func BigInt(v *big.Int) float64 {
	f, _ := new(big.Float).SetInt(v).Float64()
	return f
}
