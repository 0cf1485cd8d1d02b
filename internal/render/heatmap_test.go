package render

import (
	"bytes"
	"math"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/hypergrid/internal/grid"
	"github.com/banshee-data/hypergrid/internal/grid/dense"
	"github.com/banshee-data/hypergrid/internal/grid/view"
)

// plane cuts a side-4 asymmetric section down to its (v, w) plane, a
// triangle with w <= v.
func plane(t *testing.T) grid.Model[int64] {
	t.Helper()
	g, err := dense.NewIsotropic5(4, int64(0), dense.WithSubfolder("iso"))
	require.NoError(t, err)
	grid.Walk(g, func(c grid.Coords) { g.Set(c, int64(10*c[0]+c[1])) })

	var m grid.Model[int64] = g
	for axis := 4; axis >= 2; axis-- {
		m, err = view.NewCrossSection(m, axis, 0)
		require.NoError(t, err)
	}
	return m
}

func TestSample_RaggedDomain(t *testing.T) {
	t.Parallel()
	f, err := Sample(plane(t), Int64)
	require.NoError(t, err)

	c, r := f.Dims()
	assert.Equal(t, 4, c)
	assert.Equal(t, 4, r)
	assert.Equal(t, 32.0, f.Z(3, 2))
	assert.Equal(t, 11.0, f.Z(1, 1))
	assert.True(t, math.IsNaN(f.Z(1, 2)), "w above v is outside the domain")
	assert.Equal(t, 0.0, f.Min())
	assert.Equal(t, 33.0, f.Max())
	assert.Equal(t, 3.0, f.X(3))
	assert.Equal(t, 0.0, f.Y(0))
}

func TestSample_OffsetAndConstant(t *testing.T) {
	t.Parallel()
	g, err := dense.NewRegular(grid.Coords{-2, 5}, int32(7), []int{3, 2})
	require.NoError(t, err)

	f, err := Sample[int32](g, Int32)
	require.NoError(t, err)
	assert.Equal(t, -2.0, f.X(0))
	assert.Equal(t, 6.0, f.Y(1))
	assert.Equal(t, 7.0, f.Min())
	assert.Equal(t, 8.0, f.Max(), "constant fields get a unit range")
}

func TestSample_Errors(t *testing.T) {
	t.Parallel()
	cube, err := dense.NewHypercube(3, 1, int32(0))
	require.NoError(t, err)
	_, err = Sample[int32](cube, Int32)
	assert.ErrorIs(t, err, grid.ErrIllegalArgument)

	box, err := dense.NewRegular(grid.Coords{}, int32(0), []int{3, 3})
	require.NoError(t, err)
	empty, err := view.NewSubRegion[int32](box, view.Range{Axis: 0, Min: 2, Max: 1})
	require.NoError(t, err)
	_, err = Sample[int32](empty, Int32)
	assert.ErrorIs(t, err, grid.ErrEmptyShape)
}

func TestHeatmap_WritesPNG(t *testing.T) {
	t.Parallel()
	file := filepath.Join(t.TempDir(), "plots", "vw.png")

	require.NoError(t, Heatmap(plane(t), Int64, file, Options{}))
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")), "PNG signature")
}

func TestHeatmap_Diverging(t *testing.T) {
	t.Parallel()
	g, err := dense.NewRegular(grid.Coords{-1, -1}, int64(0), []int{3, 3})
	require.NoError(t, err)
	g.Fill(func(c grid.Coords) int64 { return int64(c[0] - 3*c[1]) })

	file := filepath.Join(t.TempDir(), "delta.svg")
	require.NoError(t, Heatmap[int64](g, Int64, file, Options{Title: "delta", Diverging: true}))
	info, err := os.Stat(file)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestHeatmap_DivergingAllZero(t *testing.T) {
	t.Parallel()
	g, err := dense.NewRegular(grid.Coords{0, 0}, int64(0), []int{2, 2})
	require.NoError(t, err)

	file := filepath.Join(t.TempDir(), "zero.png")
	require.NoError(t, Heatmap[int64](g, Int64, file, Options{Diverging: true}))
	assert.FileExists(t, file)
}

func TestBigInt(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 42.0, BigInt(big.NewInt(42)))
	assert.Equal(t, -3.0, BigInt(big.NewInt(-3)))
	huge := new(big.Int).Lsh(big.NewInt(1), 2000)
	assert.True(t, math.IsInf(BigInt(huge), 1))
}
