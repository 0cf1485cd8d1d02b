package dense

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/hypergrid/internal/grid"
)

func TestNewRegular_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		origin grid.Coords
		shape  []int
		want   error
	}{
		{"no axes", grid.Coords{}, nil, grid.ErrIllegalArgument},
		{"rank six", grid.Coords{}, []int{1, 1, 1, 1, 1, 1}, grid.ErrIllegalArgument},
		{"zero extent", grid.Coords{}, []int{3, 0}, grid.ErrEmptyShape},
		{"negative extent", grid.Coords{}, []int{-1}, grid.ErrEmptyShape},
		{"past int32", grid.Coords{grid.MaxCoord}, []int{2}, grid.ErrIllegalArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewRegular(tt.origin, int32(0), tt.shape)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRegular_BoundsAndValues(t *testing.T) {
	t.Parallel()
	g, err := NewRegular(grid.Coords{-1, 2, 0}, int64(7), []int{3, 2, 4}, WithName("box"), WithSubfolder("runs/box"))
	require.NoError(t, err)

	assert.Equal(t, 3, g.Rank())
	assert.Equal(t, []int{3, 2, 4}, g.Shape())
	assert.Equal(t, -1, g.Min(0, grid.Free()))
	assert.Equal(t, 1, g.Max(0, grid.Free()))
	assert.Equal(t, 2, g.Min(1, grid.Free().Fix(0, 1)))
	assert.Equal(t, 3, g.Max(1, grid.Free()))
	assert.Equal(t, 3, g.Max(2, grid.Free()))

	assert.Equal(t, "box", g.Name())
	assert.Equal(t, "runs/box", g.SubfolderPath())
	assert.Equal(t, "x", g.AxisLabel(0))
	assert.Equal(t, "z", g.AxisLabel(2))
	assert.False(t, g.Changed())

	assert.Equal(t, int64(7), g.ValueAt(grid.Coords{1, 3, 3}))
	g.Set(grid.Coords{0, 2, 1}, 42)
	assert.Equal(t, int64(42), g.ValueAt(grid.Coords{0, 2, 1}))
	assert.Equal(t, int64(7), g.ValueAt(grid.Coords{0, 2, 2}))
	assert.Equal(t, 24, grid.Count(g))
}

func TestRegular_UnsupportedOperations(t *testing.T) {
	t.Parallel()
	g, err := NewHypercube(2, 1, false)
	require.NoError(t, err)

	_, err = g.Step()
	assert.ErrorIs(t, err, grid.ErrUnsupported)
	assert.ErrorIs(t, g.BackUp(t.TempDir(), "g"), grid.ErrUnsupported)
}

func TestNewHypercube(t *testing.T) {
	t.Parallel()
	g, err := NewHypercube(3, 2, int32(1), WithLabels("a", "b", "c"))
	require.NoError(t, err)

	for axis := 0; axis < 3; axis++ {
		assert.Equal(t, -2, g.Min(axis, grid.Free()))
		assert.Equal(t, 2, g.Max(axis, grid.Free()))
	}
	assert.Equal(t, "b", g.AxisLabel(1))
	assert.Equal(t, 125, grid.Count(g))

	_, err = NewHypercube(3, -1, int32(0))
	assert.ErrorIs(t, err, grid.ErrIllegalArgument)
}

func TestWithLabels_WrongCountKeepsDefaults(t *testing.T) {
	t.Parallel()
	g, err := NewRegular(grid.Coords{}, 0, []int{1, 1}, WithLabels("only"))
	require.NoError(t, err)
	assert.Equal(t, "x", g.AxisLabel(0))
	assert.Equal(t, "y", g.AxisLabel(1))
}

func TestFromNested(t *testing.T) {
	t.Parallel()

	t.Run("2d", func(t *testing.T) {
		t.Parallel()
		g, err := FromNested2([][]int32{{1, 2, 3}, {4, 5, 6}}, grid.Coords{10, 20})
		require.NoError(t, err)
		assert.Equal(t, []int{2, 3}, g.Shape())
		assert.Equal(t, int32(6), g.ValueAt(grid.Coords{11, 22}))
		assert.Equal(t, int32(2), g.ValueAt(grid.Coords{10, 21}))
	})

	t.Run("3d", func(t *testing.T) {
		t.Parallel()
		g, err := FromNested3([][][]int64{{{1}, {2}}, {{3}, {4}}}, grid.Coords{})
		require.NoError(t, err)
		assert.Equal(t, []int{2, 2, 1}, g.Shape())
		assert.Equal(t, int64(3), g.ValueAt(grid.Coords{1, 0, 0}))
	})

	t.Run("4d", func(t *testing.T) {
		t.Parallel()
		g, err := FromNested4([][][][]bool{{{{true, false}}}}, grid.Coords{})
		require.NoError(t, err)
		assert.Equal(t, []int{1, 1, 1, 2}, g.Shape())
		assert.True(t, g.ValueAt(grid.Coords{0, 0, 0, 0}))
		assert.False(t, g.ValueAt(grid.Coords{0, 0, 0, 1}))
	})

	t.Run("5d", func(t *testing.T) {
		t.Parallel()
		data := [][][][][]int32{{{{{1, 2}}}}, {{{{3, 4}}}}}
		g, err := FromNested5(data, grid.Coords{-1})
		require.NoError(t, err)
		assert.Equal(t, []int{2, 1, 1, 1, 2}, g.Shape())
		assert.Equal(t, int32(4), g.ValueAt(grid.Coords{0, 0, 0, 0, 1}))
		assert.Equal(t, int32(1), g.ValueAt(grid.Coords{-1, 0, 0, 0, 0}))
	})
}

func TestFromNested_ShapeErrors(t *testing.T) {
	t.Parallel()

	_, err := FromNested2([][]int32{{1, 2}, {3}}, grid.Coords{})
	assert.ErrorIs(t, err, grid.ErrIrregularShape)

	_, err = FromNested2([][]int32{}, grid.Coords{})
	assert.ErrorIs(t, err, grid.ErrEmptyShape)

	_, err = FromNested2([][]int32{{}, {}}, grid.Coords{})
	assert.ErrorIs(t, err, grid.ErrEmptyShape)

	_, err = FromNested3([][][]int32{{{1}, {2}}, {{3}}}, grid.Coords{})
	assert.ErrorIs(t, err, grid.ErrIrregularShape)

	_, err = FromNested4([][][][]int32{{{{1}}, {{2, 3}}}}, grid.Coords{})
	assert.ErrorIs(t, err, grid.ErrIrregularShape)

	_, err = FromNested5([][][][][]int32{{{{{1}}}}, {{{{}}}}}, grid.Coords{})
	assert.ErrorIs(t, err, grid.ErrEmptyShape)
}

func TestIsotropic5_Shape(t *testing.T) {
	t.Parallel()
	g, err := NewIsotropic5(3, int32(5))
	require.NoError(t, err)

	assert.Equal(t, 3, g.Side())
	assert.Len(t, g.data, 3)
	assert.Len(t, g.data[2], 3)
	assert.Len(t, g.data[2][1], 2)
	assert.Len(t, g.data[2][1][0], 1)
	assert.Len(t, g.data[2][1][0][0], 1)

	assert.Equal(t, 2, g.Max(grid.V, grid.Free()))
	assert.Equal(t, 1, g.Max(grid.X, grid.Free().Fix(grid.W, 1)))
	assert.Equal(t, 1, g.Min(grid.W, grid.Free().Fix(grid.Y, 1)))
	assert.Equal(t, int32(5), g.ValueAt(grid.Coords{2, 2, 2, 2, 2}))

	_, err = NewIsotropic5(0, int32(0))
	assert.ErrorIs(t, err, grid.ErrEmptyShape)
}

func TestFromTriangular5(t *testing.T) {
	t.Parallel()

	data := AllocTriangular5(2, int64(0))
	data[1][1][0][0][0] = 9
	g, err := FromTriangular5(data, WithGeneration(4))
	require.NoError(t, err)
	assert.Equal(t, int64(9), g.ValueAt(grid.Coords{1, 1, 0, 0, 0}))
	assert.Equal(t, int64(4), g.Generation())

	ragged := AllocTriangular5(3, int64(0))
	ragged[2][1] = ragged[2][1][:1]
	_, err = FromTriangular5(ragged)
	assert.ErrorIs(t, err, grid.ErrIrregularShape)

	_, err = FromTriangular5[int64](nil)
	assert.ErrorIs(t, err, grid.ErrEmptyShape)
}

func TestIsotropic5_CloneIsIndependent(t *testing.T) {
	t.Parallel()
	g, err := NewIsotropic5(3, int32(1), WithName("pile"))
	require.NoError(t, err)
	c := grid.Coords{2, 1, 1, 0, 0}
	g.Set(c, 8)

	clone := g.Clone(WithGeneration(12))
	assert.Equal(t, int32(8), clone.ValueAt(c))
	assert.Equal(t, "pile", clone.Name())
	assert.Equal(t, int64(12), clone.Generation())
	assert.Equal(t, int64(0), g.Generation())

	g.Set(c, 100)
	assert.Equal(t, int32(8), clone.ValueAt(c))
}

func TestIsotropic5_Resized(t *testing.T) {
	t.Parallel()
	g, err := NewIsotropic5(2, int32(3))
	require.NoError(t, err)
	g.Set(grid.Coords{1, 1, 1, 1, 1}, 7)

	bigger, err := g.Resized(4, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, bigger.Side())
	assert.Equal(t, int32(7), bigger.ValueAt(grid.Coords{1, 1, 1, 1, 1}))
	assert.Equal(t, int32(3), bigger.ValueAt(grid.Coords{1, 0, 0, 0, 0}))
	assert.Equal(t, int32(0), bigger.ValueAt(grid.Coords{3, 2, 0, 0, 0}))

	smaller, err := bigger.Resized(1, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, grid.Count(smaller))
	assert.Equal(t, int32(3), smaller.ValueAt(grid.Coords{}))
}

func TestIsotropic5_CopyFrom(t *testing.T) {
	t.Parallel()
	src, err := NewIsotropic5(2, int32(4))
	require.NoError(t, err)
	dst, err := NewIsotropic5(2, int32(0))
	require.NoError(t, err)

	require.NoError(t, dst.CopyFrom(src))
	assert.Equal(t, int32(4), dst.ValueAt(grid.Coords{1, 1, 0, 0, 0}))

	other, err := NewIsotropic5(3, int32(0))
	require.NoError(t, err)
	assert.ErrorIs(t, other.CopyFrom(src), grid.ErrIllegalArgument)
}

func TestIsotropic5_Footprint(t *testing.T) {
	t.Parallel()
	g, err := NewIsotropic5(3, int64(0))
	require.NoError(t, err)

	n, err := g.FootprintBytes()
	require.NoError(t, err)
	assert.Equal(t, int64(1120), n)
}

func TestAllocTriangular5_SmallLeavesAvoidTinyBlocks(t *testing.T) {
	t.Parallel()

	ints := AllocTriangular5(4, int32(0))
	assert.Len(t, ints[3][3][3][3], 4)
	assert.Equal(t, 4, cap(ints[3][3][3][3]))
	assert.Len(t, ints[0][0][0][0], 1)
	assert.Equal(t, 4, cap(ints[0][0][0][0]))

	longs := AllocTriangular5(2, int64(0))
	assert.Equal(t, 2, cap(longs[0][0][0][0]))
	assert.Equal(t, 2, cap(longs[1][1][1][1]))

	ptrs := AllocTriangular5[*big.Int](1, nil)
	assert.Equal(t, 1, cap(ptrs[0][0][0][0]))
}

func TestDecodeIsotropic5_ReallocatesLeaves(t *testing.T) {
	t.Parallel()
	g, err := NewIsotropic5(2, int64(5))
	require.NoError(t, err)
	blob, err := EncodeIsotropic5(g)
	require.NoError(t, err)

	got, err := DecodeIsotropic5[int64](blob)
	require.NoError(t, err)
	assert.Equal(t, 2, cap(got.data[0][0][0][0]))
	assert.Equal(t, int64(5), got.ValueAt(grid.Coords{1, 1, 1, 1, 1}))
}

func TestIsotropicBlob_RoundTrip(t *testing.T) {
	t.Parallel()
	g, err := NewIsotropic5(3, big.NewInt(0), WithName("pile"), WithSubfolder("pile/int"), WithGeneration(17))
	require.NoError(t, err)
	g.Set(grid.Coords{2, 2, 1, 0, 0}, new(big.Int).Lsh(big.NewInt(1), 80))

	blob, err := EncodeIsotropic5(g)
	require.NoError(t, err)
	assert.NotEmpty(t, blob)

	got, err := DecodeIsotropic5[*big.Int](blob)
	require.NoError(t, err)
	assert.Equal(t, "pile", got.Name())
	assert.Equal(t, "pile/int", got.SubfolderPath())
	assert.Equal(t, int64(17), got.Generation())
	assert.Equal(t, 3, got.Side())
	assert.Equal(t, "1208925819614629174706176", got.ValueAt(grid.Coords{2, 2, 1, 0, 0}).String())
	assert.Equal(t, 0, got.ValueAt(grid.Coords{1, 0, 0, 0, 0}).Sign())
}

func TestDecodeIsotropic5_Errors(t *testing.T) {
	t.Parallel()

	_, err := DecodeIsotropic5[int32](nil)
	assert.ErrorIs(t, err, grid.ErrIllegalArgument)

	_, err = DecodeIsotropic5[int32]([]byte("not gzip"))
	assert.Error(t, err)
}
