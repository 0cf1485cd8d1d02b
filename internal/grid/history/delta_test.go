package history_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/hypergrid/internal/grid"
	"github.com/banshee-data/hypergrid/internal/grid/history"
	"github.com/banshee-data/hypergrid/internal/sandpile"
	"github.com/banshee-data/hypergrid/internal/testutil"
)

func TestMain(m *testing.M) {
	os.Exit(testutil.RunQuiet(m))
}

// generations steps a fresh pile and returns a snapshot of every generation.
func generations(t *testing.T, grains int64, n int) []grid.Model[int64] {
	t.Helper()
	p, err := sandpile.New(grid.Longs, grains)
	require.NoError(t, err)
	var out []grid.Model[int64]
	for i := 0; i <= n; i++ {
		snap, err := p.Snapshot()
		require.NoError(t, err)
		out = append(out, snap)
		if i < n {
			_, err = p.Step()
			require.NoError(t, err)
		}
	}
	return out
}

func valueOrZero(m grid.Model[int64], c grid.Coords) int64 {
	if !grid.Contains(m, c) {
		return 0
	}
	return m.ValueAt(c)
}

func TestNewDelta_Lag(t *testing.T) {
	t.Parallel()
	p, err := sandpile.New(grid.Longs, 10)
	require.NoError(t, err)

	for _, lag := range []int{0, 3, -1} {
		_, err := history.NewDelta[int64](p, grid.Longs, lag)
		assert.ErrorIs(t, err, grid.ErrIllegalArgument, "lag %d", lag)
	}

	one, err := history.NewDelta[int64](p, grid.Longs, 1)
	require.NoError(t, err)
	assert.Equal(t, "sandpile/delta", one.SubfolderPath())
	assert.Equal(t, 1, one.Lag())

	two, err := history.NewDelta[int64](p, grid.Longs, 2)
	require.NoError(t, err)
	assert.Equal(t, "sandpile/two_steps_delta", two.SubfolderPath())
}

func TestDelta_ZeroBeforeFirstStep(t *testing.T) {
	t.Parallel()
	p, err := sandpile.New(grid.Longs, 50)
	require.NoError(t, err)
	d, err := history.NewDelta[int64](p, grid.Longs, 1)
	require.NoError(t, err)

	lo, hi, ok := grid.MinMax[int64](d, grid.Longs)
	require.True(t, ok)
	assert.Zero(t, lo)
	assert.Zero(t, hi)
}

func TestDelta_Differences(t *testing.T) {
	t.Parallel()
	const steps = 5
	want := generations(t, 140, steps)

	for _, lag := range []int{1, 2} {
		p, err := sandpile.New(grid.Longs, 140)
		require.NoError(t, err)
		d, err := history.NewDelta[int64](p, grid.Longs, lag)
		require.NoError(t, err)

		for gen := 1; gen <= steps; gen++ {
			_, err := d.Step()
			require.NoError(t, err)
			require.Equal(t, int64(gen), d.Generation())

			back := max(gen-lag, 0)
			cur, old := want[gen], want[back]
			grid.Walk(d, func(c grid.Coords) {
				expect := cur.ValueAt(c) - valueOrZero(old, c)
				if got := d.ValueAt(c); got != expect {
					t.Fatalf("lag %d generation %d: delta at %v = %d, want %d", lag, gen, c, got, expect)
				}
			})
			// Grains are conserved, so every delta sums to zero.
			assert.Zero(t, grid.Total[int64](d, grid.Longs), "lag %d generation %d", lag, gen)
		}
	}
}

func TestDelta_GrowthCountsAsFromZero(t *testing.T) {
	t.Parallel()
	p, err := sandpile.New(grid.Longs, 40)
	require.NoError(t, err)
	d, err := history.NewDelta[int64](p, grid.Longs, 1)
	require.NoError(t, err)

	_, err = d.Step()
	require.NoError(t, err)
	assert.Equal(t, 1, d.Max(grid.V, grid.Free()))
	assert.Equal(t, int64(-10), d.ValueAt(grid.Coords{}))
	assert.Equal(t, int64(1), d.ValueAt(grid.Coords{0, 0, -1, 0, 0}))
}

func TestDelta_PassesThrough(t *testing.T) {
	t.Parallel()
	p, err := sandpile.New(grid.Longs, 40, sandpile.WithName("pile"))
	require.NoError(t, err)
	d, err := history.NewDelta[int64](p, grid.Longs, 2)
	require.NoError(t, err)

	assert.Equal(t, "pile", d.Name())
	assert.Equal(t, "v", d.AxisLabel(0))
	assert.Equal(t, 5, d.Rank())
	changed, err := d.Step()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, d.Changed())
	assert.Equal(t, p.Generation(), d.Generation())
}
