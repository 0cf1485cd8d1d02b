// Package history exposes differences between the current generation of a
// model and a generation retained from earlier steps.
package history

import (
	"fmt"

	"github.com/banshee-data/hypergrid/internal/grid"
	"github.com/banshee-data/hypergrid/internal/monitoring"
)

// Source is a step-capable model that can hand out independent copies of its
// current generation.
type Source[T any] interface {
	grid.Model[T]
	grid.Snapshotter[T]
}

// Delta is the per-cell difference between the current generation of its
// source and the generation lag steps back.
//
// The retained generations are snapshots taken before each Step is delegated,
// never references into the source's storage, which the source may clear or
// reuse between generations.
type Delta[T any] struct {
	src      Source[T]
	arith    grid.Arithmetic[T]
	lag      int
	retained []grid.Model[T]
}

// NewDelta returns a delta view over src with a lag of one or two steps.
// Until the first Step every value is zero.
func NewDelta[T any](src Source[T], arith grid.Arithmetic[T], lag int) (*Delta[T], error) {
	if lag != 1 && lag != 2 {
		return nil, fmt.Errorf("delta lag %d: %w", lag, grid.ErrIllegalArgument)
	}
	return &Delta[T]{src: src, arith: arith, lag: lag}, nil
}

// Step snapshots the current generation, drops the oldest retained one when
// more than lag are held, then steps the source.
func (d *Delta[T]) Step() (bool, error) {
	snap, err := d.src.Snapshot()
	if err != nil {
		return false, fmt.Errorf("retain generation %d of %q: %w", d.src.Generation(), d.src.Name(), err)
	}
	d.retained = append(d.retained, snap)
	if len(d.retained) > d.lag {
		d.retained[0] = nil
		d.retained = d.retained[1:]
	}
	changed, err := d.src.Step()
	if err != nil {
		return false, err
	}
	monitoring.Debugf("delta %s: generation %d retained against %d", d.SubfolderPath(), d.src.Generation(), d.retainedGeneration())
	return changed, nil
}

func (d *Delta[T]) retainedGeneration() int64 {
	if len(d.retained) == 0 {
		return d.src.Generation()
	}
	return d.retained[0].Generation()
}

// Lag returns the number of generations between the two operands.
func (d *Delta[T]) Lag() int { return d.lag }

func (d *Delta[T]) Rank() int { return d.src.Rank() }

func (d *Delta[T]) Min(axis int, at grid.Partial) int { return d.src.Min(axis, at) }
func (d *Delta[T]) Max(axis int, at grid.Partial) int { return d.src.Max(axis, at) }

// ValueAt returns current(c) - retained(c). A coordinate outside the retained
// generation's domain counts as zero there.
func (d *Delta[T]) ValueAt(c grid.Coords) T {
	cur := d.src.ValueAt(c)
	if len(d.retained) == 0 {
		return d.arith.Sub(cur, cur)
	}
	old := d.retained[0]
	if !grid.Contains(old, c) {
		return d.arith.Sub(cur, d.arith.Zero())
	}
	return d.arith.Sub(cur, old.ValueAt(c))
}

func (d *Delta[T]) AxisLabel(axis int) string { return d.src.AxisLabel(axis) }
func (d *Delta[T]) Name() string              { return d.src.Name() }

func (d *Delta[T]) SubfolderPath() string {
	if d.lag == 2 {
		return d.src.SubfolderPath() + "/two_steps_delta"
	}
	return d.src.SubfolderPath() + "/delta"
}

func (d *Delta[T]) Generation() int64 { return d.src.Generation() }
func (d *Delta[T]) Changed() bool     { return d.src.Changed() }

func (d *Delta[T]) BackUp(path, name string) error { return d.src.BackUp(path, name) }
