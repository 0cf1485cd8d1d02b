package view

import (
	"fmt"
	"strings"

	"github.com/banshee-data/hypergrid/internal/grid"
)

// Range restricts one axis to [Min, Max], inclusive.
type Range struct {
	Axis     int
	Min, Max int
}

// SubRegion intersects every bound of its source with per-axis restrictions.
// An empty region is a legal model whose traversal yields nothing, but a range
// lying wholly outside the source's unconditional range is rejected.
type SubRegion[T any] struct {
	link[T]
	restricted grid.AxisSet
	lo, hi     grid.Coords
}

// NewSubRegion restricts src to the given ranges. Axes without a range keep
// the source bounds. A later range for the same axis replaces an earlier one.
func NewSubRegion[T any](src grid.Model[T], ranges ...Range) (*SubRegion[T], error) {
	rank := src.Rank()
	r := &SubRegion[T]{}
	var parts []string
	for _, rg := range ranges {
		if rg.Axis < 0 || rg.Axis >= rank {
			return nil, fmt.Errorf("sub-region over axis %d of rank %d model: %w", rg.Axis, rank, grid.ErrIllegalArgument)
		}
		r.restricted = r.restricted.With(rg.Axis)
		r.lo[rg.Axis], r.hi[rg.Axis] = rg.Min, rg.Max
	}
	for a := 0; a < rank; a++ {
		if !r.restricted.Has(a) {
			continue
		}
		lo, hi := src.Min(a, grid.Free()), src.Max(a, grid.Free())
		if r.lo[a] <= r.hi[a] && lo <= hi && (r.lo[a] > hi || r.hi[a] < lo) {
			return nil, fmt.Errorf("sub-region %s=%d..%d outside [%d, %d]: %w",
				src.AxisLabel(a), r.lo[a], r.hi[a], lo, hi, grid.ErrOutOfBounds)
		}
		parts = append(parts, fmt.Sprintf("%s=%d..%d", src.AxisLabel(a), r.lo[a], r.hi[a]))
	}
	suffix := ""
	if len(parts) > 0 {
		suffix = "/" + strings.Join(parts, "_")
	}
	r.link = newLink(src, -1, suffix)
	return r, nil
}

func (r *SubRegion[T]) Min(axis int, at grid.Partial) int {
	m := r.src.Min(axis, at)
	if r.restricted.Has(axis) && r.lo[axis] > m {
		return r.lo[axis]
	}
	return m
}

func (r *SubRegion[T]) Max(axis int, at grid.Partial) int {
	m := r.src.Max(axis, at)
	if r.restricted.Has(axis) && r.hi[axis] < m {
		return r.hi[axis]
	}
	return m
}

func (r *SubRegion[T]) ValueAt(c grid.Coords) T { return r.src.ValueAt(c) }
