package dense

import (
	"fmt"

	"github.com/banshee-data/hypergrid/internal/grid"
	"github.com/banshee-data/hypergrid/internal/grid/footprint"
)

// Regular is a hyperrectangular grid stored row-major in one slice, with the
// last axis contiguous.
type Regular[T any] struct {
	meta
	rank   int
	origin grid.Coords
	shape  grid.Coords
	stride grid.Coords
	values []T
}

// NewRegular allocates a grid with the given extents whose lowest corner is
// origin, every cell set to fill.
func NewRegular[T any](origin grid.Coords, fill T, shape []int, opts ...Option) (*Regular[T], error) {
	rank := len(shape)
	if rank < 1 || rank > grid.MaxRank {
		return nil, fmt.Errorf("regular grid of rank %d: %w", rank, grid.ErrIllegalArgument)
	}
	r := &Regular[T]{meta: newMeta(rank, opts), rank: rank, origin: origin}
	total := 1
	for axis := rank - 1; axis >= 0; axis-- {
		n := shape[axis]
		if n <= 0 {
			return nil, fmt.Errorf("regular grid extent %d along %s: %w", n, r.labels[axis], grid.ErrEmptyShape)
		}
		if !grid.InCoordRange(origin[axis]) || !grid.InCoordRange(origin[axis]+n-1) {
			return nil, fmt.Errorf("regular grid along %s spans [%d, %d]: %w",
				r.labels[axis], origin[axis], origin[axis]+n-1, grid.ErrIllegalArgument)
		}
		r.shape[axis] = n
		r.stride[axis] = total
		if total > maxCells/n {
			return nil, fmt.Errorf("regular grid of %v cells: %w", shape, grid.ErrIllegalArgument)
		}
		total *= n
	}
	r.values = make([]T, total, footprint.LeafCap(total, footprint.ElementOf[T]()))
	for i := range r.values {
		r.values[i] = fill
	}
	return r, nil
}

// maxCells caps the number of cells a single grid may hold.
const maxCells = 1 << 40

// NewHypercube allocates the isotropic grid [-radius, radius] on every axis.
func NewHypercube[T any](rank, radius int, fill T, opts ...Option) (*Regular[T], error) {
	if radius < 0 {
		return nil, fmt.Errorf("hypercube radius %d: %w", radius, grid.ErrIllegalArgument)
	}
	if rank < 1 || rank > grid.MaxRank {
		return nil, fmt.Errorf("hypercube of rank %d: %w", rank, grid.ErrIllegalArgument)
	}
	var origin grid.Coords
	shape := make([]int, rank)
	for i := range shape {
		origin[i] = -radius
		shape[i] = 2*radius + 1
	}
	return NewRegular(origin, fill, shape, opts...)
}

func (r *Regular[T]) index(c grid.Coords) int {
	idx := 0
	for axis := 0; axis < r.rank; axis++ {
		idx += (c[axis] - r.origin[axis]) * r.stride[axis]
	}
	return idx
}

func (r *Regular[T]) Rank() int { return r.rank }

func (r *Regular[T]) Min(axis int, _ grid.Partial) int { return r.origin[axis] }

func (r *Regular[T]) Max(axis int, _ grid.Partial) int {
	return r.origin[axis] + r.shape[axis] - 1
}

// Shape returns the extent of every axis.
func (r *Regular[T]) Shape() []int {
	out := make([]int, r.rank)
	copy(out, r.shape[:r.rank])
	return out
}

func (r *Regular[T]) ValueAt(c grid.Coords) T { return r.values[r.index(c)] }

// Set stores value at c. c must be within bounds.
func (r *Regular[T]) Set(c grid.Coords, value T) { r.values[r.index(c)] = value }

// Fill sets every cell to fn(c).
func (r *Regular[T]) Fill(fn func(c grid.Coords) T) {
	grid.Walk(r, func(c grid.Coords) { r.values[r.index(c)] = fn(c) })
}

func (r *Regular[T]) Step() (bool, error) {
	return false, fmt.Errorf("step regular grid %q: %w", r.name, grid.ErrUnsupported)
}

func (r *Regular[T]) BackUp(path, name string) error {
	return fmt.Errorf("back up regular grid %q: %w", r.name, grid.ErrUnsupported)
}

// FootprintBytes reports the size of the flat value slice.
func (r *Regular[T]) FootprintBytes() (int64, error) {
	return flatFootprint[T](len(r.values))
}
