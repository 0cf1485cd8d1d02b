package view

import (
	"fmt"

	"github.com/banshee-data/hypergrid/internal/grid"
)

// CrossSection fixes one source axis to a constant, reducing the rank by one.
type CrossSection[T any] struct {
	link[T]
	axis  int
	coord int
}

// NewCrossSection returns the section of src at axis == coord. coord must lie
// within the source's unconditional range for axis.
func NewCrossSection[T any](src grid.Model[T], axis, coord int) (*CrossSection[T], error) {
	rank := src.Rank()
	if rank < 2 || axis < 0 || axis >= rank {
		return nil, fmt.Errorf("cross-section of rank %d model along axis %d: %w", rank, axis, grid.ErrIllegalArgument)
	}
	lo, hi := src.Min(axis, grid.Free()), src.Max(axis, grid.Free())
	if coord < lo || coord > hi {
		return nil, fmt.Errorf("cross-section at %s=%d outside [%d, %d]: %w",
			src.AxisLabel(axis), coord, lo, hi, grid.ErrOutOfBounds)
	}
	suffix := fmt.Sprintf("/%s=%d", src.AxisLabel(axis), coord)
	return &CrossSection[T]{link: newLink(src, axis, suffix), axis: axis, coord: coord}, nil
}

func (s *CrossSection[T]) partial(at grid.Partial) grid.Partial {
	return s.sourcePartial(at).Fix(s.axis, s.coord)
}

func (s *CrossSection[T]) Min(axis int, at grid.Partial) int {
	return s.src.Min(s.axes[axis], s.partial(at))
}

func (s *CrossSection[T]) Max(axis int, at grid.Partial) int {
	return s.src.Max(s.axes[axis], s.partial(at))
}

func (s *CrossSection[T]) ValueAt(c grid.Coords) T {
	sc := s.sourceCoords(c)
	sc[s.axis] = s.coord
	return s.src.ValueAt(sc)
}

// Fixed returns the source axis and the coordinate it is fixed at.
func (s *CrossSection[T]) Fixed() (axis, coord int) { return s.axis, s.coord }

// AtV, AtW, AtX, AtY and AtZ cut a rank-5 model.

func AtV[T any](src grid.Model[T], v int) (*CrossSection[T], error) {
	return NewCrossSection(src, grid.V, v)
}

func AtW[T any](src grid.Model[T], w int) (*CrossSection[T], error) {
	return NewCrossSection(src, grid.W, w)
}

func AtX[T any](src grid.Model[T], x int) (*CrossSection[T], error) {
	return NewCrossSection(src, grid.X, x)
}

func AtY[T any](src grid.Model[T], y int) (*CrossSection[T], error) {
	return NewCrossSection(src, grid.Y, y)
}

func AtZ[T any](src grid.Model[T], z int) (*CrossSection[T], error) {
	return NewCrossSection(src, grid.Z, z)
}
