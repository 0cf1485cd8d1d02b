package dense

import (
	"fmt"

	"github.com/banshee-data/hypergrid/internal/grid"
)

// shapeChecker records the extent of each axis the first time it is seen and
// rejects any later sub-array that disagrees.
type shapeChecker struct {
	shape []int
	err   error
}

func newShapeChecker(rank int) *shapeChecker {
	s := &shapeChecker{shape: make([]int, rank)}
	for i := range s.shape {
		s.shape[i] = -1
	}
	return s
}

func (s *shapeChecker) see(axis, n int) bool {
	if s.err != nil {
		return false
	}
	switch {
	case n == 0:
		s.err = fmt.Errorf("nested array has zero extent along axis %d: %w", axis, grid.ErrEmptyShape)
	case s.shape[axis] == -1:
		s.shape[axis] = n
	case s.shape[axis] != n:
		s.err = fmt.Errorf("nested array extent %d along axis %d, expected %d: %w",
			n, axis, s.shape[axis], grid.ErrIrregularShape)
	}
	return s.err == nil
}

// FromNested2 copies a rectangular [x][y] array into a Regular grid.
func FromNested2[T any](data [][]T, origin grid.Coords, opts ...Option) (*Regular[T], error) {
	sc := newShapeChecker(2)
	if sc.see(0, len(data)) {
		for _, a := range data {
			if !sc.see(1, len(a)) {
				break
			}
		}
	}
	if sc.err != nil {
		return nil, sc.err
	}
	var zero T
	r, err := NewRegular(origin, zero, sc.shape, opts...)
	if err != nil {
		return nil, err
	}
	for x, a := range data {
		for y, val := range a {
			r.Set(grid.Coords{origin[0] + x, origin[1] + y}, val)
		}
	}
	return r, nil
}

// FromNested3 copies a rectangular [x][y][z] array into a Regular grid.
func FromNested3[T any](data [][][]T, origin grid.Coords, opts ...Option) (*Regular[T], error) {
	sc := newShapeChecker(3)
	if sc.see(0, len(data)) {
	outer:
		for _, a := range data {
			if !sc.see(1, len(a)) {
				break
			}
			for _, b := range a {
				if !sc.see(2, len(b)) {
					break outer
				}
			}
		}
	}
	if sc.err != nil {
		return nil, sc.err
	}
	var zero T
	r, err := NewRegular(origin, zero, sc.shape, opts...)
	if err != nil {
		return nil, err
	}
	for x, a := range data {
		for y, b := range a {
			for z, val := range b {
				r.Set(grid.Coords{origin[0] + x, origin[1] + y, origin[2] + z}, val)
			}
		}
	}
	return r, nil
}

// FromNested4 copies a rectangular [w][x][y][z] array into a Regular grid.
func FromNested4[T any](data [][][][]T, origin grid.Coords, opts ...Option) (*Regular[T], error) {
	sc := newShapeChecker(4)
	if sc.see(0, len(data)) {
	outer:
		for _, a := range data {
			if !sc.see(1, len(a)) {
				break
			}
			for _, b := range a {
				if !sc.see(2, len(b)) {
					break outer
				}
				for _, c := range b {
					if !sc.see(3, len(c)) {
						break outer
					}
				}
			}
		}
	}
	if sc.err != nil {
		return nil, sc.err
	}
	var zero T
	r, err := NewRegular(origin, zero, sc.shape, opts...)
	if err != nil {
		return nil, err
	}
	for w, a := range data {
		for x, b := range a {
			for y, c := range b {
				for z, val := range c {
					r.Set(grid.Coords{origin[0] + w, origin[1] + x, origin[2] + y, origin[3] + z}, val)
				}
			}
		}
	}
	return r, nil
}

// FromNested5 copies a rectangular [v][w][x][y][z] array into a Regular grid.
func FromNested5[T any](data [][][][][]T, origin grid.Coords, opts ...Option) (*Regular[T], error) {
	sc := newShapeChecker(5)
	if sc.see(0, len(data)) {
	outer:
		for _, a := range data {
			if !sc.see(1, len(a)) {
				break
			}
			for _, b := range a {
				if !sc.see(2, len(b)) {
					break outer
				}
				for _, c := range b {
					if !sc.see(3, len(c)) {
						break outer
					}
					for _, d := range c {
						if !sc.see(4, len(d)) {
							break outer
						}
					}
				}
			}
		}
	}
	if sc.err != nil {
		return nil, sc.err
	}
	var zero T
	r, err := NewRegular(origin, zero, sc.shape, opts...)
	if err != nil {
		return nil, err
	}
	for v, a := range data {
		for w, b := range a {
			for x, c := range b {
				for y, d := range c {
					for z, val := range d {
						r.Set(grid.Coords{origin[0] + v, origin[1] + w, origin[2] + x, origin[3] + y, origin[4] + z}, val)
					}
				}
			}
		}
	}
	return r, nil
}
