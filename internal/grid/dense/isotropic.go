package dense

import (
	"fmt"

	"github.com/banshee-data/hypergrid/internal/grid"
	"github.com/banshee-data/hypergrid/internal/grid/footprint"
	"github.com/banshee-data/hypergrid/internal/grid/symmetry"
)

// Isotropic5 stores the asymmetric section of a symmetric 5D field as nested
// slices of successively shrinking length: data[v] has v+1 entries, data[v][w]
// has w+1, and so on, so only canonical coordinates
// side > v >= w >= x >= y >= z >= 0 are addressable.
type Isotropic5[T any] struct {
	meta
	side int
	data [][][][][]T
}

// AllocTriangular5 allocates the nested triangular array of the given side
// with every leaf set to fill. Leaves are sized with footprint.LeafCap.
func AllocTriangular5[T any](side int, fill T) [][][][][]T {
	elem := footprint.ElementOf[T]()
	data := make([][][][][]T, side)
	for v := range data {
		a := make([][][][]T, v+1)
		for w := range a {
			b := make([][][]T, w+1)
			for x := range b {
				c := make([][]T, x+1)
				for y := range c {
					d := make([]T, y+1, footprint.LeafCap(y+1, elem))
					for z := range d {
						d[z] = fill
					}
					c[y] = d
				}
				b[x] = c
			}
			a[w] = b
		}
		data[v] = a
	}
	return data
}

// NewIsotropic5 allocates an asymmetric section covering 0 <= v < side.
func NewIsotropic5[T any](side int, fill T, opts ...Option) (*Isotropic5[T], error) {
	if side <= 0 {
		return nil, fmt.Errorf("isotropic grid side %d: %w", side, grid.ErrEmptyShape)
	}
	if side-1 > grid.MaxCoord {
		return nil, fmt.Errorf("isotropic grid side %d: %w", side, grid.ErrIllegalArgument)
	}
	return &Isotropic5[T]{
		meta: newMeta(5, opts),
		side: side,
		data: AllocTriangular5(side, fill),
	}, nil
}

// FromTriangular5 wraps data after checking it has the triangular shape. The
// grid takes ownership of data.
func FromTriangular5[T any](data [][][][][]T, opts ...Option) (*Isotropic5[T], error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("triangular array: %w", grid.ErrEmptyShape)
	}
	if len(data)-1 > grid.MaxCoord {
		return nil, fmt.Errorf("triangular array side %d: %w", len(data), grid.ErrIllegalArgument)
	}
	for v, a := range data {
		if err := triangularLen("w", v, len(a)); err != nil {
			return nil, err
		}
		for w, b := range a {
			if err := triangularLen("x", w, len(b)); err != nil {
				return nil, err
			}
			for x, c := range b {
				if err := triangularLen("y", x, len(c)); err != nil {
					return nil, err
				}
				for y, d := range c {
					if err := triangularLen("z", y, len(d)); err != nil {
						return nil, err
					}
				}
			}
		}
	}
	return &Isotropic5[T]{meta: newMeta(5, opts), side: len(data), data: data}, nil
}

func triangularLen(axis string, outer, n int) error {
	if n != outer+1 {
		return fmt.Errorf("triangular array has %d entries along %s under outer coordinate %d, expected %d: %w",
			n, axis, outer, outer+1, grid.ErrIrregularShape)
	}
	return nil
}

// Side returns the number of v values the grid covers.
func (g *Isotropic5[T]) Side() int { return g.side }

func (g *Isotropic5[T]) Rank() int { return 5 }

func (g *Isotropic5[T]) Min(axis int, at grid.Partial) int {
	return symmetry.CanonicalMin(5, axis, at)
}

func (g *Isotropic5[T]) Max(axis int, at grid.Partial) int {
	return symmetry.CanonicalMax(5, axis, at, g.side-1)
}

func (g *Isotropic5[T]) ValueAt(c grid.Coords) T {
	return g.data[c[0]][c[1]][c[2]][c[3]][c[4]]
}

// Set stores value at the canonical coordinate c.
func (g *Isotropic5[T]) Set(c grid.Coords, value T) {
	g.data[c[0]][c[1]][c[2]][c[3]][c[4]] = value
}

// Clone returns an independent copy: no slice is shared with g. Values are
// copied as-is, so pointer values must be treated as immutable.
func (g *Isotropic5[T]) Clone(opts ...Option) *Isotropic5[T] {
	m := g.meta
	for _, opt := range opts {
		opt(&m)
	}
	return &Isotropic5[T]{meta: m, side: g.side, data: cloneTriangular5(g.data, g.side)}
}

// Resized returns a copy covering side v values. Cells beyond g are set to
// fill; cells beyond the new side are dropped.
func (g *Isotropic5[T]) Resized(side int, fill T) (*Isotropic5[T], error) {
	out, err := NewIsotropic5(side, fill)
	if err != nil {
		return nil, err
	}
	out.meta = g.meta
	n := min(side, g.side)
	for v := 0; v < n; v++ {
		for w := range g.data[v] {
			for x := range g.data[v][w] {
				for y := range g.data[v][w][x] {
					copy(out.data[v][w][x][y], g.data[v][w][x][y])
				}
			}
		}
	}
	return out, nil
}

// CopyFrom overwrites g's cells with src's, which must have the same side.
func (g *Isotropic5[T]) CopyFrom(src *Isotropic5[T]) error {
	if src.side != g.side {
		return fmt.Errorf("copy isotropic grid of side %d into side %d: %w", src.side, g.side, grid.ErrIllegalArgument)
	}
	for v := range src.data {
		for w := range src.data[v] {
			for x := range src.data[v][w] {
				for y := range src.data[v][w][x] {
					copy(g.data[v][w][x][y], src.data[v][w][x][y])
				}
			}
		}
	}
	return nil
}

func cloneTriangular5[T any](src [][][][][]T, side int) [][][][][]T {
	var zero T
	dst := AllocTriangular5(side, zero)
	for v := range src {
		for w := range src[v] {
			for x := range src[v][w] {
				for y := range src[v][w][x] {
					copy(dst[v][w][x][y], src[v][w][x][y])
				}
			}
		}
	}
	return dst
}

// Retag replaces the metadata options on g, used when a live grid takes over
// a buffer for a new generation.
func (g *Isotropic5[T]) Retag(opts ...Option) {
	for _, opt := range opts {
		opt(&g.meta)
	}
}

func (g *Isotropic5[T]) Step() (bool, error) {
	return false, fmt.Errorf("step isotropic grid %q: %w", g.name, grid.ErrUnsupported)
}

func (g *Isotropic5[T]) BackUp(path, name string) error {
	return fmt.Errorf("back up isotropic grid %q: %w", g.name, grid.ErrUnsupported)
}

// FootprintBytes reports the exact heap size of the triangular storage.
func (g *Isotropic5[T]) FootprintBytes() (int64, error) {
	return footprint.Triangular(5, g.side, footprint.ElementOf[T]())
}

func flatFootprint[T any](n int) (int64, error) {
	return footprint.Flat(n, footprint.ElementOf[T]())
}
