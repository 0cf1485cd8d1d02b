package grid

import "math"

// MaxRank is the highest supported dimensionality.
const MaxRank = 5

// Coordinate range. Every coordinate and computed bound must fit in int32.
const (
	MinCoord = math.MinInt32
	MaxCoord = math.MaxInt32
)

// Axis indices for rank-5 models.
const (
	V = iota
	W
	X
	Y
	Z
)

const axisLetters = "vwxyz"

// Coords is a coordinate tuple. Only the first Rank() entries are meaningful.
type Coords [MaxRank]int

// AxisSet is a bitmask of axis indices.
type AxisSet uint8

// Has reports whether axis is in the set.
func (s AxisSet) Has(axis int) bool { return s&(1<<uint(axis)) != 0 }

// With returns the set with axis added.
func (s AxisSet) With(axis int) AxisSet { return s | 1<<uint(axis) }

// Partial is a coordinate tuple in which only some axes are fixed. It is the
// argument of every bound query.
type Partial struct {
	c     Coords
	known AxisSet
}

// Free returns a Partial with no axis fixed.
func Free() Partial { return Partial{} }

// Prefix returns a Partial fixing axes [0, n) to the values in c.
func Prefix(c Coords, n int) Partial {
	p := Partial{c: c, known: AxisSet(1<<uint(n) - 1)}
	for i := n; i < MaxRank; i++ {
		p.c[i] = 0
	}
	return p
}

// Fix returns a copy of p with axis fixed to value.
func (p Partial) Fix(axis, value int) Partial {
	p.c[axis] = value
	p.known = p.known.With(axis)
	return p
}

// Known reports whether axis is fixed.
func (p Partial) Known(axis int) bool { return p.known.Has(axis) }

// At returns the fixed coordinate of axis. It is zero when the axis is not fixed.
func (p Partial) At(axis int) int { return p.c[axis] }

// Set returns the fixed axes.
func (p Partial) Set() AxisSet { return p.known }

// DefaultLabel returns the conventional name of axis in a model of the given
// rank. 2D models use x and y; other ranks take the last rank letters of
// "vwxyz".
func DefaultLabel(rank, axis int) string {
	if rank < 1 || rank > MaxRank || axis < 0 || axis >= rank {
		return "?"
	}
	i := MaxRank - rank + axis
	if rank == 2 {
		i = X + axis
	}
	return axisLetters[i : i+1]
}

// InCoordRange reports whether n fits the representable coordinate range.
func InCoordRange(n int) bool { return n >= MinCoord && n <= MaxCoord }
