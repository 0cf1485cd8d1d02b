package grid

import (
	"fmt"
	"math/big"
)

// Domain answers the layered bound queries of a possibly ragged coordinate
// domain. Min and Max return the legal range of axis given the coordinates
// fixed in at; an empty range is reported as Min > Max. Implementations answer
// in constant time and must return the same result for the same arguments
// until the next Step.
type Domain interface {
	Rank() int
	Min(axis int, at Partial) int
	Max(axis int, at Partial) int
}

// Model is a field of values over a Domain at one generation.
type Model[T any] interface {
	Domain

	// ValueAt returns the value at c. c must be within bounds; the result is
	// unspecified otherwise.
	ValueAt(c Coords) T

	AxisLabel(axis int) string
	Name() string
	SubfolderPath() string

	Generation() int64
	// Changed reports whether the most recent Step altered any value.
	Changed() bool
	// Step advances one generation. Models that cannot step return ErrUnsupported.
	Step() (bool, error)

	// BackUp persists the model under path/name. Models that cannot back up
	// return ErrUnsupported.
	BackUp(path, name string) error
}

// Value capability variants.
type (
	BoolModel    = Model[bool]
	IntModel     = Model[int32]
	LongModel    = Model[int64]
	NumericModel = Model[*big.Int]
)

// SymmetricModel is a model invariant under axis permutation and sign flips:
// ValueAt(c) == ValueAtAsymmetric(Canonicalize(c)).
type SymmetricModel[T any] interface {
	Model[T]
	ValueAtAsymmetric(c Coords) T
	AsymmetricSection() Model[T]
}

// Sizer is implemented by models that can report the bytes their storage
// occupies.
type Sizer interface {
	FootprintBytes() (int64, error)
}

// Snapshotter is implemented by step-capable models that can hand out an
// independent copy of their current generation.
type Snapshotter[T any] interface {
	Snapshot() (Model[T], error)
}

// Footprint returns m's storage size, or ErrUnsupported when m cannot report one.
func Footprint(m any) (int64, error) {
	s, ok := m.(Sizer)
	if !ok {
		return 0, fmt.Errorf("footprint of %T: %w", m, ErrUnsupported)
	}
	return s.FootprintBytes()
}
