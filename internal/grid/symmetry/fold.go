package symmetry

import "github.com/banshee-data/hypergrid/internal/grid"

// Symmetric exposes a full symmetric field over the hypercube
// [-maxV, maxV]^rank backed by its asymmetric section. It holds a reference
// to the section and copies nothing.
type Symmetric[T any] struct {
	asym grid.Model[T]
}

// Fold wraps an asymmetric section. asym's domain must be the canonical one,
// so that its unconditional bound on the first axis is the hypercube radius.
func Fold[T any](asym grid.Model[T]) *Symmetric[T] {
	return &Symmetric[T]{asym: asym}
}

func (s *Symmetric[T]) Rank() int { return s.asym.Rank() }

func (s *Symmetric[T]) radius() int { return s.asym.Max(0, grid.Free()) }

func (s *Symmetric[T]) Min(int, grid.Partial) int { return -s.radius() }
func (s *Symmetric[T]) Max(int, grid.Partial) int { return s.radius() }

func (s *Symmetric[T]) ValueAt(c grid.Coords) T {
	return s.asym.ValueAt(Canonicalize(c, s.asym.Rank()))
}

func (s *Symmetric[T]) ValueAtAsymmetric(c grid.Coords) T { return s.asym.ValueAt(c) }

func (s *Symmetric[T]) AsymmetricSection() grid.Model[T] {
	return Section(s.asym, s.SubfolderPath())
}

func (s *Symmetric[T]) AxisLabel(axis int) string { return s.asym.AxisLabel(axis) }
func (s *Symmetric[T]) Name() string              { return s.asym.Name() }
func (s *Symmetric[T]) SubfolderPath() string     { return s.asym.SubfolderPath() }
func (s *Symmetric[T]) Generation() int64         { return s.asym.Generation() }
func (s *Symmetric[T]) Changed() bool             { return s.asym.Changed() }
func (s *Symmetric[T]) Step() (bool, error)       { return s.asym.Step() }

func (s *Symmetric[T]) BackUp(path, name string) error { return s.asym.BackUp(path, name) }

// FootprintBytes reports the storage of the asymmetric section, which is all
// the memory a folded field occupies.
func (s *Symmetric[T]) FootprintBytes() (int64, error) { return grid.Footprint(s.asym) }

// section restricts queries to canonical coordinates and delegates straight to
// the asymmetric storage.
type section[T any] struct {
	grid.Model[T]
	subfolder string
}

// Section returns the asymmetric-section view of a symmetric model whose
// subfolder is parentPath.
func Section[T any](asym grid.Model[T], parentPath string) grid.Model[T] {
	return &section[T]{Model: asym, subfolder: parentPath + "/asymmetric_section"}
}

func (s *section[T]) SubfolderPath() string { return s.subfolder }

func (s *section[T]) FootprintBytes() (int64, error) { return grid.Footprint(s.Model) }
