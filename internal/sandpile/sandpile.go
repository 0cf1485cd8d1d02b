// Package sandpile implements a five-dimensional abelian sandpile started from
// a single pile at the origin. The field is symmetric under axis permutation
// and sign flips, so only its asymmetric section is stored.
package sandpile

import (
	"fmt"

	"github.com/banshee-data/hypergrid/internal/fsutil"
	"github.com/banshee-data/hypergrid/internal/grid"
	"github.com/banshee-data/hypergrid/internal/grid/dense"
	"github.com/banshee-data/hypergrid/internal/grid/footprint"
	"github.com/banshee-data/hypergrid/internal/grid/symmetry"
	"github.com/banshee-data/hypergrid/internal/grid/view"
	"github.com/banshee-data/hypergrid/internal/monitoring"
)

// Rank is the dimensionality of the pile.
const Rank = 5

// Threshold is the height at which a cell topples, sending one grain to each
// of its 2*Rank neighbours.
const Threshold = 2 * Rank

// Option configures a Sandpile.
type Option func(*settings)

type settings struct {
	name      string
	subfolder string
	fsys      fsutil.FileSystem
}

// WithName sets the model name.
func WithName(name string) Option { return func(s *settings) { s.name = name } }

// WithSubfolder sets the subfolder path artifacts are laid out under.
func WithSubfolder(path string) Option { return func(s *settings) { s.subfolder = path } }

// WithFileSystem sets the filesystem backups are written to.
func WithFileSystem(fsys fsutil.FileSystem) Option { return func(s *settings) { s.fsys = fsys } }

func newSettings(opts []Option) settings {
	s := settings{name: "sandpile", subfolder: "sandpile", fsys: fsutil.OSFileSystem{}}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Sandpile is a step-capable symmetric model. The live generation is held in
// one of two asymmetric-section buffers; each Step writes the other and swaps
// them, so the storage of generation N is overwritten by generation N+2.
type Sandpile[T any] struct {
	*symmetry.Symmetric[T]

	settings
	arith     grid.Arithmetic[T]
	threshold T
	one       T

	cur, nxt   *dense.Isotropic5[T]
	generation int64
	changed    bool
	// hot is set when a cell on the outermost shell will topple next step.
	hot bool
}

// New returns a pile of grains at the origin.
func New[T any](arith grid.Arithmetic[T], grains int64, opts ...Option) (*Sandpile[T], error) {
	if grains < 0 {
		return nil, fmt.Errorf("sandpile of %d grains: %w", grains, grid.ErrIllegalArgument)
	}
	st := newSettings(opts)
	cur, err := dense.NewIsotropic5(1, arith.Zero(), dense.WithName(st.name), dense.WithSubfolder(st.subfolder))
	if err != nil {
		return nil, err
	}
	cur.Set(grid.Coords{}, arith.FromInt64(grains))
	return assemble(st, arith, cur, 0)
}

func assemble[T any](st settings, arith grid.Arithmetic[T], cur *dense.Isotropic5[T], generation int64) (*Sandpile[T], error) {
	nxt, err := dense.NewIsotropic5(cur.Side(), arith.Zero())
	if err != nil {
		return nil, err
	}
	s := &Sandpile[T]{
		settings:   st,
		arith:      arith,
		threshold:  arith.FromInt64(Threshold),
		one:        arith.FromInt64(1),
		cur:        cur,
		nxt:        nxt,
		generation: generation,
	}
	s.Symmetric = symmetry.Fold[T](live[T]{s})
	s.hot = s.shellTopples()
	return s, nil
}

func (s *Sandpile[T]) topples(v T) bool { return s.arith.Cmp(v, s.threshold) >= 0 }

// shellTopples scans the outermost shell v = side-1 for a cell at threshold.
func (s *Sandpile[T]) shellTopples() bool {
	edge, err := view.AtV[T](s.cur, s.cur.Side()-1)
	if err != nil {
		return false
	}
	for _, v := range grid.All[T](edge) {
		if s.topples(v) {
			return true
		}
	}
	return false
}

// Side returns the number of v values the asymmetric section covers.
func (s *Sandpile[T]) Side() int { return s.cur.Side() }

// grow extends both buffers by one shell.
func (s *Sandpile[T]) grow() error {
	side := s.cur.Side() + 1
	cur, err := s.cur.Resized(side, s.arith.Zero())
	if err != nil {
		return fmt.Errorf("grow %s to side %d: %w", s.name, side, err)
	}
	nxt, err := dense.NewIsotropic5(side, s.arith.Zero())
	if err != nil {
		return fmt.Errorf("grow %s to side %d: %w", s.name, side, err)
	}
	s.cur, s.nxt = cur, nxt
	monitoring.Logf("sandpile %s: grew to side %d at generation %d", s.name, side, s.generation)
	return nil
}

// Step topples every cell at or above the threshold once.
func (s *Sandpile[T]) Step() (bool, error) {
	if s.hot {
		if err := s.grow(); err != nil {
			return false, err
		}
	}
	side := s.cur.Side()
	edge := side - 1
	changed, hot := false, false
	grid.Walk(s.cur, func(c grid.Coords) {
		old := s.cur.ValueAt(c)
		val := old
		if s.topples(old) {
			val = s.arith.Sub(val, s.threshold)
		}
		for axis := 0; axis < Rank; axis++ {
			for _, d := range [2]int{-1, 1} {
				n := c
				n[axis] += d
				n = symmetry.Canonicalize(n, Rank)
				if n[0] > edge {
					continue
				}
				if s.topples(s.cur.ValueAt(n)) {
					val = s.arith.Add(val, s.one)
				}
			}
		}
		s.nxt.Set(c, val)
		if s.arith.Cmp(val, old) != 0 {
			changed = true
		}
		if c[0] == edge && s.topples(val) {
			hot = true
		}
	})
	s.cur, s.nxt = s.nxt, s.cur
	s.generation++
	s.changed = changed
	s.hot = hot
	return changed, nil
}

// Snapshot returns an independent folded copy of the current generation.
func (s *Sandpile[T]) Snapshot() (grid.Model[T], error) {
	clone := s.cur.Clone(dense.WithName(s.name), dense.WithSubfolder(s.subfolder), dense.WithGeneration(s.generation))
	return symmetry.Fold[T](clone), nil
}

// FootprintBytes reports the storage of both generation buffers.
func (s *Sandpile[T]) FootprintBytes() (int64, error) {
	a, err := s.cur.FootprintBytes()
	if err != nil {
		return 0, err
	}
	b, err := s.nxt.FootprintBytes()
	if err != nil {
		return 0, err
	}
	return a + b, nil
}

// GrownFootprintBytes reports what FootprintBytes will return once the pile
// has grown by one shell.
func (s *Sandpile[T]) GrownFootprintBytes() (int64, error) {
	one, err := footprint.Triangular(Rank, s.cur.Side()+1, footprint.ElementOf[T]())
	if err != nil {
		return 0, err
	}
	return 2 * one, nil
}

// Hot reports whether the next Step will grow the pile by one shell.
func (s *Sandpile[T]) Hot() bool { return s.hot }

// live presents whichever buffer currently holds the generation as the
// asymmetric section behind the folded view.
type live[T any] struct{ s *Sandpile[T] }

func (l live[T]) Rank() int                         { return Rank }
func (l live[T]) Min(axis int, at grid.Partial) int { return l.s.cur.Min(axis, at) }
func (l live[T]) Max(axis int, at grid.Partial) int { return l.s.cur.Max(axis, at) }
func (l live[T]) ValueAt(c grid.Coords) T           { return l.s.cur.ValueAt(c) }
func (l live[T]) AxisLabel(axis int) string         { return l.s.cur.AxisLabel(axis) }
func (l live[T]) Name() string                      { return l.s.name }
func (l live[T]) SubfolderPath() string             { return l.s.subfolder }
func (l live[T]) Generation() int64                 { return l.s.generation }
func (l live[T]) Changed() bool                     { return l.s.changed }
func (l live[T]) Step() (bool, error)               { return l.s.Step() }
func (l live[T]) BackUp(path, name string) error    { return l.s.BackUp(path, name) }
func (l live[T]) FootprintBytes() (int64, error)    { return l.s.FootprintBytes() }
