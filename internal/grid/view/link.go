// Package view derives cheap, read-only projections of a model: axis
// cross-sections, diagonal cross-sections and sub-regions. A view holds a
// non-owning reference to its source plus the projection parameters and
// translates coordinates on every call; it never copies cell data.
//
// Views are only valid while the source stays at a generation whose bounds
// the projection parameters fit. Stepping a view steps its source.
package view

import (
	"github.com/banshee-data/hypergrid/internal/grid"
)

// link is the bound-delegation helper every view embeds: the source reference
// and the mapping from view axes to source axes.
type link[T any] struct {
	src    grid.Model[T]
	axes   []int
	suffix string
}

func newLink[T any](src grid.Model[T], drop int, suffix string) link[T] {
	l := link[T]{src: src, suffix: suffix}
	for a := 0; a < src.Rank(); a++ {
		if a != drop {
			l.axes = append(l.axes, a)
		}
	}
	return l
}

func (l *link[T]) Rank() int { return len(l.axes) }

// sourcePartial translates a partial over view axes into one over source axes.
func (l *link[T]) sourcePartial(at grid.Partial) grid.Partial {
	p := grid.Free()
	for a, sa := range l.axes {
		if at.Known(a) {
			p = p.Fix(sa, at.At(a))
		}
	}
	return p
}

// sourceCoords translates view coordinates into source coordinates. Dropped
// axes are left at zero for the caller to fill.
func (l *link[T]) sourceCoords(c grid.Coords) grid.Coords {
	var out grid.Coords
	for a, sa := range l.axes {
		out[sa] = c[a]
	}
	return out
}

func (l *link[T]) AxisLabel(axis int) string { return l.src.AxisLabel(l.axes[axis]) }
func (l *link[T]) Name() string              { return l.src.Name() }
func (l *link[T]) SubfolderPath() string     { return l.src.SubfolderPath() + l.suffix }
func (l *link[T]) Generation() int64         { return l.src.Generation() }
func (l *link[T]) Changed() bool             { return l.src.Changed() }
func (l *link[T]) Step() (bool, error)       { return l.src.Step() }

func (l *link[T]) BackUp(path, name string) error { return l.src.BackUp(path, name) }

// Source returns the model the view projects.
func (l *link[T]) Source() grid.Model[T] { return l.src }
