package view

import (
	"fmt"

	"github.com/banshee-data/hypergrid/internal/grid"
)

// DiagonalCrossSection restricts a source to the hyperplane q = slope*p + offset
// and drops axis q, reducing the rank by one.
//
// When p is among the known coordinates of a bound query, q is substituted and
// the query delegates in constant time. Otherwise the valid range of p is
// scanned, which costs one source query pair per candidate p.
type DiagonalCrossSection[T any] struct {
	link[T]
	p, q   int
	slope  int
	offset int
}

// Pair is an unordered pair of axes.
type Pair struct{ P, Q int }

// DiagonalPairs lists every unordered axis pair of a rank, P < Q.
func DiagonalPairs(rank int) []Pair {
	var out []Pair
	for p := 0; p < rank; p++ {
		for q := p + 1; q < rank; q++ {
			out = append(out, Pair{P: p, Q: q})
		}
	}
	return out
}

// NewDiagonalCrossSection returns the section of src where axis q equals
// slope*p + offset. slope must be 1 or -1.
func NewDiagonalCrossSection[T any](src grid.Model[T], p, q, slope, offset int) (*DiagonalCrossSection[T], error) {
	rank := src.Rank()
	if rank < 2 || p < 0 || q < 0 || p >= rank || q >= rank || p == q {
		return nil, fmt.Errorf("diagonal cross-section of rank %d model over axes %d,%d: %w", rank, p, q, grid.ErrIllegalArgument)
	}
	if slope != 1 && slope != -1 {
		return nil, fmt.Errorf("diagonal cross-section slope %d: %w", slope, grid.ErrIllegalArgument)
	}
	minP, maxP := src.Min(p, grid.Free()), src.Max(p, grid.Free())
	minQ, maxQ := src.Min(q, grid.Free()), src.Max(q, grid.Free())
	if !grid.InCoordRange(slope*minP+offset) || !grid.InCoordRange(slope*maxP+offset) {
		return nil, fmt.Errorf("diagonal %s=%d*%s%+d leaves the coordinate range: %w",
			src.AxisLabel(q), slope, src.AxisLabel(p), offset, grid.ErrIllegalArgument)
	}
	lo, hi := minQ-offset, maxQ-offset
	if slope == -1 {
		lo, hi = offset-maxQ, offset-minQ
	}
	if max(lo, minP) > min(hi, maxP) {
		return nil, fmt.Errorf("diagonal %s=%d*%s%+d misses the source bounds: %w",
			src.AxisLabel(q), slope, src.AxisLabel(p), offset, grid.ErrOutOfBounds)
	}
	d := &DiagonalCrossSection[T]{
		link:   newLink(src, q, diagonalSuffix(src, p, q, slope, offset)),
		p:      p,
		q:      q,
		slope:  slope,
		offset: offset,
	}
	return d, nil
}

func diagonalSuffix[T any](src grid.Model[T], p, q, slope, offset int) string {
	sign := ""
	if slope < 0 {
		sign = "-"
	}
	s := fmt.Sprintf("/%s=%s%s", src.AxisLabel(q), sign, src.AxisLabel(p))
	if offset != 0 {
		s += fmt.Sprintf("%+d", offset)
	}
	return s
}

func (d *DiagonalCrossSection[T]) dependent(pv int) int { return d.slope*pv + d.offset }

// onLine reports whether p = pv keeps the dependent axis within the source bounds.
func (d *DiagonalCrossSection[T]) onLine(at grid.Partial, pv int) bool {
	at = at.Fix(d.p, pv)
	qv := d.dependent(pv)
	return qv >= d.src.Min(d.q, at) && qv <= d.src.Max(d.q, at)
}

// bound answers Min (upper false) or Max (upper true) for a view axis.
func (d *DiagonalCrossSection[T]) bound(axis int, at grid.Partial, upper bool) int {
	sa := d.axes[axis]
	sp := d.sourcePartial(at)
	if sp.Known(d.p) {
		sp = sp.Fix(d.q, d.dependent(sp.At(d.p)))
		if upper {
			return d.src.Max(sa, sp)
		}
		return d.src.Min(sa, sp)
	}

	lo, hi := d.src.Min(d.p, sp), d.src.Max(d.p, sp)
	if sa == d.p {
		if upper {
			for pv := hi; pv >= lo; pv-- {
				if d.onLine(sp, pv) {
					return pv
				}
			}
			return lo - 1
		}
		for pv := lo; pv <= hi; pv++ {
			if d.onLine(sp, pv) {
				return pv
			}
		}
		return hi + 1
	}

	found := false
	best := 0
	for pv := lo; pv <= hi; pv++ {
		if !d.onLine(sp, pv) {
			continue
		}
		at2 := sp.Fix(d.p, pv).Fix(d.q, d.dependent(pv))
		var b int
		if upper {
			b = d.src.Max(sa, at2)
		} else {
			b = d.src.Min(sa, at2)
		}
		if !found || (upper && b > best) || (!upper && b < best) {
			best, found = b, true
		}
	}
	if !found {
		if upper {
			return 0
		}
		return 1
	}
	return best
}

func (d *DiagonalCrossSection[T]) Min(axis int, at grid.Partial) int { return d.bound(axis, at, false) }
func (d *DiagonalCrossSection[T]) Max(axis int, at grid.Partial) int { return d.bound(axis, at, true) }

func (d *DiagonalCrossSection[T]) ValueAt(c grid.Coords) T {
	sc := d.sourceCoords(c)
	sc[d.q] = d.dependent(sc[d.p])
	return d.src.ValueAt(sc)
}

// Relation returns the independent axis, the dependent axis, the slope and
// the offset of the hyperplane, all in source axes.
func (d *DiagonalCrossSection[T]) Relation() (p, q, slope, offset int) {
	return d.p, d.q, d.slope, d.offset
}
