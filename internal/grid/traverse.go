package grid

import "iter"

// Walk calls fn for every in-bounds coordinate of d in canonical nested order:
// the outermost axis ascending, then each inner axis ascending over its bounds
// conditioned on the outer coordinates already chosen.
func Walk(d Domain, fn func(c Coords)) {
	var c Coords
	walkAxis(d, d.Rank(), 0, &c, fn)
}

func walkAxis(d Domain, rank, axis int, c *Coords, fn func(Coords)) {
	at := Prefix(*c, axis)
	lo, hi := d.Min(axis, at), d.Max(axis, at)
	for v := lo; v <= hi; v++ {
		c[axis] = v
		if axis == rank-1 {
			fn(*c)
			continue
		}
		walkAxis(d, rank, axis+1, c, fn)
	}
}

// Count returns the number of in-bounds coordinates of d.
func Count(d Domain) int {
	n := 0
	Walk(d, func(Coords) { n++ })
	return n
}

// Contains reports whether c is within d, checking every axis against its
// prefix-conditioned bounds.
func Contains(d Domain, c Coords) bool {
	for axis := 0; axis < d.Rank(); axis++ {
		at := Prefix(c, axis)
		if c[axis] < d.Min(axis, at) || c[axis] > d.Max(axis, at) {
			return false
		}
	}
	return true
}

// Iterator is a one-shot pull iterator over a model's values in canonical
// nested order. It cannot be restarted; call Iterate again for a new pass.
type Iterator[T any] struct {
	m     Model[T]
	rank  int
	cur   Coords
	hi    Coords
	state iterState
}

type iterState uint8

const (
	iterFresh iterState = iota
	iterRunning
	iterDone
)

// Iterate returns an iterator positioned before the first value of m.
func Iterate[T any](m Model[T]) *Iterator[T] {
	return &Iterator[T]{m: m, rank: m.Rank()}
}

// Next advances to the next coordinate and reports whether there is one.
func (it *Iterator[T]) Next() bool {
	switch it.state {
	case iterDone:
		return false
	case iterFresh:
		it.state = iterRunning
		return it.advance(0, true)
	}
	return it.advance(it.rank-1, false)
}

// advance moves axis level forward, or reinitialises it from its bounds when
// reset is set, carrying into outer axes whenever a range is exhausted.
func (it *Iterator[T]) advance(level int, reset bool) bool {
	for {
		if reset {
			at := Prefix(it.cur, level)
			it.cur[level] = it.m.Min(level, at)
			it.hi[level] = it.m.Max(level, at)
		} else {
			it.cur[level]++
		}
		if it.cur[level] > it.hi[level] {
			if level == 0 {
				it.state = iterDone
				return false
			}
			level--
			reset = false
			continue
		}
		if level == it.rank-1 {
			return true
		}
		level++
		reset = true
	}
}

// Coords returns the current coordinate. Valid after Next returned true.
func (it *Iterator[T]) Coords() Coords { return it.cur }

// Value returns the value at the current coordinate.
func (it *Iterator[T]) Value() T { return it.m.ValueAt(it.cur) }

// All returns the values of m in canonical nested order.
func All[T any](m Model[T]) iter.Seq2[Coords, T] {
	return func(yield func(Coords, T) bool) {
		it := Iterate(m)
		for it.Next() {
			if !yield(it.Coords(), it.Value()) {
				return
			}
		}
	}
}
