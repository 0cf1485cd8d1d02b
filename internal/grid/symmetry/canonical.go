// Package symmetry folds fields that are invariant under axis permutation and
// sign flips onto their asymmetric section, v >= w >= x >= y >= z >= 0.
package symmetry

import "github.com/banshee-data/hypergrid/internal/grid"

// Canonicalize maps c to its representative in the asymmetric section:
// absolute values sorted descending by axis priority.
func Canonicalize(c grid.Coords, rank int) grid.Coords {
	for i := 0; i < rank; i++ {
		if c[i] < 0 {
			c[i] = -c[i]
		}
	}
	for sorted := false; !sorted; {
		sorted = true
		for i := 1; i < rank; i++ {
			if c[i-1] < c[i] {
				c[i-1], c[i] = c[i], c[i-1]
				sorted = false
			}
		}
	}
	return c
}

// IsCanonical reports whether c lies in the asymmetric section.
func IsCanonical(c grid.Coords, rank int) bool {
	if rank > 0 && c[rank-1] < 0 {
		return false
	}
	for i := 1; i < rank; i++ {
		if c[i-1] < c[i] {
			return false
		}
	}
	return true
}

// CanonicalMin is the lower bound of axis within the asymmetric section given
// the coordinates fixed in at: the largest known inner coordinate, or zero.
func CanonicalMin(rank, axis int, at grid.Partial) int {
	lo := 0
	for b := axis + 1; b < rank; b++ {
		if at.Known(b) && at.At(b) > lo {
			lo = at.At(b)
		}
	}
	return lo
}

// CanonicalMax is the upper bound of axis within the asymmetric section given
// the coordinates fixed in at: the smallest known outer coordinate, capped at
// maxV.
func CanonicalMax(rank, axis int, at grid.Partial, maxV int) int {
	hi := maxV
	for b := 0; b < axis; b++ {
		if at.Known(b) && at.At(b) < hi {
			hi = at.At(b)
		}
	}
	return hi
}
