package symmetry

import "github.com/banshee-data/hypergrid/internal/grid"

// OrbitSize returns how many coordinates of the full field canonicalize to c,
// which must be canonical: the distinct permutations of c times a sign choice
// for every non-zero entry.
func OrbitSize(c grid.Coords, rank int) int64 {
	n := int64(1)
	for i := 2; i <= rank; i++ {
		n *= int64(i)
	}
	run := 1
	for i := 1; i <= rank; i++ {
		if i < rank && c[i] == c[i-1] {
			run++
			continue
		}
		for k := 2; k <= run; k++ {
			n /= int64(k)
		}
		run = 1
	}
	for i := 0; i < rank; i++ {
		if c[i] != 0 {
			n *= 2
		}
	}
	return n
}

// Total sums m over its full domain by weighting each value of the
// asymmetric section with its orbit size.
func Total[T any](m grid.SymmetricModel[T], ar grid.Arithmetic[T]) T {
	section := m.AsymmetricSection()
	rank := section.Rank()
	byOrbit := make(map[int64]T)
	grid.Walk(section, func(c grid.Coords) {
		w := OrbitSize(c, rank)
		sum, ok := byOrbit[w]
		if !ok {
			sum = ar.Zero()
		}
		byOrbit[w] = ar.Add(sum, section.ValueAt(c))
	})
	total := ar.Zero()
	for w, sum := range byOrbit {
		total = ar.Add(total, scale(ar, sum, w))
	}
	return total
}

// scale returns v*k for k >= 0 by doubling.
func scale[T any](ar grid.Arithmetic[T], v T, k int64) T {
	acc := ar.Zero()
	for ; k > 0; k >>= 1 {
		if k&1 == 1 {
			acc = ar.Add(acc, v)
		}
		v = ar.Add(v, v)
	}
	return acc
}
