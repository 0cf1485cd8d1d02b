package grid

// Total sums every value of m.
func Total[T any](m Model[T], ar Arithmetic[T]) T {
	sum := ar.Zero()
	Walk(m, func(c Coords) {
		sum = ar.Add(sum, m.ValueAt(c))
	})
	return sum
}

// MinMax returns the smallest and largest values of m. ok is false when the
// domain is empty.
func MinMax[T any](m Model[T], ar Arithmetic[T]) (lo, hi T, ok bool) {
	return minMaxWhere(m, ar, func(Coords) bool { return true })
}

// MinMaxAtParity is MinMax restricted to cells whose coordinate sum has the
// given parity (0 even, 1 odd).
func MinMaxAtParity[T any](m Model[T], ar Arithmetic[T], parity int) (lo, hi T, ok bool) {
	rank := m.Rank()
	want := parity & 1
	return minMaxWhere(m, ar, func(c Coords) bool {
		sum := 0
		for i := 0; i < rank; i++ {
			sum += c[i]
		}
		return sum&1 == want
	})
}

func minMaxWhere[T any](m Model[T], ar Arithmetic[T], keep func(Coords) bool) (lo, hi T, ok bool) {
	Walk(m, func(c Coords) {
		if !keep(c) {
			return
		}
		v := m.ValueAt(c)
		if !ok {
			lo, hi, ok = v, v, true
			return
		}
		if ar.Cmp(v, lo) < 0 {
			lo = v
		}
		if ar.Cmp(v, hi) > 0 {
			hi = v
		}
	})
	return lo, hi, ok
}
