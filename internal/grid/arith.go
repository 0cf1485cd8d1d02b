package grid

import (
	"cmp"
	"math/big"
)

// Arithmetic supplies the operations a numeric value variant supports.
// Boolean models have no Arithmetic and therefore no aggregates.
type Arithmetic[T any] interface {
	Zero() T
	FromInt64(n int64) T
	Add(a, b T) T
	Sub(a, b T) T
	Cmp(a, b T) int
}

// Arithmetic for the int, long and arbitrary-precision variants.
var (
	Ints     Arithmetic[int32]    = intArith{}
	Longs    Arithmetic[int64]    = longArith{}
	Numerics Arithmetic[*big.Int] = bigArith{}
)

type intArith struct{}

func (intArith) Zero() int32             { return 0 }
func (intArith) FromInt64(n int64) int32 { return int32(n) }
func (intArith) Add(a, b int32) int32    { return a + b }
func (intArith) Sub(a, b int32) int32    { return a - b }
func (intArith) Cmp(a, b int32) int      { return cmp.Compare(a, b) }

type longArith struct{}

func (longArith) Zero() int64             { return 0 }
func (longArith) FromInt64(n int64) int64 { return n }
func (longArith) Add(a, b int64) int64    { return a + b }
func (longArith) Sub(a, b int64) int64    { return a - b }
func (longArith) Cmp(a, b int64) int      { return cmp.Compare(a, b) }

// bigArith never mutates its operands; results are fresh values.
type bigArith struct{}

var bigZero = new(big.Int)

func (bigArith) Zero() *big.Int             { return bigZero }
func (bigArith) FromInt64(n int64) *big.Int { return big.NewInt(n) }
func (bigArith) Add(a, b *big.Int) *big.Int { return new(big.Int).Add(a, b) }
func (bigArith) Sub(a, b *big.Int) *big.Int { return new(big.Int).Sub(a, b) }
func (bigArith) Cmp(a, b *big.Int) int      { return a.Cmp(b) }
