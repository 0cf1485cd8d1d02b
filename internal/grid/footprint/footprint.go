// Package footprint computes the exact heap footprint of dense grid storage
// without allocating it. The driver uses it to decide when a live simulation
// has outgrown its memory budget and must be flushed to disk.
//
// Sizes follow the Go allocator on 64-bit platforms: every backing array is
// rounded up to its size class, pointer-bearing arrays above 512 bytes carry an
// 8-byte malloc header, and objects past the small-object limit occupy whole
// 8 KiB pages. The tiny allocator packs pointer-free objects under 16 bytes
// into shared blocks, which no per-object figure can follow, so storage
// allocated through LeafCap never leaves a pointer-free array that small.
package footprint

import (
	"fmt"
	"math"
	"reflect"
	"sort"

	"github.com/banshee-data/hypergrid/internal/grid"
)

// Allocator layout constants (runtime/malloc.go, 64-bit).
const (
	SliceHeaderSize = 24
	PageSize        = 8192
	TinySize        = 16

	maxSmallSize           = 32768
	mallocHeaderSize       = 8
	minSizeForMallocHeader = 512
)

// sizeClasses mirrors runtime/sizeclasses.go.
var sizeClasses = [...]int64{
	0, 8, 16, 24, 32, 48, 64, 80, 96, 112, 128, 144, 160, 176, 192, 208, 224, 240, 256,
	288, 320, 352, 384, 416, 448, 480, 512, 576, 640, 704, 768, 896, 1024, 1152, 1280,
	1408, 1536, 1792, 2048, 2304, 2688, 3072, 3200, 3456, 4096, 4864, 5376, 6144, 6528,
	6784, 6912, 8192, 9472, 9728, 10240, 10880, 12288, 13568, 14336, 16384, 18432, 19072,
	20480, 21760, 24576, 27264, 28672, 32768,
}

// Element describes the leaf values of a grid.
type Element struct {
	Size     int64
	Pointers bool
}

// sliceHeader describes the slice headers stored by every non-leaf level.
var sliceHeader = Element{Size: SliceHeaderSize, Pointers: true}

// ElementOf describes T.
func ElementOf[T any]() Element {
	t := reflect.TypeFor[T]()
	return Element{Size: int64(t.Size()), Pointers: hasPointers(t)}
}

func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface,
		reflect.Slice, reflect.String, reflect.UnsafePointer:
		return true
	case reflect.Array:
		return t.Len() > 0 && hasPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
	}
	return false
}

// AlignSize rounds size up to a multiple of align, which must be a power of two.
func AlignSize(size, align int64) int64 {
	return (size + align - 1) &^ (align - 1)
}

// RoundUp returns the bytes the allocator reserves for a single object of size
// bytes. Zero-sized objects take no space.
func RoundUp(size int64, pointers bool) int64 {
	if size <= 0 {
		return 0
	}
	if size > maxSmallSize-mallocHeaderSize {
		return AlignSize(size, PageSize)
	}
	if pointers && size > minSizeForMallocHeader {
		size += mallocHeaderSize
	}
	i := sort.Search(len(sizeClasses), func(i int) bool { return sizeClasses[i] >= size })
	return sizeClasses[i]
}

// LeafCap returns the capacity to allocate for a leaf array of n elements so
// that it bypasses the tiny allocator.
func LeafCap(n int, elem Element) int {
	if elem.Pointers || elem.Size == 0 || n <= 0 || int64(n)*elem.Size >= TinySize {
		return n
	}
	return int((TinySize + elem.Size - 1) / elem.Size)
}

// leafBytes is the allocation size of a leaf array of n elements allocated
// with LeafCap.
func leafBytes(n int64, elem Element) (int64, bool) {
	c, ok := mul(n, elem.Size)
	if !ok {
		return 0, false
	}
	if !elem.Pointers && c > 0 && c < TinySize {
		c = int64(LeafCap(int(n), elem)) * elem.Size
	}
	return RoundUp(c, elem.Pointers), true
}

// Flat returns the footprint of a slice of n elements, header included.
func Flat(n int, elem Element) (int64, error) {
	if n < 0 {
		return 0, fmt.Errorf("flat footprint of %d elements: %w", n, grid.ErrIllegalArgument)
	}
	if elem.Size > 0 && int64(n) > math.MaxInt64/elem.Size {
		return 0, fmt.Errorf("flat footprint of %d elements: %w", n, grid.ErrIllegalArgument)
	}
	b, _ := leafBytes(int64(n), elem)
	return SliceHeaderSize + b, nil
}

// Triangular returns the footprint of a nested triangular slice structure of
// the given rank: an outer slice of length side whose i-th entry has length
// i+1, and so on down to leaves of elem. It counts the outer slice header,
// every nested header and every backing array.
func Triangular(rank, side int, elem Element) (int64, error) {
	if rank < 1 || rank > grid.MaxRank {
		return 0, fmt.Errorf("triangular footprint of rank %d: %w", rank, grid.ErrIllegalArgument)
	}
	if side < 0 || side > grid.MaxCoord {
		return 0, fmt.Errorf("triangular footprint with side %d: %w", side, grid.ErrIllegalArgument)
	}

	// cost[n] is the footprint of one array of length n at the current level,
	// children included. Levels are folded from the leaves upwards.
	cost := make([]int64, side+1)
	for n := 0; n <= side; n++ {
		c, ok := leafBytes(int64(n), elem)
		if !ok {
			return 0, overflow(rank, side)
		}
		cost[n] = c
	}
	for level := rank - 2; level >= 0; level-- {
		var children int64
		next := make([]int64, side+1)
		for n := 0; n <= side; n++ {
			if n > 0 {
				var ok bool
				if children, ok = add(children, cost[n]); !ok {
					return 0, overflow(rank, side)
				}
			}
			own := RoundUp(int64(n)*sliceHeader.Size, sliceHeader.Pointers)
			total, ok := add(own, children)
			if !ok {
				return 0, overflow(rank, side)
			}
			next[n] = total
		}
		cost = next
	}
	total, ok := add(SliceHeaderSize, cost[side])
	if !ok {
		return 0, overflow(rank, side)
	}
	return total, nil
}

func overflow(rank, side int) error {
	return fmt.Errorf("triangular footprint of rank %d side %d overflows: %w", rank, side, grid.ErrIllegalArgument)
}

func add(a, b int64) (int64, bool) {
	if a > math.MaxInt64-b {
		return 0, false
	}
	return a + b, true
}

func mul(a, b int64) (int64, bool) {
	if a != 0 && b > math.MaxInt64/a {
		return 0, false
	}
	return a * b, true
}
