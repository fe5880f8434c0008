package pool

import "sync"

// Scratch slices for per-query scoring. A query allocates one distance slice
// sized to the reference set and a few evidence slices sized to the class
// count; pooling them keeps steady-state scoring allocation-free apart from
// the returned report.
var (
	float64SlicePool = sync.Pool{
		New: func() any { return &[]float64{} },
	}
	intSlicePool = sync.Pool{
		New: func() any { return &[]int{} },
	}
)

// GetFloat64Slice retrieves a float64 slice of exactly size elements.
//
// The contents are unspecified; use GetZeroedFloat64Slice when the caller
// accumulates into the slice. The returned cleanup function must be called
// to return the slice to the pool.
//
// Example:
//
//	dist, cleanup := pool.GetFloat64Slice(set.Len())
//	defer cleanup()
func GetFloat64Slice(size int) ([]float64, func()) {
	ptr, _ := float64SlicePool.Get().(*[]float64)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]float64, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() { float64SlicePool.Put(ptr) }
}

// GetZeroedFloat64Slice is GetFloat64Slice with every element set to zero.
func GetZeroedFloat64Slice(size int) ([]float64, func()) {
	slice, cleanup := GetFloat64Slice(size)
	clear(slice)

	return slice, cleanup
}

// GetIntSlice retrieves an int slice of exactly size elements with
// unspecified contents.
func GetIntSlice(size int) ([]int, func()) {
	ptr, _ := intSlicePool.Get().(*[]int)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]int, size)
	} else {
		slice = slice[:size]
	}
	*ptr = slice

	return slice, func() { intSlicePool.Put(ptr) }
}
