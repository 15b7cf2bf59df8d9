package pool

import "sync"

// unitSlicePool holds UTF-16 code unit scratch slices for the stream readers.
var unitSlicePool = sync.Pool{
	New: func() any { return &[]uint16{} },
}

// GetUnitSlice retrieves an empty uint16 slice with at least the given capacity.
//
// The caller must call the returned cleanup function to return the slice to the pool.
//
// Example:
//
//	units, cleanup := pool.GetUnitSlice(len(text))
//	defer cleanup()
//	units = reader.Append(units, text)
func GetUnitSlice(capacity int) ([]uint16, func()) {
	ptr, _ := unitSlicePool.Get().(*[]uint16)
	slice := (*ptr)[:0]

	if cap(slice) < capacity {
		slice = make([]uint16, 0, capacity)
	}

	return slice, func() {
		*ptr = slice[:0]
		unitSlicePool.Put(ptr)
	}
}
