package pool

import "unsafe"

// uintptrDiff returns the byte offset of p from base, or -1 if p precedes
// base. Used by indexOf to bounds-check a released pointer against the
// slot array without per-release allocation.
func uintptrDiff[T any](p, base *T) int {
	pa := uintptr(unsafe.Pointer(p))
	ba := uintptr(unsafe.Pointer(base))
	if pa < ba {
		return -1
	}
	return int(pa - ba)
}

func sizeOf[T any](v T) int {
	return int(unsafe.Sizeof(v))
}
