// Package enginev0 implements the allocator's first engine: a single
// global arena, serialized by one mutex, with first-fit placement,
// splitting, and bidirectional coalescing. It is the simplest of the two
// engines in this repository and the baseline V1's multi-arena dispatch
// and thread cache are measured against.
package enginev0

import (
	"sync"
	"unsafe"

	"github.com/pavanmanishd/galloc/arena"
	"github.com/pavanmanishd/galloc/internal/diag"
)

// RegionSize is the reservation size used for the single global arena,
// overridable before the first Allocate/Release call. Changing it
// afterward has no effect — this mirrors spec.md's compile-time
// REGION_SIZE, there being no runtime reconfiguration surface.
var RegionSize uintptr = arena.DefaultRegionSize

var (
	once    sync.Once
	global  *arena.Arena
	initErr error
)

func ensure() *arena.Arena {
	once.Do(func() {
		global, initErr = arena.New(RegionSize)
		if initErr != nil {
			diag.Logf("enginev0.init", "reservation failed: region=%d err=%v", RegionSize, initErr)
			return
		}
		diag.Logf("enginev0.init", "global arena ready: region=%d base=%#x", RegionSize, global.Base())
	})
	return global
}

// Allocate returns a pointer to an uninitialized, 16-byte-aligned block of
// at least n usable bytes, or nil if n is 0, the arena's reservation
// failed to initialize, or no chunk can satisfy the request.
func Allocate(n uintptr) unsafe.Pointer {
	a := ensure()
	if a == nil {
		return nil
	}
	p := a.Allocate(n)
	if p == 0 {
		return nil
	}
	return unsafe.Pointer(p) //nolint:govet
}

// Release returns p — previously returned by Allocate and not yet
// released — to the arena. Release(nil) is a no-op.
func Release(p unsafe.Pointer) {
	if p == nil {
		return
	}
	a := ensure()
	if a == nil {
		return
	}
	a.Release(uintptr(p))
}

// Stats returns a snapshot of the global arena's state. Returns the zero
// value if the arena failed to initialize.
func Stats() arena.Stats {
	a := ensure()
	if a == nil {
		return arena.Stats{}
	}
	return a.Stats()
}

// InitError returns the error from the arena's one-time reservation, if
// initialization failed. Every Allocate call returns nil from then on.
func InitError() error {
	ensure()
	return initErr
}

func resetForTest() {
	once = sync.Once{}
	global = nil
	initErr = nil
}
