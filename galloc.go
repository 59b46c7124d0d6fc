package galloc

import (
	"sync/atomic"
	"unsafe"

	"github.com/pavanmanishd/galloc/enginev0"
	"github.com/pavanmanishd/galloc/enginev1"
	"github.com/pavanmanishd/galloc/internal/diag"
)

// Verbose enables goroutine-tagged diagnostic logging for each engine's
// one-time initialization path (arena count chosen, reservation size,
// mapping failure). Default false, so a default build stays exactly as
// silent as the teacher's library on the Allocate/Release hot path. Backed
// by an atomic.Bool in package diag, which enginev0 and enginev1 import
// directly — they cannot import this package back, since this package
// imports them.
var Verbose = &diag.Verbose

// Engine selects which allocation strategy Allocate and Release dispatch
// to.
type Engine int32

const (
	// V1 is a multi-arena engine with a per-goroutine small-object cache.
	// It is the default.
	V1 Engine = iota
	// V0 is a single global arena behind one mutex.
	V0
)

var active atomic.Int32 // holds an Engine value

// UseEngine switches which engine subsequent Allocate/Release calls use.
// Calling it after either engine has already served an allocation is
// legal but mixes live allocations across engines — a block allocated
// under one engine must still be released while that engine is active,
// since the two engines maintain disjoint reservations and neither
// recognizes the other's addresses.
func UseEngine(e Engine) {
	active.Store(int32(e))
}

// currentEngine returns the engine UseEngine last selected, V1 if it was
// never called.
func currentEngine() Engine {
	return Engine(active.Load())
}

// Allocate returns a pointer to an uninitialized, 16-byte-aligned block of
// at least n usable bytes, using whichever engine is currently active.
// Returns nil if n is 0 or the active engine cannot satisfy the request.
func Allocate(n uintptr) unsafe.Pointer {
	if currentEngine() == V0 {
		return enginev0.Allocate(n)
	}
	return enginev1.Allocate(n)
}

// Release returns p — previously returned by Allocate under the engine
// currently active — to that engine. Release(nil) is a no-op.
func Release(p unsafe.Pointer) {
	if currentEngine() == V0 {
		enginev0.Release(p)
		return
	}
	enginev1.Release(p)
}

// Flush returns the calling goroutine's V1 thread-cache contents to its
// bound arena and forgets that goroutine's cache entry. A no-op under V0,
// which has no per-goroutine cache to drain, and also a no-op if V1's
// dispatch was never initialized (no Allocate ever ran) — it never forces
// dispatch into existence just to discover it has nothing to flush. Call
// this from a goroutine that is done allocating for good — a worker pool
// retiring one goroutine at a time, for instance — so its cached chunks
// don't sit stranded in a tcache bin forever, blocking that much of its
// arena's bump frontier from ever retracting.
func Flush() {
	if currentEngine() == V0 {
		return
	}
	enginev1.Flush()
}
