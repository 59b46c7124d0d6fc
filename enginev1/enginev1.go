// Package enginev1 implements the allocator's second engine: several
// independent arenas plus a per-goroutine small-object thread cache
// sitting in front of each one. A goroutine is bound to exactly one
// arena's shard for the whole allocation, by routine.Goid() modulo the
// shard count; there is no cross-arena coalescing, and freeing a block
// on a goroutine bound to a different arena than it was allocated from
// is accepted but effectively leaks the block: it lands in that other
// shard's cache, or is dropped by that arena's bounds check.
package enginev1

import (
	"unsafe"

	"github.com/pavanmanishd/galloc/chunk"
	"github.com/timandy/routine"
)

// Allocate returns a pointer to an uninitialized, 16-byte-aligned block of
// at least n usable bytes, or nil if n is 0, dispatch initialization
// failed, or the calling goroutine's bound shard cannot satisfy the
// request. The calling goroutine's thread cache is consulted before its
// bound arena; other shards are not tried.
func Allocate(n uintptr) unsafe.Pointer {
	if n == 0 {
		return nil
	}
	d := ensure()
	if d == nil {
		return nil
	}

	need := chunk.NeedFor(n)
	usable := need - chunk.WordSize

	gid := routine.Goid()
	s := shardFor(d, gid)
	if hdr, ok := s.cache.Pop(gid, usable); ok {
		return unsafe.Pointer(chunk.PayloadOf(hdr)) //nolint:govet
	}

	p := s.arena.Allocate(n)
	if p == 0 {
		return nil
	}
	return unsafe.Pointer(p) //nolint:govet
}

// Flush returns every chunk currently resident in the calling goroutine's
// thread cache to its bound shard's arena, and forgets that goroutine's
// cache entry. A tcached chunk's ownership otherwise never returns to the
// arena on its own (its bin must fill up first) — a long-lived goroutine
// pool where workers retire one at a time would otherwise leave each
// retiring worker's cached chunks stranded forever, permanently blocking
// that much of the arena's bump frontier from ever retracting. Callers
// that know a goroutine is done allocating for good should call Flush
// before it exits.
func Flush() {
	if !wasEnsured() {
		return
	}
	d := ensure()
	if d == nil {
		return
	}
	gid := routine.Goid()
	s := shardFor(d, gid)
	for _, hdr := range s.cache.Flush(gid) {
		s.arena.Release(chunk.PayloadOf(hdr))
	}
}

// Release returns p — previously returned by Allocate and not yet
// released — to the calling goroutine's thread cache, falling through to
// its bound arena if the cache's bin is full or the block's size is
// outside the cacheable range. Release(nil) is a no-op.
//
// If p was allocated from a different arena than the calling goroutine is
// currently bound to, it is accepted into this goroutine's cache or
// (failing that) handed to this goroutine's arena, whose bounds check
// rejects it as foreign memory: the block is effectively leaked rather
// than reclaimed, matching the cost of cross-arena frees under this
// engine.
func Release(p unsafe.Pointer) {
	if p == nil {
		return
	}
	d := ensure()
	if d == nil {
		return
	}

	hdr := chunk.ChunkOf(uintptr(p))
	size := chunk.SizeOf(hdr)
	usable := size - chunk.WordSize

	gid := routine.Goid()
	s := shardFor(d, gid)
	if s.cache.Push(gid, usable, hdr) {
		return
	}
	s.arena.Release(uintptr(p))
}
