// Package tcache implements the per-thread small-object cache that sits in
// front of a V1 arena's free list: 64 size-class bins, each a singly-linked
// stack of up to 32 chunks, keyed per goroutine via routine.Goid() (Go has
// no native OS-thread handle; the goroutine is the closest analogue of the
// "per hardware context" unit the allocator's thread cache is specified
// against).
//
// Cached chunks are still considered in-use by the owning arena: their
// FREE bit stays 0 and their neighbors' PREV-IN-USE bits stay set. Only the
// first payload word is overwritten, to thread the stack — this is what
// lets a concurrent coalesce in the home arena ignore them entirely.
package tcache

import (
	"sync/atomic"

	"github.com/pavanmanishd/galloc/chunk"
)

const (
	// Bins is the number of size-class bins per goroutine.
	Bins = 64
	// MaxPerBin is the stack depth at which a bin stops accepting pushes
	// and falls through to the arena's free list instead.
	MaxPerBin = 32

	minUsable = 16
	maxUsable = 1024
)

// BinFor returns the bin index for a chunk with usable bytes (chunk size
// minus the header word), and whether it is cacheable at all. Chunks
// outside [16, 1024] usable bytes skip the cache. Every real chunk's
// usable size is ≡ 8 (mod 16) (chunk.NeedFor aligns the whole chunk, not
// the usable portion), so index 63 is never produced by a real
// allocation — the formula still follows spec.md's literal
// floor(usable/16)-1 rather than special-casing the gap away.
func BinFor(usable uintptr) (idx int, ok bool) {
	if usable < minUsable || usable > maxUsable {
		return 0, false
	}
	return int(usable/16) - 1, true
}

type bin struct {
	top   uintptr // header address of the top cached chunk, 0 if empty
	count int
}

type goroutineBins struct {
	bins [Bins]bin
}

// Cache is one shard's thread cache. Each Arena in enginev1 is paired with
// its own Cache, so a goroutine bound to arena i has an entry here only
// within Cache i's registry.
type Cache struct {
	reg registry[uint64, *goroutineBins]

	hits, misses, pushes, fallThroughs atomic.Int64
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{}
}

// binsFor returns the calling goroutine's bin set, keyed by gid. Callers
// that already have gid (from their own routine.Goid() call, e.g. to pick
// an arena shard) pass it in rather than forcing a second lookup here.
func (c *Cache) binsFor(gid uint64) *goroutineBins {
	return c.reg.loadOrStore(gid, func() *goroutineBins { return &goroutineBins{} })
}

// Pop removes and returns the top chunk cached for usable bytes on the
// goroutine identified by gid, if any. No arena lock is taken.
func (c *Cache) Pop(gid uint64, usable uintptr) (hdrAddr uintptr, ok bool) {
	idx, cacheable := BinFor(usable)
	if !cacheable {
		c.misses.Add(1)
		return 0, false
	}
	b := &c.binsFor(gid).bins[idx]
	if b.top == 0 {
		c.misses.Add(1)
		return 0, false
	}
	hdr := b.top
	b.top = chunk.ReadWord(chunk.PayloadOf(hdr))
	b.count--
	c.hits.Add(1)
	return hdr, true
}

// Push caches hdrAddr (already a live, in-use chunk from the caller's
// perspective) for later reuse on the goroutine identified by gid. Returns
// false if the chunk's size is outside the cacheable range or its bin is
// already at MaxPerBin — the caller must then fall through to the arena's
// free list.
func (c *Cache) Push(gid uint64, usable uintptr, hdrAddr uintptr) bool {
	idx, cacheable := BinFor(usable)
	if !cacheable {
		return false
	}
	b := &c.binsFor(gid).bins[idx]
	if b.count >= MaxPerBin {
		c.fallThroughs.Add(1)
		return false
	}
	chunk.WriteWord(chunk.PayloadOf(hdrAddr), b.top)
	b.top = hdrAddr
	b.count++
	c.pushes.Add(1)
	return true
}

// Flush empties every bin belonging to the goroutine identified by gid and
// forgets that goroutine's entry entirely, returning the header address of
// every chunk that was resident in its bins (in no particular order). A
// tcached chunk's ownership otherwise never returns to the arena on its
// own — spec.md's §4.2 ownership rule is "unless the bin is full or the
// thread never allocates/frees again" — so a goroutine that is done for
// good should call Flush (via enginev1.Flush) and hand each returned
// address to its shard's Arena.Release, the same way the original's
// thread-local destructor would reclaim a dying thread's cache.
func (c *Cache) Flush(gid uint64) []uintptr {
	gb, ok := c.reg.load(gid)
	if !ok {
		return nil
	}
	c.reg.delete(gid)

	var resident []uintptr
	for i := range gb.bins {
		b := &gb.bins[i]
		for cur := b.top; cur != 0; {
			resident = append(resident, cur)
			next := chunk.ReadWord(chunk.PayloadOf(cur))
			cur = next
		}
		b.top = 0
		b.count = 0
	}
	return resident
}

// Stats is a snapshot of one Cache's activity, summed over every
// goroutine that has used it.
type Stats struct {
	Hits, Misses, Pushes, FallThroughs int64
}

// Stats returns a snapshot of the cache's hit/miss/push counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:         c.hits.Load(),
		Misses:       c.misses.Load(),
		Pushes:       c.pushes.Load(),
		FallThroughs: c.fallThroughs.Load(),
	}
}
