package arena

import "github.com/pavanmanishd/galloc/chunk"

// Allocate returns the payload address of a chunk with at least n usable
// bytes, or 0 if n is 0 or no chunk can be produced. Placement is
// first-fit: the free list is searched from its head (LIFO order, so the
// most recently freed chunk is tried first) before the bump frontier is
// carved.
func (a *Arena) Allocate(n uintptr) uintptr {
	if n == 0 {
		return 0
	}

	need := chunk.NeedFor(n)

	a.mu.Lock()
	defer a.mu.Unlock()

	if hdr, ok := a.free.FirstFit(need); ok {
		a.free.Remove(hdr)
		a.placeInFreeChunk(hdr, need)
		return chunk.PayloadOf(hdr)
	}

	hdr, ok := a.carveFromTop(need)
	if !ok {
		return 0
	}
	return chunk.PayloadOf(hdr)
}

// placeInFreeChunk carves need bytes out of the free chunk at hdr (already
// unlinked from the free list) per the split policy: if the remainder
// would itself be a legal free chunk, split and relink the remainder;
// otherwise hand out the whole chunk.
func (a *Arena) placeInFreeChunk(hdr uintptr, need uintptr) {
	total := chunk.SizeOf(hdr)

	if total >= need+chunk.MinSize {
		remSize := total - need
		remHdr := hdr + need

		chunk.WriteHeaderPreservingPrev(hdr, need, false)
		chunk.WriteHeader(remHdr, remSize, true, true)
		chunk.WriteFooter(remHdr, remSize)
		a.free.PushFront(remHdr)
		return
	}

	chunk.WriteHeaderPreservingPrev(hdr, total, false)
	succ := hdr + total
	if succ < a.bump {
		chunk.SetPrevInUse(succ, true)
	}
}

// carveFromTop extends the bump frontier by need bytes and returns the
// header address of the newly explored chunk. The chunk's PREV-IN-USE bit
// is always 1: the frontier invariant guarantees the chunk immediately
// below the frontier is always in-use (or there is none), so there is
// never a free neighbor to its left.
func (a *Arena) carveFromTop(need uintptr) (hdrAddr uintptr, ok bool) {
	hdr := a.bump
	if hdr+need > a.end {
		return 0, false
	}
	chunk.WriteHeader(hdr, need, false, true)
	a.bump = hdr + need
	return hdr, true
}

// Release returns the chunk at payloadAddr to the arena: marks it free,
// coalesces with any free neighbor to either side, and retracts the bump
// frontier if the (possibly merged) chunk now ends exactly at it.
// Release(0) is a no-op.
func (a *Arena) Release(payloadAddr uintptr) {
	if payloadAddr == 0 {
		return
	}
	hdr := chunk.ChunkOf(payloadAddr)

	a.mu.Lock()
	defer a.mu.Unlock()

	if hdr < a.base || hdr >= a.bump {
		// Either an address from a different arena's reservation (V1's
		// documented cross-arena free: this block is effectively leaked
		// rather than reclaimed) or invalid input, which spec.md leaves
		// undefined. Either way, touching bytes outside this arena's own
		// [base, bump) would read or write another allocator's boundary
		// tags, so this is the one case Release refuses rather than acts
		// on.
		return
	}

	size := chunk.SizeOf(hdr)
	prevInUse := chunk.PrevInUse(hdr)
	chunk.WriteHeaderPreservingPrev(hdr, size, true)
	chunk.WriteFooter(hdr, size)

	if succ := hdr + size; succ < a.bump && chunk.IsFree(succ) {
		succSize := chunk.SizeOf(succ)
		a.free.Remove(succ)
		size += succSize
		chunk.WriteHeaderPreservingPrev(hdr, size, true)
		chunk.WriteFooter(hdr, size)
	}

	if !prevInUse {
		if prevHdr, ok := chunk.PrevIfFree(hdr); ok {
			a.free.Remove(prevHdr)
			prevInUse = chunk.PrevInUse(prevHdr)
			size += chunk.SizeOf(prevHdr)
			hdr = prevHdr
			chunk.WriteHeaderPreservingPrev(hdr, size, true)
			chunk.WriteFooter(hdr, size)
		}
	}

	if hdr+size == a.bump {
		// Frontier retraction: give the bytes back to the unexplored
		// region instead of linking them. Must run before the successor's
		// PREV-IN-USE bit would otherwise be cleared below — there is no
		// successor left to update once this fires.
		a.bump = hdr
		return
	}

	if succ := hdr + size; succ < a.bump {
		chunk.SetPrevInUse(succ, false)
	}
	a.free.PushFront(hdr)
}
