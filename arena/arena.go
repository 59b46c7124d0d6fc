// Package arena implements the allocator's arena: a single contiguous
// virtual-memory reservation, a bump frontier demarcating explored from
// unexplored bytes, a boundary-tagged free list, and the placement engine
// (first-fit search, split, bidirectional coalesce, frontier retraction)
// that allocates and releases chunks within it.
//
// An Arena is safe for concurrent use: every exported method that reads or
// changes the bump frontier or the free list holds the arena's own mutex
// for its duration. End and Capacity read only the fixed end address, and
// Close takes no lock.
package arena

import (
	"sync"

	"github.com/pavanmanishd/galloc/chunk"
	"github.com/pavanmanishd/galloc/freelist"
	"github.com/pavanmanishd/galloc/reservation"
)

// DefaultRegionSize is the reservation size used when the caller asks for
// the zero value — 1 GiB, matching engine V0's single global arena.
const DefaultRegionSize uintptr = 1 << 30

// Arena owns one reservation and partitions it into chunks on demand.
type Arena struct {
	mu   sync.Mutex
	res  *reservation.Reservation
	base uintptr // header address of the arena's first chunk
	bump uintptr // first unexplored byte; grows forward only
	end  uintptr // one past the reservation's last byte
	free freelist.List
}

// New reserves regionSize bytes (DefaultRegionSize if 0) and returns an
// empty arena over it. The first chunk header is placed 8 bytes into the
// reservation rather than at its (page-aligned) base, so that header
// addresses run ≡8 (mod 16) throughout the arena and payload addresses —
// header + 8 — land on 16-byte boundaries, per the allocator's binary
// layout contract.
func New(regionSize uintptr) (*Arena, error) {
	if regionSize == 0 {
		regionSize = DefaultRegionSize
	}
	res, err := reservation.New(regionSize)
	if err != nil {
		return nil, err
	}
	base := res.Base + chunk.WordSize
	return &Arena{
		res:  res,
		base: base,
		bump: base,
		end:  res.End(),
	}, nil
}

// Close releases the arena's reservation. Not part of normal operation —
// the allocator never unmaps mid-run — but used by tests that create many
// short-lived arenas and want to avoid exhausting address space.
func (a *Arena) Close() error {
	return a.res.Close()
}

// Base returns the header address of the arena's first chunk.
func (a *Arena) Base() uintptr {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.base
}

// Bump returns the current frontier: the first unexplored byte.
func (a *Arena) Bump() uintptr {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.bump
}

// End returns one past the arena's last reserved byte.
func (a *Arena) End() uintptr {
	return a.end
}
