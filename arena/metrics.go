package arena

import "github.com/pavanmanishd/galloc/chunk"

// Stats is a read-only snapshot of one arena's state, generalizing the
// bump-allocator's SizeInUse/Capacity/Utilization accessors to the
// free-list domain.
type Stats struct {
	Base, Bump, End uintptr
	BytesInUse      uintptr
	FreeListLen     int
	FreeBytes       uintptr
}

// Stats takes a point-in-time snapshot of the arena.
func (a *Arena) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()

	var freeBytes uintptr
	n := 0
	a.free.Each(func(hdr uintptr) {
		n++
		freeBytes += chunk.SizeOf(hdr)
	})

	return Stats{
		Base:        a.base,
		Bump:        a.bump,
		End:         a.end,
		BytesInUse:  (a.bump - a.base) - freeBytes,
		FreeListLen: n,
		FreeBytes:   freeBytes,
	}
}

// Capacity returns End-Base: the reserved size in bytes less the one word
// skipped in front of the first chunk header.
func (a *Arena) Capacity() uintptr {
	return a.end - a.base
}

// Utilization returns BytesInUse / (End-Base), the chunk-addressable
// capacity this snapshot was taken against, 0 if that is 0.
func (s Stats) Utilization() float64 {
	capacity := s.End - s.Base
	if capacity == 0 {
		return 0
	}
	return float64(s.BytesInUse) / float64(capacity)
}
