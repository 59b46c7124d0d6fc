package enginev1

import (
	"testing"
	"unsafe"
)

func resetWithRegion(t *testing.T, size uintptr) {
	t.Helper()
	resetForTest()
	ArenaRegionSize = size
	t.Cleanup(func() {
		resetForTest()
		ArenaRegionSize = DefaultArenaRegionSize
	})
}

func TestAllocateReturnsUsableMemory(t *testing.T) {
	resetWithRegion(t, 1<<20)

	p := Allocate(64)
	if p == nil {
		t.Fatal("Allocate returned nil")
	}
	b := unsafe.Slice((*byte)(p), 64)
	for i := range b {
		b[i] = 0xCD
	}
	for i, v := range b {
		if v != 0xCD {
			t.Fatalf("byte %d = %#x, want 0xcd", i, v)
		}
	}
}

func TestAllocateZeroReturnsNil(t *testing.T) {
	resetWithRegion(t, 1<<20)
	if p := Allocate(0); p != nil {
		t.Error("Allocate(0) should return nil")
	}
}

func TestReleaseNilIsNoOp(t *testing.T) {
	resetWithRegion(t, 1<<20)
	Release(nil)
}

func TestAllocateReleaseRoundTripHitsCache(t *testing.T) {
	resetWithRegion(t, 1<<20)

	p1 := Allocate(32)
	Release(p1)
	p2 := Allocate(32)

	if p1 != p2 {
		t.Errorf("expected cache to hand back the same block: p1=%p p2=%p", p1, p2)
	}

	stats := Stats()
	var hits int64
	for _, s := range stats {
		hits += s.Cache.Hits
	}
	if hits == 0 {
		t.Error("expected at least one cache hit across shards")
	}
}

func TestArenaCountIsBoundedByMaxArenas(t *testing.T) {
	resetWithRegion(t, 1<<20)
	n := ArenaCount()
	if n < 1 || n > MaxArenas {
		t.Errorf("ArenaCount() = %d, want in [1, %d]", n, MaxArenas)
	}
}

func TestFlushBeforeAnyAllocateDoesNotForceInit(t *testing.T) {
	resetWithRegion(t, 1<<20)

	Flush()

	if wasEnsured() {
		t.Error("Flush on a goroutine that never allocated under V1 should not have forced dispatch initialization")
	}
}

func TestFlushReturnsCachedChunksToArena(t *testing.T) {
	resetWithRegion(t, 1<<20)

	p := Allocate(32)
	Release(p) // lands in this goroutine's tcache, not the arena free list

	var pushesBefore int64
	for _, s := range Stats() {
		pushesBefore += s.Cache.Pushes
	}
	if pushesBefore == 0 {
		t.Fatal("setup: expected the release to have been cached")
	}

	var shard int
	for i, s := range Stats() {
		if s.Cache.Pushes > 0 {
			shard = i
		}
	}
	before := Stats()[shard]
	if before.Arena.Bump == before.Arena.Base {
		t.Fatal("setup: the cached block should still be holding the frontier open before Flush")
	}

	Flush()

	after := Stats()[shard]
	if after.Arena.Bump != after.Arena.Base {
		t.Errorf("after Flush, shard %d Bump = %#x, want it retracted to Base = %#x", shard, after.Arena.Bump, after.Arena.Base)
	}
	if after.Cache.Hits != before.Cache.Hits {
		t.Error("Flush should not itself count as a cache hit")
	}

	p2 := Allocate(32)
	if p2 == nil {
		t.Fatal("Allocate after Flush returned nil")
	}
}

func TestLargeAllocationBypassesCache(t *testing.T) {
	resetWithRegion(t, 4<<20)

	p := Allocate(4096)
	if p == nil {
		t.Fatal("Allocate returned nil")
	}
	Release(p)

	stats := Stats()
	var pushes int64
	for _, s := range stats {
		pushes += s.Cache.Pushes
	}
	if pushes != 0 {
		t.Errorf("expected no cache pushes for an uncacheable size, got %d", pushes)
	}
}
