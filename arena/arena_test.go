package arena

import (
	"testing"

	"github.com/pavanmanishd/galloc/chunk"
)

func newTestArena(t *testing.T, size uintptr) *Arena {
	t.Helper()
	a, err := New(size)
	if err != nil {
		t.Fatalf("New(%d) error: %v", size, err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestNewArenaEmpty(t *testing.T) {
	a := newTestArena(t, 1<<16)
	if a.Bump() != a.Base() {
		t.Errorf("fresh arena: Bump() = %#x, want Base() = %#x", a.Bump(), a.Base())
	}
	if a.Base()%16 != 8 {
		t.Errorf("Base() %#x must be ≡8 (mod 16) so payloads land on 16-byte boundaries", a.Base())
	}
}

func TestAllocateZeroReturnsNull(t *testing.T) {
	a := newTestArena(t, 1<<16)
	if p := a.Allocate(0); p != 0 {
		t.Errorf("Allocate(0) = %#x, want 0", p)
	}
}

func TestAllocateAlignmentAndSufficiency(t *testing.T) {
	a := newTestArena(t, 1<<16)
	for _, n := range []uintptr{1, 7, 8, 15, 16, 17, 100, 1000} {
		p := a.Allocate(n)
		if p == 0 {
			t.Fatalf("Allocate(%d) returned null unexpectedly", n)
		}
		if p%16 != 0 {
			t.Errorf("Allocate(%d) = %#x, not 16-byte aligned", n, p)
		}
		if usable := chunk.SizeOf(chunk.ChunkOf(p)) - chunk.WordSize; usable < chunk.AlignUp(n) {
			t.Errorf("Allocate(%d): chunk has %d usable bytes, want >= %d", n, usable, chunk.AlignUp(n))
		}
	}
}

func TestReleaseNullIsNoOp(t *testing.T) {
	a := newTestArena(t, 1<<16)
	before := a.Stats()
	a.Release(0)
	after := a.Stats()
	if before != after {
		t.Errorf("Release(0) changed state: before=%+v after=%+v", before, after)
	}
}

func TestRoundTripReturnsBumpToBase(t *testing.T) {
	a := newTestArena(t, 1<<16)
	base := a.Base()

	var ptrs []uintptr
	for _, n := range []uintptr{16, 32, 64, 128, 256, 512, 1024} {
		p := a.Allocate(n)
		if p == 0 {
			t.Fatalf("Allocate(%d) returned null", n)
		}
		ptrs = append(ptrs, p)
	}
	for _, p := range ptrs {
		a.Release(p)
	}

	if a.Bump() != base {
		t.Errorf("after releasing every allocation, Bump() = %#x, want base %#x", a.Bump(), base)
	}
	if a.Stats().FreeListLen != 0 {
		t.Errorf("after releasing every allocation, FreeListLen = %d, want 0", a.Stats().FreeListLen)
	}
}

func TestExhaustionThenFreeThenFit(t *testing.T) {
	a := newTestArena(t, 1<<16) // 64 KiB

	var ptrs []uintptr
	for {
		p := a.Allocate(1024)
		if p == 0 {
			break
		}
		ptrs = append(ptrs, p)
	}
	if len(ptrs) == 0 {
		t.Fatal("expected at least one successful allocation before exhaustion")
	}

	// Free a middle block, then a same-size allocation should succeed via
	// first-fit even though the arena is otherwise exhausted.
	mid := ptrs[len(ptrs)/2]
	a.Release(mid)

	if p := a.Allocate(1024); p == 0 {
		t.Error("expected allocation to succeed via first-fit after freeing a middle block")
	}
}
