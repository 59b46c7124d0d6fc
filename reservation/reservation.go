// Package reservation acquires the large, process-provided virtual memory
// region an arena partitions into chunks. The mapping is anonymous,
// read/write, private, and backed by no file — acquired once at
// construction and never shrunk or unmapped during normal operation, per
// the allocator's resource policy.
package reservation

import (
	"fmt"
	"unsafe"
)

// Reservation is a single contiguous mapping. Base is stable for the
// lifetime of the reservation; the allocator never relocates it.
type Reservation struct {
	Base uintptr
	Size uintptr
	mem  []byte // keeps the mapping referenced; nil once Close has run
}

// New acquires a mapping of at least size bytes, rounded up to the page
// size. Returns an error if the underlying system call fails. That is the
// allocator's one initialization failure mode: arena.New passes the error
// on without building an arena, and the engine that asked for it records
// the error once and returns nil from every subsequent Allocate without
// retrying the mapping.
func New(size uintptr) (*Reservation, error) {
	size = alignUp(size, uintptr(PageSize))

	mem, err := newMapping(size)
	if err != nil {
		return nil, fmt.Errorf("reservation: map %d bytes: %w", size, err)
	}

	return &Reservation{
		Base: uintptr(unsafe.Pointer(unsafe.SliceData(mem))),
		Size: size,
		mem:  mem,
	}, nil
}

// End returns one past the reservation's last byte.
func (r *Reservation) End() uintptr {
	return r.Base + r.Size
}

// Close releases the mapping. The allocator itself never calls this during
// normal operation (spec: reservations are never unmapped mid-run); it
// exists so tests can tear down reservations between runs instead of
// accumulating mappings for the lifetime of the test binary.
func (r *Reservation) Close() error {
	if r.mem == nil {
		return nil
	}
	mem := r.mem
	r.mem = nil
	return closeMapping(mem)
}

func alignUp(n, align uintptr) uintptr {
	return (n + align - 1) &^ (align - 1)
}
