// Package galloc implements a general-purpose heap allocator with two
// selectable engines.
//
// # Overview
//
// Engine V0 is a single global arena behind one mutex: a boundary-tagged
// free list, first-fit placement, splitting, and bidirectional coalescing.
// Engine V1 partitions the heap into several independent arenas — one per
// reported hardware context, up to a fixed cap — and fronts each with a
// per-goroutine small-object cache, trading V0's single lock contention
// point for parallelism at the cost of cross-arena fragmentation.
//
// # Basic Usage
//
//	p := galloc.Allocate(128)
//	defer galloc.Release(p)
//
//	b := unsafe.Slice((*byte)(p), 128)
//	b[0] = 1
//
// # Engine Selection
//
// V1 is the default. Call UseEngine before the first Allocate to switch:
//
//	galloc.UseEngine(galloc.V0)
//	p := galloc.Allocate(128)
//
// # Thread Safety
//
// Both engines are safe for concurrent use from multiple goroutines.
package galloc
