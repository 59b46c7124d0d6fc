package benchmarks

import (
	"strconv"
	"testing"
	"unsafe"

	"github.com/pavanmanishd/galloc"
)

// BenchmarkAllocationSizes measures Allocate/Release cost across the
// allocator's cacheable and uncacheable size classes, under both engines.
func BenchmarkAllocationSizes(b *testing.B) {
	sizes := []uintptr{16, 64, 256, 1024, 4096, 65536}

	for _, engine := range []struct {
		name string
		e    galloc.Engine
	}{{"V0", galloc.V0}, {"V1", galloc.V1}} {
		b.Run(engine.name, func(b *testing.B) {
			galloc.UseEngine(engine.e)
			for _, size := range sizes {
				b.Run(strconv.FormatUint(uint64(size), 10)+"B", func(b *testing.B) {
					b.ResetTimer()
					for i := 0; i < b.N; i++ {
						p := galloc.Allocate(size)
						galloc.Release(p)
					}
				})
			}
		})
	}
}

// BenchmarkFixedPoolChurn allocates a working set once, then repeatedly
// releases and reallocates the same slots — the common case for a thread
// cache or free-list hit.
func BenchmarkFixedPoolChurn(b *testing.B) {
	galloc.UseEngine(galloc.V1)

	const pool = 256
	ptrs := make([]unsafe.Pointer, pool)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		idx := i % pool
		if ptrs[idx] != nil {
			galloc.Release(ptrs[idx])
		}
		ptrs[idx] = galloc.Allocate(64)
	}
}
