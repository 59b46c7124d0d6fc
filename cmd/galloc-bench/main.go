// Command galloc-bench drives the selected engine through an S1-style
// churn workload (allocate a run of blocks across the size classes, then
// release them in allocation order) on several goroutines, then prints
// per-arena stats so the engines' behavior can be eyeballed outside of
// `go test`.
package main

import (
	"flag"
	"fmt"
	"sync"
	"unsafe"

	"github.com/pavanmanishd/galloc"
	"github.com/pavanmanishd/galloc/enginev0"
	"github.com/pavanmanishd/galloc/enginev1"
)

func main() {
	engine := flag.String("engine", "v1", "engine to drive: v0 or v1")
	workers := flag.Int("workers", 4, "goroutines for the churn workload")
	blocks := flag.Int("blocks", 100_000, "blocks to allocate per worker")
	flag.Parse()

	switch *engine {
	case "v0":
		galloc.UseEngine(galloc.V0)
	case "v1":
		galloc.UseEngine(galloc.V1)
	default:
		fmt.Printf("unknown engine %q, want v0 or v1\n", *engine)
		return
	}

	var wg sync.WaitGroup
	wg.Add(*workers)
	for w := 0; w < *workers; w++ {
		go func() {
			defer wg.Done()
			churn(*blocks)
		}()
	}
	wg.Wait()

	printStats(*engine)
}

var sizeClasses = []uintptr{16, 32, 64, 128, 256, 512, 1024}

func churn(n int) {
	ptrs := make([]unsafe.Pointer, n)
	for i := 0; i < n; i++ {
		ptrs[i] = galloc.Allocate(sizeClasses[i%len(sizeClasses)])
	}
	for _, p := range ptrs {
		galloc.Release(p)
	}
}

func printStats(engine string) {
	if engine == "v0" {
		s := enginev0.Stats()
		fmt.Printf("base=%#x bump=%#x end=%#x bytesInUse=%d freeListLen=%d\n",
			s.Base, s.Bump, s.End, s.BytesInUse, s.FreeListLen)
		return
	}
	for i, shard := range enginev1.Stats() {
		fmt.Printf("arena[%d] base=%#x bump=%#x bytesInUse=%d freeListLen=%d cacheHits=%d cacheMisses=%d\n",
			i, shard.Arena.Base, shard.Arena.Bump, shard.Arena.BytesInUse, shard.Arena.FreeListLen,
			shard.Cache.Hits, shard.Cache.Misses)
	}
}
