package enginev1

import (
	"sync"
	"sync/atomic"

	"github.com/pavanmanishd/galloc/arena"
	"github.com/pavanmanishd/galloc/internal/diag"
	"github.com/pavanmanishd/galloc/tcache"
)

// MaxArenas bounds how many independent arenas the dispatch will ever
// create, regardless of how many hardware contexts are reported.
const MaxArenas = 64

// DefaultArenaRegionSize is the reservation size for each arena: smaller
// than engine V0's single region, since V1 multiplies it by arena count.
const DefaultArenaRegionSize uintptr = 64 << 20

// ArenaRegionSize is the per-arena reservation size, overridable before
// the first Allocate/Release call.
var ArenaRegionSize uintptr = DefaultArenaRegionSize

type shard struct {
	arena *arena.Arena
	cache *tcache.Cache
}

// dispatch is the process-wide set of arenas and their caches, sized once
// from the reported hardware context count.
type dispatch struct {
	shards []shard
}

var (
	once    sync.Once
	global  *dispatch
	initErr error
	inited  atomic.Bool // true once once.Do has run, success or failure
)

func arenaCount() int {
	n := reportedHardwareContexts()
	if n < 1 {
		n = 1
	}
	if n > MaxArenas {
		n = MaxArenas
	}
	return n
}

func buildDispatch() (*dispatch, error) {
	n := arenaCount()
	diag.Logf("enginev1.init", "arena count chosen: %d (region=%d bytes each)", n, ArenaRegionSize)

	d := &dispatch{shards: make([]shard, n)}
	for i := 0; i < n; i++ {
		a, err := arena.New(ArenaRegionSize)
		if err != nil {
			diag.Logf("enginev1.init", "arena %d reservation failed: %v", i, err)
			for j := 0; j < i; j++ {
				_ = d.shards[j].arena.Close()
			}
			return nil, err
		}
		diag.Logf("enginev1.init", "arena %d ready: base=%#x", i, a.Base())
		d.shards[i] = shard{arena: a, cache: tcache.New()}
	}
	return d, nil
}

func ensure() *dispatch {
	once.Do(func() {
		global, initErr = buildDispatch()
		inited.Store(true)
	})
	return global
}

// wasEnsured reports whether ensure has already run, without triggering
// it. Used by Flush so a goroutine that never allocated under V1 doesn't
// force the whole dispatch (every shard's arena.New) into existence just
// to discover it has nothing to flush.
func wasEnsured() bool {
	return inited.Load()
}

// shardFor returns the shard the goroutine identified by gid is bound to.
// Binding is a pure function of gid modulo the arena count. The caller
// supplies gid (rather than this function calling routine.Goid() itself)
// so Allocate/Release can reuse the same lookup for the cache's own
// per-goroutine key instead of paying for it twice per call.
func shardFor(d *dispatch, gid uint64) *shard {
	idx := gid % uint64(len(d.shards))
	return &d.shards[idx]
}
