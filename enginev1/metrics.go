package enginev1

import (
	"sync"

	"github.com/pavanmanishd/galloc/arena"
	"github.com/pavanmanishd/galloc/tcache"
)

// ShardStats pairs one arena's snapshot with its thread cache's counters.
type ShardStats struct {
	Arena arena.Stats
	Cache tcache.Stats
}

// Stats returns a snapshot of every shard, in arena-index order. Returns
// nil if dispatch initialization failed.
func Stats() []ShardStats {
	d := ensure()
	if d == nil {
		return nil
	}
	out := make([]ShardStats, len(d.shards))
	for i := range d.shards {
		out[i] = ShardStats{
			Arena: d.shards[i].arena.Stats(),
			Cache: d.shards[i].cache.Stats(),
		}
	}
	return out
}

// ArenaCount returns the number of shards dispatch was sized to, 0 if
// initialization failed.
func ArenaCount() int {
	d := ensure()
	if d == nil {
		return 0
	}
	return len(d.shards)
}

// InitError returns the error from dispatch's one-time setup, if
// initialization failed.
func InitError() error {
	ensure()
	return initErr
}

func resetForTest() {
	once = sync.Once{}
	global = nil
	initErr = nil
	inited.Store(false)
}
