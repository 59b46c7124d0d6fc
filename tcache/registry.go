package tcache

import "sync"

// registry is a strongly-typed wrapper over sync.Map, used to hold each
// goroutine's bin set without a single global mutex serializing every
// goroutine's first touch.
type registry[K comparable, V any] struct {
	impl sync.Map
}

func (r *registry[K, V]) load(k K) (V, bool) {
	v, ok := r.impl.Load(k)
	if !ok {
		var zero V
		return zero, false
	}
	return v.(V), true //nolint:errcheck
}

// loadOrStore loads the existing value for k, or builds one with make and
// stores it. If two goroutines race to create the same key, make may run
// more than once but only one result is kept.
func (r *registry[K, V]) loadOrStore(k K, make func() V) V {
	if v, ok := r.load(k); ok {
		return v
	}
	actual, _ := r.impl.LoadOrStore(k, make())
	return actual.(V) //nolint:errcheck
}

// delete removes k's entry, if any. Used to forget a goroutine's bin set
// once Flush has returned its cached chunks to the arena.
func (r *registry[K, V]) delete(k K) {
	r.impl.Delete(k)
}
