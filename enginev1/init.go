package enginev1

import (
	"runtime"

	"go.uber.org/automaxprocs/maxprocs"
)

func init() {
	// automaxprocs only logs and adjusts GOMAXPROCS when running inside a
	// cgroup CPU quota; outside one it is a no-op. Errors are intentionally
	// discarded — a container-runtime detection failure should never
	// prevent the allocator from initializing, it just leaves
	// reportedHardwareContexts() reading whatever GOMAXPROCS already was.
	_, _ = maxprocs.Set()
}

// reportedHardwareContexts returns the number of hardware contexts this
// process has been told it can use. Go has no direct equivalent of
// std::thread::hardware_concurrency(); runtime.GOMAXPROCS(0) is the
// closest analogue once automaxprocs has reconciled it against any
// container CPU quota.
func reportedHardwareContexts() int {
	return runtime.GOMAXPROCS(0)
}
