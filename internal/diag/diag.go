// Package diag implements the allocator's one-time initialization
// diagnostics: a goroutine-tagged log line, gated behind a package-level
// flag so a default build stays exactly as silent on the allocate/release
// hot path as the teacher's library. Both engines' init paths import this
// package directly (rather than the root galloc package, which imports
// them) to avoid an import cycle while still sharing one flag.
package diag

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/timandy/routine"
)

// Verbose gates Logf. Defaults to false.
var Verbose atomic.Bool

// Logf prints a goroutine-tagged diagnostic line to stderr, formatted
// "[g%04d] operation: message" — the same goroutine-id-tagged line shape
// the example pack's flier-goutil/internal/debug package uses. A no-op
// unless Verbose is set.
func Logf(operation, format string, args ...any) {
	if !Verbose.Load() {
		return
	}
	fmt.Fprintf(os.Stderr, "[g%04d] %s: %s\n", routine.Goid(), operation, fmt.Sprintf(format, args...))
}
