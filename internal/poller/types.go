// internal/poller/types.go
package poller

import (
	"time"

	"github.com/tamzrod/statusboard/internal/status"
)

// Result is produced by one poll cycle.
// State is already resolved: on failure it is the down state, never partial.
type Result struct {
	At      time.Time
	Latency time.Duration
	State   status.State
	Err     error // non-nil means the fetch failed
}
