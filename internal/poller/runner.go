// internal/poller/runner.go
package poller

import (
	"context"
	"time"
)

// Run starts the ticker loop and emits one Result per tick on out.
// No overlap: the next tick waits for the current fetch.
// Returns when ctx is done; a result produced after that is dropped.
func (p *Poller) Run(ctx context.Context, out chan<- Result) {
	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			res := p.PollOnce(ctx)
			select {
			case out <- res:
			case <-ctx.Done():
				return
			}
		}
	}
}
