// internal/writer/exporter.go
package writer

import (
	"context"
	"sync"

	"github.com/tamzrod/statusboard/internal/dashboard"
	"github.com/tamzrod/statusboard/internal/logger"
)

// Exporter feeds view updates to a StatusWriter off the notify path.
// Only the newest pending update is kept; older ones are superseded.
type Exporter struct {
	sw    StatusWriter
	log   logger.Logger
	close func() error

	mu      sync.Mutex
	pending *dashboard.Update
	wake    chan struct{}
}

// NewExporter wraps sw. closeFn may be nil.
func NewExporter(sw StatusWriter, log logger.Logger, closeFn func() error) *Exporter {
	if log == nil {
		log = logger.NewNop()
	}
	return &Exporter{
		sw:    sw,
		log:   log,
		close: closeFn,
		wake:  make(chan struct{}, 1),
	}
}

// Observe is a dashboard.Listener. It never blocks.
func (e *Exporter) Observe(u dashboard.Update) {
	e.mu.Lock()
	e.pending = &u
	e.mu.Unlock()

	select {
	case e.wake <- struct{}{}:
	default:
	}
}

// Run writes pending updates until ctx is done.
func (e *Exporter) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-e.wake:
			e.flush()
		}
	}
}

func (e *Exporter) flush() {
	e.mu.Lock()
	u := e.pending
	e.pending = nil
	e.mu.Unlock()

	if u == nil {
		return
	}

	// failures never reach the view; the next write re-asserts the block
	if err := e.sw.WriteStatus(u.State, u.Live); err != nil {
		e.log.Warn("Status export failed",
			logger.Error(err),
			logger.Uint64("seq", u.State.Seq),
		)
		return
	}

	e.log.Debug("Status exported", logger.Uint64("seq", u.State.Seq))
}

// Close releases the underlying client.
func (e *Exporter) Close() error {
	if e.close == nil {
		return nil
	}
	return e.close()
}
