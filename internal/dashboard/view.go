// internal/dashboard/view.go

// Package dashboard holds the single view of the status board: the current
// state, manual refresh and the live-poll timer.
package dashboard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/tamzrod/statusboard/internal/logger"
	"github.com/tamzrod/statusboard/internal/poller"
	"github.com/tamzrod/statusboard/internal/status"
)

// DefaultInterval is the live-poll period.
const DefaultInterval = 10 * time.Second

// ErrClosed is returned by FetchHealth after Close.
var ErrClosed = errors.New("dashboard: view closed")

// Source performs one fetch attempt.
type Source interface {
	PollOnce(ctx context.Context) poller.Result
}

// Option configures a View.
type Option func(*View)

// WithInterval sets the live-poll period.
func WithInterval(d time.Duration) Option {
	return func(v *View) {
		if d > 0 {
			v.interval = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(v *View) {
		if l != nil {
			v.log = l
		}
	}
}

// View owns the board state. All methods are safe for concurrent use.
type View struct {
	src      Source
	log      logger.Logger
	interval time.Duration

	// lifetime of the view; cancelled by Close
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mountOnce sync.Once

	mu        sync.RWMutex
	state     status.State
	seq       uint64
	timer     *liveTimer // nil while idle
	closed    bool
	listeners []Listener

	// notifyMu keeps listener calls in the same order as state changes.
	notifyMu sync.Mutex
}

// New creates an unmounted view showing the initial state.
func New(src Source, opts ...Option) *View {
	ctx, cancel := context.WithCancel(context.Background())

	v := &View{
		src:      src,
		log:      logger.NewNop(),
		interval: DefaultInterval,
		ctx:      ctx,
		cancel:   cancel,
		state:    status.InitialState(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Mount issues the initial fetch. Only the first call has an effect.
// The fetch happens whatever the polling state is.
func (v *View) Mount() {
	v.mountOnce.Do(func() {
		v.log.Debug("View mounted", logger.Duration("interval", v.interval))
		v.dispatch("mount")
	})
}

// State returns the current state.
func (v *View) State() status.State {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

// Live reports whether live polling is on.
func (v *View) Live() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.timer != nil
}

// PollState returns the state of the polling machine.
func (v *View) PollState() PollState {
	if v.Live() {
		return PollLive
	}
	return PollIdle
}

// Interval returns the live-poll period.
func (v *View) Interval() time.Duration {
	return v.interval
}

// Page builds the presentation model from one consistent read.
func (v *View) Page() Page {
	v.mu.RLock()
	st, live := v.state, v.timer != nil
	v.mu.RUnlock()

	return BuildPage(st, live, time.Now())
}

// Refresh dispatches one fetch and returns immediately.
func (v *View) Refresh() {
	v.dispatch("manual")
}

// FetchHealth runs one fetch and waits for its result to be applied.
// ctx only bounds the wait: the fetch itself belongs to the view and is
// applied even if ctx ends first.
func (v *View) FetchHealth(ctx context.Context) (status.State, error) {
	applied := v.dispatch("manual")
	if applied == nil {
		return v.State(), ErrClosed
	}

	select {
	case st, ok := <-applied:
		if !ok {
			return v.State(), ErrClosed
		}
		return st, nil
	case <-ctx.Done():
		return v.State(), ctx.Err()
	}
}

// Close unmounts the view: the live timer is released, fetches still in
// flight are cancelled and discarded, and no fetch is issued afterwards.
// Close blocks until every goroutine owned by the view has returned.
func (v *View) Close() {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.closed = true
	if v.timer != nil {
		v.timer.release()
		v.timer = nil
	}
	v.mu.Unlock()

	v.cancel()
	v.wg.Wait()
	v.log.Debug("View closed")
}

// dispatch starts one fetch in its own goroutine.
// It returns a channel that receives the applied state, or nil when closed.
func (v *View) dispatch(trigger string) <-chan status.State {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return nil
	}
	// Add under the lock so Close cannot be waiting yet.
	v.wg.Add(1)
	v.mu.Unlock()

	applied := make(chan status.State, 1)

	go func() {
		defer v.wg.Done()

		res := v.src.PollOnce(v.ctx)
		if st, ok := v.apply(res, trigger); ok {
			applied <- st
		}
		close(applied)
	}()

	return applied
}

// apply replaces the state with the result of one attempt.
// Results land in completion order: the last one to finish wins.
func (v *View) apply(res poller.Result, trigger string) (status.State, bool) {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return status.State{}, false
	}

	v.seq++
	st := res.State
	st.Seq = v.seq
	v.state = st

	live := v.timer != nil
	listeners := v.listeners

	v.notifyMu.Lock()
	v.mu.Unlock()
	defer v.notifyMu.Unlock()

	if res.Err != nil {
		v.log.Warn("Health fetch failed",
			logger.String("trigger", trigger),
			logger.Duration("latency", res.Latency),
			logger.Error(res.Err),
		)
	} else {
		v.log.Debug("Health fetch applied",
			logger.String("trigger", trigger),
			logger.Uint64("seq", st.Seq),
			logger.Duration("latency", res.Latency),
		)
	}

	u := Update{
		Kind:    UpdateFetch,
		State:   st,
		Live:    live,
		Latency: res.Latency,
		Err:     res.Err,
	}
	for _, l := range listeners {
		l(u)
	}

	return st, true
}
