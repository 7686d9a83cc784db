// internal/dashboard/poll.go
package dashboard

import (
	"time"

	"github.com/tamzrod/statusboard/internal/logger"
)

// PollState is the state of the live-poll machine.
type PollState uint8

const (
	PollIdle PollState = iota
	PollLive
)

func (s PollState) String() string {
	if s == PollLive {
		return "live"
	}
	return "idle"
}

// liveTimer is the recurring tick resource held while live.
type liveTimer struct {
	stop chan struct{}
}

func (t *liveTimer) release() {
	close(t.stop)
}

// SetLive moves the machine to live (on) or idle (off).
// Entering live acquires a ticker; leaving live releases it. A fetch already
// dispatched keeps running and is applied. Reports whether the state changed.
func (v *View) SetLive(on bool) bool {
	v.mu.Lock()
	if v.closed || (v.timer != nil) == on {
		v.mu.Unlock()
		return false
	}

	if on {
		v.timer = v.startTimer()
	} else {
		v.timer.release()
		v.timer = nil
	}

	st := v.state
	listeners := v.listeners

	v.notifyMu.Lock()
	v.mu.Unlock()
	defer v.notifyMu.Unlock()

	v.log.Info("Live poll toggled",
		logger.Bool("live", on),
		logger.Duration("interval", v.interval),
	)

	u := Update{Kind: UpdatePoll, State: st, Live: on}
	for _, l := range listeners {
		l(u)
	}
	return true
}

// ToggleLive flips the polling state and returns the new one.
func (v *View) ToggleLive() bool {
	for {
		cur := v.Live()
		if v.SetLive(!cur) {
			return !cur
		}
		// Lost a race with another toggle, or closed.
		v.mu.RLock()
		closed := v.closed
		v.mu.RUnlock()
		if closed {
			return v.Live()
		}
	}
}

// startTimer must be called with v.mu held.
func (v *View) startTimer() *liveTimer {
	t := &liveTimer{stop: make(chan struct{})}

	v.wg.Add(1)
	go func() {
		defer v.wg.Done()

		ticker := time.NewTicker(v.interval)
		defer ticker.Stop()

		for {
			select {
			case <-t.stop:
				return
			case <-v.ctx.Done():
				return
			case <-ticker.C:
				v.tick(t)
			}
		}
	}()

	return t
}

// tick dispatches a fetch only if t is still the active timer.
// A tick racing with SetLive(false) or Close is dropped.
func (v *View) tick(t *liveTimer) {
	v.mu.RLock()
	current := v.timer == t && !v.closed
	v.mu.RUnlock()

	if current {
		v.dispatch("timer")
	}
}
