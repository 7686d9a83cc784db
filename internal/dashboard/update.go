// internal/dashboard/update.go
package dashboard

import (
	"time"

	"github.com/tamzrod/statusboard/internal/status"
)

// UpdateKind says what changed.
type UpdateKind uint8

const (
	// UpdateFetch follows an applied fetch attempt.
	UpdateFetch UpdateKind = iota
	// UpdatePoll follows a live-poll toggle.
	UpdatePoll
)

func (k UpdateKind) String() string {
	if k == UpdatePoll {
		return "poll"
	}
	return "fetch"
}

// Update is delivered to listeners after every change.
type Update struct {
	Kind    UpdateKind
	State   status.State
	Live    bool
	Latency time.Duration // UpdateFetch only
	Err     error         // UpdateFetch only; never shown on the board
}

// Listener observes updates. Listeners run synchronously, in change order,
// and must not block or call back into the View.
type Listener func(Update)

// OnUpdate registers l for every later update.
func (v *View) OnUpdate(l Listener) {
	if l == nil {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.listeners = append(v.listeners, l)
}
