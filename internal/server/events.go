// internal/server/events.go
package server

import (
	"context"
	"strconv"
	"time"

	"github.com/tamzrod/statusboard/internal/dashboard"
	"github.com/tamzrod/statusboard/internal/logger"
	"github.com/tamzrod/statusboard/internal/sse"
	"github.com/tamzrod/statusboard/internal/status"
)

// EventFor maps a view update to its SSE event.
func EventFor(u dashboard.Update, now time.Time) sse.Event {
	if u.Kind == dashboard.UpdatePoll {
		return pollEvent(u.Live, now)
	}
	return healthEvent(u.State, u.Live, now)
}

func healthEvent(st status.State, live bool, now time.Time) sse.Event {
	return sse.Event{
		Type: sse.EventTypeHealthStatus,
		ID:   strconv.FormatUint(st.Seq, 10),
		Data: dashboard.BuildPage(st, live, now),
	}
}

func pollEvent(live bool, now time.Time) sse.Event {
	poll := dashboard.PollIdle
	if live {
		poll = dashboard.PollLive
	}
	return sse.Event{
		Type: sse.EventTypePollState,
		Data: sse.PollStateData{
			Live:      live,
			Poll:      poll.String(),
			Timestamp: status.FormatTimestamp(now),
		},
	}
}

// PublishUpdates returns a listener that forwards updates to p.
// Publish failures are logged and dropped.
func PublishUpdates(p sse.Publisher, log logger.Logger) dashboard.Listener {
	return func(u dashboard.Update) {
		ev := EventFor(u, time.Now())
		if err := p.Publish(context.Background(), ev); err != nil {
			log.Warn("SSE publish failed",
				logger.Error(err),
				logger.String("event_type", ev.Type),
			)
		}
	}
}

// initialEvents brings a new subscriber up to date.
func initialEvents(b Board) func() []sse.Event {
	return func() []sse.Event {
		now := time.Now()
		p := b.Page()
		return []sse.Event{
			healthEvent(p.State, p.Live, now),
			pollEvent(p.Live, now),
		}
	}
}
