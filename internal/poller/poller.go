// internal/poller/poller.go
package poller

import (
	"context"
	"errors"
	"time"

	"github.com/tamzrod/statusboard/internal/status"
)

// Client abstracts the one call the poller needs.
type Client interface {
	Fetch(ctx context.Context) (status.Snapshot, error)
}

// Config is the minimal runtime config the poller needs.
type Config struct {
	Endpoint string // for logs only
	Interval time.Duration
}

// Poller is a dumb, clock-driven reader.
type Poller struct {
	cfg    Config
	client Client
	now    func() time.Time
}

// New creates a poller with immutable config.
func New(cfg Config, client Client) (*Poller, error) {
	if client == nil {
		return nil, errors.New("poller: client required")
	}
	if cfg.Interval <= 0 {
		return nil, errors.New("poller: interval must be > 0")
	}
	return &Poller{cfg: cfg, client: client, now: time.Now}, nil
}

// Endpoint returns the configured endpoint label.
func (p *Poller) Endpoint() string { return p.cfg.Endpoint }

// Interval returns the tick period.
func (p *Poller) Interval() time.Duration { return p.cfg.Interval }

// PollOnce performs exactly one fetch. No retries.
// All-or-nothing: any failure yields the down state.
func (p *Poller) PollOnce(ctx context.Context) Result {
	start := p.now()

	snap, err := p.client.Fetch(ctx)

	at := p.now()
	res := Result{At: at, Latency: at.Sub(start)}
	if err != nil {
		res.Err = err
		res.State = status.Down(at)
		return res
	}

	res.State = status.Up(snap, at)
	return res
}
