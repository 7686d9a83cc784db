// internal/sse/client.go
package sse

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type client struct {
	id     string
	events chan Event
	filter EventFilter
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
}

func newClient(ctx context.Context, bufferSize int, filter EventFilter) *client {
	cctx, cancel := context.WithCancel(ctx)

	return &client{
		id:     uuid.NewString(),
		events: make(chan Event, bufferSize),
		filter: filter,
		ctx:    cctx,
		cancel: cancel,
	}
}

// close is idempotent.
func (c *client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.cancel()
	close(c.events)
}

// send reports false when the client is closed or its buffer is full.
// A filtered-out event counts as delivered.
func (c *client) send(event Event) bool {
	if c.filter != nil && !c.filter(event) {
		return true
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}

	select {
	case c.events <- event:
		return true
	default:
		return false
	}
}
