// internal/sse/broker.go
package sse

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tamzrod/statusboard/internal/logger"
)

// ErrBufferFull is returned by Publish when the publish queue is full.
var ErrBufferFull = errors.New("sse: publish buffer full")

type broker struct {
	log logger.Logger

	mu      sync.RWMutex
	clients map[string]*client
	stopped bool

	publish chan Event

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	eventBufferSize  int
	clientBufferSize int
	shutdownTimeout  time.Duration
	maxClients       int
}

// NewBroker returns a broker that must be started before events flow.
func NewBroker(log logger.Logger, opts ...BrokerOption) Broker {
	if log == nil {
		log = logger.NewNop()
	}

	b := &broker{
		log:              log,
		clients:          make(map[string]*client),
		eventBufferSize:  DefaultEventBufferSize,
		clientBufferSize: DefaultClientBufferSize,
		shutdownTimeout:  DefaultShutdownTimeout,
		maxClients:       DefaultMaxClients,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.publish = make(chan Event, b.eventBufferSize)

	return b
}

func (b *broker) Start(ctx context.Context) error {
	b.mu.Lock()
	if b.cancel != nil {
		b.mu.Unlock()
		return errors.New("sse: broker already started")
	}
	b.ctx, b.cancel = context.WithCancel(ctx)
	b.mu.Unlock()

	b.wg.Add(1)
	go b.broadcastLoop()

	b.log.Info("SSE broker started",
		logger.Int("event_buffer_size", b.eventBufferSize),
		logger.Int("client_buffer_size", b.clientBufferSize),
		logger.Int("max_clients", b.maxClients),
	)
	return nil
}

func (b *broker) Stop() error {
	b.mu.Lock()
	b.stopped = true
	cancel := b.cancel
	b.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		b.log.Info("SSE broker stopped")
	case <-time.After(b.shutdownTimeout):
		b.log.Warn("SSE broker shutdown timeout exceeded")
	}
	return nil
}

// Publish never blocks on a full queue.
func (b *broker) Publish(ctx context.Context, event Event) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("publish %s: %w", event.Type, ctx.Err())
	default:
	}

	select {
	case b.publish <- event:
		return nil
	default:
		return fmt.Errorf("publish %s: %w", event.Type, ErrBufferFull)
	}
}

// Subscribe returns an already-closed channel when the broker is stopped
// or at capacity.
func (b *broker) Subscribe(ctx context.Context, opts ...ClientOption) (<-chan Event, func()) {
	o := ClientOptions{BufferSize: b.clientBufferSize}
	for _, opt := range opts {
		opt(&o)
	}

	b.mu.Lock()
	if b.stopped || (b.maxClients > 0 && len(b.clients) >= b.maxClients) {
		n := len(b.clients)
		b.mu.Unlock()

		b.log.Warn("SSE subscription rejected",
			logger.Int("current_clients", n),
			logger.Int("max_clients", b.maxClients),
		)
		closed := make(chan Event)
		close(closed)
		return closed, func() {}
	}

	c := newClient(ctx, o.BufferSize, o.Filter)
	b.clients[c.id] = c
	total := len(b.clients)
	b.wg.Add(1)
	b.mu.Unlock()

	b.log.Debug("SSE client subscribed",
		logger.String("client_id", c.id),
		logger.Int("total_clients", total),
	)

	go b.watchClient(c)

	return c.events, func() { b.removeClient(c.id) }
}

func (b *broker) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

func (b *broker) broadcastLoop() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.publish:
			b.broadcast(event)
		case <-b.ctx.Done():
			b.disconnectAll()
			return
		}
	}
}

func (b *broker) broadcast(event Event) {
	b.mu.RLock()
	clients := make([]*client, 0, len(b.clients))
	for _, c := range b.clients {
		clients = append(clients, c)
	}
	b.mu.RUnlock()

	var slow []string
	for _, c := range clients {
		if !c.send(event) {
			slow = append(slow, c.id)
		}
	}

	// slow clients are dropped; the browser reconnects
	for _, id := range slow {
		b.log.Warn("SSE client buffer full, closing",
			logger.String("client_id", id),
			logger.String("event_type", event.Type),
		)
		b.removeClient(id)
	}

	b.log.Debug("SSE event broadcast",
		logger.String("event_type", event.Type),
		logger.Int("sent", len(clients)-len(slow)),
		logger.Int("dropped", len(slow)),
	)
}

func (b *broker) watchClient(c *client) {
	defer b.wg.Done()
	<-c.ctx.Done()
	b.removeClient(c.id)
}

func (b *broker) removeClient(id string) {
	b.mu.Lock()
	c, ok := b.clients[id]
	if ok {
		delete(b.clients, id)
	}
	total := len(b.clients)
	b.mu.Unlock()

	if !ok {
		return
	}
	c.close()

	b.log.Debug("SSE client disconnected",
		logger.String("client_id", id),
		logger.Int("total_clients", total),
	)
}

func (b *broker) disconnectAll() {
	b.mu.Lock()
	clients := b.clients
	b.clients = make(map[string]*client)
	b.mu.Unlock()

	for _, c := range clients {
		c.close()
	}

	b.log.Info("SSE clients disconnected", logger.Int("count", len(clients)))
}
