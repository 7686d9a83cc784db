// internal/sse/types.go

// Package sse streams board updates to browsers as Server-Sent Events.
package sse

import (
	"context"
)

// Event is one Server-Sent Event.
// Wire format: event: <Type>\nid: <ID>\ndata: <JSON>\n\n
type Event struct {
	Type  string `json:"type"`
	Data  any    `json:"data"`
	ID    string `json:"id,omitempty"`
	Retry int    `json:"retry,omitempty"` // milliseconds
}

// Event types.
const (
	// EventTypeHealthStatus carries the page model after each fetch.
	EventTypeHealthStatus = "health:status"
	// EventTypePollState carries the live flag after each toggle.
	EventTypePollState = "poll:state"

	eventTypeConnected = "connected"
)

// PollStateData is the payload of poll:state.
type PollStateData struct {
	Live      bool   `json:"live"`
	Poll      string `json:"poll"`
	Timestamp string `json:"timestamp"`
}

// Publisher sends events to every subscriber.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Subscriber hands out event streams.
// The returned channel is closed when the subscription ends.
type Subscriber interface {
	Subscribe(ctx context.Context, opts ...ClientOption) (<-chan Event, func())
}

// Broker fans published events out to subscribers.
type Broker interface {
	Publisher
	Subscriber
	// Start begins distributing events. It does not block.
	Start(ctx context.Context) error
	Stop() error
	ClientCount() int
}

// EventFilter returns true for events a client wants.
type EventFilter func(event Event) bool

// ClientOptions configures one subscription.
type ClientOptions struct {
	Filter     EventFilter
	BufferSize int
}
