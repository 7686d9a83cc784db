// internal/sse/options.go
package sse

import "time"

// Defaults.
const (
	DefaultEventBufferSize   = 256
	DefaultClientBufferSize  = 32
	DefaultHeartbeatInterval = 15 * time.Second
	DefaultShutdownTimeout   = 5 * time.Second
	DefaultMaxClients        = 256
)

// BrokerOption configures a broker.
type BrokerOption func(*broker)

// WithEventBufferSize sets the publish queue size.
func WithEventBufferSize(size int) BrokerOption {
	return func(b *broker) {
		if size > 0 {
			b.eventBufferSize = size
		}
	}
}

// WithClientBufferSize sets the default per-client queue size.
func WithClientBufferSize(size int) BrokerOption {
	return func(b *broker) {
		if size > 0 {
			b.clientBufferSize = size
		}
	}
}

// WithShutdownTimeout bounds Stop.
func WithShutdownTimeout(timeout time.Duration) BrokerOption {
	return func(b *broker) {
		if timeout > 0 {
			b.shutdownTimeout = timeout
		}
	}
}

// WithMaxClients caps concurrent subscribers. Zero means unlimited.
func WithMaxClients(n int) BrokerOption {
	return func(b *broker) {
		if n >= 0 {
			b.maxClients = n
		}
	}
}

// ClientOption configures a subscription.
type ClientOption func(*ClientOptions)

// WithFilter installs an event filter.
func WithFilter(filter EventFilter) ClientOption {
	return func(o *ClientOptions) {
		o.Filter = filter
	}
}

// WithBufferSize overrides the client queue size.
func WithBufferSize(size int) ClientOption {
	return func(o *ClientOptions) {
		if size > 0 {
			o.BufferSize = size
		}
	}
}

// WithTypes only passes events of the given types.
func WithTypes(types ...string) ClientOption {
	allowed := make(map[string]struct{}, len(types))
	for _, t := range types {
		allowed[t] = struct{}{}
	}
	return WithFilter(func(e Event) bool {
		_, ok := allowed[e.Type]
		return ok
	})
}
