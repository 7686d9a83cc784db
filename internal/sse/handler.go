// internal/sse/handler.go
package sse

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tamzrod/statusboard/internal/logger"
)

const sseContentType = "text/event-stream"

// HandlerOption configures Handler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	heartbeat time.Duration
	initial   func() []Event
	client    []ClientOption
}

// WithHeartbeat sets the keep-alive comment interval.
func WithHeartbeat(d time.Duration) HandlerOption {
	return func(c *handlerConfig) {
		if d > 0 {
			c.heartbeat = d
		}
	}
}

// WithInitialEvents sends the result of fn to each client right after the
// connected event, so a fresh page does not wait for the next change.
func WithInitialEvents(fn func() []Event) HandlerOption {
	return func(c *handlerConfig) {
		c.initial = fn
	}
}

// WithClientOptions passes options through to Subscribe.
func WithClientOptions(opts ...ClientOption) HandlerOption {
	return func(c *handlerConfig) {
		c.client = append(c.client, opts...)
	}
}

// Handler streams broker events until the client goes away.
func Handler(b Subscriber, log logger.Logger, opts ...HandlerOption) gin.HandlerFunc {
	cfg := handlerConfig{heartbeat: DefaultHeartbeatInterval}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(c *gin.Context) {
		events, cleanup := b.Subscribe(c.Request.Context(), cfg.client...)
		defer cleanup()

		// a rejected subscription comes back closed
		var pending []Event
		select {
		case e, ok := <-events:
			if !ok {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "too many connections"})
				return
			}
			pending = append(pending, e)
		default:
		}

		SetHeaders(c.Writer)
		c.Status(http.StatusOK)

		connected := Event{
			Type: eventTypeConnected,
			Data: map[string]any{
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			},
		}
		if err := writeFlush(c.Writer, connected); err != nil {
			log.Debug("SSE connect write failed", logger.Error(err))
			return
		}

		if cfg.initial != nil {
			pending = append(cfg.initial(), pending...)
		}
		for _, e := range pending {
			if err := writeFlush(c.Writer, e); err != nil {
				return
			}
		}

		log.Debug("SSE client connected", logger.String("remote_addr", c.ClientIP()))

		stream(c, events, cfg.heartbeat, log)
	}
}

func stream(c *gin.Context, events <-chan Event, heartbeat time.Duration, log logger.Logger) {
	ticker := time.NewTicker(heartbeat)
	defer ticker.Stop()

	for {
		select {
		case e, ok := <-events:
			if !ok {
				return
			}
			if err := writeFlush(c.Writer, e); err != nil {
				log.Debug("SSE write failed",
					logger.Error(err),
					logger.String("event_type", e.Type),
				)
				return
			}
		case <-ticker.C:
			if _, err := fmt.Fprintf(c.Writer, ": heartbeat %s\n\n", time.Now().UTC().Format(time.RFC3339)); err != nil {
				return
			}
			c.Writer.Flush()
		case <-c.Request.Context().Done():
			return
		}
	}
}

// SetHeaders sets the event-stream response headers.
func SetHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", sseContentType)
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
}

// WriteEvent writes e in event-stream format.
func WriteEvent(w io.Writer, e Event) error {
	if e.Type != "" {
		if _, err := fmt.Fprintf(w, "event: %s\n", e.Type); err != nil {
			return fmt.Errorf("write event type: %w", err)
		}
	}
	if e.ID != "" {
		if _, err := fmt.Fprintf(w, "id: %s\n", e.ID); err != nil {
			return fmt.Errorf("write event id: %w", err)
		}
	}
	if e.Retry > 0 {
		if _, err := fmt.Fprintf(w, "retry: %d\n", e.Retry); err != nil {
			return fmt.Errorf("write retry: %w", err)
		}
	}

	data, err := json.Marshal(e.Data)
	if err != nil {
		return fmt.Errorf("marshal event data: %w", err)
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		return fmt.Errorf("write event data: %w", err)
	}
	return nil
}

func writeFlush(w gin.ResponseWriter, e Event) error {
	if err := WriteEvent(w, e); err != nil {
		return err
	}
	w.Flush()
	return nil
}
