// internal/config/validate.go
package config

import (
	"fmt"
	"net/url"

	"github.com/tamzrod/statusboard/internal/status"
)

// ValidationError names the offending key.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Validate checks configuration correctness.
// Zero values are accepted wherever Normalize supplies a default.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return invalid("config", "is nil")
	}

	// ------------------------------------------------------------
	// SOURCE
	// ------------------------------------------------------------

	if ep := cfg.Source.Endpoint; ep != "" {
		u, err := url.Parse(ep)
		if err != nil {
			return invalid("source.endpoint", "parse %q: %v", ep, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return invalid("source.endpoint", "scheme must be http or https, got %q", u.Scheme)
		}
		if u.Host == "" {
			return invalid("source.endpoint", "host is required")
		}
	}
	if cfg.Source.TimeoutMs < 0 {
		return invalid("source.timeout_ms", "must be >= 0")
	}

	// ------------------------------------------------------------
	// POLL
	// ------------------------------------------------------------

	if cfg.Poll.IntervalMs < 0 {
		return invalid("poll.interval_ms", "must be >= 0")
	}

	// ------------------------------------------------------------
	// SERVER
	// ------------------------------------------------------------

	if p := cfg.Server.Port; p != 0 && (p < 1 || p > 65535) {
		return invalid("server.port", "must be between 1 and 65535")
	}
	if cfg.Server.ReadTimeout < 0 || cfg.Server.WriteTimeout < 0 ||
		cfg.Server.IdleTimeout < 0 || cfg.Server.ShutdownTimeout < 0 {
		return invalid("server", "timeouts must be >= 0")
	}

	// ------------------------------------------------------------
	// LOGGING
	// ------------------------------------------------------------

	switch cfg.Logging.Level {
	case "", "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return invalid("logging.level", "must be one of: debug, info, warn, error, fatal")
	}

	// ------------------------------------------------------------
	// MODBUS EXPORT (OPT-IN)
	// ------------------------------------------------------------

	m := cfg.Export.Modbus

	// board_name sanity (ASCII only)
	for i := 0; i < len(m.BoardName); i++ {
		if m.BoardName[i] > 0x7F {
			return invalid("export.modbus.board_name", "must contain ASCII characters only")
		}
	}

	if !m.Enabled() {
		return nil
	}

	if m.UnitID != nil && (*m.UnitID < 0 || *m.UnitID > 255) {
		return invalid("export.modbus.unit_id", "must be between 0 and 255")
	}
	if m.TimeoutMs < 0 {
		return invalid("export.modbus.timeout_ms", "must be >= 0")
	}
	// The whole block must fit in the 16-bit register space.
	if m.BaseSlot < 0 || (m.BaseSlot+1)*status.SlotsPerBoard > 65536 {
		return invalid("export.modbus.base_slot", "block at slot %d does not fit in register space", m.BaseSlot)
	}

	return nil
}
