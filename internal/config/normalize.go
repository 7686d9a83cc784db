// internal/config/normalize.go
package config

import (
	"time"

	"github.com/tamzrod/statusboard/internal/status"
)

// Defaults applied by Normalize.
const (
	DefaultTimeoutMs       = 5000
	DefaultPollIntervalMs  = 10000
	DefaultPort            = 8080
	DefaultReadTimeout     = 30 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultModbusTimeoutMs = 1000
	DefaultModbusUnitID    = 1
	DefaultBoardName       = "statusboard"
)

// Normalize fills defaults and truncates oversize values.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Source.Endpoint == "" {
		cfg.Source.Endpoint = DefaultEndpoint
	}
	if cfg.Source.TimeoutMs == 0 {
		cfg.Source.TimeoutMs = DefaultTimeoutMs
	}

	if cfg.Poll.IntervalMs == 0 {
		cfg.Poll.IntervalMs = DefaultPollIntervalMs
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	// ------------------------------------------------------------
	// MODBUS EXPORT NORMALIZATION (OPT-IN)
	// ------------------------------------------------------------

	m := &cfg.Export.Modbus
	if !m.Enabled() {
		return
	}

	if m.UnitID == nil {
		unit := DefaultModbusUnitID
		m.UnitID = &unit
	}
	if m.TimeoutMs == 0 {
		m.TimeoutMs = DefaultModbusTimeoutMs
	}
	if m.BoardName == "" {
		m.BoardName = DefaultBoardName
	}
	// ASCII already validated.
	if len(m.BoardName) > status.BoardNameMaxChars {
		m.BoardName = m.BoardName[:status.BoardNameMaxChars]
	}
}
