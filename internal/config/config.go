// internal/config/config.go
package config

import "time"

// DefaultEndpoint is the health-check URL used when none is configured.
const DefaultEndpoint = "https://api.iepcentre.com/healthcheck"

type Config struct {
	Source  SourceConfig  `yaml:"source"`
	Poll    PollConfig    `yaml:"poll"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Export  ExportConfig  `yaml:"export"`
}

// ---- SOURCE ----

type SourceConfig struct {
	Endpoint  string `yaml:"endpoint" env:"STATUSBOARD_ENDPOINT"`
	TimeoutMs int    `yaml:"timeout_ms" env:"STATUSBOARD_TIMEOUT_MS"`
}

// ---- POLL ----

type PollConfig struct {
	IntervalMs int  `yaml:"interval_ms" env:"STATUSBOARD_POLL_INTERVAL_MS"`
	StartLive  bool `yaml:"start_live" env:"STATUSBOARD_START_LIVE"`
}

// ---- SERVER ----

type ServerConfig struct {
	Host            string        `yaml:"host" env:"STATUSBOARD_HOST"`
	Port            int           `yaml:"port" env:"STATUSBOARD_PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"` // 0 keeps SSE streams open
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	Debug           bool          `yaml:"debug" env:"STATUSBOARD_DEBUG"`
}

// ---- LOGGING ----

type LoggingConfig struct {
	Level       string   `yaml:"level" env:"LOG_LEVEL"`
	Development bool     `yaml:"development"`
	OutputPaths []string `yaml:"output_paths"`
}

// ---- EXPORT ----

type ExportConfig struct {
	Modbus ModbusExportConfig `yaml:"modbus"`
}

// ModbusExportConfig mirrors the board into a holding register block.
// Export is opt-in: an empty endpoint disables it.
type ModbusExportConfig struct {
	Endpoint  string `yaml:"endpoint" env:"STATUSBOARD_MODBUS_ENDPOINT"`
	UnitID    *int   `yaml:"unit_id" env:"STATUSBOARD_MODBUS_UNIT_ID"`
	BaseSlot  int    `yaml:"base_slot"`
	TimeoutMs int    `yaml:"timeout_ms"`
	BoardName string `yaml:"board_name"`
}

// Enabled reports whether the export was opted into.
func (m ModbusExportConfig) Enabled() bool {
	return m.Endpoint != ""
}

// ---- derived values ----

func (s SourceConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutMs) * time.Millisecond
}

func (p PollConfig) Interval() time.Duration {
	return time.Duration(p.IntervalMs) * time.Millisecond
}

// Unit returns the configured unit id. 0 is a valid explicit value;
// only an absent key falls back to the default.
func (m ModbusExportConfig) Unit() int {
	if m.UnitID == nil {
		return DefaultModbusUnitID
	}
	return *m.UnitID
}

func (m ModbusExportConfig) Timeout() time.Duration {
	return time.Duration(m.TimeoutMs) * time.Millisecond
}

// Address returns the listen address in host:port form.
func (s ServerConfig) Address() string {
	return s.Host + ":" + itoa(s.Port)
}
