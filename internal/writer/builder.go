// internal/writer/builder.go
package writer

import (
	"errors"
	"time"

	cfg "github.com/tamzrod/statusboard/internal/config"
	"github.com/tamzrod/statusboard/internal/logger"
	wmodbus "github.com/tamzrod/statusboard/internal/writer/modbus"
)

// ErrDisabled means the export was not configured.
var ErrDisabled = errors.New("writer: modbus export disabled")

// BuildPlan converts the export config into a Plan.
// Assumes config has already been validated and normalized.
func BuildPlan(m cfg.ModbusExportConfig) (Plan, error) {
	if !m.Enabled() {
		return Plan{}, ErrDisabled
	}

	return Plan{
		Endpoint:  m.Endpoint,
		UnitID:    uint8(m.Unit()),
		BaseSlot:  uint16(m.BaseSlot),
		BoardName: m.BoardName,
		Timeout:   m.Timeout(),
	}, nil
}

// Build wires plan, TCP client and exporter together.
// It returns ErrDisabled when no endpoint is configured.
func Build(m cfg.ModbusExportConfig, log logger.Logger) (*Exporter, error) {
	plan, err := BuildPlan(m)
	if err != nil {
		return nil, err
	}

	cli, err := wmodbus.NewEndpointClient(wmodbus.Config{
		Endpoint:    plan.Endpoint,
		Timeout:     plan.Timeout,
		IdleTimeout: time.Minute,
	})
	if err != nil {
		return nil, err
	}

	sw, err := NewStatusWriter(plan, cli)
	if err != nil {
		_ = cli.Close()
		return nil, err
	}

	return NewExporter(sw, log, cli.Close), nil
}
