// internal/writer/types.go
package writer

import (
	"time"

	"github.com/tamzrod/statusboard/internal/status"
)

// endpointClient is the exact contract the status writer uses.
type endpointClient interface {
	WriteRegisters(unitID uint8, addr uint16, regs []uint16) error
}

// Plan is the fully-built export plan for one board.
type Plan struct {
	Endpoint  string
	UnitID    uint8
	BaseSlot  uint16
	BoardName string
	Timeout   time.Duration
}

// StatusWriter is the delivery-only contract for board status.
// It receives a state and writes it verbatim.
type StatusWriter interface {
	WriteStatus(s status.State, live bool) error
}
