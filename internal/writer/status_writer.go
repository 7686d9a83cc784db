// internal/writer/status_writer.go
package writer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tamzrod/statusboard/internal/status"
)

// boardStatusWriter mirrors one board into its holding register block.
type boardStatusWriter struct {
	plan Plan
	cli  endpointClient

	needFull bool
	last     []uint16
	nameRegs []uint16
}

// slotGroup is a run of slots that must be written together.
type slotGroup struct {
	name  string
	start int
	n     int
}

// uptime hi/lo always travel together so a reader never sees a torn value.
var incrementalGroups = []slotGroup{
	{"api", status.SlotAPI, 1},
	{"db", status.SlotDB, 1},
	{"query", status.SlotQuery, 1},
	{"cache", status.SlotCache, 1},
	{"queued_jobs", status.SlotQueuedJobs, 1},
	{"uptime", status.SlotUptimeHi, 2},
	{"live", status.SlotLive, 1},
}

// NewStatusWriter builds the writer for plan.
func NewStatusWriter(plan Plan, cli endpointClient) (*boardStatusWriter, error) {
	if cli == nil {
		return nil, fmt.Errorf("status writer: missing client for endpoint %s", plan.Endpoint)
	}
	if (int(plan.BaseSlot)+1)*status.SlotsPerBoard > 65536 {
		return nil, fmt.Errorf("status writer: base slot %d out of range", plan.BaseSlot)
	}

	return &boardStatusWriter{
		plan:     plan,
		cli:      cli,
		needFull: true, // full re-assert on first successful write
		nameRegs: encodeBoardNameRegs(plan.BoardName),
	}, nil
}

// WriteStatus delivers a board state into status memory.
// On any write failure, the next call re-asserts the full block.
func (sw *boardStatusWriter) WriteStatus(s status.State, live bool) error {
	if sw == nil || sw.cli == nil {
		return errors.New("status writer: disabled")
	}

	regs := status.Encode(s)
	if live {
		regs[status.SlotLive] = 1
	}

	baseAddr := sw.baseAddr()

	// ------------------------------------------------------------
	// Full block write (identity re-assert)
	// ------------------------------------------------------------
	if sw.needFull {
		full := sw.fullBlockRegs(regs)

		if err := sw.cli.WriteRegisters(sw.plan.UnitID, baseAddr, full); err != nil {
			sw.needFull = true
			return fmt.Errorf("status writer: full block write failed: %w", err)
		}

		sw.needFull = false
		sw.last = regs
		return nil
	}

	// ------------------------------------------------------------
	// Incremental: changed slots only
	// ------------------------------------------------------------
	var errs []string

	for _, g := range incrementalGroups {
		if equalSlots(sw.last, regs, g) {
			continue
		}

		vals := regs[g.start : g.start+g.n]
		if err := sw.cli.WriteRegisters(sw.plan.UnitID, baseAddr+uint16(g.start), vals); err != nil {
			errs = append(errs, fmt.Sprintf("slot%d %s write failed: %v", g.start, g.name, err))
			continue
		}
		copy(sw.last[g.start:], vals)
	}

	if len(errs) > 0 {
		// Any partial failure introduces doubt; re-assert on next call.
		sw.needFull = true
		return errors.New("status writer: " + strings.Join(errs, " | "))
	}

	return nil
}

func (sw *boardStatusWriter) baseAddr() uint16 {
	return sw.plan.BaseSlot * status.SlotsPerBoard
}

func (sw *boardStatusWriter) fullBlockRegs(live []uint16) []uint16 {
	regs := make([]uint16, status.SlotsPerBoard)

	// Slots 0-7: live status
	copy(regs, live[:status.SlotLive+1])

	// Slots 8-10 are RESERVED and left as zero

	// Board name always lives at the end of the block
	for i := 0; i < status.SlotBoardNameSlots && i < len(sw.nameRegs); i++ {
		regs[status.SlotBoardNameStart+i] = sw.nameRegs[i]
	}

	return regs
}

func equalSlots(a, b []uint16, g slotGroup) bool {
	for i := g.start; i < g.start+g.n; i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// encodeBoardNameRegs packs up to 16 ASCII characters into 8 uint16 registers.
// Each register stores two ASCII bytes in big-endian order.
func encodeBoardNameRegs(name string) []uint16 {
	out := make([]uint16, status.SlotBoardNameSlots)

	b := []byte(name)
	if len(b) > status.BoardNameMaxChars {
		b = b[:status.BoardNameMaxChars]
	}

	for i := 0; i < len(b); i++ {
		if b[i] < 0x20 || b[i] > 0x7E {
			b[i] = '?'
		}
	}

	for i := 0; i < status.BoardNameMaxChars; i += 2 {
		var hi, lo byte
		if i < len(b) {
			hi = b[i]
		}
		if i+1 < len(b) {
			lo = b[i+1]
		}
		out[i/2] = uint16(hi)<<8 | uint16(lo)
	}

	return out
}
