// internal/status/encode.go
package status

// Encode converts a State into the live part of a board status block.
// Slots not owned by State (live flag, name) are left zero.
// Layout is protocol-locked.
// No IO. No side effects.
func Encode(s State) []uint16 {
	regs := make([]uint16, SlotsPerBoard)

	regs[SlotAPI] = IconFor(string(s.API)).Code()
	regs[SlotDB] = IconFor(s.Health.DB).Code()
	regs[SlotQuery] = IconFor(s.Health.Query).Code()
	regs[SlotCache] = IconFor(s.Health.Redis).Code()

	jobs := s.Health.QueuedJobs()
	switch {
	case jobs < 0:
		jobs = 0
	case jobs > 65535:
		jobs = 65535
	}
	regs[SlotQueuedJobs] = uint16(jobs)

	up := UptimeSeconds(s.Health.Uptime)
	regs[SlotUptimeHi] = uint16(up >> 16)
	regs[SlotUptimeLo] = uint16(up)

	return regs
}
