// internal/status/constants.go
package status

// Status strings reported by the health endpoint for each subsystem.
// Anything else (including the empty string) is not up and not down.
const (
	StatusUp   = "up"
	StatusDown = "down"
)

// Board status block layout constants.
// These values define the export protocol and MUST NOT be configurable.

// ---- BLOCK GEOMETRY ----

// SlotsPerBoard is the fixed number of logical slots per board.
const SlotsPerBoard = 20

// ---- SLOT INDICES ----

// SlotAPI holds the icon code of the API row.
const SlotAPI = 0

// SlotDB holds the icon code of the DB row.
const SlotDB = 1

// SlotQuery holds the icon code of the Query row.
const SlotQuery = 2

// SlotCache holds the icon code of the Cache row.
const SlotCache = 3

// SlotQueuedJobs holds pdf_queue + thumb_queue, saturating at 65535.
const SlotQueuedJobs = 4

// SlotUptimeHi and SlotUptimeLo hold whole uptime seconds as a big-endian uint32.
const SlotUptimeHi = 5
const SlotUptimeLo = 6

// SlotLive holds 1 while live polling is on.
const SlotLive = 7

// ---- RESERVED RANGE ----

// Slots 8-10 are reserved for future use.
const SlotReservedStart = 8
const SlotReservedEnd = 10

// ---- BOARD NAME ----

// SlotBoardNameStart is the first slot used for the board name.
// The name is always placed at the END of the block.
const SlotBoardNameStart = 11

// SlotBoardNameSlots is the number of slots reserved for the board name.
const SlotBoardNameSlots = 8

// SlotBoardNameEnd is the last slot used for the board name (inclusive).
const SlotBoardNameEnd = SlotBoardNameStart + SlotBoardNameSlots - 1

// ---- LIMITS ----

// BoardNameMaxChars is the maximum number of ASCII characters stored for the board name.
const BoardNameMaxChars = 16
