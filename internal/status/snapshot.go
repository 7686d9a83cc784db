// internal/status/snapshot.go
package status

import "time"

// Snapshot is the health payload exactly as the remote service reports it.
// It is never edited field by field; a fetch replaces it whole.
type Snapshot struct {
	DB         string `json:"db"`
	PDFQueue   int    `json:"pdf_queue"`
	Query      string `json:"query"`
	Redis      string `json:"redis"`
	ThumbQueue int    `json:"thumb_queue"`
	Uptime     string `json:"uptime"`
}

// DefaultSnapshot is the board before the first fetch and after any failed one.
func DefaultSnapshot() Snapshot {
	return Snapshot{Uptime: "0s"}
}

// QueuedJobs is the value of the Queued Jobs row.
func (s Snapshot) QueuedJobs() int {
	return s.PDFQueue + s.ThumbQueue
}

// APIState classifies the fetch attempt itself, not anything the server said.
// It shares the subsystem vocabulary so IconFor works on both.
type APIState string

const (
	APIUnknown APIState = ""
	APIUp      APIState = StatusUp
	APIDown    APIState = StatusDown
)

// State is the unit of replacement: health and API state always change together.
type State struct {
	Health    Snapshot  `json:"health"`
	API       APIState  `json:"api"`
	CheckedAt time.Time `json:"checked_at"`

	// Seq counts applied fetch attempts. 0 means nothing applied yet.
	Seq uint64 `json:"seq"`
}

// InitialState is what the board shows before the mount fetch completes.
func InitialState() State {
	return State{
		Health: DefaultSnapshot(),
		API:    APIUnknown,
	}
}

// Up builds the state for a successful fetch.
func Up(s Snapshot, at time.Time) State {
	return State{Health: s, API: APIUp, CheckedAt: at}
}

// Down builds the state for a failed fetch.
func Down(at time.Time) State {
	return State{Health: DefaultSnapshot(), API: APIDown, CheckedAt: at}
}
