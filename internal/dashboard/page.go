// internal/dashboard/page.go
package dashboard

import (
	"strconv"
	"time"

	"github.com/tamzrod/statusboard/internal/status"
)

// Title is the board heading.
const Title = "App Status"

// Row is one line of the board: an icon row or a value row.
type Row struct {
	Label string      `json:"label"`
	Icon  status.Icon `json:"icon"`
	Value string      `json:"value,omitempty"`
}

// Page is everything a renderer needs.
type Page struct {
	Title      string       `json:"title"`
	Rows       []Row        `json:"rows"`
	Live       bool         `json:"live"`
	RenderedAt string       `json:"rendered_at"`
	State      status.State `json:"state"`
}

// BuildPage lays out the rows in board order.
// RenderedAt is taken from now, not from the fetch time.
func BuildPage(st status.State, live bool, now time.Time) Page {
	h := st.Health

	return Page{
		Title: Title,
		Rows: []Row{
			{Label: "API", Icon: status.IconFor(string(st.API))},
			{Label: "DB", Icon: status.IconFor(h.DB)},
			{Label: "Query", Icon: status.IconFor(h.Query)},
			{Label: "Cache", Icon: status.IconFor(h.Redis)},
			{Label: "Uptime", Value: status.FormatUptime(h.Uptime)},
			{Label: "Queued Jobs", Value: strconv.Itoa(h.QueuedJobs())},
		},
		Live:       live,
		RenderedAt: status.FormatTimestamp(now),
		State:      st,
	}
}

// Row returns the row with the given label.
func (p Page) Row(label string) (Row, bool) {
	for _, r := range p.Rows {
		if r.Label == label {
			return r, true
		}
	}
	return Row{}, false
}
