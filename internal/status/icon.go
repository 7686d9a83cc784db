// internal/status/icon.go
package status

// Icon is the indicator drawn next to a row.
type Icon uint8

const (
	// IconNone draws nothing. Used before anything is known.
	IconNone Icon = iota
	// IconUp is the positive indicator.
	IconUp
	// IconDown is the negative indicator.
	IconDown
	// IconUnknown is the neutral indicator for any other reported value.
	IconUnknown
)

// IconFor is the only classification rule on the board.
func IconFor(status string) Icon {
	switch status {
	case "":
		return IconNone
	case StatusUp:
		return IconUp
	case StatusDown:
		return IconDown
	default:
		return IconUnknown
	}
}

func (i Icon) String() string {
	switch i {
	case IconUp:
		return "up"
	case IconDown:
		return "down"
	case IconUnknown:
		return "unknown"
	default:
		return ""
	}
}

// Glyph is the terminal rendering of the icon.
func (i Icon) Glyph() string {
	switch i {
	case IconUp:
		return "✔"
	case IconDown:
		return "✖"
	case IconUnknown:
		return "⊖"
	default:
		return ""
	}
}

// Code is the register value written by the status export.
func (i Icon) Code() uint16 {
	return uint16(i)
}

// MarshalText lets icons appear as their names in JSON.
func (i Icon) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}
