// internal/status/decode.go
package status

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// maxCount bounds decoded queue counts so int conversion never overflows.
const maxCount = math.MaxInt32

// UnmarshalJSON decodes the wire payload field by field.
// Any JSON object is accepted: a status that is not a string keeps its
// literal text (and so shows as unknown), a count that is not a number or
// numeric string reads as 0. Only a body that is not an object fails.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		// literal null
		return nil
	}

	*s = Snapshot{
		DB:         statusText(raw["db"]),
		PDFQueue:   countValue(raw["pdf_queue"]),
		Query:      statusText(raw["query"]),
		Redis:      statusText(raw["redis"]),
		ThumbQueue: countValue(raw["thumb_queue"]),
		Uptime:     statusText(raw["uptime"]),
	}
	return nil
}

// statusText maps missing and null to "", strings to themselves and any
// other value to its compact JSON text.
func statusText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

// countValue accepts numbers (fractions truncated) and numeric strings.
func countValue(raw json.RawMessage) int {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0
	}

	switch x := v.(type) {
	case float64:
		return clampCount(x)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0
		}
		return clampCount(f)
	default:
		return 0
	}
}

func clampCount(f float64) int {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= maxCount:
		return maxCount
	case f <= -maxCount:
		return -maxCount
	default:
		return int(f)
	}
}
