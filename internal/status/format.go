// internal/status/format.go
package status

import (
	"regexp"
	"time"
)

var fractionRe = regexp.MustCompile(`\.\d+`)

// FormatUptime drops sub-second fractions from a duration string.
// "72h3m1.234567s" -> "72h3m1s". Idempotent.
func FormatUptime(raw string) string {
	return fractionRe.ReplaceAllString(raw, "")
}

// TimestampLayout mirrors the en-US locale date/time string.
const TimestampLayout = "1/2/2006, 3:04:05 PM"

// FormatTimestamp renders t in local time.
func FormatTimestamp(t time.Time) string {
	return t.Local().Format(TimestampLayout)
}

// Timestamp is the render-time clock shown on the board.
// It says when the page was drawn, not when the data was fetched.
func Timestamp() string {
	return FormatTimestamp(time.Now())
}

// UptimeSeconds parses an uptime string into whole seconds.
// Unparseable values yield 0.
func UptimeSeconds(raw string) uint32 {
	d, err := time.ParseDuration(FormatUptime(raw))
	if err != nil || d < 0 {
		return 0
	}
	secs := int64(d / time.Second)
	if secs > int64(^uint32(0)) {
		return ^uint32(0)
	}
	return uint32(secs)
}
