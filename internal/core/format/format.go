// Package format renders timer durations for display.
package format

import (
	"fmt"
	"math"
	"time"
)

const tenth = 100 * time.Millisecond

// Stopwatch formats d as MM:SS.s. Fractions below a tenth are truncated so
// the display never shows a second that has not fully elapsed.
func Stopwatch(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	tenths := int64(d / tenth)
	minutes := tenths / 600
	rest := tenths % 600
	return fmt.Sprintf("%02d:%02d.%d", minutes, rest/10, rest%10)
}

// Hierarchical formats whole seconds of d as H:MM:SS, M:SS or bare S,
// dropping leading components that are zero.
func Hierarchical(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	seconds := int64(d / time.Second)
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	switch {
	case h > 0:
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	case m > 0:
		return fmt.Sprintf("%d:%02d", m, s)
	default:
		return fmt.Sprintf("%d", s)
	}
}

// Seconds converts a whole number of seconds to a duration.
func Seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

// MaxSeconds is the largest whole-second count Seconds can represent.
const MaxSeconds = math.MaxInt64 / int64(time.Second)

// SecondsInRange reports whether n converts to a duration without overflow.
func SecondsInRange(n int) bool {
	return n >= 0 && int64(n) <= MaxSeconds
}
