package stopwatch

import (
	"strconv"
	"time"
)

// HumanDuration formats d in the coarsest of ns, us, ms, s or m that keeps
// the value below the next unit. Values are truncated, never rounded.
func HumanDuration(d time.Duration) string {
	switch {
	case d < time.Microsecond:
		return strconv.FormatInt(d.Nanoseconds(), 10) + "ns"
	case d < time.Millisecond:
		return strconv.FormatInt(d.Microseconds(), 10) + "us"
	case d < time.Second:
		return strconv.FormatInt(d.Milliseconds(), 10) + "ms"
	case d < time.Minute:
		return strconv.FormatInt(int64(d/time.Second), 10) + "s"
	default:
		return strconv.FormatInt(int64(d/time.Second)/60, 10) + "m"
	}
}
