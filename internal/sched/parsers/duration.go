package parsers

import (
	"strconv"
	"strings"
	"time"
)

// ClockDuration parses the colon-separated clock strings schedulers emit
// for time limits, elapsed time, and CPU time ("01:02:03", "1-01:02:03").
// The last three colon-separated components are read as hours, minutes,
// and seconds; a leading day component is stripped and ignored.
// Unparseable components default to zero, and a value
// with fewer than three components is zero seconds.
func ClockDuration(clock string) time.Duration {
	if i := strings.Index(clock, "-"); i >= 0 {
		clock = clock[i+1:]
	}

	parts := strings.Split(clock, ":")
	if len(parts) < 3 {
		return 0
	}
	parts = parts[len(parts)-3:]

	hours, _ := strconv.Atoi(parts[0])
	minutes, _ := strconv.Atoi(parts[1])
	seconds, _ := strconv.Atoi(parts[2])

	total := hours*3600 + minutes*60 + seconds
	return time.Duration(total) * time.Second
}
