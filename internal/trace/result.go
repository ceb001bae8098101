package trace

import (
	"strconv"
	"time"
)

// ThreadID identifies the goroutine that produced a span.
type ThreadID uint64

// String returns the decimal representation of the id.
func (id ThreadID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// ProfileResult is one completed timed region.
type ProfileResult struct {
	Name     string        // region name, copied verbatim into the trace
	Start    time.Duration // offset from the instrumentor epoch
	Elapsed  time.Duration // whole microseconds
	ThreadID ThreadID      // goroutine that ran the region
}

// StartMicros returns the start offset in floating-point microseconds.
func (r ProfileResult) StartMicros() float64 {
	return float64(r.Start) / float64(time.Microsecond)
}

// ElapsedMicros returns the elapsed time in whole microseconds.
func (r ProfileResult) ElapsedMicros() int64 {
	return r.Elapsed.Microseconds()
}
