package trace

import (
	"bytes"
	"runtime"
	"strconv"
)

var goroutinePrefix = []byte("goroutine ")

// currentThreadID returns the id of the calling goroutine, parsed from the
// header line of runtime.Stack ("goroutine 123 [running]:"). It returns 0 if
// the header cannot be parsed.
func currentThreadID() ThreadID {
	var buf [64]byte
	b := buf[:runtime.Stack(buf[:], false)]

	if !bytes.HasPrefix(b, goroutinePrefix) {
		return 0
	}
	b = b[len(goroutinePrefix):]
	end := bytes.IndexByte(b, ' ')
	if end < 0 {
		return 0
	}

	id, err := strconv.ParseUint(string(b[:end]), 10, 64)
	if err != nil {
		return 0
	}
	return ThreadID(id)
}
