package concurrency

import (
	"bytes"
	"runtime"
	"strconv"
)

// CurrentGoroutineID returns a number identifying the calling goroutine.
//
// Go has no public API for this and deliberately so; the bus only needs it
// to implement goroutine-local subscription filtering. The id is extracted from
// the "goroutine N [running]:" header runtime.Stack prints for the current
// goroutine. This is the same technique used by community packages such as
// petermattis/goid, and is stable for the lifetime of a goroutine but is not
// guaranteed by the runtime to remain parseable across Go releases.
func CurrentGoroutineID() uint64 {
	buf := make([]byte, 64)
	n := runtime.Stack(buf, false)
	buf = buf[:n]

	const prefix = "goroutine "
	if !bytes.HasPrefix(buf, []byte(prefix)) {
		return 0
	}
	buf = buf[len(prefix):]

	end := bytes.IndexByte(buf, ' ')
	if end < 0 {
		return 0
	}

	id, err := strconv.ParseUint(string(buf[:end]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
