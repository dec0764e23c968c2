package util

import (
	"fmt"
	"os"
)

// LoggingEnabled gates diagnostic logging. The language server cannot log
// to stdout because the protocol owns that stream, so messages go to
// stderr.
var LoggingEnabled = false

func LogF(format string, args ...interface{}) {
	if !LoggingEnabled {
		return
	}
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
