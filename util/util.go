package util

import "log"

// Verbose turns Debugf into log.Printf.  The command-line tools set
// it from their -v flags; nothing in the engine depends on it.
var Verbose = false

// Debugf logs when Verbose is set.
func Debugf(format string, args ...interface{}) {
	if !Verbose {
		return
	}
	log.Printf(format, args...)
}
