// Package monitoring holds the package-level diagnostic loggers used by the
// grid libraries and the simulation driver.
package monitoring

import (
	"log"
	"sync/atomic"
)

// Logf is the package-level diagnostic logger for lifecycle events (backups
// written, grids resized, runs finished). It defaults to log.Printf but may be
// replaced by SetLogger. Tests or production code can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

var debug atomic.Bool

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// SetDebug enables or disables per-generation debug lines.
func SetDebug(enabled bool) { debug.Store(enabled) }

// Debugf logs through Logf only when debug output is enabled.
func Debugf(format string, v ...interface{}) {
	if debug.Load() {
		Logf("[debug] "+format, v...)
	}
}
