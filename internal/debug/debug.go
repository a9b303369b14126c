//go:build debug

// Package debug provides a debug-build-only trace logger. It routes
// through the same commonlog namespace every other package logs under,
// so a debug build's trace output interleaves with ordinary log lines
// instead of landing in a separate ad hoc file.
package debug

import "github.com/jasonmcghee/texteditorcore/internal/logctx"

var logger = logctx.Get("trace")

// Printf logs a formatted trace line at debug level. Call sites live
// behind the "debug" build tag (see cmd/coreview/trace_debug.go); a
// release build never links this package in, and trace.go's no-op
// stand-in takes over instead.
func Printf(format string, v ...any) {
	logger.Debugf(format, v...)
}
