// Package logctx centralizes the commonlog setup shared across every
// package in this module: a consistent "texteditorcore.<name>" logger
// namespace and a single place to configure verbosity for the demo binary.
package logctx

import (
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

// Get returns a namespaced logger, e.g. Get("sumtree") logs under
// "texteditorcore.sumtree".
func Get(name string) commonlog.Logger {
	return commonlog.GetLoggerf("texteditorcore.%s", name)
}

// Configure sets up commonlog's simple backend at the given verbosity.
// cmd/coreview calls this once at startup; library packages never call it
// themselves.
func Configure(verbosity int) {
	commonlog.Configure(verbosity, nil)
}
