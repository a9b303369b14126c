//go:build !debug

package main

// trace is a no-op in normal builds; build with -tags debug to route
// these through internal/debug, which logs them via internal/logctx.
func trace(format string, v ...any) {}
