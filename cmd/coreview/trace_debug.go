//go:build debug

package main

import "github.com/jasonmcghee/texteditorcore/internal/debug"

func trace(format string, v ...any) {
	debug.Printf(format, v...)
}
