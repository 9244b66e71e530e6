//go:build js && wasm
// +build js,wasm

package console

import (
	"strings"
	"syscall/js"
)

func Log(args ...any) {
	console := js.Global().Get("console")
	console.Call("log", args...)
}

func Warn(args ...any) {
	console := js.Global().Get("console")
	console.Call("warn", args...)
}

func Error(args ...any) {
	console := js.Global().Get("console")
	console.Call("error", args...)
}

// Write sends one encoded log entry to the browser console. Entries are
// routed to console.error when they mention an error level.
func (Writer) Write(p []byte) (int, error) {
	line := strings.TrimRight(string(p), "\n")
	if isErrorLine(line) {
		Error(line)
	} else {
		Log(line)
	}
	return len(p), nil
}
