package console

import "strings"

// Writer is an io.Writer over the browser console, used as a log sink.
type Writer struct{}

// Sync is a no-op; the console is unbuffered.
func (Writer) Sync() error { return nil }

func isErrorLine(line string) bool {
	for _, lvl := range []string{`"level":"error"`, `"level":"dpanic"`, `"level":"panic"`, `"level":"fatal"`, "\tERROR\t"} {
		if strings.Contains(line, lvl) {
			return true
		}
	}
	return false
}
