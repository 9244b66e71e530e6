package console

import "testing"

func TestIsErrorLine(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{`{"level":"error","msg":"boom"}`, true},
		{`{"level":"info","msg":"watching"}`, false},
		{"2026-01-01T00:00:00Z\tERROR\tviewport\tboom", true},
		{"2026-01-01T00:00:00Z\tDEBUG\tviewport\twatch", false},
	}
	for _, tt := range tests {
		if got := isErrorLine(tt.line); got != tt.want {
			t.Errorf("isErrorLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}
