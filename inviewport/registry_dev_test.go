//go:build dev
// +build dev

package inviewport

import (
	"errors"
	"testing"

	"github.com/vcrobe/nojs-viewport/vdom"
)

func TestDefaultRegistry_SharedInDevBuilds(t *testing.T) {
	w := newRecordingWatcher()
	el := vdom.NewElement("div", "dev")

	first := New(w)
	second := New(w)
	defer first.Dispose()

	if err := first.Modify(el, nil, map[string]any{"onEnter": func() {}}); err != nil {
		t.Fatalf("first Modify failed: %v", err)
	}
	if err := second.Modify(el, nil, map[string]any{"onEnter": func() {}}); !errors.Is(err, ErrDuplicateWatch) {
		t.Fatalf("Expected ErrDuplicateWatch from the process-wide registry, got %v", err)
	}
}
