//go:build !dev
// +build !dev

package runtime

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/vcrobe/nojs-viewport/vdom"
)

// callModify invokes Modify in production mode.
// In production mode, panics are recovered, logged and returned as errors.
func (m *ModifierManager) callModify(mod Modifier, key string, el *vdom.Element, positional []any, named map[string]any) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			m.logger.Error("Modify panic", zap.String("key", key), zap.Any("panic", rec))
			err = fmt.Errorf("modify panic: %v", rec)
		}
	}()
	return mod.Modify(el, positional, named)
}

// callDispose invokes Dispose in production mode.
// In production mode, panics are recovered and logged to prevent application crashes.
func (m *ModifierManager) callDispose(mod Modifier, key string) {
	defer func() {
		if rec := recover(); rec != nil {
			m.logger.Error("Dispose panic", zap.String("key", key), zap.Any("panic", rec))
		}
	}()
	mod.Dispose()
}
