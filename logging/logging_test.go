package logging

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vcrobe/nojs-viewport/config"
)

func TestNewWithSink_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithSink(config.Log{Level: "info", Encoding: "json"}, zapcore.AddSync(&buf))
	if err != nil {
		t.Fatalf("NewWithSink failed: %v", err)
	}

	logger.Debug("hidden")
	logger.Info("watch element", zap.String("element", "img#hero"))
	_ = logger.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Debug entry written at info level: %s", out)
	}
	if !strings.Contains(out, `"msg":"watch element"`) || !strings.Contains(out, `"element":"img#hero"`) {
		t.Errorf("Unexpected output: %s", out)
	}
}

func TestNewWithSink_Errors(t *testing.T) {
	if _, err := NewWithSink(config.Log{Level: "loud"}, zapcore.AddSync(&bytes.Buffer{})); err == nil {
		t.Error("Expected an error for an unknown level")
	}
	if _, err := NewWithSink(config.Log{Level: "info", Encoding: "xml"}, zapcore.AddSync(&bytes.Buffer{})); err == nil {
		t.Error("Expected an error for an unknown encoding")
	}
}
