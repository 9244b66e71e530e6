// Package logging builds the zap logger used across the framework. In the
// browser entries go to the developer console, elsewhere to stderr.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vcrobe/nojs-viewport/config"
	"github.com/vcrobe/nojs-viewport/console"
)

// New builds a logger from the log section of the configuration.
func New(cfg config.Log) (*zap.Logger, error) {
	return NewWithSink(cfg, console.Writer{})
}

// NewWithSink builds a logger writing to sink.
func NewWithSink(cfg config.Log, sink zapcore.WriteSyncer) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	if cfg.Development {
		encCfg = zap.NewDevelopmentEncoderConfig()
	}
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	switch cfg.Encoding {
	case "json":
		enc = zapcore.NewJSONEncoder(encCfg)
	case "console", "":
		enc = zapcore.NewConsoleEncoder(encCfg)
	default:
		return nil, fmt.Errorf("log encoding %q not supported", cfg.Encoding)
	}

	opts := []zap.Option{zap.AddCaller()}
	if cfg.Development {
		opts = append(opts, zap.Development())
	}
	return zap.New(zapcore.NewCore(enc, sink, level), opts...), nil
}
