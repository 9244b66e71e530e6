// Package config loads application settings for viewport watching and
// logging from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the root configuration document.
type Config struct {
	Viewport Viewport `yaml:"viewport"`
	Log      Log      `yaml:"log"`
}

// Viewport holds the defaults applied to every watched element. Options
// passed to the modifier override them per element.
type Viewport struct {
	RootMargin            string     `yaml:"rootMargin"`
	IntersectionThreshold Thresholds `yaml:"intersectionThreshold"`
	ScrollableArea        string     `yaml:"scrollableArea"`
	ViewportSpy           bool       `yaml:"viewportSpy"`
	ViewportTolerance     Tolerance  `yaml:"viewportTolerance"`
}

// Tolerance extends (positive) or shrinks (negative) the viewport edges in
// pixels.
type Tolerance struct {
	Top    int `yaml:"top"`
	Right  int `yaml:"right"`
	Bottom int `yaml:"bottom"`
	Left   int `yaml:"left"`
}

// Log configures the application logger.
type Log struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
	Encoding    string `yaml:"encoding"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Viewport: Viewport{
			RootMargin:            "0px 0px 0px 0px",
			IntersectionThreshold: Thresholds{0},
		},
		Log: Log{
			Level:    "info",
			Encoding: "console",
		},
	}
}

// Load reads and parses the YAML file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if len(c.Viewport.IntersectionThreshold) == 0 {
		return fmt.Errorf("%w: viewport.intersectionThreshold must not be empty", ErrInvalid)
	}
	for _, t := range c.Viewport.IntersectionThreshold {
		if t < 0 || t > 1 {
			return fmt.Errorf("%w: viewport.intersectionThreshold %v outside [0,1]", ErrInvalid, t)
		}
	}
	if strings.TrimSpace(c.Viewport.RootMargin) == "" {
		return fmt.Errorf("%w: viewport.rootMargin must not be empty", ErrInvalid)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	switch c.Log.Encoding {
	case "json", "console":
	default:
		return fmt.Errorf("%w: log.encoding %q", ErrInvalid, c.Log.Encoding)
	}
	return nil
}

// Thresholds is a list of intersection ratios. In YAML it may be written as
// a single number or as a list.
type Thresholds []float64

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *Thresholds) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var v float64
		if err := node.Decode(&v); err != nil {
			return err
		}
		*t = Thresholds{v}
	case yaml.SequenceNode:
		var vs []float64
		if err := node.Decode(&vs); err != nil {
			return err
		}
		*t = vs
	default:
		return fmt.Errorf("%w: intersectionThreshold must be a number or a list", ErrInvalid)
	}
	return nil
}
