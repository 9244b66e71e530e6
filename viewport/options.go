package viewport

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/vcrobe/nojs-viewport/config"
)

// ErrInvalidOption is wrapped by every option parsing failure.
var ErrInvalidOption = errors.New("viewport: invalid option")

// Option keys understood by the service. Other keys are ignored.
const (
	KeyRootMargin            = "rootMargin"
	KeyIntersectionThreshold = "intersectionThreshold"
	KeyScrollableArea        = "scrollableArea"
	KeyViewportSpy           = "viewportSpy"
	KeyViewportTolerance     = "viewportTolerance"
)

// Options is the parsed watcher configuration of one element.
type Options struct {
	RootMargin     string
	Thresholds     []float64
	ScrollableArea string
	ViewportSpy    bool
	Tolerance      config.Tolerance

	rootMarginSet bool
}

// ObserveOptions is what the observer needs to know: the scroll root, the
// margin around it and the ratios at which to report.
type ObserveOptions struct {
	Root       string
	RootMargin string
	Thresholds []float64
}

// Key identifies observers that can be shared between elements.
func (o ObserveOptions) Key() string {
	return fmt.Sprintf("%s|%s|%v", o.Root, o.RootMargin, o.Thresholds)
}

// ParseOptions overlays raw on top of defaults.
func ParseOptions(raw map[string]any, defaults config.Viewport) (Options, error) {
	opts := Options{
		RootMargin:     defaults.RootMargin,
		Thresholds:     append([]float64(nil), defaults.IntersectionThreshold...),
		ScrollableArea: defaults.ScrollableArea,
		ViewportSpy:    defaults.ViewportSpy,
		Tolerance:      defaults.ViewportTolerance,
	}

	for key, value := range raw {
		var err error
		switch key {
		case KeyRootMargin:
			opts.RootMargin, err = stringOption(key, value)
			opts.rootMarginSet = true
		case KeyIntersectionThreshold:
			opts.Thresholds, err = thresholdsOption(value)
		case KeyScrollableArea:
			opts.ScrollableArea, err = stringOption(key, value)
		case KeyViewportSpy:
			spy, ok := value.(bool)
			if !ok {
				err = fmt.Errorf("%w: %s must be a bool, got %T", ErrInvalidOption, key, value)
			}
			opts.ViewportSpy = spy
		case KeyViewportTolerance:
			opts.Tolerance, err = toleranceOption(value)
		}
		if err != nil {
			return Options{}, err
		}
	}

	if strings.TrimSpace(opts.RootMargin) == "" {
		opts.RootMargin = "0px"
	}
	if len(opts.Thresholds) == 0 {
		opts.Thresholds = []float64{0}
	}
	return opts, nil
}

// Observe returns the observer configuration. Without an explicit
// rootMargin a non-zero tolerance is turned into one.
func (o Options) Observe() ObserveOptions {
	margin := o.RootMargin
	if !o.rootMarginSet && o.Tolerance != (config.Tolerance{}) {
		t := o.Tolerance
		margin = fmt.Sprintf("%dpx %dpx %dpx %dpx", t.Top, t.Right, t.Bottom, t.Left)
	}
	return ObserveOptions{
		Root:       o.ScrollableArea,
		RootMargin: margin,
		Thresholds: o.Thresholds,
	}
}

func stringOption(key string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string, got %T", ErrInvalidOption, key, v)
	}
	return s, nil
}

func thresholdsOption(v any) ([]float64, error) {
	var out []float64
	switch t := v.(type) {
	case []float64:
		out = append(out, t...)
	case []any:
		for _, item := range t {
			f, ok := toFloat(item)
			if !ok {
				return nil, fmt.Errorf("%w: %s entries must be numbers, got %T", ErrInvalidOption, KeyIntersectionThreshold, item)
			}
			out = append(out, f)
		}
	default:
		f, ok := toFloat(v)
		if !ok {
			return nil, fmt.Errorf("%w: %s must be a number or a list of numbers, got %T", ErrInvalidOption, KeyIntersectionThreshold, v)
		}
		out = []float64{f}
	}

	for _, f := range out {
		if math.IsNaN(f) || f < 0 || f > 1 {
			return nil, fmt.Errorf("%w: %s %v outside [0,1]", ErrInvalidOption, KeyIntersectionThreshold, f)
		}
	}
	return out, nil
}

func toleranceOption(v any) (config.Tolerance, error) {
	switch t := v.(type) {
	case config.Tolerance:
		return t, nil
	case map[string]any:
		var tol config.Tolerance
		sides := map[string]*int{"top": &tol.Top, "right": &tol.Right, "bottom": &tol.Bottom, "left": &tol.Left}
		for side, value := range t {
			dst, ok := sides[side]
			if !ok {
				return config.Tolerance{}, fmt.Errorf("%w: %s has unknown side %q", ErrInvalidOption, KeyViewportTolerance, side)
			}
			f, ok := toFloat(value)
			if !ok {
				return config.Tolerance{}, fmt.Errorf("%w: %s.%s must be a number, got %T", ErrInvalidOption, KeyViewportTolerance, side, value)
			}
			*dst = int(f)
		}
		return tol, nil
	}
	return config.Tolerance{}, fmt.Errorf("%w: %s must be a map of sides, got %T", ErrInvalidOption, KeyViewportTolerance, v)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	}
	return 0, false
}
