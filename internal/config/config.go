// Package config loads the initial viewport configuration from the environment.
package config

import (
	"fmt"
	"math"

	"plot-viewport/internal/viewport"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is the environment variable prefix, e.g. VIEWPORT_WIDTH.
const Prefix = "VIEWPORT"

// Config mirrors viewport.Config with environment bindings. Unset bounds
// are unbounded; unset zoom limits are (0.1, +Inf).
type Config struct {
	Width  float64 `envconfig:"WIDTH" default:"400"`
	Height float64 `envconfig:"HEIGHT" default:"300"`

	MinZoom float64 `envconfig:"MIN_ZOOM" default:"0.1"`
	MaxZoom float64 `envconfig:"MAX_ZOOM" default:"+Inf"`
	Zoom    float64 `envconfig:"ZOOM" default:"1"`

	PanX float64 `envconfig:"PAN_X" default:"0"`
	PanY float64 `envconfig:"PAN_Y" default:"0"`

	MinX float64 `envconfig:"MIN_X" default:"-Inf"`
	MaxX float64 `envconfig:"MAX_X" default:"+Inf"`
	MinY float64 `envconfig:"MIN_Y" default:"-Inf"`
	MaxY float64 `envconfig:"MAX_Y" default:"+Inf"`

	Locked bool `envconfig:"LOCKED" default:"false"`
	Axis   bool `envconfig:"AXIS" default:"true"`

	// Debug enables debug-level engine logging.
	Debug bool `envconfig:"DEBUG" default:"false"`
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Viewport().Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Viewport converts c into a viewport construction config.
func (c *Config) Viewport() viewport.Config {
	return viewport.Config{
		CanvasWidth:   c.Width,
		CanvasHeight:  c.Height,
		MinZoomFactor: c.MinZoom,
		MaxZoomFactor: c.MaxZoom,
		ZoomFactor:    c.Zoom,
		PanX:          c.PanX,
		PanY:          c.PanY,
		MinX:          c.MinX,
		MaxX:          c.MaxX,
		MinY:          c.MinY,
		MaxY:          c.MaxY,
		Locked:        c.Locked,
		AxisEnabled:   c.Axis,
	}
}

// Bounded reports whether any pan bound is finite.
func (c *Config) Bounded() bool {
	for _, b := range []float64{c.MinX, c.MaxX, c.MinY, c.MaxY} {
		if !math.IsInf(b, 0) {
			return true
		}
	}
	return false
}
