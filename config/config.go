// Package config holds the environment-wide constants consumed by the geometry core.
package config

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"isogrid/core"
)

// Defaults
const (
	DefaultUnprojectedTileSize = 100.0
	DefaultRotationDegrees     = 45.0
	DefaultVerticalScale       = 0.5
	DefaultRouting             = "horizontal-first"
	DefaultCacheSize           = 1024
	DefaultLabelFontSize       = 14.0
	DefaultBackground          = "#ffffff"
	DefaultConnectorColor      = "#a5b8f3"
	DefaultNodeColor           = "#a5b8f3"
)

// Config is the set of geometry constants. It is passed explicitly so tests can inject
// their own tile sizes.
type Config struct {
	UnprojectedTileSize float64 // tile edge length in pixels before projection
	RotationDegrees     float64 // rotation applied before the vertical squash
	VerticalScale       float64 // vertical scale applied after rotation
	Routing             string  // connector routing strategy name
	CacheSize           int     // max entries per memo cache, 0 disables eviction
	LabelFontSize       float64
	Background          string
	ConnectorColor      string // fallback for connectors without a colour
	NodeColor           string // fallback for nodes without a colour
}

// Default returns the standard isometric configuration.
func Default() *Config {
	return &Config{
		UnprojectedTileSize: DefaultUnprojectedTileSize,
		RotationDegrees:     DefaultRotationDegrees,
		VerticalScale:       DefaultVerticalScale,
		Routing:             DefaultRouting,
		CacheSize:           DefaultCacheSize,
		LabelFontSize:       DefaultLabelFontSize,
		Background:          DefaultBackground,
		ConnectorColor:      DefaultConnectorColor,
		NodeColor:           DefaultNodeColor,
	}
}

// WithTileSize returns a copy of c with a different unprojected tile size.
func (c *Config) WithTileSize(size float64) *Config {
	clone := *c
	clone.UnprojectedTileSize = size
	return &clone
}

// RotationRadians returns the rotation angle in radians.
func (c *Config) RotationRadians() float64 {
	return c.RotationDegrees * math.Pi / 180
}

// ProjectedTileSize returns the on-screen footprint of a single tile: the axis-aligned
// box around one rotated and squashed tile.
func (c *Config) ProjectedTileSize() core.Size {
	theta := c.RotationRadians()
	cos, sin := math.Abs(math.Cos(theta)), math.Abs(math.Sin(theta))
	span := c.UnprojectedTileSize * (cos + sin)
	return core.Size{Width: span, Height: span * c.VerticalScale}
}

// Validate checks the configuration for values the projection cannot work with.
func (c *Config) Validate() error {
	if c.UnprojectedTileSize <= 0 || math.IsNaN(c.UnprojectedTileSize) || math.IsInf(c.UnprojectedTileSize, 0) {
		return fmt.Errorf("tile size must be a positive finite number, got %v", c.UnprojectedTileSize)
	}
	if c.VerticalScale <= 0 || c.VerticalScale > 1 {
		return fmt.Errorf("vertical scale must be in (0, 1], got %v", c.VerticalScale)
	}
	if math.IsNaN(c.RotationDegrees) || math.IsInf(c.RotationDegrees, 0) {
		return fmt.Errorf("rotation must be finite, got %v", c.RotationDegrees)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cache size must not be negative, got %d", c.CacheSize)
	}
	if c.LabelFontSize <= 0 {
		return fmt.Errorf("label font size must be positive, got %v", c.LabelFontSize)
	}
	return nil
}

// Load reads an rc file of "key = value" lines on top of the defaults.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	if err := cfg.Parse(file); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse applies "key = value" lines from r. Blank lines and lines starting with # are
// skipped; unknown keys are ignored.
func (c *Config) Parse(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if err := c.set(strings.ToLower(key), value); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return c.Validate()
}

func (c *Config) set(key, value string) error {
	var err error
	switch key {
	case "tilesize", "tile_size", "unprojected_tile_size":
		c.UnprojectedTileSize, err = parseFloat(key, value)
	case "rotation", "rotation_degrees":
		c.RotationDegrees, err = parseFloat(key, value)
	case "verticalscale", "vertical_scale", "scale_y":
		c.VerticalScale, err = parseFloat(key, value)
	case "routing", "route":
		c.Routing = strings.ToLower(value)
	case "cachesize", "cache_size":
		c.CacheSize, err = strconv.Atoi(value)
		if err != nil {
			err = fmt.Errorf("%s: %w", key, err)
		}
	case "fontsize", "font_size", "label_font_size":
		c.LabelFontSize, err = parseFloat(key, value)
	case "background", "bg":
		c.Background = value
	case "connector_color", "connectorcolor":
		c.ConnectorColor = value
	case "node_color", "nodecolor":
		c.NodeColor = value
	}
	return err
}

func parseFloat(key, value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}
