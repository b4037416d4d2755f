package render

import (
	"slices"
	"strings"

	"isogrid/core"
	"isogrid/geometry"
)

// Stroke multipliers for the dash patterns and the light outline under each connector.
const (
	DashedMultiplier = 2.0
	DottedGapFactor  = 1.8
	OutlineScale     = 1.4
	OutlineOpacity   = 0.7
)

// OutlineColor is the colour of the halo drawn under every connector.
const OutlineColor = "#ffffff"

// StrokeWidth converts a connector width into pixels: one width unit is a hundredth of
// the unprojected tile size.
func StrokeWidth(tileSize float64, width int) float64 {
	return tileSize / 100 * float64(width)
}

// DashArray holds alternating dash and gap lengths. A nil DashArray is a solid line.
type DashArray []float64

// Dash returns the dash pattern for style at the given stroke width.
func Dash(style core.ConnectorStyle, strokeWidth float64) DashArray {
	switch style {
	case core.StyleDashed:
		return DashArray{strokeWidth * DashedMultiplier, strokeWidth * DashedMultiplier}
	case core.StyleDotted:
		return DashArray{0, strokeWidth * DottedGapFactor}
	default:
		return nil
	}
}

// IsSolid reports whether the pattern draws a continuous line.
func (d DashArray) IsSolid() bool {
	return len(d) == 0
}

// String formats the pattern as an SVG stroke-dasharray value: "none" or "4,4".
func (d DashArray) String() string {
	if d.IsSolid() {
		return "none"
	}
	parts := make([]string, len(d))
	for i, v := range d {
		parts[i] = geometry.FormatFloat(v)
	}
	return strings.Join(parts, ",")
}

// Clone returns a copy of the pattern that shares no storage with d.
func (d DashArray) Clone() DashArray {
	return slices.Clone(d)
}
