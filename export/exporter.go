// Package export writes derived scene geometry to files: JSON, SVG, PNG and a text report.
package export

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"isogrid/config"
	"isogrid/core"
	"isogrid/scene"
)

// Format represents an export format
type Format string

const (
	// FormatJSON exports the derived geometry as JSON
	FormatJSON Format = "json"
	// FormatSVG exports a vector drawing
	FormatSVG Format = "svg"
	// FormatPNG exports a raster drawing
	FormatPNG Format = "png"
	// FormatReport exports a human-readable summary
	FormatReport Format = "report"
)

// Margin is the blank border around drawings, in screen pixels.
const Margin = 40.0

// MaxCanvasSide is the largest raster width or height, in pixels.
const MaxCanvasSide = 16384

// ErrCanvasTooLarge is returned when a raster export would exceed MaxCanvasSide.
var ErrCanvasTooLarge = errors.New("canvas too large")

// Document is what gets exported: a scene, its derivation and the config used for it.
type Document struct {
	Scene      *scene.Scene
	Derivation *scene.Derivation
	Config     *config.Config
}

// NewDocument derives s with cfg and wraps the result for export.
func NewDocument(s *scene.Scene, cfg *config.Config) (*Document, error) {
	d, err := scene.Derive(s, cfg)
	if err != nil {
		return nil, err
	}
	return &Document{Scene: s, Derivation: d, Config: cfg}, nil
}

// Canvas returns the drawing origin and size: the screen bounds of the derivation plus a
// margin, with room above for labels.
func (doc *Document) Canvas() (origin core.PixelPoint, width, height int) {
	o, size := doc.Derivation.ScreenBounds()
	top := Margin + doc.Config.LabelFontSize*2
	origin = core.PixelPoint{X: o.X - Margin, Y: o.Y - top}
	width = int(math.Min(math.Ceil(size.Width+2*Margin), math.MaxInt32))
	height = int(math.Min(math.Ceil(size.Height+Margin+top), math.MaxInt32))
	return origin, max(width, 1), max(height, 1)
}

// Exporter interface for different export formats
type Exporter interface {
	// Export renders the document in the target format
	Export(doc *Document) ([]byte, error)
	// GetFileExtension returns the recommended file extension for this format
	GetFileExtension() string
	// GetFormatName returns a human-readable name for this format
	GetFormatName() string
}

// NewExporter creates an exporter for the specified format
func NewExporter(format Format) (Exporter, error) {
	switch format {
	case FormatJSON:
		return NewJSONExporter(), nil
	case FormatSVG:
		return NewSVGExporter(), nil
	case FormatPNG:
		return NewPNGExporter(), nil
	case FormatReport:
		return NewReportExporter(), nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// ParseFormat converts a string to a Format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "svg":
		return FormatSVG, nil
	case "png":
		return FormatPNG, nil
	case "report", "text", "txt":
		return FormatReport, nil
	default:
		return "", fmt.Errorf("unknown format: %s", s)
	}
}

// GetAvailableFormats returns a list of all available export formats
func GetAvailableFormats() []Format {
	return []Format{
		FormatJSON,
		FormatSVG,
		FormatPNG,
		FormatReport,
	}
}

// GetFormatDescriptions returns human-readable descriptions of all formats
func GetFormatDescriptions() map[Format]string {
	return map[Format]string{
		FormatJSON:   "Derived geometry with CSS transforms",
		FormatSVG:    "Isometric vector drawing",
		FormatPNG:    "Isometric raster drawing",
		FormatReport: "Styled text summary of nodes and connectors",
	}
}
