package export

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"isogrid/core"
	"isogrid/render"
)

// PNGExporter rasterizes the derivation. Connector polylines and markers are placed
// through the isometric transform; nodes and labels are drawn in screen space.
type PNGExporter struct{}

// NewPNGExporter creates a new PNG exporter
func NewPNGExporter() *PNGExporter {
	return &PNGExporter{}
}

// Export renders the document as PNG
func (e *PNGExporter) Export(doc *Document) ([]byte, error) {
	origin, width, height := doc.Canvas()
	if width > MaxCanvasSide || height > MaxCanvasSide {
		return nil, fmt.Errorf("%w: %dx%d, limit is %d per side", ErrCanvasTooLarge, width, height, MaxCanvasSide)
	}

	dc := gg.NewContext(width, height)
	if err := setHex(dc, doc.Config.Background, 1); err != nil {
		dc.SetColor(color.White)
	}
	dc.Clear()

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	face := truetype.NewFace(ttfFont, &truetype.Options{
		Size:    doc.Config.LabelFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	dc.SetFontFace(face)

	// Draw connections first (so they appear behind nodes)
	for _, g := range doc.Derivation.Drawable() {
		dc.Push()
		dc.Translate(-origin.X, -origin.Y)
		dc.Scale(1, doc.Config.VerticalScale)
		dc.Rotate(doc.Config.RotationRadians())
		e.connector(dc, g, doc.Config.UnprojectedTileSize)
		dc.Pop()
	}

	for _, n := range doc.Derivation.Nodes {
		e.node(dc, n, origin)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// connector draws g in absolute unprojected pixels; the context carries the projection.
func (e *PNGExporter) connector(dc *gg.Context, g render.ConnectorGeometry, tileSize float64) {
	base := core.ToPixel(g.Path.Rectangle.Normalize().From, tileSize)
	abs := func(p core.PixelPoint) core.PixelPoint {
		return core.PixelPoint{X: base.X + p.X, Y: base.Y + p.Y}
	}

	dc.SetLineCapRound()
	dc.SetLineJoinRound()

	stroke := func(width float64, dash render.DashArray) {
		for i, p := range g.Polyline {
			q := abs(p)
			if i == 0 {
				dc.MoveTo(q.X, q.Y)
			} else {
				dc.LineTo(q.X, q.Y)
			}
		}
		dc.SetLineWidth(width)
		dc.SetDash(dash...)
		dc.Stroke()
	}

	setHex(dc, render.OutlineColor, render.OutlineOpacity)
	stroke(g.OutlineWidth, g.DashArray)
	setHex(dc, g.StrokeColor, 1)
	stroke(g.StrokeWidth, g.DashArray)

	dc.SetDash()
	scale := render.MarkerScale(tileSize)
	for _, a := range g.AnchorOffsets {
		c := abs(a.Center)
		dc.SetColor(color.White)
		dc.DrawCircle(c.X, c.Y, render.MarkerOuterRadius*scale)
		dc.Fill()
		setHex(dc, g.StrokeColor, 1)
		dc.SetLineWidth(render.MarkerStrokeWidth * scale)
		dc.DrawCircle(c.X, c.Y, render.MarkerInnerRadius*scale)
		dc.Stroke()
	}
}

func (e *PNGExporter) node(dc *gg.Context, n render.NodeGeometry, origin core.PixelPoint) {
	for i, p := range n.Outline {
		if i == 0 {
			dc.MoveTo(p.X-origin.X, p.Y-origin.Y)
		} else {
			dc.LineTo(p.X-origin.X, p.Y-origin.Y)
		}
	}
	dc.ClosePath()
	setHex(dc, n.Color, 1)
	dc.FillPreserve()
	setHex(dc, n.StrokeColor, 1)
	dc.SetLineWidth(2)
	dc.Stroke()

	if n.Label != "" {
		dc.SetColor(color.Black)
		dc.DrawStringAnchored(n.Label,
			n.Center.X+n.LabelOffset.X-origin.X,
			n.Center.Y+n.LabelOffset.Y-origin.Y,
			0.5, 0.5)
	}
}

// setHex sets the current colour from a hex string with the given opacity.
func setHex(dc *gg.Context, hex string, alpha float64) error {
	c, err := colorful.Hex(hex)
	if err != nil {
		dc.SetColor(color.Black)
		return err
	}
	dc.SetRGBA(c.R, c.G, c.B, alpha)
	return nil
}

// GetFileExtension returns the file extension for PNG
func (e *PNGExporter) GetFileExtension() string {
	return ".png"
}

// GetFormatName returns the format name
func (e *PNGExporter) GetFormatName() string {
	return "PNG"
}
