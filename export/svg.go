package export

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"

	"isogrid/core"
	"isogrid/geometry"
	"isogrid/render"
)

// SVGExporter draws the derivation as an SVG document. Each connector is a group whose
// transform is the connector's projection, so strokes are squashed the same way the
// tiles are.
type SVGExporter struct{}

// NewSVGExporter creates a new SVG exporter
func NewSVGExporter() *SVGExporter {
	return &SVGExporter{}
}

// Export renders the document as SVG
func (e *SVGExporter) Export(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	canvas := svg.New(&buf)

	origin, width, height := doc.Canvas()
	minX, minY := int(math.Floor(origin.X)), int(math.Floor(origin.Y))
	canvas.Startview(width, height, minX, minY, width, height)
	canvas.Rect(minX, minY, width, height, fmt.Sprintf(`fill="%s"`, doc.Config.Background))

	scale := render.MarkerScale(doc.Config.UnprojectedTileSize)
	for _, g := range doc.Derivation.Drawable() {
		e.connector(canvas, g, scale)
	}
	for _, n := range doc.Derivation.Nodes {
		e.node(canvas, n, doc.Config.LabelFontSize)
	}

	canvas.End()
	return buf.Bytes(), nil
}

func (e *SVGExporter) connector(canvas *svg.SVG, g render.ConnectorGeometry, scale float64) {
	pos := g.Transform.Position
	canvas.Gtransform(fmt.Sprintf("translate(%s %s) %s",
		geometry.FormatFloat(pos.X), geometry.FormatFloat(pos.Y), g.Transform.Matrix.CSS()))
	canvas.Gid(g.ConnectorID)

	d := pathData(g.Polyline, false)
	canvas.Path(d, fmt.Sprintf(`fill="none" stroke="%s" stroke-width="%s" stroke-opacity="%s" stroke-linecap="round" stroke-linejoin="round" stroke-dasharray="%s"`,
		render.OutlineColor, geometry.FormatFloat(g.OutlineWidth), geometry.FormatFloat(render.OutlineOpacity),
		g.DashArray))
	canvas.Path(d, fmt.Sprintf(`fill="none" stroke="%s" stroke-width="%s" stroke-linecap="round" stroke-linejoin="round" stroke-dasharray="%s"`,
		g.StrokeColor, geometry.FormatFloat(g.StrokeWidth), g.DashArray))

	for _, a := range g.AnchorOffsets {
		x, y := int(math.Round(a.Center.X)), int(math.Round(a.Center.Y))
		canvas.Circle(x, y, radius(render.MarkerOuterRadius*scale), `fill="white"`)
		canvas.Circle(x, y, radius(render.MarkerInnerRadius*scale),
			fmt.Sprintf(`fill="none" stroke="%s" stroke-width="%s"`, g.StrokeColor, geometry.FormatFloat(render.MarkerStrokeWidth*scale)))
	}

	canvas.Gend()
	canvas.Gend()
}

func (e *SVGExporter) node(canvas *svg.SVG, n render.NodeGeometry, fontSize float64) {
	canvas.Path(pathData(n.Outline[:], true),
		fmt.Sprintf(`fill="%s" stroke="%s" stroke-width="2" stroke-linejoin="round"`, n.Color, n.StrokeColor))
	if n.Label == "" {
		return
	}
	x := int(math.Round(n.Center.X + n.LabelOffset.X))
	y := int(math.Round(n.Center.Y + n.LabelOffset.Y))
	canvas.Text(x, y, n.Label, fmt.Sprintf(`text-anchor="middle" font-family="monospace" font-size="%s"`, geometry.FormatFloat(fontSize)))
}

func radius(r float64) int {
	return max(1, int(math.Round(r)))
}

// pathData formats points as an SVG path: "M x y L x y ...", closed with Z if requested.
func pathData(points []core.PixelPoint, closed bool) string {
	var b strings.Builder
	for i, p := range points {
		if i == 0 {
			b.WriteString("M ")
		} else {
			b.WriteString(" L ")
		}
		b.WriteString(geometry.FormatFloat(p.X))
		b.WriteByte(' ')
		b.WriteString(geometry.FormatFloat(p.Y))
	}
	if closed && len(points) > 0 {
		b.WriteString(" Z")
	}
	return b.String()
}

// GetFileExtension returns the file extension for SVG
func (e *SVGExporter) GetFileExtension() string {
	return ".svg"
}

// GetFormatName returns the format name
func (e *SVGExporter) GetFormatName() string {
	return "SVG"
}
