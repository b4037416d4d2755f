// Package render derives pixel-space drawing parameters from resolved scene geometry.
// Everything here is a pure function of its inputs; painting happens elsewhere.
package render

import (
	"fmt"
	"slices"
	"strings"

	"isogrid/config"
	"isogrid/core"
	"isogrid/geometry"
	"isogrid/projection"
)

// Endpoint marker sizes in unprojected pixels at the default tile size of 100.
const (
	MarkerOuterRadius = 18.0
	MarkerInnerRadius = 12.0
	MarkerStrokeWidth = 6.0
)

// MarkerScale scales the marker sizes to tileSize.
func MarkerScale(tileSize float64) float64 {
	return tileSize / 100
}

// DrawOffset is the offset from a tile's corner to its centre, in unprojected pixels.
func DrawOffset(tileSize float64) core.PixelPoint {
	return core.PixelPoint{X: tileSize / 2, Y: tileSize / 2}
}

// AnchorOffset places an endpoint marker relative to the path rectangle.
type AnchorOffset struct {
	AnchorID string
	Tile     core.Tile       // resolved tile
	Offset   core.PixelPoint // (Tile - rectangle.From) * tileSize
	Center   core.PixelPoint // Offset + DrawOffset, the marker centre
}

// AnchorOffsets computes marker offsets for resolved anchor tiles in rectangle-local
// unprojected pixels. anchors and tiles are matched by index.
func AnchorOffsets(rect core.Rectangle, anchors []core.Anchor, tiles []core.Tile, tileSize float64) ([]AnchorOffset, error) {
	if len(anchors) != len(tiles) {
		return nil, fmt.Errorf("got %d anchors but %d resolved tiles", len(anchors), len(tiles))
	}
	origin := rect.Normalize().From
	draw := DrawOffset(tileSize)

	offsets := make([]AnchorOffset, len(anchors))
	for i, a := range anchors {
		delta := core.ToPixel(core.Subtract(tiles[i], origin), tileSize)
		offsets[i] = AnchorOffset{
			AnchorID: a.ID,
			Tile:     tiles[i],
			Offset:   delta,
			Center:   core.PixelPoint{X: delta.X + draw.X, Y: delta.Y + draw.Y},
		}
	}
	return offsets, nil
}

// Polyline maps each path tile to its centre in rectangle-local unprojected pixels.
func Polyline(path core.Path, tileSize float64) []core.PixelPoint {
	origin := path.Rectangle.Normalize().From
	draw := DrawOffset(tileSize)

	points := make([]core.PixelPoint, len(path.Tiles))
	for i, t := range path.Tiles {
		p := core.ToPixel(core.Subtract(t, origin), tileSize)
		points[i] = core.PixelPoint{X: p.X + draw.X, Y: p.Y + draw.Y}
	}
	return points
}

// ToScreen maps rectangle-local points through the projection to absolute screen pixels.
func ToScreen(points []core.PixelPoint, tr projection.Transform) []core.PixelPoint {
	out := make([]core.PixelPoint, len(points))
	for i, p := range points {
		out[i] = tr.ToScreen(p)
	}
	return out
}

// PointsString formats points as an SVG points attribute: "x1,y1 x2,y2".
func PointsString(points []core.PixelPoint) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = geometry.FormatFloat(p.X) + "," + geometry.FormatFloat(p.Y)
	}
	return strings.Join(parts, " ")
}

// ConnectorGeometry is everything a painter needs to draw one connector.
type ConnectorGeometry struct {
	ConnectorID string
	Label       string
	Path        core.Path

	Transform projection.Transform
	PixelSize core.Size

	Polyline       []core.PixelPoint // rectangle-local, unprojected
	ScreenPolyline []core.PixelPoint // absolute screen pixels

	Style        core.ConnectorStyle
	StrokeWidth  float64
	OutlineWidth float64
	DashArray    DashArray
	Color        string // connector colour
	StrokeColor  string // dark variant used for the stroke

	AnchorOffsets []AnchorOffset
}

// Clone returns a deep copy of g.
func (g ConnectorGeometry) Clone() ConnectorGeometry {
	g.Path.Tiles = slices.Clone(g.Path.Tiles)
	g.Polyline = slices.Clone(g.Polyline)
	g.ScreenPolyline = slices.Clone(g.ScreenPolyline)
	g.DashArray = g.DashArray.Clone()
	g.AnchorOffsets = slices.Clone(g.AnchorOffsets)
	return g
}

// ConnectorInput bundles the already-resolved data for one connector.
type ConnectorInput struct {
	Connector  core.Connector
	Endpoints  []core.Tile // resolved anchor tiles, one per anchor
	Path       core.Path
	Projection projection.Projection
}

// DeriveConnector builds the geometry bundle for one connector.
func DeriveConnector(in ConnectorInput, cfg *config.Config) (ConnectorGeometry, error) {
	tileSize := cfg.UnprojectedTileSize

	offsets, err := AnchorOffsets(in.Path.Rectangle, in.Connector.Anchors, in.Endpoints, tileSize)
	if err != nil {
		return ConnectorGeometry{}, fmt.Errorf("connector %s: %w", in.Connector.ID, err)
	}

	colour := in.Connector.Color
	if colour == "" {
		colour = cfg.ConnectorColor
	}
	stroke := StrokeWidth(tileSize, in.Connector.Width)
	local := Polyline(in.Path, tileSize)

	return ConnectorGeometry{
		ConnectorID:    in.Connector.ID,
		Label:          in.Connector.Label,
		Path:           in.Path,
		Transform:      in.Projection.Transform,
		PixelSize:      in.Projection.PixelSize,
		Polyline:       local,
		ScreenPolyline: ToScreen(local, in.Projection.Transform),
		Style:          in.Connector.Style,
		StrokeWidth:    stroke,
		OutlineWidth:   stroke * OutlineScale,
		DashArray:      Dash(in.Connector.Style, stroke),
		Color:          colour,
		StrokeColor:    ColorVariantOr(colour, Dark, 1, colour),
		AnchorOffsets:  offsets,
	}, nil
}
