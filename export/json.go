package export

import (
	"encoding/json"

	"github.com/samber/lo"

	"isogrid/core"
	"isogrid/render"
	"isogrid/scene"
)

// JSONExporter exports derived geometry to JSON format
type JSONExporter struct{}

// NewJSONExporter creates a new JSON exporter
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

type jsonDocument struct {
	TileSize   float64         `json:"tileSize"`
	Nodes      []jsonNode      `json:"nodes"`
	Connectors []jsonConnector `json:"connectors"`
}

type jsonNode struct {
	ID          string          `json:"id"`
	Tile        core.Tile       `json:"tile"`
	Position    core.PixelPoint `json:"position"`
	Size        core.Size       `json:"size"`
	Depth       int             `json:"depth"`
	LabelOffset core.PixelPoint `json:"labelOffset"`
	Color       string          `json:"color"`
}

type jsonConnector struct {
	ID           string       `json:"id"`
	Error        string       `json:"error,omitempty"`
	CSS          string       `json:"css,omitempty"`
	Size         core.Size    `json:"size"`
	Tiles        []core.Tile  `json:"tiles,omitempty"`
	Points       string       `json:"points,omitempty"`
	StrokeWidth  float64      `json:"strokeWidth,omitempty"`
	OutlineWidth float64      `json:"outlineWidth,omitempty"`
	DashArray    string       `json:"dashArray,omitempty"`
	StrokeColor  string       `json:"strokeColor,omitempty"`
	Anchors      []jsonAnchor `json:"anchors,omitempty"`
}

type jsonAnchor struct {
	ID     string          `json:"id"`
	Tile   core.Tile       `json:"tile"`
	Offset core.PixelPoint `json:"offset"`
}

// Export converts the derivation to JSON
func (e *JSONExporter) Export(doc *Document) ([]byte, error) {
	out := jsonDocument{
		TileSize: doc.Config.UnprojectedTileSize,
		Nodes: lo.Map(doc.Derivation.Nodes, func(n render.NodeGeometry, _ int) jsonNode {
			return jsonNode{
				ID:          n.NodeID,
				Tile:        n.Tile,
				Position:    n.Position,
				Size:        n.Size,
				Depth:       n.Depth,
				LabelOffset: n.LabelOffset,
				Color:       n.Color,
			}
		}),
		Connectors: lo.Map(doc.Derivation.Connectors, func(r scene.ConnectorResult, _ int) jsonConnector {
			if !r.OK() {
				return jsonConnector{ID: r.ConnectorID, Error: r.Err.Error()}
			}
			g := r.Geometry
			return jsonConnector{
				ID:           g.ConnectorID,
				CSS:          g.Transform.CSS(),
				Size:         g.PixelSize,
				Tiles:        g.Path.Tiles,
				Points:       render.PointsString(g.Polyline),
				StrokeWidth:  g.StrokeWidth,
				OutlineWidth: g.OutlineWidth,
				DashArray:    g.DashArray.String(),
				StrokeColor:  g.StrokeColor,
				Anchors: lo.Map(g.AnchorOffsets, func(a render.AnchorOffset, _ int) jsonAnchor {
					return jsonAnchor{ID: a.AnchorID, Tile: a.Tile, Offset: a.Offset}
				}),
			}
		}),
	}
	return json.MarshalIndent(out, "", "  ")
}

// GetFileExtension returns the file extension for JSON
func (e *JSONExporter) GetFileExtension() string {
	return ".json"
}

// GetFormatName returns the format name
func (e *JSONExporter) GetFormatName() string {
	return "JSON"
}
