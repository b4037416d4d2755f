package render

import (
	"isogrid/config"
	"isogrid/core"
	"isogrid/projection"
)

// NodeGeometry places one node's tile, label and icon on screen.
type NodeGeometry struct {
	NodeID   string
	Label    string
	IconID   string
	Tile     core.Tile
	Position core.PixelPoint    // top-left of the projected tile's bounding box
	Center   core.PixelPoint    // projected tile centre
	Size     core.Size          // projected tile size
	Outline  [4]core.PixelPoint // projected tile diamond
	Depth    int                // painter's order key, larger is nearer the viewer

	LabelOffset core.PixelPoint // label position relative to Center
	Color       string
	StrokeColor string
}

// DeriveNode computes the screen geometry for n.
func DeriveNode(n core.Node, p *projection.Projector, cfg *config.Config) NodeGeometry {
	proj := p.Project(core.Rectangle{From: n.Tile, To: n.Tile})

	colour := n.Color
	if colour == "" {
		colour = cfg.NodeColor
	}
	labelHeight := float64(n.LabelHeight)
	if labelHeight <= 0 {
		labelHeight = cfg.LabelFontSize
	}

	return NodeGeometry{
		NodeID:   n.ID,
		Label:    n.Label,
		IconID:   n.IconID,
		Tile:     n.Tile,
		Position: proj.Transform.Position,
		Center:   p.TileCenter(n.Tile),
		Size:     proj.PixelSize,
		Outline:  p.TileOutline(n.Tile),
		Depth:    n.Tile.X + n.Tile.Y,
		LabelOffset: core.PixelPoint{
			X: 0,
			Y: -(labelHeight + proj.PixelSize.Height/2),
		},
		Color:       colour,
		StrokeColor: ColorVariantOr(colour, Dark, 1, colour),
	}
}
