package scene

import (
	"fmt"
	"slices"

	"isogrid/core"
)

// Builder assembles a scene with generated ids.
type Builder struct {
	scene Scene
	err   error
}

// NewBuilder starts an empty scene.
func NewBuilder() *Builder {
	return &Builder{}
}

// Node adds a node on tile and returns its id.
func (b *Builder) Node(tile core.Tile, label string) string {
	id := NewID()
	b.scene.Nodes = append(b.scene.Nodes, core.Node{ID: id, Tile: tile, Label: label})
	return id
}

// Connect adds a solid connector between two references and returns its id.
func (b *Builder) Connect(from, to core.AnchorRef) string {
	return b.ConnectStyled(from, to, core.DefaultConnectorWidth, core.StyleSolid)
}

// ConnectStyled adds a connector with the given width and style and returns its id.
func (b *Builder) ConnectStyled(from, to core.AnchorRef, width int, style core.ConnectorStyle) string {
	c := core.Connector{
		ID: NewID(),
		Anchors: []core.Anchor{
			{ID: NewID(), Ref: from},
			{ID: NewID(), Ref: to},
		},
		Width: width,
		Style: style,
	}
	if err := c.Validate(); err != nil && b.err == nil {
		b.err = fmt.Errorf("connect: %w", err)
	}
	b.scene.Connectors = append(b.scene.Connectors, c)
	return c.ID
}

// Anchor returns the id of anchor i (0 source, 1 target) of connector id.
func (b *Builder) Anchor(connectorID string, i int) string {
	c, ok := b.scene.Connector(connectorID)
	if !ok || i < 0 || i >= len(c.Anchors) {
		return ""
	}
	return c.Anchors[i].ID
}

// Build returns the scene, or the first error from an invalid connector.
func (b *Builder) Build() (*Scene, error) {
	if b.err != nil {
		return nil, b.err
	}
	return &Scene{
		Nodes:      slices.Clone(b.scene.Nodes),
		Connectors: slices.Clone(b.scene.Connectors),
	}, nil
}

// ToNode references a node.
func ToNode(id string) core.AnchorRef {
	return core.AnchorRef{Node: id}
}

// ToAnchor references another anchor.
func ToAnchor(id string) core.AnchorRef {
	return core.AnchorRef{Anchor: id}
}

// ToTile references a fixed tile.
func ToTile(t core.Tile) core.AnchorRef {
	return core.AnchorRef{Tile: &t}
}
