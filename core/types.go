// Package core contains the fundamental types used throughout the isogrid geometry core.
package core

import (
	"fmt"
	"strings"
)

// Tile identifies a cell on the infinite isometric grid.
type Tile struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// String returns the tile as "(x,y)".
func (t Tile) String() string {
	return fmt.Sprintf("(%d,%d)", t.X, t.Y)
}

// PixelPoint is a position in pixel space. Only screen-space values are floating point.
type PixelPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a width/height pair in pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rectangle is a region of tile space defined by two opposite corners.
type Rectangle struct {
	From Tile `json:"from"`
	To   Tile `json:"to"`
}

// Min returns the component-wise minimum corner.
func (r Rectangle) Min() Tile {
	return Tile{X: min(r.From.X, r.To.X), Y: min(r.From.Y, r.To.Y)}
}

// Max returns the component-wise maximum corner.
func (r Rectangle) Max() Tile {
	return Tile{X: max(r.From.X, r.To.X), Y: max(r.From.Y, r.To.Y)}
}

// Width returns the number of tile columns covered, always at least 1.
func (r Rectangle) Width() int {
	return r.Max().X - r.Min().X + 1
}

// Height returns the number of tile rows covered, always at least 1.
func (r Rectangle) Height() int {
	return r.Max().Y - r.Min().Y + 1
}

// Contains checks if a tile lies within the rectangle (corners inclusive).
func (r Rectangle) Contains(t Tile) bool {
	lo, hi := r.Min(), r.Max()
	return t.X >= lo.X && t.X <= hi.X &&
		t.Y >= lo.Y && t.Y <= hi.Y
}

// Normalize returns the rectangle with From as the min corner and To as the max corner.
func (r Rectangle) Normalize() Rectangle {
	return Rectangle{From: r.Min(), To: r.Max()}
}

// Path is the derived route of a connector.
type Path struct {
	Rectangle Rectangle `json:"rectangle"`
	Tiles     []Tile    `json:"tiles"`
}

// Length returns the number of tiles in the path.
func (p Path) Length() int {
	return len(p.Tiles)
}

// IsEmpty returns true if the path has no tiles.
func (p Path) IsEmpty() bool {
	return len(p.Tiles) == 0
}

// Equal reports whether two paths have the same rectangle and tile sequence.
func (p Path) Equal(other Path) bool {
	if p.Rectangle != other.Rectangle || len(p.Tiles) != len(other.Tiles) {
		return false
	}
	for i := range p.Tiles {
		if p.Tiles[i] != other.Tiles[i] {
			return false
		}
	}
	return true
}

// Node is an entity placed on a single tile.
type Node struct {
	ID          string `json:"id"`
	Tile        Tile   `json:"tile"`
	Label       string `json:"label,omitempty"`
	LabelHeight int    `json:"labelHeight,omitempty"`
	IconID      string `json:"iconId,omitempty"`
	Color       string `json:"color,omitempty"`
}

// AnchorRef says where an anchor resolves to. Exactly one field is set.
type AnchorRef struct {
	Node   string `json:"node,omitempty"`   // resolve to this node's tile
	Anchor string `json:"anchor,omitempty"` // resolve to another anchor's position
	Tile   *Tile  `json:"tile,omitempty"`   // fixed position
}

// Kind returns a short name for the populated reference field.
func (r AnchorRef) Kind() string {
	switch {
	case r.Node != "":
		return "node"
	case r.Anchor != "":
		return "anchor"
	case r.Tile != nil:
		return "tile"
	default:
		return "none"
	}
}

// Validate checks that exactly one reference field is set.
func (r AnchorRef) Validate() error {
	set := 0
	if r.Node != "" {
		set++
	}
	if r.Anchor != "" {
		set++
	}
	if r.Tile != nil {
		set++
	}
	if set != 1 {
		return fmt.Errorf("anchor reference must set exactly one of node, anchor or tile (got %d)", set)
	}
	return nil
}

// Anchor is a connector endpoint.
type Anchor struct {
	ID  string    `json:"id"`
	Ref AnchorRef `json:"ref"`
}

// ConnectorStyle is the stroke style of a connector.
type ConnectorStyle string

const (
	StyleSolid  ConnectorStyle = "SOLID"
	StyleDashed ConnectorStyle = "DASHED"
	StyleDotted ConnectorStyle = "DOTTED"
)

// ParseConnectorStyle converts a case-insensitive name to a ConnectorStyle.
func ParseConnectorStyle(s string) (ConnectorStyle, error) {
	switch ConnectorStyle(strings.ToUpper(strings.TrimSpace(s))) {
	case StyleSolid, "":
		return StyleSolid, nil
	case StyleDashed:
		return StyleDashed, nil
	case StyleDotted:
		return StyleDotted, nil
	default:
		return "", fmt.Errorf("unknown connector style: %s", s)
	}
}

// Connector width steps.
const (
	MinConnectorWidth  = 10
	MaxConnectorWidth  = 30
	ConnectorWidthStep = 10

	DefaultConnectorWidth = MinConnectorWidth
)

// ValidConnectorWidth reports whether w is one of the discrete width steps.
func ValidConnectorWidth(w int) bool {
	return w >= MinConnectorWidth && w <= MaxConnectorWidth &&
		(w-MinConnectorWidth)%ConnectorWidthStep == 0
}

// Connector links two anchors.
type Connector struct {
	ID      string         `json:"id"`
	Anchors []Anchor       `json:"anchors"`
	Label   string         `json:"label,omitempty"`
	Color   string         `json:"color,omitempty"`
	Width   int            `json:"width"`
	Style   ConnectorStyle `json:"style"`
}

// Source returns the first anchor.
func (c Connector) Source() Anchor {
	return c.Anchors[0]
}

// Target returns the second anchor.
func (c Connector) Target() Anchor {
	return c.Anchors[1]
}

// Validate checks the connector's shape: two anchors with distinct ids, a width step
// and a known style.
func (c Connector) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("connector has no id")
	}
	if len(c.Anchors) != 2 {
		return fmt.Errorf("connector %s: expected 2 anchors, got %d", c.ID, len(c.Anchors))
	}
	if c.Anchors[0].ID == c.Anchors[1].ID {
		return fmt.Errorf("connector %s: duplicate anchor id %q", c.ID, c.Anchors[0].ID)
	}
	for _, a := range c.Anchors {
		if a.ID == "" {
			return fmt.Errorf("connector %s: anchor has no id", c.ID)
		}
		if err := a.Ref.Validate(); err != nil {
			return fmt.Errorf("connector %s anchor %s: %w", c.ID, a.ID, err)
		}
	}
	if !ValidConnectorWidth(c.Width) {
		return fmt.Errorf("connector %s: width %d is not one of %d..%d step %d",
			c.ID, c.Width, MinConnectorWidth, MaxConnectorWidth, ConnectorWidthStep)
	}
	if _, err := ParseConnectorStyle(string(c.Style)); err != nil {
		return fmt.Errorf("connector %s: %w", c.ID, err)
	}
	return nil
}
