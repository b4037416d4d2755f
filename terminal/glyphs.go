package terminal

import "isogrid/core"

// GlyphSet defines the characters used to draw a scene in the terminal.
type GlyphSet struct {
	Ground rune
	Node   rune
	Anchor rune
	Solid  rune
	Dashed rune
	Dotted rune
	Failed rune
}

// Predefined glyph sets
var (
	// UnicodeGlyphs uses geometric shapes
	UnicodeGlyphs = GlyphSet{
		Ground: '·',
		Node:   '◆',
		Anchor: '◉',
		Solid:  '●',
		Dashed: '▪',
		Dotted: '∙',
		Failed: '✕',
	}

	// ASCIIGlyphs uses ASCII characters
	ASCIIGlyphs = GlyphSet{
		Ground: '.',
		Node:   '#',
		Anchor: '@',
		Solid:  'o',
		Dashed: '=',
		Dotted: ':',
		Failed: 'x',
	}
)

// GlyphsFor picks the glyph set for caps.
func GlyphsFor(caps Capabilities) GlyphSet {
	if caps.Unicode {
		return UnicodeGlyphs
	}
	return ASCIIGlyphs
}

// Path returns the glyph for a connector drawn in style.
func (g GlyphSet) Path(style core.ConnectorStyle) rune {
	switch style {
	case core.StyleDashed:
		return g.Dashed
	case core.StyleDotted:
		return g.Dotted
	default:
		return g.Solid
	}
}
