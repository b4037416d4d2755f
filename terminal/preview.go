// Package terminal draws a rough isometric preview of a scene with tcell.
package terminal

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"isogrid/core"
	"isogrid/projection"
	"isogrid/scene"
)

// View is everything the preview needs for one frame.
type View struct {
	Scene      *scene.Scene
	Derivation *scene.Derivation
	Projector  *projection.Projector
}

// NewView derives s with d and bundles the result for drawing.
func NewView(d *scene.Deriver, s *scene.Scene) View {
	return View{Scene: s, Derivation: d.Derive(s), Projector: d.Projector()}
}

// Cell is a terminal position.
type Cell struct {
	Col, Row int
}

// Preview maps tiles to terminal cells through the real projection: a projected tile
// is four cells wide and two rows tall.
type Preview struct {
	screen tcell.Screen
	glyphs GlyphSet
	color  bool

	panX, panY int
}

// NewPreview creates a preview drawing onto screen.
func NewPreview(screen tcell.Screen, caps Capabilities) *Preview {
	return &Preview{
		screen: screen,
		glyphs: GlyphsFor(caps),
		color:  caps.SupportsColor(),
	}
}

// Pan shifts the drawing by whole cells.
func (p *Preview) Pan(dCol, dRow int) {
	p.panX += dCol
	p.panY += dRow
}

// cellOf returns the unshifted cell of a tile's projected centre.
func cellOf(proj *projection.Projector, t core.Tile) Cell {
	tile := proj.Project(core.Rectangle{}).PixelSize
	c := proj.TileCenter(t)
	return Cell{
		Col: int(math.Round(c.X / (tile.Width / 4))),
		Row: int(math.Round(c.Y / (tile.Height / 2))),
	}
}

// Layout returns the cell of every tile in the view, shifted so the drawing is centred
// on a w×h screen (one row is kept for the status line).
func (p *Preview) Layout(v View, w, h int) func(core.Tile) Cell {
	minCol, minRow := math.MaxInt, math.MaxInt
	maxCol, maxRow := math.MinInt, math.MinInt
	include := func(t core.Tile) {
		c := cellOf(v.Projector, t)
		minCol, maxCol = min(minCol, c.Col), max(maxCol, c.Col)
		minRow, maxRow = min(minRow, c.Row), max(maxRow, c.Row)
	}
	for _, n := range v.Derivation.Nodes {
		include(n.Tile)
	}
	for _, g := range v.Derivation.Drawable() {
		for _, t := range g.Path.Tiles {
			include(t)
		}
	}
	if minCol == math.MaxInt {
		minCol, maxCol, minRow, maxRow = 0, 0, 0, 0
	}

	offCol := (w-(maxCol-minCol+1))/2 - minCol + p.panX
	offRow := (h-1-(maxRow-minRow+1))/2 - minRow + p.panY
	return func(t core.Tile) Cell {
		c := cellOf(v.Projector, t)
		return Cell{Col: c.Col + offCol, Row: c.Row + offRow}
	}
}

// Draw renders one frame and shows it.
func (p *Preview) Draw(v View) {
	p.screen.Clear()
	w, h := p.screen.Size()
	at := p.Layout(v, w, h)

	if bounds, ok := v.Scene.Bounds(); ok {
		lo, hi := bounds.Min(), bounds.Max()
		p.ground(at, core.Rectangle{
			From: core.Tile{X: lo.X - 1, Y: lo.Y - 1},
			To:   core.Tile{X: hi.X + 1, Y: hi.Y + 1},
		}, w, h)
	}

	for _, g := range v.Derivation.Drawable() {
		st := p.style(g.StrokeColor)
		glyph := p.glyphs.Path(g.Style)
		for _, t := range g.Path.Tiles {
			c := at(t)
			p.put(c.Col, c.Row, glyph, st)
		}
		for _, a := range g.AnchorOffsets {
			c := at(a.Tile)
			p.put(c.Col, c.Row, p.glyphs.Anchor, st)
		}
	}

	for _, n := range v.Derivation.Nodes {
		c := at(n.Tile)
		p.put(c.Col, c.Row, p.glyphs.Node, p.style(n.Color).Bold(true))
		if n.Label != "" {
			p.label(c.Col, c.Row-1, n.Label, w)
		}
	}

	failed := len(v.Derivation.Failed())
	status := fmt.Sprintf(" %d nodes  %d connectors", len(v.Derivation.Nodes), len(v.Derivation.Connectors))
	if failed > 0 {
		status += fmt.Sprintf("  %c %d skipped", p.glyphs.Failed, failed)
	}
	status += "  arrows pan  q quit"
	p.text(0, h-1, runewidth.Truncate(status, w, ""), tcell.StyleDefault.Reverse(true))

	p.screen.Show()
}

// ground marks every on-screen cell whose tile lies in area. It walks the screen and
// maps each cell back to a tile, so the work is bounded by the screen size.
func (p *Preview) ground(at func(core.Tile) Cell, area core.Rectangle, w, h int) {
	o := at(core.Tile{})
	ex, ey := at(core.Tile{X: 1}), at(core.Tile{Y: 1})
	ax, ay := float64(ex.Col-o.Col), float64(ex.Row-o.Row)
	bx, by := float64(ey.Col-o.Col), float64(ey.Row-o.Row)
	det := ax*by - bx*ay
	if det == 0 {
		return
	}

	st := p.style("#565f89")
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			dc, dr := float64(col-o.Col), float64(row-o.Row)
			t := core.Tile{
				X: int(math.Round((dc*by - bx*dr) / det)),
				Y: int(math.Round((ax*dr - ay*dc) / det)),
			}
			if area.Contains(t) && at(t) == (Cell{Col: col, Row: row}) {
				p.put(col, row, p.glyphs.Ground, st)
			}
		}
	}
}

// label centres text on col, truncated to a third of the screen width.
func (p *Preview) label(col, row int, text string, screenWidth int) {
	text = runewidth.Truncate(text, max(screenWidth/3, 4), "…")
	p.text(col-runewidth.StringWidth(text)/2, row, text, tcell.StyleDefault)
}

func (p *Preview) text(col, row int, text string, st tcell.Style) {
	for _, r := range text {
		p.put(col, row, r, st)
		col += runewidth.RuneWidth(r)
	}
}

func (p *Preview) put(col, row int, r rune, st tcell.Style) {
	w, h := p.screen.Size()
	if col < 0 || row < 0 || col >= w || row >= h {
		return
	}
	p.screen.SetContent(col, row, r, nil, st)
}

func (p *Preview) style(hex string) tcell.Style {
	if !p.color {
		return tcell.StyleDefault
	}
	return tcell.StyleDefault.Foreground(tcell.GetColor(hex))
}
