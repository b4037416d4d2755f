package core

// Add returns the component-wise sum of two tiles.
func Add(a, b Tile) Tile {
	return Tile{X: a.X + b.X, Y: a.Y + b.Y}
}

// Subtract returns a - b.
func Subtract(a, b Tile) Tile {
	return Tile{X: a.X - b.X, Y: a.Y - b.Y}
}

// Equals reports exact integer equality.
func Equals(a, b Tile) bool {
	return a.X == b.X && a.Y == b.Y
}

// ToPixel scales a tile by the unprojected tile size. The result is still unprojected.
func ToPixel(t Tile, tileSize float64) PixelPoint {
	return PixelPoint{X: float64(t.X) * tileSize, Y: float64(t.Y) * tileSize}
}

// RectangleOf returns the smallest rectangle containing every tile.
// With no tiles it returns the zero rectangle.
func RectangleOf(tiles ...Tile) Rectangle {
	if len(tiles) == 0 {
		return Rectangle{}
	}
	lo, hi := tiles[0], tiles[0]
	for _, t := range tiles[1:] {
		lo.X = min(lo.X, t.X)
		lo.Y = min(lo.Y, t.Y)
		hi.X = max(hi.X, t.X)
		hi.Y = max(hi.Y, t.Y)
	}
	return Rectangle{From: lo, To: hi}
}

// Union returns the smallest rectangle containing both rectangles.
func (r Rectangle) Union(other Rectangle) Rectangle {
	return RectangleOf(r.Min(), r.Max(), other.Min(), other.Max())
}
