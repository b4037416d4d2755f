// Package geometry holds small numeric helpers shared by the projection and routing code.
package geometry

import "isogrid/core"

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Sign returns -1, 0 or 1.
func Sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	default:
		return 0
	}
}

// ManhattanDistance calculates the Manhattan distance between two tiles.
func ManhattanDistance(a, b core.Tile) int {
	return Abs(b.X-a.X) + Abs(b.Y-a.Y)
}

// IsHorizontal returns true if the segment from a to b is more horizontal than vertical.
func IsHorizontal(a, b core.Tile) bool {
	return Abs(b.X-a.X) > Abs(b.Y-a.Y)
}

// Adjacent reports whether two tiles share an edge (4-connectivity).
func Adjacent(a, b core.Tile) bool {
	return ManhattanDistance(a, b) == 1
}
