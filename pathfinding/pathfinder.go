// Package pathfinding routes connectors across the tile grid.
package pathfinding

import (
	"fmt"
	"strings"

	"isogrid/core"
	"isogrid/geometry"
)

// PathFinder finds a route between two tiles.
type PathFinder interface {
	// FindPath returns every tile of the route, start and end included.
	FindPath(start, end core.Tile) ([]core.Tile, error)
}

// Direction represents a movement direction.
type Direction int

const (
	North Direction = iota
	East
	South
	West
	None
)

// String returns the string representation of a Direction.
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return "None"
	}
}

// GetDirection returns the direction from p1 to p2, or None if they are not aligned.
func GetDirection(p1, p2 core.Tile) Direction {
	if p1.X == p2.X {
		if p1.Y < p2.Y {
			return South
		} else if p1.Y > p2.Y {
			return North
		}
	} else if p1.Y == p2.Y {
		if p1.X < p2.X {
			return East
		} else if p1.X > p2.X {
			return West
		}
	}
	return None
}

// IsAligned checks if three tiles are aligned horizontally or vertically.
func IsAligned(p1, p2, p3 core.Tile) bool {
	if p1.Y == p2.Y && p2.Y == p3.Y {
		return true
	}
	return p1.X == p2.X && p2.X == p3.X
}

// Corners reduces a tile sequence to its start, turning points and end.
func Corners(tiles []core.Tile) []core.Tile {
	if len(tiles) <= 2 {
		return append([]core.Tile(nil), tiles...)
	}

	corners := []core.Tile{tiles[0]}
	for i := 1; i < len(tiles)-1; i++ {
		if !IsAligned(tiles[i-1], tiles[i], tiles[i+1]) {
			corners = append(corners, tiles[i])
		}
	}
	return append(corners, tiles[len(tiles)-1])
}

// Turns counts direction changes along a tile sequence.
func Turns(tiles []core.Tile) int {
	return max(0, len(Corners(tiles))-2)
}

// IsConnected reports whether every consecutive pair of tiles shares an edge.
func IsConnected(tiles []core.Tile) bool {
	for i := 1; i < len(tiles); i++ {
		if !geometry.Adjacent(tiles[i-1], tiles[i]) {
			return false
		}
	}
	return true
}

// IsMonotonic reports whether the sequence never steps away from its end tile on
// either axis.
func IsMonotonic(tiles []core.Tile) bool {
	if len(tiles) == 0 {
		return true
	}
	end := tiles[len(tiles)-1]
	for i := 1; i < len(tiles); i++ {
		if geometry.ManhattanDistance(tiles[i], end) >= geometry.ManhattanDistance(tiles[i-1], end) {
			return false
		}
	}
	return true
}

// expand walks straight segments between axis-aligned waypoints, emitting every tile.
// Repeated waypoints are skipped.
func expand(waypoints []core.Tile) ([]core.Tile, error) {
	if len(waypoints) == 0 {
		return nil, nil
	}

	tiles := []core.Tile{waypoints[0]}
	current := waypoints[0]
	for _, next := range waypoints[1:] {
		if next == current {
			continue
		}
		if next.X != current.X && next.Y != current.Y {
			return nil, fmt.Errorf("waypoints %v and %v are not axis-aligned", current, next)
		}
		dx := geometry.Sign(next.X - current.X)
		dy := geometry.Sign(next.Y - current.Y)
		for current != next {
			current = core.Tile{X: current.X + dx, Y: current.Y + dy}
			tiles = append(tiles, current)
		}
	}
	return tiles, nil
}

// PathToString converts a tile sequence to a string for debugging.
func PathToString(tiles []core.Tile) string {
	if len(tiles) == 0 {
		return "empty path"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Path (%d tiles, %d turns): ", len(tiles), Turns(tiles))
	for i, t := range Corners(tiles) {
		if i > 0 {
			b.WriteString(" → ")
		}
		b.WriteString(t.String())
	}
	return b.String()
}
