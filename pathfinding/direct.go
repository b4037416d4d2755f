package pathfinding

import (
	"fmt"
	"strings"

	"isogrid/core"
	"isogrid/geometry"
)

// RoutingStrategy defines how direct paths are routed.
type RoutingStrategy int

const (
	// HorizontalFirst routes along x, then along y.
	HorizontalFirst RoutingStrategy = iota
	// VerticalFirst routes along y, then along x.
	VerticalFirst
	// MiddleSplit turns at the midpoint of the longer axis.
	MiddleSplit
)

// String returns the configuration name of the strategy.
func (s RoutingStrategy) String() string {
	switch s {
	case HorizontalFirst:
		return "horizontal-first"
	case VerticalFirst:
		return "vertical-first"
	case MiddleSplit:
		return "middle-split"
	default:
		return fmt.Sprintf("RoutingStrategy(%d)", int(s))
	}
}

// ParseRoutingStrategy converts a configuration name to a strategy.
func ParseRoutingStrategy(s string) (RoutingStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "horizontal-first", "horizontal", "x":
		return HorizontalFirst, nil
	case "vertical-first", "vertical", "y":
		return VerticalFirst, nil
	case "middle-split", "middle", "split":
		return MiddleSplit, nil
	default:
		return 0, fmt.Errorf("unknown routing strategy: %s", s)
	}
}

// DirectPathFinder creates L-shaped or Z-shaped routes. Routes are monotonic and
// 4-connected, and the same inputs always produce the same tiles.
type DirectPathFinder struct {
	strategy RoutingStrategy
}

// NewDirectPathFinder creates a new direct path finder with the given strategy.
func NewDirectPathFinder(strategy RoutingStrategy) *DirectPathFinder {
	return &DirectPathFinder{strategy: strategy}
}

// Strategy returns the routing strategy.
func (d *DirectPathFinder) Strategy() RoutingStrategy {
	return d.strategy
}

// FindPath returns every tile from start to end.
func (d *DirectPathFinder) FindPath(start, end core.Tile) ([]core.Tile, error) {
	if start == end {
		return []core.Tile{start}, nil
	}

	var waypoints []core.Tile
	switch d.strategy {
	case HorizontalFirst:
		waypoints = []core.Tile{start, {X: end.X, Y: start.Y}, end}
	case VerticalFirst:
		waypoints = []core.Tile{start, {X: start.X, Y: end.Y}, end}
	case MiddleSplit:
		waypoints = d.middleSplitWaypoints(start, end)
	default:
		return nil, fmt.Errorf("unknown routing strategy: %v", d.strategy)
	}

	return expand(waypoints)
}

// middleSplitWaypoints turns halfway along the longer axis.
func (d *DirectPathFinder) middleSplitWaypoints(start, end core.Tile) []core.Tile {
	if start.Y == end.Y || start.X == end.X {
		return []core.Tile{start, end}
	}

	dx := geometry.Abs(end.X - start.X)
	dy := geometry.Abs(end.Y - start.Y)

	if dx > dy {
		midX := start.X + (end.X-start.X)/2
		return []core.Tile{start, {X: midX, Y: start.Y}, {X: midX, Y: end.Y}, end}
	}
	midY := start.Y + (end.Y-start.Y)/2
	return []core.Tile{start, {X: start.X, Y: midY}, {X: end.X, Y: midY}, end}
}

// String returns a string representation of the path finder.
func (d *DirectPathFinder) String() string {
	return fmt.Sprintf("DirectPathFinder{strategy=%s}", d.strategy)
}
