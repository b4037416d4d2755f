package pathfinding

import (
	"fmt"

	"isogrid/core"
)

// Builder turns resolved anchor tiles into connector paths.
type Builder struct {
	finder PathFinder
}

// NewBuilder creates a builder that routes with finder.
func NewBuilder(finder PathFinder) *Builder {
	return &Builder{finder: finder}
}

// NewCachedBuilder creates a builder around a cached DirectPathFinder.
func NewCachedBuilder(strategy RoutingStrategy, cacheSize int) *Builder {
	return NewBuilder(NewCachedPathFinder(NewDirectPathFinder(strategy), cacheSize))
}

// Finder returns the underlying path finder.
func (b *Builder) Finder() PathFinder {
	return b.finder
}

// Build routes from one tile to another. The rectangle is the bounding box of every
// tile the route visits, so it always contains the whole path. Equal endpoints give a
// single-tile path.
func (b *Builder) Build(from, to core.Tile) (core.Path, error) {
	tiles, err := b.finder.FindPath(from, to)
	if err != nil {
		return core.Path{}, fmt.Errorf("route %v -> %v: %w", from, to, err)
	}
	if len(tiles) == 0 || tiles[0] != from || tiles[len(tiles)-1] != to {
		return core.Path{}, fmt.Errorf("route %v -> %v: finder returned mismatched endpoints", from, to)
	}
	return core.Path{
		Rectangle: core.RectangleOf(tiles...),
		Tiles:     tiles,
	}, nil
}

// BuildPath routes with a fresh, uncached horizontal-first finder.
func BuildPath(from, to core.Tile) (core.Path, error) {
	return NewBuilder(NewDirectPathFinder(HorizontalFirst)).Build(from, to)
}
