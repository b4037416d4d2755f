// Package anchor resolves connector endpoints to tile positions.
//
// Anchors form a reference graph: an anchor points at a node, at a fixed tile, or at
// another anchor. Resolution walks that graph with a visited set, so any chain either
// ends at a tile or reports a cycle.
package anchor

import (
	"github.com/samber/lo"

	"isogrid/core"
)

// Index is the flattened set of anchors across all connectors of a scene.
// When two connectors reuse an anchor id the first one in connector order wins.
type Index struct {
	anchors    map[string]core.Anchor
	owners     map[string]string
	duplicates []string
}

type ownedAnchor struct {
	owner  string
	anchor core.Anchor
}

// NewIndex builds the anchor index for connectors.
func NewIndex(connectors []core.Connector) *Index {
	all := lo.FlatMap(connectors, func(c core.Connector, _ int) []ownedAnchor {
		return lo.Map(c.Anchors, func(a core.Anchor, _ int) ownedAnchor {
			return ownedAnchor{owner: c.ID, anchor: a}
		})
	})

	ix := &Index{
		anchors: make(map[string]core.Anchor, len(all)),
		owners:  make(map[string]string, len(all)),
	}
	for _, oa := range all {
		if _, exists := ix.anchors[oa.anchor.ID]; exists {
			ix.duplicates = append(ix.duplicates, oa.anchor.ID)
			continue
		}
		ix.anchors[oa.anchor.ID] = oa.anchor
		ix.owners[oa.anchor.ID] = oa.owner
	}
	ix.duplicates = lo.Uniq(ix.duplicates)
	return ix
}

// Lookup returns the anchor with the given id.
func (ix *Index) Lookup(id string) (core.Anchor, bool) {
	a, ok := ix.anchors[id]
	return a, ok
}

// Owner returns the id of the connector that owns the anchor, or "".
func (ix *Index) Owner(id string) string {
	return ix.owners[id]
}

// Duplicates lists anchor ids used by more than one connector.
func (ix *Index) Duplicates() []string {
	return ix.duplicates
}

// Len returns the number of distinct anchor ids.
func (ix *Index) Len() int {
	return len(ix.anchors)
}

// Resolver resolves anchors against one scene snapshot.
type Resolver struct {
	nodes   map[string]core.Node
	anchors *Index
}

// NewResolver indexes nodes and connectors. The inputs are not retained. When ids
// repeat, the first node with that id wins.
func NewResolver(nodes []core.Node, connectors []core.Connector) *Resolver {
	nodeID := func(n core.Node) string {
		return n.ID
	}
	return &Resolver{
		nodes:   lo.KeyBy(lo.UniqBy(nodes, nodeID), nodeID),
		anchors: NewIndex(connectors),
	}
}

// Index returns the flattened anchor index.
func (r *Resolver) Index() *Index {
	return r.anchors
}

// Resolve returns the tile that a resolves to.
//
// A node reference yields the node's tile. An anchor reference is followed until it
// reaches a node or fixed tile. Revisiting an anchor yields *CyclicReferenceError; a
// missing node or anchor yields *DanglingReferenceError. On error the zero tile is
// returned.
func (r *Resolver) Resolve(a core.Anchor) (core.Tile, error) {
	visited := map[string]bool{a.ID: true}
	chain := []string{a.ID}
	current := a

	for {
		ref := current.Ref
		switch {
		case ref.Node != "":
			node, ok := r.nodes[ref.Node]
			if !ok {
				return core.Tile{}, &DanglingReferenceError{AnchorID: current.ID, Kind: "node", Target: ref.Node}
			}
			return node.Tile, nil

		case ref.Anchor != "":
			if visited[ref.Anchor] {
				return core.Tile{}, &CyclicReferenceError{Chain: append(chain, ref.Anchor)}
			}
			next, ok := r.anchors.Lookup(ref.Anchor)
			if !ok {
				return core.Tile{}, &DanglingReferenceError{AnchorID: current.ID, Kind: "anchor", Target: ref.Anchor}
			}
			visited[next.ID] = true
			chain = append(chain, next.ID)
			current = next

		case ref.Tile != nil:
			return *ref.Tile, nil

		default:
			return core.Tile{}, &DanglingReferenceError{AnchorID: current.ID, Kind: "reference", Target: ""}
		}
	}
}

// ResolveConnector resolves every anchor of c in order. It stops at the first error.
func (r *Resolver) ResolveConnector(c core.Connector) ([]core.Tile, error) {
	tiles := make([]core.Tile, 0, len(c.Anchors))
	for _, a := range c.Anchors {
		t, err := r.Resolve(a)
		if err != nil {
			return nil, err
		}
		tiles = append(tiles, t)
	}
	return tiles, nil
}

// Resolve is a convenience wrapper that builds a Resolver for a single lookup.
func Resolve(a core.Anchor, nodes []core.Node, connectors []core.Connector) (core.Tile, error) {
	return NewResolver(nodes, connectors).Resolve(a)
}
