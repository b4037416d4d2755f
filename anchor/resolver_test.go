package anchor

import (
	"errors"
	"fmt"
	"testing"

	"isogrid/core"
)

func nodeRef(id string) core.AnchorRef   { return core.AnchorRef{Node: id} }
func anchorRef(id string) core.AnchorRef { return core.AnchorRef{Anchor: id} }

func connector(id string, a, b core.Anchor) core.Connector {
	return core.Connector{ID: id, Anchors: []core.Anchor{a, b}, Width: 10, Style: core.StyleSolid}
}

func TestResolveNodeReference(t *testing.T) {
	nodes := []core.Node{{ID: "a", Tile: core.Tile{X: 0, Y: 0}}, {ID: "b", Tile: core.Tile{X: 3, Y: 2}}}
	conn := connector("c1",
		core.Anchor{ID: "c1-from", Ref: nodeRef("a")},
		core.Anchor{ID: "c1-to", Ref: nodeRef("b")})

	r := NewResolver(nodes, []core.Connector{conn})
	tiles, err := r.ResolveConnector(conn)
	if err != nil {
		t.Fatalf("ResolveConnector failed: %v", err)
	}
	if tiles[0] != (core.Tile{X: 0, Y: 0}) || tiles[1] != (core.Tile{X: 3, Y: 2}) {
		t.Errorf("resolved %v, want [(0,0) (3,2)]", tiles)
	}
}

func TestResolveTracksNodeMoves(t *testing.T) {
	nodes := []core.Node{{ID: "n", Tile: core.Tile{X: 1, Y: 1}}}
	a := core.Anchor{ID: "x", Ref: nodeRef("n")}

	before, err := Resolve(a, nodes, nil)
	if err != nil {
		t.Fatal(err)
	}
	nodes[0].Tile = core.Tile{X: 7, Y: -3}
	after, err := Resolve(a, nodes, nil)
	if err != nil {
		t.Fatal(err)
	}
	if before != (core.Tile{X: 1, Y: 1}) || after != (core.Tile{X: 7, Y: -3}) {
		t.Errorf("before=%v after=%v", before, after)
	}
}

func TestResolveTwoHopIndirection(t *testing.T) {
	nodes := []core.Node{
		{ID: "a", Tile: core.Tile{X: 0, Y: 0}},
		{ID: "c", Tile: core.Tile{X: 5, Y: 5}},
	}
	// first -> second's anchor -> third's anchor -> node c
	connectors := []core.Connector{
		connector("first",
			core.Anchor{ID: "f1", Ref: nodeRef("a")},
			core.Anchor{ID: "f2", Ref: anchorRef("s2")}),
		connector("second",
			core.Anchor{ID: "s1", Ref: nodeRef("a")},
			core.Anchor{ID: "s2", Ref: anchorRef("t2")}),
		connector("third",
			core.Anchor{ID: "t1", Ref: nodeRef("a")},
			core.Anchor{ID: "t2", Ref: nodeRef("c")}),
	}

	r := NewResolver(nodes, connectors)
	got, err := r.Resolve(connectors[0].Target())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != (core.Tile{X: 5, Y: 5}) {
		t.Errorf("Resolve = %v, want (5,5)", got)
	}
}

func TestResolveFixedTile(t *testing.T) {
	tile := core.Tile{X: -2, Y: 9}
	got, err := Resolve(core.Anchor{ID: "p", Ref: core.AnchorRef{Tile: &tile}}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != tile {
		t.Errorf("Resolve = %v, want %v", got, tile)
	}
}

func TestResolveDanglingNode(t *testing.T) {
	got, err := Resolve(core.Anchor{ID: "x", Ref: nodeRef("missing")}, nil, nil)
	if !errors.Is(err, ErrDanglingReference) {
		t.Fatalf("err = %v, want dangling reference", err)
	}
	var dangling *DanglingReferenceError
	if !errors.As(err, &dangling) {
		t.Fatalf("err %T is not *DanglingReferenceError", err)
	}
	if dangling.Target != "missing" || dangling.Kind != "node" {
		t.Errorf("error = %+v", dangling)
	}
	if got != (core.Tile{}) {
		t.Errorf("returned tile %v alongside error, want zero tile", got)
	}
}

func TestResolveDanglingAnchor(t *testing.T) {
	conn := connector("c",
		core.Anchor{ID: "c1", Ref: anchorRef("nowhere")},
		core.Anchor{ID: "c2", Ref: nodeRef("n")})
	_, err := Resolve(conn.Source(), nil, []core.Connector{conn})
	if !errors.Is(err, ErrDanglingReference) {
		t.Fatalf("err = %v, want dangling reference", err)
	}
	if errors.Is(err, ErrCyclicReference) {
		t.Error("dangling error should not match cyclic sentinel")
	}
}

func TestResolveCycles(t *testing.T) {
	tests := []struct {
		name       string
		connectors []core.Connector
		start      string
	}{
		{
			name: "self reference",
			connectors: []core.Connector{connector("c",
				core.Anchor{ID: "a", Ref: anchorRef("a")},
				core.Anchor{ID: "b", Ref: nodeRef("n")})},
			start: "a",
		},
		{
			name: "two anchors",
			connectors: []core.Connector{
				connector("c1", core.Anchor{ID: "a", Ref: anchorRef("b")}, core.Anchor{ID: "a2", Ref: nodeRef("n")}),
				connector("c2", core.Anchor{ID: "b", Ref: anchorRef("a")}, core.Anchor{ID: "b2", Ref: nodeRef("n")}),
			},
			start: "a",
		},
		{
			name: "cycle not including start",
			connectors: []core.Connector{
				connector("c1", core.Anchor{ID: "start", Ref: anchorRef("x")}, core.Anchor{ID: "s2", Ref: nodeRef("n")}),
				connector("c2", core.Anchor{ID: "x", Ref: anchorRef("y")}, core.Anchor{ID: "y", Ref: anchorRef("x")}),
			},
			start: "start",
		},
	}

	nodes := []core.Node{{ID: "n"}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(nodes, tt.connectors)
			a, ok := r.Index().Lookup(tt.start)
			if !ok {
				t.Fatalf("anchor %s not indexed", tt.start)
			}
			_, err := r.Resolve(a)
			if !errors.Is(err, ErrCyclicReference) {
				t.Fatalf("err = %v, want cyclic reference", err)
			}
			var cyc *CyclicReferenceError
			if !errors.As(err, &cyc) || len(cyc.Chain) < 2 {
				t.Errorf("cycle chain missing: %v", err)
			}
		})
	}
}

func TestResolveLongChain(t *testing.T) {
	const hops = 200
	nodes := []core.Node{{ID: "end", Tile: core.Tile{X: 42, Y: -42}}}
	var connectors []core.Connector
	for i := 0; i < hops; i++ {
		next := anchorRef(fmt.Sprintf("a%d", i+1))
		if i == hops-1 {
			next = nodeRef("end")
		}
		connectors = append(connectors, connector(fmt.Sprintf("c%d", i),
			core.Anchor{ID: fmt.Sprintf("a%d", i), Ref: next},
			core.Anchor{ID: fmt.Sprintf("b%d", i), Ref: nodeRef("end")}))
	}

	got, err := Resolve(connectors[0].Source(), nodes, connectors)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got != (core.Tile{X: 42, Y: -42}) {
		t.Errorf("Resolve = %v, want (42,-42)", got)
	}
}

func TestIndexDuplicates(t *testing.T) {
	connectors := []core.Connector{
		connector("c1", core.Anchor{ID: "shared", Ref: nodeRef("a")}, core.Anchor{ID: "x", Ref: nodeRef("a")}),
		connector("c2", core.Anchor{ID: "shared", Ref: nodeRef("b")}, core.Anchor{ID: "y", Ref: nodeRef("b")}),
	}
	ix := NewIndex(connectors)

	if ix.Len() != 3 {
		t.Errorf("Len = %d, want 3", ix.Len())
	}
	if owner := ix.Owner("shared"); owner != "c1" {
		t.Errorf("Owner(shared) = %q, want first connector c1", owner)
	}
	if dups := ix.Duplicates(); len(dups) != 1 || dups[0] != "shared" {
		t.Errorf("Duplicates = %v, want [shared]", dups)
	}
}

func TestResolveDuplicateNodeFirstWins(t *testing.T) {
	nodes := []core.Node{
		{ID: "n", Tile: core.Tile{X: 0, Y: 0}},
		{ID: "n", Tile: core.Tile{X: 9, Y: 9}},
	}
	got, err := Resolve(core.Anchor{ID: "a", Ref: nodeRef("n")}, nodes, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != (core.Tile{X: 0, Y: 0}) {
		t.Errorf("resolved %v, want the first node's tile (0,0)", got)
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	nodes := []core.Node{{ID: "n", Tile: core.Tile{X: 2, Y: 3}}}
	conn := connector("c", core.Anchor{ID: "a", Ref: anchorRef("b")}, core.Anchor{ID: "b", Ref: nodeRef("n")})
	r := NewResolver(nodes, []core.Connector{conn})

	first, err1 := r.Resolve(conn.Source())
	second, err2 := r.Resolve(conn.Source())
	if err1 != nil || err2 != nil || first != second {
		t.Errorf("resolutions differ: %v/%v, %v/%v", first, err1, second, err2)
	}
}
