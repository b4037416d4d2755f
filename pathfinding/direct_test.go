package pathfinding

import (
	"testing"

	"isogrid/core"
)

var allStrategies = []struct {
	name     string
	strategy RoutingStrategy
}{
	{"HorizontalFirst", HorizontalFirst},
	{"VerticalFirst", VerticalFirst},
	{"MiddleSplit", MiddleSplit},
}

func TestDirectPathFinder_StraightLines(t *testing.T) {
	tests := []struct {
		name     string
		start    core.Tile
		end      core.Tile
		expected int // expected number of tiles
	}{
		{"Horizontal line right", core.Tile{X: 0, Y: 5}, core.Tile{X: 10, Y: 5}, 11},
		{"Horizontal line left", core.Tile{X: 10, Y: 5}, core.Tile{X: 0, Y: 5}, 11},
		{"Vertical line down", core.Tile{X: 5, Y: 0}, core.Tile{X: 5, Y: 10}, 11},
		{"Vertical line up", core.Tile{X: 5, Y: 10}, core.Tile{X: 5, Y: 0}, 11},
		{"Same point", core.Tile{X: 5, Y: 5}, core.Tile{X: 5, Y: 5}, 1},
	}

	for _, strategy := range allStrategies {
		t.Run(strategy.name, func(t *testing.T) {
			finder := NewDirectPathFinder(strategy.strategy)

			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					tiles, err := finder.FindPath(tt.start, tt.end)
					if err != nil {
						t.Fatalf("FindPath failed: %v", err)
					}

					if len(tiles) != tt.expected {
						t.Errorf("Expected %d tiles, got %d", tt.expected, len(tiles))
					}
					if tiles[0] != tt.start {
						t.Errorf("First tile = %v, want %v", tiles[0], tt.start)
					}
					if tiles[len(tiles)-1] != tt.end {
						t.Errorf("Last tile = %v, want %v", tiles[len(tiles)-1], tt.end)
					}
				})
			}
		})
	}
}

func TestDirectPathFinder_RouteShape(t *testing.T) {
	pairs := [][2]core.Tile{
		{{X: 0, Y: 0}, {X: 3, Y: 2}},
		{{X: 3, Y: 2}, {X: 0, Y: 0}},
		{{X: -4, Y: 7}, {X: 5, Y: -1}},
		{{X: 0, Y: 0}, {X: 1, Y: 9}},
		{{X: 2, Y: 2}, {X: -2, Y: -2}},
	}

	for _, strategy := range allStrategies {
		t.Run(strategy.name, func(t *testing.T) {
			finder := NewDirectPathFinder(strategy.strategy)
			for _, pair := range pairs {
				tiles, err := finder.FindPath(pair[0], pair[1])
				if err != nil {
					t.Fatalf("FindPath(%v, %v) failed: %v", pair[0], pair[1], err)
				}
				if !IsConnected(tiles) {
					t.Errorf("%v -> %v not 4-connected: %s", pair[0], pair[1], PathToString(tiles))
				}
				if !IsMonotonic(tiles) {
					t.Errorf("%v -> %v not monotonic: %s", pair[0], pair[1], PathToString(tiles))
				}
				dx := pair[1].X - pair[0].X
				dy := pair[1].Y - pair[0].Y
				if want := abs(dx) + abs(dy) + 1; len(tiles) != want {
					t.Errorf("%v -> %v has %d tiles, want %d", pair[0], pair[1], len(tiles), want)
				}
			}
		})
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func TestDirectPathFinder_Corners(t *testing.T) {
	start, end := core.Tile{X: 0, Y: 0}, core.Tile{X: 4, Y: 2}

	tests := []struct {
		strategy RoutingStrategy
		corners  []core.Tile
	}{
		{HorizontalFirst, []core.Tile{start, {X: 4, Y: 0}, end}},
		{VerticalFirst, []core.Tile{start, {X: 0, Y: 2}, end}},
		{MiddleSplit, []core.Tile{start, {X: 2, Y: 0}, {X: 2, Y: 2}, end}},
	}

	for _, tt := range tests {
		t.Run(tt.strategy.String(), func(t *testing.T) {
			tiles, err := NewDirectPathFinder(tt.strategy).FindPath(start, end)
			if err != nil {
				t.Fatal(err)
			}
			got := Corners(tiles)
			if len(got) != len(tt.corners) {
				t.Fatalf("Corners = %v, want %v", got, tt.corners)
			}
			for i := range got {
				if got[i] != tt.corners[i] {
					t.Errorf("Corner %d = %v, want %v", i, got[i], tt.corners[i])
				}
			}
		})
	}
}

func TestDirectPathFinder_Deterministic(t *testing.T) {
	for _, strategy := range allStrategies {
		finder := NewDirectPathFinder(strategy.strategy)
		a, _ := finder.FindPath(core.Tile{X: -3, Y: 8}, core.Tile{X: 6, Y: 1})
		b, _ := finder.FindPath(core.Tile{X: -3, Y: 8}, core.Tile{X: 6, Y: 1})
		if len(a) != len(b) {
			t.Fatalf("%s: lengths differ", strategy.name)
		}
		for i := range a {
			if a[i] != b[i] {
				t.Errorf("%s: tile %d differs: %v vs %v", strategy.name, i, a[i], b[i])
			}
		}
	}
}

func TestDirectPathFinder_UnknownStrategy(t *testing.T) {
	_, err := NewDirectPathFinder(RoutingStrategy(99)).FindPath(core.Tile{}, core.Tile{X: 1, Y: 1})
	if err == nil {
		t.Error("expected error for unknown strategy")
	}
}

func TestParseRoutingStrategy(t *testing.T) {
	for in, want := range map[string]RoutingStrategy{
		"":                 HorizontalFirst,
		"Horizontal-First": HorizontalFirst,
		"vertical":         VerticalFirst,
		"middle-split":     MiddleSplit,
	} {
		got, err := ParseRoutingStrategy(in)
		if err != nil || got != want {
			t.Errorf("ParseRoutingStrategy(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseRoutingStrategy("astar"); err == nil {
		t.Error("expected error for unknown name")
	}
}

func TestTurnsAndString(t *testing.T) {
	tiles, _ := NewDirectPathFinder(HorizontalFirst).FindPath(core.Tile{X: 0, Y: 0}, core.Tile{X: 2, Y: 1})
	if Turns(tiles) != 1 {
		t.Errorf("Turns = %d, want 1", Turns(tiles))
	}
	want := "Path (4 tiles, 1 turns): (0,0) → (2,0) → (2,1)"
	if got := PathToString(tiles); got != want {
		t.Errorf("PathToString = %q, want %q", got, want)
	}
	if PathToString(nil) != "empty path" {
		t.Error("empty path string")
	}
}

func TestGetDirection(t *testing.T) {
	origin := core.Tile{X: 0, Y: 0}
	tests := map[core.Tile]Direction{
		{X: 0, Y: -1}: North,
		{X: 1, Y: 0}:  East,
		{X: 0, Y: 1}:  South,
		{X: -1, Y: 0}: West,
		{X: 1, Y: 1}:  None,
	}
	for to, want := range tests {
		if got := GetDirection(origin, to); got != want {
			t.Errorf("GetDirection(%v) = %s, want %s", to, got, want)
		}
	}
}

func TestExpandRejectsDiagonal(t *testing.T) {
	if _, err := expand([]core.Tile{{X: 0, Y: 0}, {X: 1, Y: 1}}); err == nil {
		t.Error("expected error for diagonal waypoint pair")
	}
}
