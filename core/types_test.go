package core

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestAddSubtractRoundTrip(t *testing.T) {
	tiles := []Tile{{0, 0}, {1, 2}, {-3, 7}, {100, -100}, {-1, -1}}

	for _, a := range tiles {
		for _, b := range tiles {
			if got := Subtract(Add(a, b), b); got != a {
				t.Errorf("Subtract(Add(%v, %v), %v) = %v, want %v", a, b, b, got, a)
			}
		}
	}
}

func TestEquals(t *testing.T) {
	if !Equals(Tile{3, 4}, Tile{3, 4}) {
		t.Error("expected equal tiles")
	}
	if Equals(Tile{3, 4}, Tile{4, 3}) {
		t.Error("expected different tiles")
	}
}

func TestToPixel(t *testing.T) {
	got := ToPixel(Tile{X: 3, Y: -2}, 100)
	if got.X != 300 || got.Y != -200 {
		t.Errorf("ToPixel = %+v, want {300 -200}", got)
	}
}

func TestRectangleOf(t *testing.T) {
	r := RectangleOf(Tile{3, 2}, Tile{0, 0}, Tile{1, 5})
	want := Rectangle{From: Tile{0, 0}, To: Tile{3, 5}}
	if r != want {
		t.Errorf("RectangleOf = %+v, want %+v", r, want)
	}
	if r.Width() != 4 || r.Height() != 6 {
		t.Errorf("size = %dx%d, want 4x6", r.Width(), r.Height())
	}

	single := RectangleOf(Tile{2, 2})
	if single.Width() != 1 || single.Height() != 1 {
		t.Errorf("single tile rectangle size = %dx%d, want 1x1", single.Width(), single.Height())
	}
}

func TestRectangleContains(t *testing.T) {
	// Corners given in reverse order still describe the same region.
	r := Rectangle{From: Tile{3, 2}, To: Tile{0, 0}}

	tests := []struct {
		tile Tile
		want bool
	}{
		{Tile{0, 0}, true},
		{Tile{3, 2}, true},
		{Tile{2, 1}, true},
		{Tile{4, 1}, false},
		{Tile{-1, 0}, false},
		{Tile{1, 3}, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.tile); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.tile, got, tt.want)
		}
	}
}

func TestAnchorRefValidate(t *testing.T) {
	tile := Tile{1, 1}
	tests := []struct {
		name    string
		ref     AnchorRef
		kind    string
		wantErr bool
	}{
		{"node", AnchorRef{Node: "a"}, "node", false},
		{"anchor", AnchorRef{Anchor: "x"}, "anchor", false},
		{"tile", AnchorRef{Tile: &tile}, "tile", false},
		{"empty", AnchorRef{}, "none", true},
		{"two fields", AnchorRef{Node: "a", Anchor: "x"}, "node", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ref.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got := tt.ref.Kind(); got != tt.kind {
				t.Errorf("Kind() = %s, want %s", got, tt.kind)
			}
		})
	}
}

func TestConnectorValidate(t *testing.T) {
	valid := Connector{
		ID: "c1",
		Anchors: []Anchor{
			{ID: "a1", Ref: AnchorRef{Node: "n1"}},
			{ID: "a2", Ref: AnchorRef{Node: "n2"}},
		},
		Width: 20,
		Style: StyleDashed,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(c *Connector)
		errMsg string
	}{
		{"one anchor", func(c *Connector) { c.Anchors = c.Anchors[:1] }, "expected 2 anchors"},
		{"same anchor ids", func(c *Connector) { c.Anchors[1].ID = "a1" }, "duplicate anchor id"},
		{"off-step width", func(c *Connector) { c.Width = 15 }, "width 15"},
		{"too wide", func(c *Connector) { c.Width = 40 }, "width 40"},
		{"bad style", func(c *Connector) { c.Style = "WAVY" }, "unknown connector style"},
		{"empty ref", func(c *Connector) { c.Anchors[0].Ref = AnchorRef{} }, "exactly one"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			c.Anchors = append([]Anchor(nil), valid.Anchors...)
			tt.mutate(&c)
			err := c.Validate()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("error %q does not contain %q", err, tt.errMsg)
			}
		})
	}
}

func TestValidConnectorWidth(t *testing.T) {
	for w, want := range map[int]bool{0: false, 10: true, 20: true, 25: false, 30: true, 40: false} {
		if got := ValidConnectorWidth(w); got != want {
			t.Errorf("ValidConnectorWidth(%d) = %v, want %v", w, got, want)
		}
	}
}

func TestParseConnectorStyle(t *testing.T) {
	for in, want := range map[string]ConnectorStyle{
		"solid":  StyleSolid,
		"":       StyleSolid,
		"Dashed": StyleDashed,
		"DOTTED": StyleDotted,
	} {
		got, err := ParseConnectorStyle(in)
		if err != nil {
			t.Errorf("ParseConnectorStyle(%q) error: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseConnectorStyle(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestConnectorJSON(t *testing.T) {
	data := `{
		"id": "c1",
		"anchors": [
			{"id": "a1", "ref": {"node": "n1"}},
			{"id": "a2", "ref": {"tile": {"x": 4, "y": -1}}}
		],
		"width": 10,
		"style": "DOTTED"
	}`

	var c Connector
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		t.Fatalf("Failed to unmarshal connector: %v", err)
	}
	if c.Source().Ref.Node != "n1" {
		t.Errorf("source ref = %+v, want node n1", c.Source().Ref)
	}
	if tile := c.Target().Ref.Tile; tile == nil || *tile != (Tile{4, -1}) {
		t.Errorf("target ref tile = %v, want (4,-1)", tile)
	}
	if c.Style != StyleDotted {
		t.Errorf("style = %s, want DOTTED", c.Style)
	}
}
