package export_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"image/png"
	"strings"
	"testing"

	"isogrid/config"
	"isogrid/core"
	"isogrid/export"
	"isogrid/scene"
)

func testDocument(t *testing.T) *export.Document {
	t.Helper()
	s := &scene.Scene{
		Nodes: []core.Node{
			{ID: "web", Tile: core.Tile{X: 0, Y: 0}, Label: "Web"},
			{ID: "db", Tile: core.Tile{X: 3, Y: 2}, Label: "DB", Color: "#f3c6a5"},
		},
		Connectors: []core.Connector{
			{
				ID: "c1",
				Anchors: []core.Anchor{
					{ID: "a1", Ref: core.AnchorRef{Node: "web"}},
					{ID: "a2", Ref: core.AnchorRef{Node: "db"}},
				},
				Width: 20,
				Style: core.StyleDashed,
			},
			{
				ID: "broken",
				Anchors: []core.Anchor{
					{ID: "b1", Ref: core.AnchorRef{Node: "web"}},
					{ID: "b2", Ref: core.AnchorRef{Node: "missing"}},
				},
				Width: 10,
				Style: core.StyleSolid,
			},
		},
	}
	doc, err := export.NewDocument(s, config.Default().WithTileSize(10))
	if err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	return doc
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected export.Format
		wantErr  bool
	}{
		{"json", export.FormatJSON, false},
		{"SVG", export.FormatSVG, false},
		{"png", export.FormatPNG, false},
		{"report", export.FormatReport, false},
		{"txt", export.FormatReport, false},
		{"mermaid", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := export.ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if got != tt.expected {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNewExporter(t *testing.T) {
	descriptions := export.GetFormatDescriptions()
	for _, format := range export.GetAvailableFormats() {
		t.Run(string(format), func(t *testing.T) {
			exporter, err := export.NewExporter(format)
			if err != nil {
				t.Fatalf("NewExporter(%v) returned error: %v", format, err)
			}
			if !strings.HasPrefix(exporter.GetFileExtension(), ".") {
				t.Errorf("extension = %q", exporter.GetFileExtension())
			}
			if exporter.GetFormatName() == "" || descriptions[format] == "" {
				t.Errorf("format %s has no name or description", format)
			}
		})
	}

	if _, err := export.NewExporter("invalid"); err == nil {
		t.Error("NewExporter with invalid format should return error")
	}
}

func TestJSONExporter(t *testing.T) {
	out, err := export.NewJSONExporter().Export(testDocument(t))
	if err != nil {
		t.Fatal(err)
	}

	var parsed struct {
		TileSize   float64 `json:"tileSize"`
		Nodes      []struct{ ID string }
		Connectors []struct {
			ID          string
			Error       string
			CSS         string
			DashArray   string
			StrokeWidth float64
			Tiles       []core.Tile
		}
	}
	if err := json.Unmarshal(out, &parsed); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if parsed.TileSize != 10 || len(parsed.Nodes) != 2 || len(parsed.Connectors) != 2 {
		t.Fatalf("parsed = %+v", parsed)
	}

	c := parsed.Connectors[0]
	if c.DashArray != "4,4" || c.StrokeWidth != 2 {
		t.Errorf("c1 dash=%q stroke=%v, want 4,4 and 2", c.DashArray, c.StrokeWidth)
	}
	if !strings.Contains(c.CSS, "transform: matrix(") {
		t.Errorf("css = %s", c.CSS)
	}
	if c.Tiles[0] != (core.Tile{}) || c.Tiles[len(c.Tiles)-1] != (core.Tile{X: 3, Y: 2}) {
		t.Errorf("tiles = %v", c.Tiles)
	}
	if !strings.Contains(parsed.Connectors[1].Error, "missing") {
		t.Errorf("broken connector error = %q", parsed.Connectors[1].Error)
	}
}

func TestSVGExporter(t *testing.T) {
	out, err := export.NewSVGExporter().Export(testDocument(t))
	if err != nil {
		t.Fatal(err)
	}
	svg := string(out)

	for _, want := range []string{
		"<svg",
		"viewBox=",
		`<g id="c1"`,
		"translate(",
		"matrix(",
		`stroke-dasharray="4,4"`,
		`stroke="#ffffff" stroke-width="2.8" stroke-opacity="0.7"`,
		`stroke-width="2"`,
		">Web<",
		">DB<",
		"</svg>",
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if strings.Contains(svg, `id="broken"`) {
		t.Error("skipped connector should not be drawn")
	}
	if n := strings.Count(svg, `stroke-dasharray="4,4"`); n != 2 {
		t.Errorf("outline and stroke should share the dash pattern, found it %d times", n)
	}
}

func TestPNGExporter(t *testing.T) {
	doc := testDocument(t)
	out, err := export.NewPNGExporter().Export(doc)
	if err != nil {
		t.Fatal(err)
	}

	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("invalid PNG: %v", err)
	}
	_, width, height := doc.Canvas()
	if b := img.Bounds(); b.Dx() != width || b.Dy() != height {
		t.Errorf("image is %dx%d, want %dx%d", b.Dx(), b.Dy(), width, height)
	}
}

func TestPNGExporterRejectsHugeCanvas(t *testing.T) {
	s := &scene.Scene{Nodes: []core.Node{
		{ID: "near", Tile: core.Tile{X: 0, Y: 0}},
		{ID: "far", Tile: core.Tile{X: 100000, Y: 100000}},
	}}
	doc, err := export.NewDocument(s, config.Default())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := export.NewPNGExporter().Export(doc); !errors.Is(err, export.ErrCanvasTooLarge) {
		t.Errorf("err = %v, want ErrCanvasTooLarge", err)
	}
	if _, err := export.NewSVGExporter().Export(doc); err != nil {
		t.Errorf("SVG export should not be limited: %v", err)
	}
}

func TestReportExporter(t *testing.T) {
	out, err := export.NewReportExporter().Export(testDocument(t))
	if err != nil {
		t.Fatal(err)
	}
	report := string(out)

	for _, want := range []string{
		"2 nodes, 2 connectors (1 skipped)",
		"web",
		"c1",
		"(0,0) -> (3,2)",
		"dash 4,4",
		"broken",
		"skipped",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
}

func TestCanvasContainsDrawing(t *testing.T) {
	doc := testDocument(t)
	origin, width, height := doc.Canvas()
	bo, size := doc.Derivation.ScreenBounds()

	if origin.X > bo.X || origin.Y > bo.Y {
		t.Errorf("canvas origin %+v is inside drawing origin %+v", origin, bo)
	}
	if float64(width) < size.Width || float64(height) < size.Height {
		t.Errorf("canvas %dx%d smaller than drawing %+v", width, height, size)
	}
}
