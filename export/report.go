package export

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"isogrid/geometry"
	"isogrid/render"
	"isogrid/scene"
)

// ReportExporter writes a styled text summary of the derivation.
type ReportExporter struct {
	title   lipgloss.Style
	heading lipgloss.Style
	failed  lipgloss.Style
	dim     lipgloss.Style
}

// NewReportExporter creates a new report exporter
func NewReportExporter() *ReportExporter {
	return &ReportExporter{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7aa2f7")),
		heading: lipgloss.NewStyle().Bold(true).Underline(true),
		failed:  lipgloss.NewStyle().Foreground(lipgloss.Color("#f7768e")),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89")),
	}
}

// Export renders the report
func (e *ReportExporter) Export(doc *Document) ([]byte, error) {
	d := doc.Derivation
	failed := d.Failed()

	sections := []string{
		e.title.Render(fmt.Sprintf("isogrid scene: %d nodes, %d connectors (%d skipped)",
			len(d.Nodes), len(d.Connectors), len(failed))),
		"",
		e.heading.Render("Nodes"),
	}
	for _, n := range d.Nodes {
		sections = append(sections, e.nodeLine(n))
	}

	sections = append(sections, "", e.heading.Render("Connectors"))
	for _, r := range d.Connectors {
		sections = append(sections, e.connectorLine(r))
	}

	if bounds, ok := doc.Scene.Bounds(); ok {
		sections = append(sections, "", e.dim.Render(fmt.Sprintf("tiles %v .. %v", bounds.From, bounds.To)))
	}
	return []byte(lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"), nil
}

func (e *ReportExporter) nodeLine(n render.NodeGeometry) string {
	label := n.Label
	if label == "" {
		label = "-"
	}
	return fmt.Sprintf("  %-12s %-10v depth %-4d %s", n.NodeID, n.Tile, n.Depth, label)
}

func (e *ReportExporter) connectorLine(r scene.ConnectorResult) string {
	if !r.OK() {
		return e.failed.Render(fmt.Sprintf("  %-12s skipped: %v", r.ConnectorID, r.Err))
	}
	g := r.Geometry
	return fmt.Sprintf("  %-12s %v -> %v  %d tiles  stroke %s  dash %s",
		g.ConnectorID,
		g.Path.Tiles[0], g.Path.Tiles[g.Path.Length()-1],
		g.Path.Length(),
		geometry.FormatFloat(g.StrokeWidth),
		g.DashArray)
}

// GetFileExtension returns the file extension for reports
func (e *ReportExporter) GetFileExtension() string {
	return ".txt"
}

// GetFormatName returns the format name
func (e *ReportExporter) GetFormatName() string {
	return "Report"
}
