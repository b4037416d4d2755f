package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"isogrid/config"
	"isogrid/export"
	"isogrid/logging"
	"isogrid/pathfinding"
	"isogrid/scene"
	"isogrid/terminal"
)

func main() {
	// Define command line flags
	var (
		view     = flag.Bool("view", false, "Show an interactive isometric preview in the terminal")
		validate = flag.Bool("validate", false, "Report scene problems and exit non-zero if there are any")
		debug    = flag.Bool("debug", false, "Log derivation details to stderr")
		help     = flag.Bool("help", false, "Show help")

		configFile = flag.String("config", defaultConfigPath(), "Config file of key = value lines")
		routing    = flag.String("routing", "", "Routing strategy: horizontal-first, vertical-first, middle-split")
		tileSize   = flag.Float64("tile-size", 0, "Unprojected tile size in pixels (overrides config)")

		// Export flags
		format     = flag.String("format", "svg", "Export format: json, svg, png, report")
		outputFile = flag.String("o", "", "Output file (default: stdout)")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] scene.json\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Derives isometric geometry for a scene of nodes and connectors.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s scene.json                     # SVG to stdout\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -format png -o out.png scene.json\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -format json -routing middle-split scene.json\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -view scene.json               # Terminal preview\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -validate scene.json\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nFormats:\n")
		for _, f := range export.GetAvailableFormats() {
			fmt.Fprintf(os.Stderr, "  %-8s %s\n", f, export.GetFormatDescriptions()[f])
		}
	}

	flag.Parse()

	if *help {
		flag.Usage()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Error: Please provide a scene JSON file\n\n")
		flag.Usage()
		os.Exit(1)
	}

	if *debug {
		logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg, err := loadConfig(*configFile, *routing, *tileSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	s, err := loadScene(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading scene: %v\n", err)
		os.Exit(1)
	}

	if *validate {
		problems := s.Validate()
		if len(problems) > 0 {
			fmt.Fprintln(os.Stderr, scene.Summary(problems))
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "Scene is valid")
		os.Exit(0)
	}

	if *view {
		deriver, err := scene.NewDeriver(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := terminal.Show(terminal.NewView(deriver, s)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Parse export format
	exportFormat, err := export.ParseFormat(*format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintf(os.Stderr, "Available formats: json, svg, png, report\n")
		os.Exit(1)
	}

	exporter, err := export.NewExporter(exportFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating exporter: %v\n", err)
		os.Exit(1)
	}

	doc, err := export.NewDocument(s, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error deriving scene: %v\n", err)
		os.Exit(1)
	}
	for _, r := range doc.Derivation.Failed() {
		fmt.Fprintf(os.Stderr, "Warning: connector %s skipped: %v\n", r.ConnectorID, r.Err)
	}

	output, err := exporter.Export(doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting scene: %v\n", err)
		os.Exit(1)
	}

	// Output the result
	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, output, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing to file: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Successfully exported to %s\n", *outputFile)
	} else {
		os.Stdout.Write(output)
	}
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(path, routing string, tileSize float64) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if routing != "" {
		if _, err := pathfinding.ParseRoutingStrategy(routing); err != nil {
			return nil, err
		}
		cfg.Routing = routing
	}
	if tileSize != 0 {
		cfg = cfg.WithTileSize(tileSize)
	}
	return cfg, cfg.Validate()
}

// loadScene reads and decodes a scene file, filling in missing ids.
func loadScene(filename string) (*scene.Scene, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	s, err := scene.Decode(file)
	if err != nil {
		return nil, err
	}
	scene.EnsureIDs(s)
	return s, nil
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".isogridrc")
}
