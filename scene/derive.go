package scene

import (
	"fmt"
	"math"
	"sync"

	"github.com/samber/lo"

	"isogrid/anchor"
	"isogrid/config"
	"isogrid/core"
	"isogrid/logging"
	"isogrid/pathfinding"
	"isogrid/projection"
	"isogrid/render"
)

// ConnectorResult is the derived geometry of one connector, or the reason it was skipped.
type ConnectorResult struct {
	ConnectorID string
	Geometry    render.ConnectorGeometry
	Err         error
}

// OK reports whether the connector derived successfully.
func (r ConnectorResult) OK() bool {
	return r.Err == nil
}

// Derivation is the render geometry of a whole scene.
type Derivation struct {
	Nodes      []render.NodeGeometry // back to front
	Connectors []ConnectorResult     // scene order
}

// Failed returns the connectors that could not be derived.
func (d *Derivation) Failed() []ConnectorResult {
	return lo.Filter(d.Connectors, func(r ConnectorResult, _ int) bool { return !r.OK() })
}

// Drawable returns the geometry of every connector that derived successfully.
func (d *Derivation) Drawable() []render.ConnectorGeometry {
	return lo.FilterMap(d.Connectors, func(r ConnectorResult, _ int) (render.ConnectorGeometry, bool) {
		return r.Geometry, r.OK()
	})
}

// ScreenBounds returns the screen-space box around every node outline and connector
// polyline: min corner and size. An empty derivation gives zeros.
func (d *Derivation) ScreenBounds() (origin core.PixelPoint, size core.Size) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	include := func(p core.PixelPoint) {
		minX, minY = math.Min(minX, p.X), math.Min(minY, p.Y)
		maxX, maxY = math.Max(maxX, p.X), math.Max(maxY, p.Y)
	}

	for _, n := range d.Nodes {
		for _, p := range n.Outline {
			include(p)
		}
	}
	for _, g := range d.Drawable() {
		for _, p := range g.ScreenPolyline {
			include(p)
		}
	}
	if math.IsInf(minX, 1) {
		return core.PixelPoint{}, core.Size{}
	}
	return core.PixelPoint{X: minX, Y: minY}, core.Size{Width: maxX - minX, Height: maxY - minY}
}

// derivationKey is the full content a connector's geometry depends on. Any change to a
// resolved endpoint, width, style or colour gives a different key.
type derivationKey struct {
	connectorID string
	label       string
	source      string
	target      string
	from, to    core.Tile
	width       int
	style       core.ConnectorStyle
	color       string
}

// Deriver derives scene geometry, memoizing projections, routes and per-connector
// bundles across calls. Every Derive returns bundles the caller owns. It is safe for
// concurrent use.
type Deriver struct {
	cfg       *config.Config
	projector *projection.Projector
	paths     *pathfinding.Builder

	mu      sync.Mutex
	cache   map[derivationKey]render.ConnectorGeometry
	maxSize int
	hits    int
	misses  int
}

// NewDeriver validates cfg and creates a deriver for it.
func NewDeriver(cfg *config.Config) (*Deriver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	strategy, err := pathfinding.ParseRoutingStrategy(cfg.Routing)
	if err != nil {
		return nil, err
	}
	return &Deriver{
		cfg:       cfg,
		projector: projection.NewProjector(cfg),
		paths:     pathfinding.NewCachedBuilder(strategy, cfg.CacheSize),
		cache:     make(map[derivationKey]render.ConnectorGeometry),
		maxSize:   cfg.CacheSize,
	}, nil
}

// Config returns the configuration the deriver was built with.
func (d *Deriver) Config() *config.Config {
	return d.cfg
}

// Projector returns the shared projector.
func (d *Deriver) Projector() *projection.Projector {
	return d.projector
}

// Derive computes geometry for every node and connector in s. A connector that fails
// validation or resolution is reported in its result and does not affect the others.
func (d *Deriver) Derive(s *Scene) *Derivation {
	log := logging.Logger()
	resolver := anchor.NewResolver(s.Nodes, s.Connectors)

	out := &Derivation{
		Nodes: lo.Map(s.DrawOrder(), func(n core.Node, _ int) render.NodeGeometry {
			return render.DeriveNode(n, d.projector, d.cfg)
		}),
		Connectors: make([]ConnectorResult, 0, len(s.Connectors)),
	}

	for _, c := range s.Connectors {
		g, err := d.deriveConnector(resolver, c)
		if err != nil {
			log.Warn("connector skipped", "connector", c.ID, "error", err)
		}
		out.Connectors = append(out.Connectors, ConnectorResult{ConnectorID: c.ID, Geometry: g, Err: err})
	}
	return out
}

func (d *Deriver) deriveConnector(resolver *anchor.Resolver, c core.Connector) (render.ConnectorGeometry, error) {
	if err := c.Validate(); err != nil {
		return render.ConnectorGeometry{}, err
	}
	endpoints, err := resolver.ResolveConnector(c)
	if err != nil {
		return render.ConnectorGeometry{}, fmt.Errorf("connector %s: %w", c.ID, err)
	}

	key := derivationKey{
		connectorID: c.ID,
		label:       c.Label,
		source:      c.Source().ID,
		target:      c.Target().ID,
		from:        endpoints[0],
		to:          endpoints[1],
		width:       c.Width,
		style:       c.Style,
		color:       c.Color,
	}
	if g, ok := d.lookup(key); ok {
		return g.Clone(), nil
	}

	path, err := d.paths.Build(endpoints[0], endpoints[1])
	if err != nil {
		return render.ConnectorGeometry{}, fmt.Errorf("connector %s: %w", c.ID, err)
	}
	g, err := render.DeriveConnector(render.ConnectorInput{
		Connector:  c,
		Endpoints:  endpoints,
		Path:       path,
		Projection: d.projector.Project(path.Rectangle),
	}, d.cfg)
	if err != nil {
		return render.ConnectorGeometry{}, err
	}

	logging.Logger().Debug("connector derived", "connector", c.ID, "from", endpoints[0], "to", endpoints[1], "tiles", path.Length())
	d.store(key, g.Clone())
	return g, nil
}

func (d *Deriver) lookup(key derivationKey) (render.ConnectorGeometry, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	g, ok := d.cache[key]
	if ok {
		d.hits++
	} else {
		d.misses++
	}
	return g, ok
}

func (d *Deriver) store(key derivationKey, g render.ConnectorGeometry) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.cache[key]; !exists && d.maxSize > 0 && len(d.cache) >= d.maxSize {
		for k := range d.cache {
			delete(d.cache, k)
			break
		}
	}
	d.cache[key] = g
}

// CacheStats returns hit and miss counts and the number of cached connector bundles.
func (d *Deriver) CacheStats() (hits, misses, size int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.hits, d.misses, len(d.cache)
}

// Reset drops every memoized projection, route and bundle.
func (d *Deriver) Reset() {
	d.mu.Lock()
	d.cache = make(map[derivationKey]render.ConnectorGeometry)
	d.hits, d.misses = 0, 0
	d.mu.Unlock()

	d.projector.Clear()
	if cpf, ok := d.paths.Finder().(*pathfinding.CachedPathFinder); ok {
		cpf.ClearCache()
	}
}

// Derive is a one-shot derivation with a fresh deriver.
func Derive(s *Scene, cfg *config.Config) (*Derivation, error) {
	d, err := NewDeriver(cfg)
	if err != nil {
		return nil, err
	}
	return d.Derive(s), nil
}
