// Package projection maps rectangles of tile space into isometric screen space.
package projection

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"isogrid/config"
	"isogrid/core"
	"isogrid/geometry"
	"isogrid/logging"
)

// Transform places a projected rectangle on screen.
//
// Matrix maps rectangle-local unprojected pixels (origin at the top-left corner of the
// rectangle's min tile) into the local space of the projected bounding box. Position is
// the screen position of that bounding box.
type Transform struct {
	Matrix   geometry.Matrix
	Position core.PixelPoint
}

// Apply maps a rectangle-local unprojected point into bounding-box-local screen space.
func (t Transform) Apply(local core.PixelPoint) core.PixelPoint {
	return t.Matrix.TransformPoint(local)
}

// ToScreen maps a rectangle-local unprojected point to absolute screen space.
func (t Transform) ToScreen(local core.PixelPoint) core.PixelPoint {
	p := t.Apply(local)
	return core.PixelPoint{X: t.Position.X + p.X, Y: t.Position.Y + p.Y}
}

// CSS returns the equivalent absolutely positioned CSS declaration.
func (t Transform) CSS() string {
	return fmt.Sprintf("position: absolute; left: %spx; top: %spx; transform-origin: top left; transform: %s",
		geometry.FormatFloat(t.Position.X), geometry.FormatFloat(t.Position.Y), t.Matrix.CSS())
}

// Projection is the projected form of a tile rectangle.
type Projection struct {
	Rectangle core.Rectangle // normalised: From is the min corner
	Transform Transform
	PixelSize core.Size
}

// Corners returns the four rectangle corners in bounding-box-local screen space,
// in the order top-left, top-right, bottom-right, bottom-left of the unprojected rectangle.
func (p Projection) Corners(tileSize float64) [4]core.PixelPoint {
	w := float64(p.Rectangle.Width()) * tileSize
	h := float64(p.Rectangle.Height()) * tileSize
	return [4]core.PixelPoint{
		p.Transform.Apply(core.PixelPoint{X: 0, Y: 0}),
		p.Transform.Apply(core.PixelPoint{X: w, Y: 0}),
		p.Transform.Apply(core.PixelPoint{X: w, Y: h}),
		p.Transform.Apply(core.PixelPoint{X: 0, Y: h}),
	}
}

// WorldMatrix returns the isometric transform for cfg: rotate, then squash vertically.
func WorldMatrix(cfg *config.Config) geometry.Matrix {
	return geometry.Scale(1, cfg.VerticalScale).Multiply(geometry.Rotate(cfg.RotationRadians()))
}

// Project computes the projection of r without caching.
func Project(cfg *config.Config, r core.Rectangle) Projection {
	return project(cfg.UnprojectedTileSize, WorldMatrix(cfg), r)
}

func project(tileSize float64, world geometry.Matrix, r core.Rectangle) Projection {
	r = r.Normalize()
	w := float64(r.Width()) * tileSize
	h := float64(r.Height()) * tileSize

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range []core.PixelPoint{{X: 0, Y: 0}, {X: w, Y: 0}, {X: 0, Y: h}, {X: w, Y: h}} {
		p := world.TransformVector(c)
		minX, minY = math.Min(minX, p.X), math.Min(minY, p.Y)
		maxX, maxY = math.Max(maxX, p.X), math.Max(maxY, p.Y)
	}

	origin := world.TransformPoint(core.ToPixel(r.From, tileSize))
	return Projection{
		Rectangle: r,
		Transform: Transform{
			Matrix:   geometry.Translate(-minX, -minY).Multiply(world),
			Position: core.PixelPoint{X: origin.X + minX, Y: origin.Y + minY},
		},
		PixelSize: core.Size{Width: maxX - minX, Height: maxY - minY},
	}
}

// Projector memoizes projections by rectangle value. It is safe for concurrent use.
type Projector struct {
	tileSize float64
	world    geometry.Matrix

	mu      sync.RWMutex
	cache   map[core.Rectangle]Projection
	maxSize int
	hits    int64
	misses  int64
}

// NewProjector creates a projector for cfg. cfg.CacheSize bounds the memo table; zero
// means unbounded.
func NewProjector(cfg *config.Config) *Projector {
	return &Projector{
		tileSize: cfg.UnprojectedTileSize,
		world:    WorldMatrix(cfg),
		cache:    make(map[core.Rectangle]Projection),
		maxSize:  cfg.CacheSize,
	}
}

// TileSize returns the unprojected tile size the projector was built with.
func (p *Projector) TileSize() float64 {
	return p.tileSize
}

// World returns the isometric transform for absolute unprojected pixels.
func (p *Projector) World() geometry.Matrix {
	return p.world
}

// Project returns the projection of r, computing it at most once per distinct rectangle.
// Rectangles that differ only in corner order share an entry.
func (p *Projector) Project(r core.Rectangle) Projection {
	key := r.Normalize()

	p.mu.RLock()
	proj, found := p.cache[key]
	p.mu.RUnlock()
	if found {
		atomic.AddInt64(&p.hits, 1)
		return proj
	}
	atomic.AddInt64(&p.misses, 1)

	proj = project(p.tileSize, p.world, key)
	logging.Logger().Debug("projection computed", "from", key.From, "to", key.To)

	p.mu.Lock()
	if p.maxSize > 0 && len(p.cache) >= p.maxSize {
		for k := range p.cache {
			delete(p.cache, k)
			break
		}
	}
	p.cache[key] = proj
	p.mu.Unlock()

	return proj
}

// ProjectPoint maps an absolute unprojected pixel point to screen space.
func (p *Projector) ProjectPoint(pt core.PixelPoint) core.PixelPoint {
	return p.world.TransformPoint(pt)
}

// TileCenter returns the screen position of the centre of t.
func (p *Projector) TileCenter(t core.Tile) core.PixelPoint {
	return p.ProjectPoint(core.PixelPoint{
		X: (float64(t.X) + 0.5) * p.tileSize,
		Y: (float64(t.Y) + 0.5) * p.tileSize,
	})
}

// TileOutline returns the four projected corners of t in screen space, clockwise from
// the tile's unprojected top-left corner.
func (p *Projector) TileOutline(t core.Tile) [4]core.PixelPoint {
	x, y := float64(t.X)*p.tileSize, float64(t.Y)*p.tileSize
	s := p.tileSize
	return [4]core.PixelPoint{
		p.ProjectPoint(core.PixelPoint{X: x, Y: y}),
		p.ProjectPoint(core.PixelPoint{X: x + s, Y: y}),
		p.ProjectPoint(core.PixelPoint{X: x + s, Y: y + s}),
		p.ProjectPoint(core.PixelPoint{X: x, Y: y + s}),
	}
}

// Stats returns cache statistics.
func (p *Projector) Stats() (hits, misses, size int) {
	p.mu.RLock()
	size = len(p.cache)
	p.mu.RUnlock()
	return int(atomic.LoadInt64(&p.hits)), int(atomic.LoadInt64(&p.misses)), size
}

// Clear drops all memoized projections.
func (p *Projector) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cache = make(map[core.Rectangle]Projection)
	atomic.StoreInt64(&p.hits, 0)
	atomic.StoreInt64(&p.misses, 0)
}
