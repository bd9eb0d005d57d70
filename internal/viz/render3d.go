package viz

import (
	"math"
	"sort"

	"github.com/hwen/knotsim/internal/entity"
	"github.com/hwen/knotsim/internal/geom"
	"github.com/hwen/knotsim/internal/knot"
)

// Camera projects world space onto the braille canvas with a simple
// perspective divide.
type Camera struct {
	Position         geom.Vec3
	RotX, RotY, RotZ float64
	Zoom             float64
	Near             float64
}

func NewCamera() *Camera {
	return &Camera{Position: geom.V3(0, 0, 12), Zoom: 1.0, Near: 0.1}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

func (c *Camera) rotate(p geom.Vec3) geom.Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// Project converts a world point to sub-pixel canvas coordinates.
// Returns x, y, depth, and whether the point lands on the canvas. The
// simulation is z-up, the screen y-up, so the axes swap on the way in.
func (c *Camera) Project(p geom.Vec3, sw, sh int) (int, int, float64, bool) {
	rot := c.rotate(geom.V3(p.X, p.Z, p.Y)).Scale(c.Zoom)
	dist := c.Position.Z
	if rot.Z >= dist-c.Near {
		return 0, 0, 0, false
	}
	scale := dist / (dist - rot.Z)
	minDim := float64(sh)
	if float64(sw) < minDim {
		minDim = float64(sw)
	}
	pScale := minDim / 8.0
	sx := int(rot.X*scale*pScale) + sw/2
	sy := int(-rot.Y*scale*pScale) + sh/2
	return sx, sy, rot.Z, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

type Edge struct {
	Start, End geom.Vec3
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe              { return &Wireframe{Edges: make([]Edge, 0)} }
func (w *Wireframe) AddEdge(s, e geom.Vec3) { w.Edges = append(w.Edges, Edge{s, e}) }
func (w *Wireframe) AddPoint(p geom.Vec3)   { w.Edges = append(w.Edges, Edge{p, p}) }
func (w *Wireframe) Clear()                 { w.Edges = w.Edges[:0] }

// KnotWireframe samples the membrane curve into a closed polyline.
func KnotWireframe(segments int) *Wireframe {
	w := NewWireframe()
	prev := knot.Curve(0)
	for i := 1; i <= segments; i++ {
		p := knot.Curve(float64(i) * 2 * math.Pi / float64(segments))
		w.AddEdge(prev, p)
		prev = p
	}
	return w
}

// EntityWireframe adds markers and short trails for the entities.
func EntityWireframe(entities []*entity.Entity, trails [][]geom.Vec3) *Wireframe {
	w := NewWireframe()
	for i, e := range entities {
		w.AddPoint(e.Pos)
		if i < len(trails) {
			for j := 1; j < len(trails[i]); j++ {
				w.AddEdge(trails[i][j-1], trails[i][j])
			}
		}
	}
	return w
}

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float64
}

// Render3D draws wireframes back to front.
func Render3D(c *Canvas, frames []*Wireframe, cam *Camera) {
	if c == nil || cam == nil {
		return
	}
	sw, sh := c.Width*2, c.Height*4

	proj := make([]projectedEdge, 0)
	for _, w := range frames {
		if w == nil {
			continue
		}
		for _, e := range w.Edges {
			x1, y1, d1, v1 := cam.Project(e.Start, sw, sh)
			x2, y2, d2, v2 := cam.Project(e.End, sw, sh)
			if v1 || v2 {
				proj = append(proj, projectedEdge{x1, y1, x2, y2, (d1 + d2) / 2})
			}
		}
	}

	sort.Slice(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })
	for _, e := range proj {
		if e.x1 == e.x2 && e.y1 == e.y2 {
			c.Blob(e.x1, e.y1, 1)
		} else {
			c.Line(e.x1, e.y1, e.x2, e.y2)
		}
	}
}
