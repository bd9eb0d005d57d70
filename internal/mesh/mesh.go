// Package mesh builds the static scene geometry: the knot tube, ground,
// skybox, and entity markers. Triangles carry one color per world so a
// renderer can select the visible one from the viewer's world index.
package mesh

import (
	"math"

	"github.com/hwen/knotsim/internal/geom"
	"github.com/hwen/knotsim/internal/knot"
)

// Triangle is one face with per-world colors and flat shading factors.
type Triangle struct {
	Vertices [3]geom.Vec3

	// Center overrides the vertex centroid for shading when set. Ball
	// faces use the ball's center so the whole marker shades as one.
	Center *geom.Vec3

	Colors [knot.Worlds][4]float64

	AmbientFactor float64
	DiffuseFactor float64
}

// Centroid returns the shading center for the face.
func (t *Triangle) Centroid() geom.Vec3 {
	if t.Center != nil {
		return *t.Center
	}
	return t.Vertices[0].Add(t.Vertices[1]).Add(t.Vertices[2]).Scale(1.0 / 3.0)
}

// Normal is the face normal under counterclockwise winding.
func (t *Triangle) Normal() geom.Vec3 {
	a := t.Vertices[1].Sub(t.Vertices[0])
	b := t.Vertices[2].Sub(t.Vertices[0])
	return a.Cross(b).Normalize()
}

const (
	tubeRadius = 0.2
	tubeSegs   = 96
	tubeSides  = 12
)

// tubePoint offsets the curve point along a frame built from the planar
// tangent, so the tube twists with the knot. theta = 0 lies on the seam
// between worlds.
func tubePoint(t, theta float64) geom.Vec3 {
	d := knot.CurveDerivative(t)
	side := geom.Vec3{X: d.Y, Y: -d.X, Z: 0}.Normalize()

	s, c := math.Sincos(theta)
	down := geom.Vec3{Z: -c}
	return knot.Curve(t).Add(side.Scale(s).Add(down).Scale(tubeRadius))
}

// TrefoilTube triangulates the membrane as a 96 by 12 quad grid, two
// triangles per quad. Colors follow the strand the segment belongs to:
// each world sees the strand it is glued along.
func TrefoilTube() []Triangle {
	const tau = 2 * math.Pi

	red := [4]float64{1, 0, 0, 1}
	green := [4]float64{0, 1, 0, 1}
	blue := [4]float64{0, 0, 1, 1}

	f := func(a, b int) geom.Vec3 {
		t := float64(a) * tau / tubeSegs
		u := float64(4*b+1) * tau / 48
		return tubePoint(t, 4*t+u)
	}

	tris := make([]Triangle, 0, tubeSegs*tubeSides*2)
	for a := 0; a < tubeSegs; a++ {
		var colors [knot.Worlds][4]float64
		switch {
		case a >= 28 && a <= 59: // Arc C
			colors = [knot.Worlds][4]float64{blue, green, green, blue, red, red}
		case a >= 60 && a <= 91: // Arc A
			colors = [knot.Worlds][4]float64{red, red, blue, green, green, blue}
		default: // Arc B
			colors = [knot.Worlds][4]float64{green, blue, red, red, blue, green}
		}

		for b := 0; b < tubeSides; b++ {
			v0 := f(a, b)
			v1 := f(a+1, b)
			v2 := f(a, b+1)
			v3 := f(a+1, b+1)

			tris = append(tris,
				Triangle{
					Vertices:      [3]geom.Vec3{v0, v1, v2},
					Colors:        colors,
					AmbientFactor: 0.2,
					DiffuseFactor: 0.8,
				},
				Triangle{
					Vertices:      [3]geom.Vec3{v3, v2, v1},
					Colors:        colors,
					AmbientFactor: 0.2,
					DiffuseFactor: 0.8,
				})
		}
	}
	return tris
}

// Ground is a gray plane at z = -2, identical in every world.
func Ground() []Triangle {
	gray := [4]float64{0.5, 0.5, 0.5, 1}
	var colors [knot.Worlds][4]float64
	for i := range colors {
		colors[i] = gray
	}

	v0 := geom.V3(-100, -100, -2)
	v1 := geom.V3(100, -100, -2)
	v2 := geom.V3(100, 100, -2)
	v3 := geom.V3(-100, 100, -2)

	return []Triangle{
		{Vertices: [3]geom.Vec3{v0, v1, v2}, Colors: colors, AmbientFactor: 0.2, DiffuseFactor: 0.8},
		{Vertices: [3]geom.Vec3{v2, v3, v0}, Colors: colors, AmbientFactor: 0.2, DiffuseFactor: 0.8},
	}
}

// Skybox is an inward-facing tetrahedron with a distinct tint per world,
// fully ambient so it never shades.
func Skybox() []Triangle {
	colors := [knot.Worlds][4]float64{
		{0.2, 0.7, 1.0, 1},
		{0.2, 1.0, 0.7, 1},
		{0.7, 1.0, 0.2, 1},
		{0.7, 0.2, 1.0, 1},
		{1.0, 0.2, 0.7, 1},
		{1.0, 0.7, 0.2, 1},
	}

	v0 := geom.V3(-100, -100, 100)
	v1 := geom.V3(-100, 100, -100)
	v2 := geom.V3(100, -100, -100)
	v3 := geom.V3(100, 100, 100)

	faces := [][3]geom.Vec3{
		{v2, v1, v0},
		{v0, v1, v3},
		{v3, v2, v0},
		{v1, v2, v3},
	}

	tris := make([]Triangle, 0, len(faces))
	for _, f := range faces {
		tris = append(tris, Triangle{Vertices: f, Colors: colors, AmbientFactor: 1.0, DiffuseFactor: 0.0})
	}
	return tris
}

// Ball is an icosahedron of radius ~0.2 marking an entity. It is colored
// only in the entity's own world and invisible from the other five.
func Ball(center geom.Vec3, world int, color [4]float64) []Triangle {
	var colors [knot.Worlds][4]float64
	colors[world] = color

	const phi = 1.618034

	at := func(x, y, z float64) geom.Vec3 {
		return center.Add(geom.V3(x, y, z).Scale(0.1))
	}

	ur := at(1, 0, phi)
	dr := at(1, 0, -phi)
	ul := at(-1, 0, phi)
	dl := at(-1, 0, -phi)
	rf := at(phi, 1, 0)
	lf := at(-phi, 1, 0)
	rb := at(phi, -1, 0)
	lb := at(-phi, -1, 0)
	fu := at(0, phi, 1)
	bu := at(0, -phi, 1)
	fd := at(0, phi, -1)
	bd := at(0, -phi, -1)

	faces := [][3]geom.Vec3{
		{ul, ur, fu},
		{ur, ul, bu},
		{dl, dr, bd},
		{dr, dl, fd},
		{rb, rf, ur},
		{rf, rb, dr},
		{lb, lf, dl},
		{lf, lb, ul},
		{fd, fu, rf},
		{fu, fd, lf},
		{bd, bu, lb},
		{bu, bd, rb},
		{fu, lf, ul},
		{fu, ur, rf},
		{fd, dl, lf},
		{fd, rf, dr},
		{bu, ul, lb},
		{bu, rb, ur},
		{bd, lb, dl},
		{bd, dr, rb},
	}

	c := center
	tris := make([]Triangle, 0, len(faces))
	for _, f := range faces {
		tris = append(tris, Triangle{
			Vertices:      f,
			Center:        &c,
			Colors:        colors,
			AmbientFactor: 0.2,
			DiffuseFactor: 0.8,
		})
	}
	return tris
}

// VertexFloats is the interleaved attribute count per vertex: six RGBA
// colors, position, normal, center, ambient and diffuse factors.
const VertexFloats = knot.Worlds*4 + 3 + 3 + 3 + 1 + 1

// Pack interleaves triangles into a flat float32 attribute buffer, three
// vertices per triangle.
func Pack(tris []Triangle) []float32 {
	out := make([]float32, 0, len(tris)*3*VertexFloats)
	for i := range tris {
		t := &tris[i]
		normal := t.Normal()
		center := t.Centroid()

		for _, v := range t.Vertices {
			for _, c := range t.Colors {
				out = append(out, float32(c[0]), float32(c[1]), float32(c[2]), float32(c[3]))
			}
			out = append(out, float32(v.X), float32(v.Y), float32(v.Z))
			out = append(out, float32(normal.X), float32(normal.Y), float32(normal.Z))
			out = append(out, float32(center.X), float32(center.Y), float32(center.Z))
			out = append(out, float32(t.AmbientFactor), float32(t.DiffuseFactor))
		}
	}
	return out
}
