package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/hwen/knotsim/internal/mesh"
)

func toColor(c [4]float64) rl.Color {
	return rl.NewColor(
		uint8(c[0]*255), uint8(c[1]*255), uint8(c[2]*255), uint8(c[3]*255))
}

// drawTriangles draws faces with the color the viewer's world assigns
// them, shaded by the face normal against a fixed light direction.
// Fully transparent faces are skipped, which is how entity markers hide
// in foreign worlds.
func (a *App) drawTriangles(tris []mesh.Triangle) {
	world := a.Viewer.World

	for i := range tris {
		t := &tris[i]
		c := t.Colors[world]
		if c[3] == 0 {
			continue
		}

		n := t.Normal()
		diffuse := n.Z
		if diffuse < 0 {
			diffuse = -diffuse
		}
		shade := t.AmbientFactor + t.DiffuseFactor*diffuse
		if shade > 1 {
			shade = 1
		}

		col := toColor([4]float64{c[0] * shade, c[1] * shade, c[2] * shade, c[3]})
		rl.DrawTriangle3D(
			toRaylib(t.Vertices[0]),
			toRaylib(t.Vertices[1]),
			toRaylib(t.Vertices[2]),
			col)
		// Both sides; raylib culls clockwise faces otherwise.
		rl.DrawTriangle3D(
			toRaylib(t.Vertices[0]),
			toRaylib(t.Vertices[2]),
			toRaylib(t.Vertices[1]),
			col)
	}
}

func (a *App) renderTube() {
	a.drawTriangles(a.Tube)
}

// renderSky tints the far background with the viewer world's sky color.
func (a *App) renderSky() {
	a.drawTriangles(a.Sky)
}

func (a *App) renderGround() {
	for i := range a.Ground {
		t := &a.Ground[i]
		rl.DrawTriangle3D(
			toRaylib(t.Vertices[0]),
			toRaylib(t.Vertices[1]),
			toRaylib(t.Vertices[2]),
			ColGround)
	}
}

// renderEntities draws a sphere per entity, visible only from the
// entity's own world.
func (a *App) renderEntities() {
	for _, e := range a.Entities {
		if e.World != a.Viewer.World {
			continue
		}
		rl.DrawSphere(toRaylib(e.Pos), 0.19, toColor(e.Color))
	}
}
