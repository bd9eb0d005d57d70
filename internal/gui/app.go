// Package gui is the interactive raylib viewer. The camera is itself a
// traveller: flying through the membrane flips the viewer's world, and
// the scene recolors to whatever that world sees.
package gui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/hwen/knotsim/internal/audio"
	"github.com/hwen/knotsim/internal/config"
	"github.com/hwen/knotsim/internal/entity"
	"github.com/hwen/knotsim/internal/geom"
	"github.com/hwen/knotsim/internal/mesh"
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColGround  = rl.NewColor(60, 60, 70, 255)
)

type App struct {
	Entities []*entity.Entity
	Viewer   *entity.Mover

	Time    float64
	Dt      float64
	Running bool

	Camera rl.Camera3D
	Yaw    float64
	Pitch  float64

	Tube   []mesh.Triangle
	Ground []mesh.Triangle
	Sky    []mesh.Triangle

	Audio     *audio.Processor
	prevWorld int
}

func initWindow() {
	rl.InitWindow(1280, 720, "knotsim")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// NewApp builds the scene from a config and places the viewer outside
// the knot in world 0.
func NewApp(cfg *config.Config, withAudio bool) (*App, error) {
	entities, err := cfg.BuildEntities()
	if err != nil {
		return nil, err
	}

	app := &App{
		Entities: entities,
		Viewer:   &entity.Mover{Pos: geom.V3(0, -6, 1)},
		Dt:       cfg.Dt,
		Running:  true,
		Tube:     mesh.TrefoilTube(),
		Ground:   mesh.Ground(),
		Sky:      mesh.Skybox(),
	}
	app.updateCamera()

	if withAudio {
		app.Audio = audio.NewProcessor()
		if err := app.Audio.Start(); err != nil {
			// The viewer still works silent.
			app.Audio = nil
		}
	}

	return app, nil
}

// Run opens the window and blocks until it closes.
func Run(cfg *config.Config, withAudio bool) error {
	initWindow()
	defer rl.CloseWindow()

	app, err := NewApp(cfg, withAudio)
	if err != nil {
		return err
	}
	defer app.Close()

	app.RunLoop()
	return nil
}

func (a *App) Close() {
	if a.Audio != nil {
		a.Audio.Stop()
	}
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	frame := float64(rl.GetFrameTime())

	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}

	a.steerViewer(frame)

	if a.Running {
		a.Time += a.Dt
		for _, e := range a.Entities {
			e.Advance(a.Dt)
		}
	}

	if a.Audio != nil {
		crossed := a.Viewer.World != a.prevWorld
		a.Audio.UpdateScene(float64(a.Viewer.World), crossed)
	}
	a.prevWorld = a.Viewer.World

	a.updateCamera()
}

// steerViewer flies the camera with WASD plus RF for height. Each move
// routes through the transition engine, so the viewer crosses worlds
// like any entity.
func (a *App) steerViewer(frame float64) {
	const speed = 3.0

	a.Yaw += float64(rl.GetMouseDelta().X) * 0.003
	a.Pitch -= float64(rl.GetMouseDelta().Y) * 0.003
	if a.Pitch > 1.5 {
		a.Pitch = 1.5
	}
	if a.Pitch < -1.5 {
		a.Pitch = -1.5
	}

	sy, cy := math.Sincos(a.Yaw)
	forward := geom.V3(sy, cy, 0)
	right := geom.V3(cy, -sy, 0)

	var move geom.Vec3
	if rl.IsKeyDown(rl.KeyW) {
		move = move.Add(forward)
	}
	if rl.IsKeyDown(rl.KeyS) {
		move = move.Sub(forward)
	}
	if rl.IsKeyDown(rl.KeyD) {
		move = move.Add(right)
	}
	if rl.IsKeyDown(rl.KeyA) {
		move = move.Sub(right)
	}
	if rl.IsKeyDown(rl.KeyR) {
		move = move.Add(geom.V3(0, 0, 1))
	}
	if rl.IsKeyDown(rl.KeyF) {
		move = move.Sub(geom.V3(0, 0, 1))
	}

	if move.Norm() > 0 {
		a.Viewer.Move(move.Normalize().Scale(speed * frame))
	}
}

// updateCamera keeps the raylib camera glued to the viewer. The world is
// z-up, raylib is y-up, so coordinates swap on the way out.
func (a *App) updateCamera() {
	sy, cy := math.Sincos(a.Yaw)
	sp, cp := math.Sincos(a.Pitch)
	look := a.Viewer.Pos.Add(geom.V3(sy*cp, cy*cp, sp))

	a.Camera = rl.NewCamera3D(
		toRaylib(a.Viewer.Pos),
		toRaylib(look),
		rl.NewVector3(0, 1, 0),
		60.0,
		rl.CameraPerspective,
	)
}

func toRaylib(p geom.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(p.X), float32(p.Z), float32(p.Y))
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	rl.BeginMode3D(a.Camera)
	a.renderSky()
	a.renderGround()
	a.renderTube()
	a.renderEntities()
	rl.EndMode3D()

	a.drawHUD()
	rl.EndDrawing()
}

func (a *App) drawHUD() {
	rl.DrawText(fmt.Sprintf("world %d", a.Viewer.World), 20, 20, 28, rl.White)
	rl.DrawText(fmt.Sprintf("t=%.1f", a.Time), 20, 54, 20, ColText)
	status := "running"
	if !a.Running {
		status = "paused"
	}
	rl.DrawText(status, 20, 80, 20, ColTextDim)
	rl.DrawText("wasd/rf move  space pause", 20, 690, 20, ColTextDim)
}
