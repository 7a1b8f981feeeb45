package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/kselvik/springsim/internal/scene"
	"github.com/kselvik/springsim/internal/solver"
)

// Theme colors, monochrome.
var (
	colBg      = rl.NewColor(10, 10, 10, 255)
	colAccent  = rl.NewColor(180, 180, 180, 255)
	colSelect  = rl.NewColor(255, 255, 255, 255)
	colText    = rl.NewColor(140, 140, 140, 255)
	colTextDim = rl.NewColor(60, 60, 60, 255)
)

// Telemetry strip placement, bottom-left.
const (
	telX, telY          = 30, 600
	telWidth, telHeight = 400, 60
)

func (a *App) draw(y solver.Vec) {
	rl.BeginDrawing()
	rl.ClearBackground(colBg)

	a.drawSim()
	a.drawHUD(y)

	rl.EndDrawing()
}

func toRL(v scene.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v[0]), float32(v[1]), float32(v[2]))
}

func (a *App) camera3D() rl.Camera3D {
	return rl.NewCamera3D(
		toRL(a.scene.Camera.Position),
		toRL(a.scene.Camera.Target),
		rl.NewVector3(0, 0, 1),
		45.0,
		rl.CameraPerspective,
	)
}

func (a *App) drawSim() {
	rl.BeginMode3D(a.camera3D())

	rl.DrawGrid(20, 0.5)

	// Anchor block, spring segment, tracked mass.
	anchor := toRL(a.scene.Spring[0])
	mass := toRL(a.scene.Mass)
	rl.DrawCube(anchor, 0.6, 0.6, 0.15, rl.Gray)
	rl.DrawLine3D(anchor, toRL(a.scene.Spring[1]), rl.White)
	rl.DrawSphere(mass, 0.25, rl.White)

	rl.EndMode3D()
}

func (a *App) drawHUD(y solver.Vec) {
	a.drawText("springsim", 30, 30, 24, colSelect)
	p := a.osc.Params()
	a.drawText(fmt.Sprintf(":: c=%.2f k=%.2f M=%.2f F=%.2f", p.Damping, p.Stiffness, p.Mass, p.Forcing), 170, 34, 16, colText)

	a.drawText(fmt.Sprintf("t %8.1f   x %8.4f   v %8.4f", a.driver.Time(), y[0], y[1]), 30, 70, 16, colAccent)
	a.drawText(fmt.Sprintf("steady state %.4f", a.osc.SteadyState()[0]), 30, 94, 14, colTextDim)
	a.drawText(fmt.Sprintf("camera %s", a.scene.Input.CameraMode), 30, 114, 14, colTextDim)

	a.drawTelemetry()

	a.drawText("[SHIFT+F] FULLSCREEN  [SHIFT+V] CAMERA DUMP  [C] CAM MODE", 700, 680, 14, colTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 30, 680, 14, colTextDim)
}

// drawTelemetry plots the recent position trace and the steady-state
// level it converges to.
func (a *App) drawTelemetry() {
	if len(a.telemetry) < 2 {
		return
	}

	minVal, maxVal := a.telemetry[0], a.telemetry[0]
	for _, v := range a.telemetry {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.telemetry))
	for i, val := range a.telemetry {
		px := float32(telX) + (float32(i)/float32(len(a.telemetry)))*float32(telWidth)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(telY+telHeight) - float32(norm)*float32(telHeight)
		points[i] = rl.NewVector2(px, py)
	}
	rl.DrawLineStrip(points, colAccent)

	if ss := a.osc.SteadyState()[0]; ss >= minVal && ss <= maxVal {
		norm := (ss - minVal) / (maxVal - minVal)
		py := int32(float32(telY+telHeight) - float32(norm)*float32(telHeight))
		rl.DrawLine(telX, py, telX+telWidth, py, colTextDim)
	}

	a.drawText(fmt.Sprintf("x %.3f", a.telemetry[len(a.telemetry)-1]), telX+telWidth+10, telY+telHeight-10, 14, colText)
}

func (a *App) overTelemetry(mp rl.Vector2) bool {
	return mp.X >= telX && mp.X <= telX+telWidth && mp.Y >= telY && mp.Y <= telY+telHeight
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}
