// Package gui runs the raylib window and the fixed-architecture
// simulation/render loop: advance the ODE driver one frame target,
// map the state onto the scene transform, draw, poll input.
package gui

import (
	"fmt"
	"math"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/kselvik/springsim/internal/config"
	"github.com/kselvik/springsim/internal/input"
	"github.com/kselvik/springsim/internal/oscillator"
	"github.com/kselvik/springsim/internal/scene"
	"github.com/kselvik/springsim/internal/solver"
	"github.com/kselvik/springsim/internal/timing"
)

const (
	windowWidth  = 1280
	windowHeight = 720

	fontPath = "/usr/share/fonts/liberation/LiberationMono-Regular.ttf"

	telemetrySamples = 200
)

type App struct {
	cfg    *config.Config
	osc    *oscillator.Oscillator
	driver *solver.Driver
	timer  *timing.FrameTimer
	scene  *scene.Scene
	disp   *input.Dispatcher
	font   rl.Font

	// frame is the discrete counter used as the next integration target.
	frame int

	camPosTarget scene.Vec3
	camTgtTarget scene.Vec3

	telemetry []float64
}

// Run opens the window and blocks in the animation loop until the
// window is closed or the integrator fails. The returned error is nil
// only on a graceful close.
func Run(cfg *config.Config) error {
	osc, err := oscillator.New(cfg.Params())
	if err != nil {
		return err
	}
	driver, err := solver.NewDriver(osc, cfg.SolverConfig(), 0, cfg.InitialState())
	if err != nil {
		return err
	}

	// The HUD font is the only file asset; a missing font means the HUD
	// cannot render, so fail before opening the window.
	if _, err := os.Stat(fontPath); err != nil {
		return fmt.Errorf("cannot access HUD font %s (install the Liberation fonts or run on a system that has them): %w", fontPath, err)
	}

	rl.InitWindow(windowWidth, windowHeight, "springsim")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.FPS))
	rl.SetExitKey(0)

	fmt.Printf("window (%dpx x %dpx) created\n", rl.GetScreenWidth(), rl.GetScreenHeight())

	a := &App{
		cfg:       cfg,
		osc:       osc,
		driver:    driver,
		timer:     timing.NewFrameTimer(),
		scene:     scene.New(rl.GetScreenWidth(), rl.GetScreenHeight()),
		font:      loadFont(),
		telemetry: make([]float64, 0, telemetrySamples),
	}
	a.camPosTarget = a.scene.Camera.Position
	a.camTgtTarget = a.scene.Camera.Target

	a.disp = input.NewDispatcher(a.scene, input.Handlers{
		ToggleDisplayMode: func(bool) { rl.ToggleFullscreen() },
		DebugDump: func(sc *scene.Scene) {
			fmt.Printf("\ndebug %s\n", sc.Camera.DebugString())
		},
	})

	fmt.Println("start animation loop ...")
	err = a.runLoop()
	fmt.Println("animation loop stopped")
	return err
}

func loadFont() rl.Font {
	font := rl.LoadFontEx(fontPath, 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func (a *App) runLoop() error {
	a.frame = 1
	for !rl.WindowShouldClose() {
		dt := a.timer.Update()
		if a.timer.StatsDue() {
			rl.SetWindowTitle(fmt.Sprintf("springsim - %.0f fps", a.timer.FPS()))
		}
		a.scene.Input.TimeInterval = dt

		y, err := a.driver.Advance(float64(a.frame))
		if err != nil {
			return fmt.Errorf("integration failed at frame %d: %w", a.frame, err)
		}
		a.scene.ApplyState(y)
		a.recordTelemetry(y)

		a.updateCamera(float64(dt))

		a.draw(y)

		// EndDrawing inside draw already swapped buffers; now deliver
		// the input events gathered during this frame. Every handler
		// runs synchronously here, before the next Advance.
		a.pollInput()

		a.frame++
	}
	return nil
}

func (a *App) recordTelemetry(y solver.Vec) {
	a.telemetry = append(a.telemetry, y[0])
	if len(a.telemetry) > telemetrySamples {
		a.telemetry = a.telemetry[1:]
	}
}

var keyTable = []struct {
	code int32
	key  input.Key
}{
	{rl.KeyLeftShift, input.KeyShift},
	{rl.KeyRightShift, input.KeyShift},
	{rl.KeyF, input.KeyF},
	{rl.KeyV, input.KeyV},
	{rl.KeyC, input.KeyC},
}

// pollInput reads the device state raylib collected during the buffer
// swap and feeds it to the dispatcher as discrete events.
func (a *App) pollInput() {
	if rl.IsWindowResized() {
		a.disp.Resize(rl.GetScreenWidth(), rl.GetScreenHeight())
	}

	mp := rl.GetMousePosition()
	if mp.X != a.scene.Input.Mouse.X || mp.Y != a.scene.Input.Mouse.Y {
		a.disp.MouseMove(mp.X, mp.Y)
	}
	a.scene.Input.Mouse.OnGUI = a.overTelemetry(mp)

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		a.disp.MouseClick(input.MouseLeft, true)
	}
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		a.disp.MouseClick(input.MouseLeft, false)
	}
	if rl.IsMouseButtonPressed(rl.MouseRightButton) {
		a.disp.MouseClick(input.MouseRight, true)
	}
	if rl.IsMouseButtonReleased(rl.MouseRightButton) {
		a.disp.MouseClick(input.MouseRight, false)
	}
	if rl.IsMouseButtonPressed(rl.MouseMiddleButton) {
		a.disp.MouseClick(input.MouseMiddle, true)
	}
	if rl.IsMouseButtonReleased(rl.MouseMiddleButton) {
		a.disp.MouseClick(input.MouseMiddle, false)
	}

	for _, kb := range keyTable {
		if rl.IsKeyPressed(kb.code) {
			a.disp.KeyEvent(kb.key, true)
		}
		if rl.IsKeyReleased(kb.code) {
			a.disp.KeyEvent(kb.key, false)
		}
	}
}

// updateCamera applies mouse-driven camera motion with a small lerp
// for inertia. Right-drag orbits or pans depending on the camera mode;
// the wheel zooms along the view direction. Drags that start over the
// HUD are ignored.
func (a *App) updateCamera(dt float64) {
	in := &a.scene.Input

	if in.Mouse.Buttons[input.MouseRight] && !in.Mouse.OnGUI {
		delta := rl.GetMouseDelta()
		switch in.CameraMode {
		case scene.CameraPan:
			a.camPosTarget[0] -= float64(delta.X) * 0.01
			a.camPosTarget[2] += float64(delta.Y) * 0.01
			a.camTgtTarget[0] -= float64(delta.X) * 0.01
			a.camTgtTarget[2] += float64(delta.Y) * 0.01
		default:
			rel := a.camPosTarget.Sub(a.camTgtTarget)
			angle := -float64(delta.X) * 0.005
			sin, cos := math.Sincos(angle)
			rel[0], rel[1] = rel[0]*cos-rel[1]*sin, rel[0]*sin+rel[1]*cos
			rel[2] += float64(delta.Y) * 0.02
			a.camPosTarget = a.camTgtTarget.Add(rel)
		}
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 && !in.Mouse.OnGUI {
		diff := a.camTgtTarget.Sub(a.camPosTarget)
		dist := diff.Norm()
		zoom := float64(wheel) * 0.8
		if dist > 0.01 && (dist > 1.5 || zoom < 0) {
			a.camPosTarget = a.camPosTarget.Add(diff.Scale(zoom / dist))
		}
	}

	lerp := 5.0 * dt
	if lerp > 1 {
		lerp = 1
	}
	a.scene.Camera.Position = lerpVec(a.scene.Camera.Position, a.camPosTarget, lerp)
	a.scene.Camera.Target = lerpVec(a.scene.Camera.Target, a.camTgtTarget, lerp)
}

func lerpVec(from, to scene.Vec3, t float64) scene.Vec3 {
	return from.Add(to.Sub(from).Scale(t))
}
