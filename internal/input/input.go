// Package input translates discrete window-system events into mutations
// of the shared scene context and forwards them to bound handlers.
//
// Dispatch is synchronous and unbuffered: every event is applied and
// forwarded exactly once, on the thread that delivers it, and handlers
// always observe the post-update state. Handlers must not block; they
// run on the thread that continues the frame loop.
package input

import "github.com/kselvik/springsim/internal/scene"

// Key identifies the keys the scene reacts to. Codes outside this set
// are delivered as KeyUnknown and ignored.
type Key int

const (
	KeyUnknown Key = iota
	KeyF
	KeyV
	KeyC
	KeyShift
)

type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

// Handlers are the scene-level callbacks bound at dispatcher
// construction. Any nil handler is skipped.
type Handlers struct {
	MouseMove  func(*scene.Scene)
	MouseClick func(*scene.Scene, MouseButton, bool)
	Key        func(*scene.Scene, Key, bool)
	Resize     func(*scene.Scene)

	// ToggleDisplayMode is invoked after Shift+F flips the fullscreen
	// flag, with the new flag value.
	ToggleDisplayMode func(fullscreen bool)
	// DebugDump is invoked on Shift+V. Read-only by contract.
	DebugDump func(*scene.Scene)
}

// Dispatcher applies events to one scene context. Purely reactive:
// no queue, no goroutines.
type Dispatcher struct {
	scene    *scene.Scene
	handlers Handlers
	keysDown map[Key]bool
}

func NewDispatcher(sc *scene.Scene, h Handlers) *Dispatcher {
	return &Dispatcher{
		scene:    sc,
		handlers: h,
		keysDown: make(map[Key]bool),
	}
}

func (d *Dispatcher) MouseMove(x, y float32) {
	d.scene.Input.Mouse.X = x
	d.scene.Input.Mouse.Y = y
	if d.handlers.MouseMove != nil {
		d.handlers.MouseMove(d.scene)
	}
}

func (d *Dispatcher) MouseClick(b MouseButton, pressed bool) {
	if b < MouseLeft || b > MouseMiddle {
		return
	}
	d.scene.Input.Mouse.Buttons[b] = pressed
	if d.handlers.MouseClick != nil {
		d.handlers.MouseClick(d.scene, b, pressed)
	}
}

// KeyEvent updates the binary key state and forwards the event. A
// repeated press without an intervening release is treated as a no-op.
func (d *Dispatcher) KeyEvent(k Key, pressed bool) {
	if k == KeyUnknown {
		return
	}
	if d.keysDown[k] == pressed {
		return
	}
	d.keysDown[k] = pressed

	if k == KeyShift {
		d.scene.Input.Keyboard.Shift = pressed
	}

	if d.handlers.Key != nil {
		d.handlers.Key(d.scene, k, pressed)
	}

	if !pressed {
		return
	}
	switch {
	case k == KeyF && d.scene.Input.Keyboard.Shift:
		d.scene.Fullscreen = !d.scene.Fullscreen
		if d.handlers.ToggleDisplayMode != nil {
			d.handlers.ToggleDisplayMode(d.scene.Fullscreen)
		}
	case k == KeyV && d.scene.Input.Keyboard.Shift:
		if d.handlers.DebugDump != nil {
			d.handlers.DebugDump(d.scene)
		}
	case k == KeyC:
		if d.scene.Input.CameraMode == scene.CameraOrbit {
			d.scene.Input.CameraMode = scene.CameraPan
		} else {
			d.scene.Input.CameraMode = scene.CameraOrbit
		}
	}
}

func (d *Dispatcher) Resize(width, height int) {
	d.scene.Resize(width, height)
	if d.handlers.Resize != nil {
		d.handlers.Resize(d.scene)
	}
}
