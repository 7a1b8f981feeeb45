package scene

import (
	"fmt"
	"math"

	"github.com/kselvik/springsim/internal/solver"
)

// Vec3 is a plain 3-vector. The scene stays free of rendering-library
// types so it can be driven and inspected headless in tests.
type Vec3 [3]float64

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

func (v Vec3) Norm() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Visual conventions of the demonstration scene. The spring hangs from
// SpringAnchor; the displacement direction is taken from ViewReference
// toward the state position placed on the z axis.
var (
	SpringAnchor  = Vec3{0, 0, 2}
	ViewReference = Vec3{0, 0, 3}
)

type CameraMode int

const (
	CameraOrbit CameraMode = iota
	CameraPan
)

func (m CameraMode) String() string {
	if m == CameraPan {
		return "pan"
	}
	return "orbit"
}

type Camera struct {
	Position Vec3
	Target   Vec3
}

// DebugString is the read-only diagnostic printed by the camera debug
// key. It mutates nothing.
func (c Camera) DebugString() string {
	return fmt.Sprintf("camera position = (%.3f, %.3f, %.3f)\n  target = (%.3f, %.3f, %.3f)",
		c.Position[0], c.Position[1], c.Position[2],
		c.Target[0], c.Target[1], c.Target[2])
}

type MouseState struct {
	X, Y    float32
	Buttons [3]bool
	OnGUI   bool
}

type KeyboardState struct {
	Shift bool
	Ctrl  bool
}

type InputState struct {
	Mouse        MouseState
	Keyboard     KeyboardState
	CameraMode   CameraMode
	TimeInterval float32
}

// Scene is the explicit shared context mutated by the input dispatcher
// and the frame loop. Single-threaded by contract: every mutation
// happens on the loop thread, so no locking.
type Scene struct {
	Width, Height int
	Fullscreen    bool
	Input         InputState
	Camera        Camera

	// Mass is the current translation of the tracked object; Spring is
	// the renderable segment regenerated from it every frame.
	Mass   Vec3
	Spring [2]Vec3
}

func New(width, height int) *Scene {
	s := &Scene{
		Width:  width,
		Height: height,
		Camera: Camera{
			Position: Vec3{6, -6, 2},
			Target:   Vec3{0, 0, 1},
		},
		Mass: Vec3{0, 0, 0.5},
	}
	s.Spring = [2]Vec3{SpringAnchor, s.Mass}
	return s
}

func (s *Scene) Resize(width, height int) {
	s.Width = width
	s.Height = height
}

func (s *Scene) AspectRatio() float64 {
	if s.Height == 0 {
		return 1
	}
	return float64(s.Width) / float64(s.Height)
}

// ApplyState maps the integrated state onto the mass transform:
// direction is the unit vector from the view reference toward the
// position component on the z axis, magnitude is the velocity
// component. The spring segment is regenerated from the result. The
// numeric behavior of this mapping is a scene convention and is kept
// exactly as-is.
func (s *Scene) ApplyState(y solver.Vec) {
	dir := Vec3{0, 0, y[0]}.Sub(ViewReference)
	if n := dir.Norm(); n != 0 {
		dir = dir.Scale(1 / n)
	}
	s.Mass = s.Mass.Add(dir.Scale(y[1]))
	s.Spring = [2]Vec3{SpringAnchor, s.Mass}
}
