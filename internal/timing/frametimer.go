package timing

import "time"

// Refresh cadence for the fps estimate. Bounded on both wall-clock time
// and frame count so a displayed value never updates every frame.
const (
	statsInterval  = 500 * time.Millisecond
	statsMinFrames = 8
)

// FrameTimer measures the wall-clock delta between loop iterations and
// keeps a rolling frames-per-second estimate. It cannot fail.
type FrameTimer struct {
	now        func() time.Time
	last       time.Time
	started    bool
	frames     int
	accum      time.Duration
	fps        float32
	statsReady bool
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{now: time.Now}
}

// Update returns the seconds elapsed since the previous call, never
// negative, and zero on the first call.
func (f *FrameTimer) Update() float32 {
	t := f.now()
	var dt time.Duration
	if f.started {
		dt = t.Sub(f.last)
		if dt < 0 {
			dt = 0
		}
	}
	f.last = t
	f.started = true

	f.frames++
	f.accum += dt
	if f.accum >= statsInterval && f.frames >= statsMinFrames {
		f.fps = float32(f.frames) / float32(f.accum.Seconds())
		f.frames = 0
		f.accum = 0
		f.statsReady = true
	}

	return float32(dt.Seconds())
}

// FPS returns the estimate from the most recent refresh.
func (f *FrameTimer) FPS() float32 { return f.fps }

// StatsDue reports whether the fps estimate was refreshed since the
// last call, clearing the flag.
func (f *FrameTimer) StatsDue() bool {
	due := f.statsReady
	f.statsReady = false
	return due
}
