package timing

import (
	"testing"
	"time"
)

// fakeClock returns a timer driven by a manually advanced clock.
func fakeClock() (*FrameTimer, func(time.Duration)) {
	now := time.Unix(1000, 0)
	f := NewFrameTimer()
	f.now = func() time.Time { return now }
	return f, func(d time.Duration) { now = now.Add(d) }
}

func TestUpdate_FirstCallIsZero(t *testing.T) {
	f, _ := fakeClock()
	if dt := f.Update(); dt != 0 {
		t.Errorf("first delta = %g, want 0", dt)
	}
}

func TestUpdate_ReturnsElapsedSeconds(t *testing.T) {
	f, advance := fakeClock()
	f.Update()

	advance(16 * time.Millisecond)
	if dt := f.Update(); dt < 0.0159 || dt > 0.0161 {
		t.Errorf("delta = %g, want ~0.016", dt)
	}
}

func TestUpdate_BackwardsClockClampsToZero(t *testing.T) {
	f, advance := fakeClock()
	f.Update()

	advance(-time.Second)
	if dt := f.Update(); dt != 0 {
		t.Errorf("delta after clock step back = %g, want 0", dt)
	}
}

func TestStats_RefreshCadence(t *testing.T) {
	f, advance := fakeClock()

	// 60 fps for a quarter second: enough frames but not enough time.
	for i := 0; i < 15; i++ {
		f.Update()
		advance(16 * time.Millisecond)
	}
	if f.StatsDue() {
		t.Fatal("stats refreshed before the interval elapsed")
	}

	for i := 0; i < 20; i++ {
		f.Update()
		advance(16 * time.Millisecond)
	}
	if !f.StatsDue() {
		t.Fatal("stats not refreshed after the interval elapsed")
	}

	if fps := f.FPS(); fps < 55 || fps > 70 {
		t.Errorf("fps estimate = %g, want ~62.5", fps)
	}
}

func TestStats_NotRefreshedOnFewFrames(t *testing.T) {
	f, advance := fakeClock()

	// Two slow frames cover the interval but stay under the frame
	// minimum, so the estimate must not refresh yet.
	f.Update()
	advance(time.Second)
	f.Update()
	if f.StatsDue() {
		t.Error("stats refreshed from too few frames")
	}
}

func TestStatsDue_IsOneShot(t *testing.T) {
	f, advance := fakeClock()

	for i := 0; i < 40; i++ {
		f.Update()
		advance(16 * time.Millisecond)
	}
	if !f.StatsDue() {
		t.Fatal("expected a refresh")
	}
	if f.StatsDue() {
		t.Error("second StatsDue call should report false")
	}
}
