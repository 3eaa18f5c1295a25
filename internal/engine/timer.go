package engine

import (
	"math"
	"time"
)

// fpsWindow is how many recent frames the FPS average covers.
const fpsWindow = 30

// Timer tracks frame time for the script.
type Timer struct {
	delta   time.Duration
	elapsed time.Duration
	recent  [fpsWindow]time.Duration
	next    int
	count   int
}

// NewTimer returns a timer at time zero.
func NewTimer() *Timer {
	return &Timer{}
}

// Tick records a frame that took dt.
func (t *Timer) Tick(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	t.delta = dt
	t.elapsed += dt
	t.recent[t.next] = dt
	t.next = (t.next + 1) % fpsWindow
	if t.count < fpsWindow {
		t.count++
	}
}

// Delta returns the last frame time in seconds.
func (t *Timer) Delta() float64 {
	return t.delta.Seconds()
}

// Time returns seconds since the session started.
func (t *Timer) Time() float64 {
	return t.elapsed.Seconds()
}

// FPS returns the average frame rate over recent frames.
func (t *Timer) FPS() int {
	var sum time.Duration
	for i := 0; i < t.count; i++ {
		sum += t.recent[i]
	}
	if sum <= 0 {
		return 0
	}
	return int(math.Round(float64(t.count) / sum.Seconds()))
}
