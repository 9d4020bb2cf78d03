package session

import "time"

// DefaultFrameStep is one frame at 60 FPS.
const DefaultFrameStep = time.Second / 60

// TimeSource returns a monotonic offset from an arbitrary origin.
type TimeSource interface {
	Now() time.Duration
}

// MonotonicClock measures time since it was created using the runtime's
// monotonic clock reading.
type MonotonicClock struct {
	start time.Time
}

func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{start: time.Now()}
}

func (m *MonotonicClock) Now() time.Duration {
	return time.Since(m.start)
}

// FrameClock advances a fixed step per frame, for headless runs that must be
// reproducible.
type FrameClock struct {
	currentTime time.Duration
	step        time.Duration
}

func NewFrameClock(step time.Duration) *FrameClock {
	if step <= 0 {
		step = DefaultFrameStep
	}
	return &FrameClock{
		currentTime: 0,
		step:        step,
	}
}

func (f *FrameClock) Advance() {
	f.currentTime += f.step
}

func (f *FrameClock) Now() time.Duration {
	return f.currentTime
}

func (f *FrameClock) Step() time.Duration {
	return f.step
}
