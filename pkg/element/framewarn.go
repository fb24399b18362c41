package element

import "time"

// FrameWarning tracks the wall-clock interval between frame passes against
// the renderer-declared tick delta. When the real interval exceeds the
// declared budget the engine is running behind and the host should shed
// work.
type FrameWarning struct {
	last      time.Time
	realDelta time.Duration
	delta     time.Duration
	seen      bool
}

// NewFrameWarning starts the wall clock.
func NewFrameWarning() *FrameWarning {
	return &FrameWarning{last: time.Now()}
}

// Observe records one tick.
func (w *FrameWarning) Observe(tick TickInfo) {
	now := time.Now()
	w.realDelta = now.Sub(w.last)
	w.last = now
	w.delta = tick.Delta
	w.seen = true
}

// Danger reports whether the last observed interval overran the declared
// delta.
func (w *FrameWarning) Danger() bool {
	if !w.seen || w.delta <= 0 {
		return false
	}
	return w.realDelta > w.delta
}

// Times returns the declared and real intervals of the last observation.
func (w *FrameWarning) Times() (declared, real time.Duration) {
	return w.delta, w.realDelta
}
