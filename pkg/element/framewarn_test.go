package element

import (
	"testing"
	"time"
)

func TestFrameWarningNoDangerWithinBudget(t *testing.T) {
	w := NewFrameWarning()
	w.Observe(TickInfo{Delta: time.Hour})

	if w.Danger() {
		t.Error("interval within budget reported as danger")
	}
}

func TestFrameWarningDangerOnOverrun(t *testing.T) {
	w := NewFrameWarning()
	time.Sleep(2 * time.Millisecond)
	w.Observe(TickInfo{Delta: time.Nanosecond})

	if !w.Danger() {
		t.Error("overrun not reported")
	}
	declared, real := w.Times()
	if declared != time.Nanosecond {
		t.Errorf("declared = %v, want 1ns", declared)
	}
	if real < 2*time.Millisecond {
		t.Errorf("real = %v, want at least the slept interval", real)
	}
}

func TestFrameWarningZeroDeltaNeverDanger(t *testing.T) {
	w := NewFrameWarning()
	time.Sleep(time.Millisecond)
	w.Observe(TickInfo{})

	if w.Danger() {
		t.Error("unset delta should disable the check")
	}
}
