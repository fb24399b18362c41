package trace

import (
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace/noop"

	"github.com/reify-dev/reify/pkg/element"
)

func TestObserverEmitsWithoutPanic(t *testing.T) {
	obs := New(WithTracerProvider(noop.NewTracerProvider()), WithTracerName("test"))

	obs.Op(element.OpEvent{Kind: element.OpCreate, Type: "Model"})
	obs.Pass(element.PassStats{
		Kind:     element.PassReconcile,
		Tick:     3,
		Start:    time.Now(),
		Duration: 2 * time.Millisecond,
		Creates:  1,
		Nodes:    10,
	})
	obs.Pass(element.PassStats{
		Kind:   element.PassFrame,
		Frames: 10,
	})
}

func TestPassFilterSkips(t *testing.T) {
	calls := 0
	obs := New(
		WithTracerProvider(noop.NewTracerProvider()),
		WithPassFilter(func(p element.PassStats) bool {
			calls++
			return p.Kind == element.PassReconcile
		}),
	)

	obs.Pass(element.PassStats{Kind: element.PassFrame})
	obs.Pass(element.PassStats{Kind: element.PassReconcile})

	if calls != 2 {
		t.Errorf("filter calls = %d, want 2", calls)
	}
}
