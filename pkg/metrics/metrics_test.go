package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/reify-dev/reify/pkg/element"
)

func TestCollectorCountsOps(t *testing.T) {
	reg := prometheus.NewRegistry()
	col := New(WithRegistry(reg))

	col.Op(element.OpEvent{Kind: element.OpCreate, Type: "Model"})
	col.Op(element.OpEvent{Kind: element.OpCreate, Type: "Model"})
	col.Op(element.OpEvent{Kind: element.OpDestroy, Type: "Model"})
	col.Op(element.OpEvent{Kind: element.OpCreateFailed, Type: "Text"})

	if got := testutil.ToFloat64(col.opsTotal.WithLabelValues("create", "Model")); got != 2 {
		t.Errorf("create ops = %v, want 2", got)
	}
	if got := testutil.ToFloat64(col.opsTotal.WithLabelValues("destroy", "Model")); got != 1 {
		t.Errorf("destroy ops = %v, want 1", got)
	}
	if got := testutil.ToFloat64(col.opsTotal.WithLabelValues("create_failed", "Text")); got != 1 {
		t.Errorf("failed ops = %v, want 1", got)
	}
}

func TestCollectorTracksPasses(t *testing.T) {
	reg := prometheus.NewRegistry()
	col := New(WithRegistry(reg))

	col.Pass(element.PassStats{
		Kind:     element.PassReconcile,
		Duration: 3 * time.Millisecond,
		Nodes:    42,
	})
	col.Pass(element.PassStats{
		Kind:     element.PassFrame,
		Duration: time.Millisecond,
		Frames:   42,
	})

	if got := testutil.ToFloat64(col.passesTotal.WithLabelValues("reconcile")); got != 1 {
		t.Errorf("reconcile passes = %v, want 1", got)
	}
	if got := testutil.ToFloat64(col.liveNodes); got != 42 {
		t.Errorf("live nodes = %v, want 42", got)
	}
	if got := testutil.ToFloat64(col.framesTotal); got != 42 {
		t.Errorf("frames = %v, want 42", got)
	}

	// frame passes must not move the node gauge
	col.Pass(element.PassStats{Kind: element.PassFrame, Nodes: 0})
	if got := testutil.ToFloat64(col.liveNodes); got != 42 {
		t.Errorf("live nodes after frame pass = %v, want 42", got)
	}
}

func TestCollectorNamespaceOption(t *testing.T) {
	reg := prometheus.NewRegistry()
	col := New(WithRegistry(reg), WithNamespace("custom"), WithSubsystem("view"))
	col.Op(element.OpEvent{Kind: element.OpCreate, Type: "Model"})

	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "custom_view_ops_total" {
			found = true
		}
	}
	if !found {
		t.Error("namespaced metric custom_view_ops_total not registered")
	}
}
