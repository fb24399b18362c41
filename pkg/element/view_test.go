package element_test

import (
	"strings"
	"testing"

	"github.com/reify-dev/reify/pkg/element"
	"github.com/reify-dev/reify/pkg/elementtest"
)

// statsObserver captures pass summaries for assertions.
type statsObserver struct {
	ops    []element.OpEvent
	passes []element.PassStats
}

func (o *statsObserver) Op(e element.OpEvent)     { o.ops = append(o.ops, e) }
func (o *statsObserver) Pass(p element.PassStats) { o.passes = append(o.passes, p) }
func (o *statsObserver) last() element.PassStats  { return o.passes[len(o.passes)-1] }

func TestViewReportsPassStats(t *testing.T) {
	rec := elementtest.NewRecorder()
	obs := &statsObserver{}
	w := &world{items: []item{{id: 1}, {id: 2}, {id: 3}}}
	view := element.NewView(listReify(rec), w, elementtest.FakeNode{Name: "root"},
		quiet(), element.WithObserver(obs))

	if len(obs.passes) != 1 {
		t.Fatalf("passes after construction = %d, want 1", len(obs.passes))
	}
	initial := obs.last()
	if initial.Kind != element.PassReconcile {
		t.Errorf("initial pass kind = %v, want reconcile", initial.Kind)
	}
	// three probes, the declared group, and the synthetic root
	if initial.Creates != 5 {
		t.Errorf("initial creates = %d, want 5", initial.Creates)
	}
	if initial.Nodes != 5 {
		t.Errorf("initial nodes = %d, want 5", initial.Nodes)
	}

	view.Update(w)
	upd := obs.last()
	if upd.Updates != 5 || upd.Creates != 0 || upd.Destroys != 0 {
		t.Errorf("steady-state pass = %+v, want 5 updates only", upd)
	}
	if upd.Tick != 1 {
		t.Errorf("tick = %d, want 1", upd.Tick)
	}

	view.Frame(tickAt(1), w)
	fr := obs.last()
	if fr.Kind != element.PassFrame {
		t.Errorf("frame pass kind = %v, want frame", fr.Kind)
	}
	if fr.Frames != 5 {
		t.Errorf("frame callbacks = %d, want 5", fr.Frames)
	}
}

func TestViewOpEventsCarryPaths(t *testing.T) {
	rec := elementtest.NewRecorder()
	obs := &statsObserver{}
	w := &world{items: []item{{id: 1}}}
	element.NewView(listReify(rec), w, elementtest.FakeNode{Name: "root"},
		quiet(), element.WithObserver(obs))

	var probeCreate *element.OpEvent
	for i := range obs.ops {
		if obs.ops[i].Kind == element.OpCreate && strings.Contains(obs.ops[i].Type, "Probe") {
			probeCreate = &obs.ops[i]
		}
	}
	if probeCreate == nil {
		t.Fatal("no create event for the probe")
	}
	if !strings.Contains(probeCreate.Path, "Probe_") {
		t.Errorf("path %q does not name the element type", probeCreate.Path)
	}
	if probeCreate.Key == 0 {
		t.Error("create event carries a zero key")
	}
}

func TestViewSnapshotShape(t *testing.T) {
	rec := elementtest.NewRecorder()
	w := &world{items: []item{{id: 1}, {id: 2}}}
	view := element.NewView(listReify(rec), w, elementtest.FakeNode{Name: "root"}, quiet())

	// synthetic root, declared group, two probes
	snap := view.Snapshot()
	if len(snap) != 4 {
		t.Fatalf("snapshot nodes = %d, want 4", len(snap))
	}
	if snap[0].Parent != -1 {
		t.Errorf("root parent index = %d, want -1", snap[0].Parent)
	}
	if snap[1].Parent != 0 {
		t.Errorf("group parent index = %d, want 0", snap[1].Parent)
	}
	for _, n := range snap[2:] {
		if n.Parent != 1 {
			t.Errorf("node %q parent index = %d, want 1", n.Path, n.Parent)
		}
	}

	// the snapshot is a stable copy: later ticks must not mutate it
	w.items = nil
	view.Update(w)
	if len(snap) != 4 {
		t.Error("published snapshot mutated by a later tick")
	}
	if got := len(view.Snapshot()); got != 2 {
		t.Errorf("new snapshot nodes = %d, want 2 (root and group only)", got)
	}
}

type ticker struct {
	rec *elementtest.Recorder
}

func (c ticker) Reify() element.Element[ticker] {
	return element.Group[ticker]().
		Child(element.Build[ticker](elementtest.Probe[ticker]{Name: "tick", Rec: c.rec}))
}

func TestViewOfUsesReifier(t *testing.T) {
	rec := elementtest.NewRecorder()
	state := &ticker{rec: rec}
	view := element.ViewOf(state, elementtest.FakeNode{Name: "root"}, quiet())

	if got := rec.CountOf("create", "tick"); got != 1 {
		t.Errorf("creates = %d, want 1", got)
	}
	view.Update(state)
	if got := rec.CountOf("update", "tick"); got != 1 {
		t.Errorf("updates = %d, want 1", got)
	}
}

func TestViewHostReachesLeaves(t *testing.T) {
	type host struct{ name string }
	var seen any
	capture := func(s *int) element.Element[int] {
		return element.Group[int]().Child(element.Build[int](hostProbe{out: &seen}))
	}
	n := 0
	element.NewView(capture, &n, elementtest.FakeNode{Name: "root"},
		quiet(), element.WithHost(&host{name: "session"}))

	h, ok := seen.(*host)
	if !ok || h.name != "session" {
		t.Errorf("leaf saw host %v, want the configured session", seen)
	}
}

// hostProbe captures the Context host at creation.
type hostProbe struct {
	out *any
}

func (p hostProbe) Create(ctx *element.Context, info element.CreateInfo) (element.Handle, error) {
	*p.out = ctx.Host
	return nullHandle{}, nil
}

func (hostProbe) Update(old element.Leaf[int], h element.Handle, res element.Resource) {}

func (hostProbe) Frame(ctx *element.Context, tick element.TickInfo, state *int, h element.Handle) {
}
