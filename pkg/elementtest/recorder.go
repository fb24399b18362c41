package elementtest

import (
	"sync"

	"github.com/reify-dev/reify/pkg/element"
)

// FakeNode is a SceneNode stand-in carrying only a name, so tests can
// assert what parent an element was created under.
type FakeNode struct {
	Name string
}

// Op is one recorded lifecycle call.
type Op struct {
	Kind   string // "create", "update", "frame", "release"
	Name   string // probe name
	Value  int    // declared value at call time (new value for updates)
	Old    int    // previous declared value (updates only)
	Parent string // parent FakeNode name (creates only)
}

// Recorder collects lifecycle calls from probe leaves in application
// order. Safe for concurrent use so background readers (the inspect
// server, parallel assertions) never race the tick.
type Recorder struct {
	mu      sync.Mutex
	ops     []Op
	failing map[string]error
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{failing: make(map[string]error)}
}

// FailCreate scripts Create to fail for probes with the given name until
// PassCreate is called.
func (r *Recorder) FailCreate(name string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failing[name] = err
}

// PassCreate stops a scripted creation failure.
func (r *Recorder) PassCreate(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.failing, name)
}

func (r *Recorder) createErr(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failing[name]
}

func (r *Recorder) record(op Op) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, op)
}

// Ops returns a copy of all recorded calls in order.
func (r *Recorder) Ops() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Op, len(r.ops))
	copy(out, r.ops)
	return out
}

// Sequence renders the recorded calls as "kind:name" strings, the compact
// form most assertions diff against.
func (r *Recorder) Sequence() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.ops))
	for i, op := range r.ops {
		out[i] = op.Kind + ":" + op.Name
	}
	return out
}

// Count reports how many calls of one kind were recorded.
func (r *Recorder) Count(kind string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, op := range r.ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// CountOf reports how many calls of one kind one probe received.
func (r *Recorder) CountOf(kind, name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, op := range r.ops {
		if op.Kind == kind && op.Name == name {
			n++
		}
	}
	return n
}

// Index returns the position of the first call matching kind and name, or
// -1. Ordering assertions compare indices.
func (r *Recorder) Index(kind, name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, op := range r.ops {
		if op.Kind == kind && op.Name == name {
			return i
		}
	}
	return -1
}

// Reset forgets all recorded calls but keeps scripted failures.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = r.ops[:0]
}

// Handle is the recorded fake native resource.
type Handle struct {
	rec  *Recorder
	name string
	node FakeNode
}

// SceneNode returns the fake node children parent under.
func (h *Handle) SceneNode() element.SceneNode {
	return h.node
}

// Release records the teardown.
func (h *Handle) Release() {
	h.rec.record(Op{Kind: "release", Name: h.name})
}

func parentName(n element.SceneNode) string {
	if fn, ok := n.(FakeNode); ok {
		return fn.Name
	}
	return ""
}
