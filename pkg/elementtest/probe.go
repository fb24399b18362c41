package elementtest

import (
	"github.com/reify-dev/reify/pkg/element"
)

// Probe is a leaf whose lifecycle calls are recorded. Name identifies the
// probe in the recorded stream; Value stands in for arbitrary declared
// parameters and is diffed field-by-field in Update the way a real leaf
// would.
type Probe[S any] struct {
	Name  string
	Value int
	Rec   *Recorder
}

// Create allocates the fake handle, or fails if the recorder scripts it.
func (p Probe[S]) Create(ctx *element.Context, info element.CreateInfo) (element.Handle, error) {
	if err := p.Rec.createErr(p.Name); err != nil {
		return nil, err
	}
	p.Rec.record(Op{Kind: "create", Name: p.Name, Value: p.Value, Parent: parentName(info.Parent)})
	return &Handle{rec: p.Rec, name: p.Name, node: FakeNode{Name: info.Path}}, nil
}

// Update records the transition from the old declared value.
func (p Probe[S]) Update(old element.Leaf[S], h element.Handle, res element.Resource) {
	prev, _ := old.(Probe[S])
	p.Rec.record(Op{Kind: "update", Name: p.Name, Value: p.Value, Old: prev.Value})
}

// Frame records the per-tick callback.
func (p Probe[S]) Frame(ctx *element.Context, tick element.TickInfo, state *S, h element.Handle) {
	p.Rec.record(Op{Kind: "frame", Name: p.Name, Value: p.Value})
}

// Beacon is a second recorded leaf type, distinct from Probe, for
// exercising type-swap behavior behind Dynamic.
type Beacon[S any] struct {
	Name string
	Rec  *Recorder
}

// Create allocates the fake handle.
func (b Beacon[S]) Create(ctx *element.Context, info element.CreateInfo) (element.Handle, error) {
	if err := b.Rec.createErr(b.Name); err != nil {
		return nil, err
	}
	b.Rec.record(Op{Kind: "create", Name: b.Name, Parent: parentName(info.Parent)})
	return &Handle{rec: b.Rec, name: b.Name, node: FakeNode{Name: info.Path}}, nil
}

// Update records the call.
func (b Beacon[S]) Update(old element.Leaf[S], h element.Handle, res element.Resource) {
	b.Rec.record(Op{Kind: "update", Name: b.Name})
}

// Frame records the per-tick callback.
func (b Beacon[S]) Frame(ctx *element.Context, tick element.TickInfo, state *S, h element.Handle) {
	b.Rec.record(Op{Kind: "frame", Name: b.Name})
}

// SharedResource is the Registry singleton used by Shared probes: it
// counts how many instances touched it and whether Close ran.
type SharedResource struct {
	Creates int
	Updates int
	Closed  bool
}

// Close marks the resource torn down.
func (r *SharedResource) Close() {
	r.Closed = true
}

// Shared is a recorded leaf that carries a per-type SharedResource. All
// instances of Shared across the whole tree mutate the same entry.
type Shared[S any] struct {
	Name string
	Rec  *Recorder
}

// NewResource implements element.ResourceProvider.
func (Shared[S]) NewResource() element.Resource {
	return &SharedResource{}
}

// Create bumps the shared creation count.
func (s Shared[S]) Create(ctx *element.Context, info element.CreateInfo) (element.Handle, error) {
	if res, ok := info.Resource.(*SharedResource); ok {
		res.Creates++
	}
	s.Rec.record(Op{Kind: "create", Name: s.Name, Parent: parentName(info.Parent)})
	return &Handle{rec: s.Rec, name: s.Name, node: FakeNode{Name: info.Path}}, nil
}

// Update bumps the shared update count.
func (s Shared[S]) Update(old element.Leaf[S], h element.Handle, res element.Resource) {
	if r, ok := res.(*SharedResource); ok {
		r.Updates++
	}
	s.Rec.record(Op{Kind: "update", Name: s.Name})
}

// Frame records the per-tick callback.
func (s Shared[S]) Frame(ctx *element.Context, tick element.TickInfo, state *S, h element.Handle) {
	s.Rec.record(Op{Kind: "frame", Name: s.Name})
}
