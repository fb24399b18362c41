package element

import (
	"log/slog"
	"sync/atomic"
	"time"
)

// View owns one live element tree and the stores backing it. The host's
// tick callback drives it: Update reconciles a freshly reified tree
// against the previous tick's tree, Frame delivers the per-tick callback
// to every live node. Both are synchronous; a pass runs to completion
// before the next begins, and the View performs no internal parallelism.
type View[S any] struct {
	reify func(*S) Element[S]

	root node[S] // current stamped tree (synthetic group root)
	eng  *engine

	rootNode SceneNode
	cur, old *treeArena
	snap     atomic.Pointer[[]FlatNode]

	warn *FrameWarning
	tick uint64
	log  *slog.Logger
}

// options configures a View.
type options struct {
	log       *slog.Logger
	host      any
	observers []Observer
}

// Option configures a View.
type Option func(*options)

// WithLogger sets the logger. Defaults to slog.Default() tagged with the
// engine component.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// WithHost sets the renderer connection/session object handed to leaves
// through the Context.
func WithHost(host any) Option {
	return func(o *options) {
		o.host = host
	}
}

// WithObserver attaches an observer for reconciliation telemetry. May be
// given several times.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		o.observers = append(o.observers, obs)
	}
}

// NewView reifies the initial tree from state, stamps it, and creates
// every native resource under rootNode. Creation failures are non-fatal
// and reported through the logger and observers.
func NewView[S any](reify func(*S) Element[S], state *S, rootNode SceneNode, opts ...Option) *View[S] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = slog.Default().With("component", "reify")
	}

	var obs Observer
	switch len(o.observers) {
	case 0:
	case 1:
		obs = o.observers[0]
	default:
		obs = multiObserver(o.observers)
	}

	v := &View[S]{
		reify:    reify,
		rootNode: rootNode,
		cur:      &treeArena{},
		old:      &treeArena{},
		warn:     NewFrameWarning(),
		log:      o.log,
		eng: &engine{
			ctx:      &Context{Log: o.log, Host: o.host},
			handles:  NewHandleMap(),
			registry: NewRegistry(),
			obs:      obs,
			log:      o.log,
		},
	}

	stats := v.beginPass(PassReconcile)
	v.root = v.stamp(reify(state))
	v.root.create(v.eng, rootNode)
	v.endPass(stats)
	return v
}

// ViewOf builds a View for a state type that implements Reifier.
func ViewOf[S Reifier[S]](state *S, rootNode SceneNode, opts ...Option) *View[S] {
	return NewView(func(s *S) Element[S] { return (*s).Reify() }, state, rootNode, opts...)
}

// stamp wraps the user tree in the synthetic group root, swaps the arena
// double buffer, and runs the key-assignment pass over the new tree.
func (v *View[S]) stamp(tree Element[S]) node[S] {
	root := Group[S]().Child(tree)

	v.cur, v.old = v.old, v.cur
	v.cur.reset()

	st := &stamper{arena: v.cur, log: v.log}
	root.n.stamp(st, 0, "", -1, 0)
	v.cur.checkCollisions(v.log)
	return root.n
}

// Update runs one reconciliation pass: reify a new tree from state, stamp
// it, diff it against the previous tick's tree, and make it current.
func (v *View[S]) Update(state *S) {
	v.tick++
	stats := v.beginPass(PassReconcile)

	next := v.stamp(v.reify(state))
	next.diff(v.eng, v.root, v.rootNode, state)
	v.root = next

	v.endPass(stats)
}

// Frame walks the current live tree and delivers the per-tick callback to
// every node with a live handle. Independent of diffing: Update and Frame
// may be driven at different cadences.
func (v *View[S]) Frame(tick TickInfo, state *S) {
	v.warn.Observe(tick)
	if v.warn.Danger() {
		declared, real := v.warn.Times()
		v.log.Warn("tick overran its declared delta",
			"declared", declared, "real", real, "frame", tick.Frame)
	}

	stats := v.beginPass(PassFrame)
	v.root.frame(v.eng, tick, state)
	v.endPass(stats)
}

// Close destroys the whole tree (releasing every handle) and closes every
// registry entry. The View must not be used afterwards.
func (v *View[S]) Close() {
	stats := v.beginPass(PassReconcile)
	v.root.destroy(v.eng)
	v.cur.reset()
	v.endPass(stats)
	v.eng.registry.Close()
}

// Snapshot returns the most recently published flat tree. Safe to call
// from any goroutine; the returned slice is immutable.
func (v *View[S]) Snapshot() []FlatNode {
	if s := v.snap.Load(); s != nil {
		return *s
	}
	return nil
}

// Handles exposes the native-resource map for leaf implementations and
// tests. The reconciler is the only writer.
func (v *View[S]) Handles() *HandleMap {
	return v.eng.handles
}

// Registry exposes the per-type shared resource store.
func (v *View[S]) Registry() *Registry {
	return v.eng.registry
}

func (v *View[S]) beginPass(kind PassKind) *PassStats {
	stats := &PassStats{Kind: kind, Tick: v.tick, Start: time.Now()}
	v.eng.stats = stats
	return stats
}

func (v *View[S]) endPass(stats *PassStats) {
	stats.Duration = time.Since(stats.Start)
	stats.Nodes = v.cur.len()
	if stats.Kind == PassReconcile {
		snap := v.cur.snapshot()
		v.snap.Store(&snap)
	}
	if v.eng.obs != nil {
		v.eng.obs.Pass(*stats)
	}
}
