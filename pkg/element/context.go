package element

import (
	"log/slog"
	"time"
)

// Context is the dependency-injection context handed to every leaf call.
// It replaces ambient global lookup: whatever a leaf needs to reach the
// renderer or the host environment is carried here explicitly.
type Context struct {
	// Log is the engine logger. Never nil.
	Log *slog.Logger

	// Host is the connection or session object leaves use to issue calls
	// against the external renderer. The engine never touches it.
	Host any
}

// CreateInfo carries everything a leaf needs to allocate its native
// resource.
type CreateInfo struct {
	// Parent is the scene node the new resource should be parented under.
	Parent SceneNode

	// Path is a stable, human-readable identity path for the element,
	// derived from its ancestry ("/Group_1/Model_4821..."). Useful for
	// naming renderer-side objects and for debugging.
	Path string

	// Resource is the per-type shared singleton, or nil if the leaf type
	// does not implement ResourceProvider.
	Resource Resource
}

// TickInfo describes one external tick delivered by the host renderer.
type TickInfo struct {
	// Delta is the renderer-declared time budget of the tick.
	Delta time.Duration

	// Elapsed is the total time since the session started.
	Elapsed time.Duration

	// Frame is the tick sequence number.
	Frame uint64
}

// Leaf is the per-leaf contract: a declared-parameter struct that knows how
// to create, mutate, and drive its native resource. Parameter structs are
// value types produced fresh every tick; they must not hold references to
// live native state (that belongs in the Handle).
type Leaf[S any] interface {
	// Create allocates the native resource. A failure is non-fatal: the
	// node is simply absent from the HandleMap this tick and its children
	// are created against a best-effort fallback parent.
	Create(ctx *Context, info CreateInfo) (Handle, error)

	// Update applies the difference between old and the receiver to the
	// live handle. old is guaranteed to have the receiver's concrete type;
	// the engine checks the type tag before this call, never after. Every
	// field comparison is the leaf's responsibility: nothing is inferred.
	Update(old Leaf[S], h Handle, res Resource)

	// Frame is invoked once per tick on every live node, independent of
	// diffing. Blocking here stalls the whole tick.
	Frame(ctx *Context, tick TickInfo, state *S, h Handle)
}

// Reifier is implemented by state types that know how to describe
// themselves as an element tree.
type Reifier[S any] interface {
	Reify() Element[S]
}
