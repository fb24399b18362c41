package element

import (
	"reflect"

	"github.com/reify-dev/reify/internal/errors"
)

// Project scopes a subtree built over substate Sub to a tree over state S,
// given a projector from S to an optional mutable Sub. Frame callbacks and
// diff/update calls are forwarded only while the projector returns
// non-nil; while it returns nil the subtree is treated as absent for
// callback purposes.
//
// Projection is NOT removal: a nil projector never destroys native
// resources. If the subtree should actually be torn down, the surrounding
// structure must drop it, for example by passing the zero Element to
// MaybeChild. Relying on the projector alone leaves resources alive
// indefinitely with no further callbacks.
func Project[S, Sub any](e Element[Sub], proj func(*S) *Sub) Element[S] {
	if e.n == nil {
		return Element[S]{}
	}
	return Element[S]{n: &mappedNode[S, Sub]{wrapped: e.n, proj: proj}}
}

// ProjectReify reifies a substate in place inside a superstate tree:
// shorthand for Project(sub.Reify(), proj).
func ProjectReify[S any, Sub Reifier[Sub]](sub *Sub, proj func(*S) *Sub) Element[S] {
	return Project((*sub).Reify(), proj)
}

// mappedNode adapts a node over Sub into a node over S. Its declared type
// tag is the projector's function type, which is distinct per (S, Sub)
// pair, so a lens and what it wraps never alias another node type at the
// same position.
type mappedNode[S, Sub any] struct {
	wrapped node[Sub]
	proj    func(*S) *Sub

	id          uint64
	hasID       bool
	childMisuse bool
}

func (m *mappedNode[S, Sub]) markChildMisuse() { m.childMisuse = true }

func (m *mappedNode[S, Sub]) tag() reflect.Type {
	return reflect.TypeOf(m.proj)
}

func (m *mappedNode[S, Sub]) key() Key { return m.wrapped.key() }

func (m *mappedNode[S, Sub]) identify(id uint64) {
	m.id, m.hasID = id, true
}

func (m *mappedNode[S, Sub]) identityOf() (uint64, bool) {
	if m.hasID {
		return m.id, true
	}
	return m.wrapped.identityOf()
}

// stamp derives the key from the lens's own tag and hands it to the
// wrapped node: a lens and its subtree root share one key.
func (m *mappedNode[S, Sub]) stamp(st *stamper, parent Key, parentPath string, parentIdx int32, pos int) {
	k := positionalOrIdentityKey[S](m, parent, pos, m.tag())
	m.stampWith(st, k, parentPath, parentIdx)
}

func (m *mappedNode[S, Sub]) stampWith(st *stamper, k Key, parentPath string, parentIdx int32) {
	if m.childMisuse {
		st.log.Warn("children attached to a non-leaf element",
			"code", errors.CodeBadCombinator, "path", parentPath)
	}
	m.wrapped.stampWith(st, k, parentPath, parentIdx)
}

// create forwards unconditionally: the projector gates callbacks and
// updates, not construction.
func (m *mappedNode[S, Sub]) create(e *engine, parent SceneNode) {
	m.wrapped.create(e, parent)
}

func (m *mappedNode[S, Sub]) frame(e *engine, tick TickInfo, state *S) {
	if sub := m.proj(state); sub != nil {
		m.wrapped.frame(e, tick, sub)
	}
}

func (m *mappedNode[S, Sub]) diff(e *engine, old node[S], parent SceneNode, state *S) {
	if old.tag() != m.tag() {
		old.destroy(e)
		m.create(e, parent)
		return
	}
	o, ok := old.(*mappedNode[S, Sub])
	if !ok {
		old.destroy(e)
		m.create(e, parent)
		return
	}
	sub := m.proj(state)
	if sub == nil {
		// lens unsatisfied this tick: the subtree is left exactly as the
		// previous tick applied it
		return
	}
	m.wrapped.diff(e, o.wrapped, parent, sub)
}

func (m *mappedNode[S, Sub]) destroy(e *engine) {
	m.wrapped.destroy(e)
}
