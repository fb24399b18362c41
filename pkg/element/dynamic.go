package element

import (
	"reflect"

	"github.com/reify-dev/reify/internal/errors"
)

// Dynamic opts a node into runtime type identity: the element keeps one
// stable key while its concrete leaf type is allowed to change between
// ticks (children built from externally parsed data, for example). On a
// concrete-type mismatch the old subtree is destroyed and the new one
// created wholesale; when the types match the normal fast path applies.
//
// Statically shaped trees never need this: without Dynamic the type tag
// participates in the key, so a type change is an ordinary remove+add in
// the parent's children diff.
func Dynamic[S any](e Element[S]) Element[S] {
	if e.n == nil {
		return e
	}
	return Element[S]{n: &dynamicNode[S]{wrapped: e.n}}
}

// dynamicNode erases the wrapped node's type from key derivation and
// performs the runtime check the erased type made necessary.
type dynamicNode[S any] struct {
	wrapped node[S]

	id          uint64
	hasID       bool
	childMisuse bool
}

func (d *dynamicNode[S]) markChildMisuse() { d.childMisuse = true }

func (d *dynamicNode[S]) tag() reflect.Type {
	return reflect.TypeOf(d)
}

func (d *dynamicNode[S]) key() Key { return d.wrapped.key() }

func (d *dynamicNode[S]) identify(id uint64) {
	d.id, d.hasID = id, true
}

func (d *dynamicNode[S]) identityOf() (uint64, bool) {
	if d.hasID {
		return d.id, true
	}
	return d.wrapped.identityOf()
}

func (d *dynamicNode[S]) stamp(st *stamper, parent Key, parentPath string, parentIdx int32, pos int) {
	k := positionalOrIdentityKey[S](d, parent, pos, d.tag())
	d.stampWith(st, k, parentPath, parentIdx)
}

func (d *dynamicNode[S]) stampWith(st *stamper, k Key, parentPath string, parentIdx int32) {
	if d.childMisuse {
		st.log.Warn("children attached to a non-leaf element",
			"code", errors.CodeBadCombinator, "path", parentPath)
	}
	d.wrapped.stampWith(st, k, parentPath, parentIdx)
}

func (d *dynamicNode[S]) create(e *engine, parent SceneNode) {
	d.wrapped.create(e, parent)
}

func (d *dynamicNode[S]) frame(e *engine, tick TickInfo, state *S) {
	d.wrapped.frame(e, tick, state)
}

func (d *dynamicNode[S]) diff(e *engine, old node[S], parent SceneNode, state *S) {
	if old.tag() != d.tag() {
		old.destroy(e)
		d.create(e, parent)
		return
	}
	o, ok := old.(*dynamicNode[S])
	if !ok {
		old.destroy(e)
		d.create(e, parent)
		return
	}
	// the runtime check erased typing made necessary: same concrete type
	// takes the fast path, a mismatch recreates wholesale
	if o.wrapped.tag() != d.wrapped.tag() {
		o.wrapped.destroy(e)
		d.wrapped.create(e, parent)
		return
	}
	d.wrapped.diff(e, o.wrapped, parent, state)
}

func (d *dynamicNode[S]) destroy(e *engine) {
	d.wrapped.destroy(e)
}
