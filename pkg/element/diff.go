package element

// This file is the reconciler: the node-level contract (type-checked
// matching, update with old parameters, destroy+recreate on type swap) and
// the children-level contract (keyed symmetric difference, removals before
// creations, declaration order preserved for creations).

// create allocates this node's native resource, then its children,
// pre-order. A creation failure is non-fatal: the node stays absent from
// the HandleMap and children are created against the node's own parent as
// a best-effort fallback.
func (n *leafNode[S]) create(e *engine, parent SceneNode) {
	res := e.registry.Get(n.params)
	h, err := n.params.Create(e.ctx, CreateInfo{Parent: parent, Path: n.path, Resource: res})
	if err != nil {
		e.createFailed(n.k, n.tag(), n.path, err)
	} else {
		e.handles.Insert(n.k, h)
		e.op(OpCreate, n.k, n.tag(), n.path, nil)
	}
	n.createChildren(e, n.childParent(e, parent))
}

func (n *leafNode[S]) createChildren(e *engine, parent SceneNode) {
	for _, c := range n.children.collect(nil) {
		c.create(e, parent)
	}
}

// childParent returns the scene node this element's children parent under:
// the handle's child node when the handle is live, the element's own
// parent otherwise.
func (n *leafNode[S]) childParent(e *engine, fallback SceneNode) SceneNode {
	if h, ok := e.handles.Get(n.k); ok {
		return h.SceneNode()
	}
	return fallback
}

// frame delivers the per-tick callback to this subtree. Nodes without a
// live handle (failed creation) are skipped but their children still run.
func (n *leafNode[S]) frame(e *engine, tick TickInfo, state *S) {
	if h, ok := e.handles.Get(n.k); ok {
		n.params.Frame(e.ctx, tick, state, h)
		e.stats.Frames++
	}
	for _, c := range n.children.collect(nil) {
		c.frame(e, tick, state)
	}
}

// diff reconciles this node against its previous-tick counterpart at the
// same key. The type tag is checked before any assertion; a mismatch always
// routes to destroy+recreate, never to an assertion failure.
func (n *leafNode[S]) diff(e *engine, old node[S], parent SceneNode, state *S) {
	if old.tag() != n.tag() {
		old.destroy(e)
		n.create(e, parent)
		return
	}
	o, ok := old.(*leafNode[S])
	if !ok {
		// same declared tag behind a different wrapper shape; recreate
		old.destroy(e)
		n.create(e, parent)
		return
	}

	res := e.registry.Get(n.params)
	if h, live := e.handles.Get(n.k); live {
		n.params.Update(o.params, h, res)
		e.op(OpUpdate, n.k, n.tag(), n.path, nil)
	} else {
		// an earlier tick's creation failed; retry instead of updating a
		// resource that does not exist
		h, err := n.params.Create(e.ctx, CreateInfo{Parent: parent, Path: n.path, Resource: res})
		if err != nil {
			e.createFailed(n.k, n.tag(), n.path, err)
		} else {
			e.handles.Insert(n.k, h)
			e.op(OpCreate, n.k, n.tag(), n.path, nil)
		}
	}

	n.diffChildren(e, o, n.childParent(e, parent), state)
}

// diffChildren applies the children-level contract: compute the keyed
// symmetric difference, destroy removed subtrees first, then walk the new
// children in declaration order updating matches and creating additions.
// Within one parent every removal completes before any creation begins.
func (n *leafNode[S]) diffChildren(e *engine, o *leafNode[S], parent SceneNode, state *S) {
	newKids := n.children.collect(nil)
	oldKids := o.children.collect(nil)

	oldByKey := make(map[Key]node[S], len(oldKids))
	oldKeys := make([]Key, len(oldKids))
	for i, c := range oldKids {
		oldByKey[c.key()] = c
		oldKeys[i] = c.key()
	}
	newKeys := make([]Key, len(newKids))
	for i, c := range newKids {
		newKeys[i] = c.key()
	}

	var delta DeltaSet[Key]
	delta.Push(oldKeys...)
	delta.Push(newKeys...)

	for _, c := range oldKids {
		if _, gone := delta.Removed()[c.key()]; gone {
			c.destroy(e)
		}
	}
	for _, c := range newKids {
		if _, fresh := delta.Added()[c.key()]; fresh {
			c.create(e, parent)
		} else {
			c.diff(e, oldByKey[c.key()], parent, state)
		}
	}
}

// destroy tears down the subtree, children first, then removes (and
// thereby releases) this node's own handle.
func (n *leafNode[S]) destroy(e *engine) {
	for _, c := range n.children.collect(nil) {
		c.destroy(e)
	}
	if _, ok := e.handles.Get(n.k); ok {
		e.handles.Remove(n.k)
		e.op(OpDestroy, n.k, n.tag(), n.path, nil)
	}
}
