package element

import "reflect"

// Element is one declared, immutable node of the per-tick description tree.
// Elements are produced fresh every tick and are read-only once produced;
// identity across ticks is carried entirely by the stamped Key.
//
// The zero Element is "absent" and only meaningful as the argument of
// MaybeChild.
type Element[S any] struct {
	n node[S]
}

// node is the boxed polymorphic behavior behind an Element. Everything the
// reconciler does goes through this closed set of methods; the concrete
// implementations are leafNode, mappedNode, and dynamicNode.
type node[S any] interface {
	// tag is the declared type discriminant. It is always compared before
	// any type assertion on a node.
	tag() reflect.Type

	// key returns the stamped key. Zero before stamping.
	key() Key

	// identify sets an explicit identity hint.
	identify(id uint64)

	// identityOf reports the effective identity hint, looking through
	// wrappers.
	identityOf() (uint64, bool)

	// stamp assigns this node's key from its parent key and sibling
	// position, then recurses. stampWith adopts an externally derived key
	// instead; wrappers use it to share their key with what they wrap.
	stamp(st *stamper, parent Key, parentPath string, parentIdx int32, pos int)
	stampWith(st *stamper, k Key, parentPath string, parentIdx int32)

	// create allocates this node's native resource and its subtree,
	// pre-order.
	create(e *engine, parent SceneNode)

	// frame delivers the per-tick callback to this subtree.
	frame(e *engine, tick TickInfo, state *S)

	// diff reconciles this node against its previous-tick counterpart.
	diff(e *engine, old node[S], parent SceneNode, state *S)

	// destroy tears down this node's subtree, children first.
	destroy(e *engine)
}

// leafNode wraps one declared Leaf and its children descriptor.
type leafNode[S any] struct {
	params   Leaf[S]
	children childSet[S]

	k        Key
	path     string
	id       uint64
	hasID    bool
	typeOnce reflect.Type
}

// Build wraps declared leaf parameters into an element with no children.
func Build[S any](leaf Leaf[S]) Element[S] {
	return Element[S]{n: &leafNode[S]{params: leaf}}
}

// Group returns a structural element with no native resource of its own:
// children parent under whatever the group itself is parented under. Views
// use one as the synthetic root; callers use it to compose sibling groups.
func Group[S any]() Element[S] {
	return Build[S](groupLeaf[S]{})
}

// Child attaches one child. Children combinators apply to built leaves
// (looking through Dynamic); attaching to a projected element is a usage
// error, reported and ignored.
func (e Element[S]) Child(c Element[S]) Element[S] {
	if ln := childTarget(e); ln != nil {
		ln.children = ln.children.pair(singleChildren(c))
	}
	return e
}

// Children attaches an ordered homogeneous list of children. List items
// are keyed by position unless they carry an explicit Identify.
func (e Element[S]) Children(cs ...Element[S]) Element[S] {
	if ln := childTarget(e); ln != nil {
		ln.children = ln.children.pair(listChildren(cs))
	}
	return e
}

// MaybeChild attaches an optional child; pass the zero Element for the
// absent case. The slot consumes a sibling position whether or not the
// child is present, so toggling it never re-keys later siblings.
func (e Element[S]) MaybeChild(c Element[S]) Element[S] {
	if ln := childTarget(e); ln != nil {
		ln.children = ln.children.pair(optionalChildren(c))
	}
	return e
}

// childTarget resolves the leaf that children combinators attach to. A
// node that cannot carry children is marked instead of reported here:
// combinators run before any View (and its logger) exists, so the misuse
// is surfaced during the stamp pass.
func childTarget[S any](e Element[S]) *leafNode[S] {
	switch n := e.n.(type) {
	case *leafNode[S]:
		return n
	case *dynamicNode[S]:
		if ln, ok := n.wrapped.(*leafNode[S]); ok {
			return ln
		}
	}
	if m, ok := e.n.(childMisuseMarker); ok {
		m.markChildMisuse()
	}
	return nil
}

// childMisuseMarker is implemented by wrapper nodes so combinator misuse
// detected at build time can be reported later with the view logger.
type childMisuseMarker interface {
	markChildMisuse()
}

// Identify opts this node out of positional keying: the id replaces the
// sibling position in the key derivation, so the node keeps its identity
// across reorders and insertions. Two children of the same type under one
// parent must use distinct ids.
func (e Element[S]) Identify(id any) Element[S] {
	if e.n != nil {
		e.n.identify(hashIdentity(id))
	}
	return e
}

// present reports whether the element is non-zero.
func (e Element[S]) present() bool {
	return e.n != nil
}

func (n *leafNode[S]) tag() reflect.Type {
	if n.typeOnce == nil {
		n.typeOnce = reflect.TypeOf(n.params)
	}
	return n.typeOnce
}

func (n *leafNode[S]) key() Key { return n.k }

func (n *leafNode[S]) identify(id uint64) {
	n.id, n.hasID = id, true
}

func (n *leafNode[S]) identityOf() (uint64, bool) {
	return n.id, n.hasID
}

func (n *leafNode[S]) stamp(st *stamper, parent Key, parentPath string, parentIdx int32, pos int) {
	k := positionalOrIdentityKey(n, parent, pos, n.tag())
	n.stampWith(st, k, parentPath, parentIdx)
}

func (n *leafNode[S]) stampWith(st *stamper, k Key, parentPath string, parentIdx int32) {
	n.k = k
	n.path = childPath(parentPath, n.tag(), k)
	idx := st.push(parentIdx, k, n.tag(), n.path)
	n.children.stamp(st, k, n.path, idx)
}

// positionalOrIdentityKey derives the node key, letting an identity hint
// take precedence over the sibling position when present.
func positionalOrIdentityKey[S any](n node[S], parent Key, pos int, tag reflect.Type) Key {
	if id, ok := n.identityOf(); ok {
		return deriveKey(parent, slotIdentity, id, tag)
	}
	return deriveKey(parent, slotPositional, uint64(pos), tag)
}

// groupLeaf is the built-in structural leaf behind Group. Its handle is a
// pure passthrough: no native resource, children parent under the group's
// own parent.
type groupLeaf[S any] struct{}

type groupHandle struct {
	parent SceneNode
}

func (h groupHandle) SceneNode() SceneNode { return h.parent }
func (h groupHandle) Release()             {}

func (groupLeaf[S]) Create(ctx *Context, info CreateInfo) (Handle, error) {
	return groupHandle{parent: info.Parent}, nil
}

func (groupLeaf[S]) Update(old Leaf[S], h Handle, res Resource) {}

func (groupLeaf[S]) Frame(ctx *Context, tick TickInfo, state *S, h Handle) {}
