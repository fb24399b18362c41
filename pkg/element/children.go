package element

// childrenKind discriminates the children descriptor variants. The set is
// closed: empty, single child, ordered pair (composition of child groups),
// homogeneous ordered list, optional child.
type childrenKind uint8

const (
	childrenEmpty childrenKind = iota
	childrenSingle
	childrenPair
	childrenList
	childrenOptional
)

// String returns the string representation of the childrenKind.
func (k childrenKind) String() string {
	switch k {
	case childrenEmpty:
		return "Empty"
	case childrenSingle:
		return "Single"
	case childrenPair:
		return "Pair"
	case childrenList:
		return "List"
	case childrenOptional:
		return "Optional"
	default:
		return "Unknown"
	}
}

// childSet is the recursive children descriptor. Each
// Child/Children/MaybeChild call pairs the existing descriptor with the
// new group, so a leaf's children form a small left-leaning tree of
// groups walked in declaration order.
type childSet[S any] struct {
	kind childrenKind
	a, b *childSet[S] // childrenPair
	one  Element[S]   // childrenSingle
	list []Element[S] // childrenList
	opt  Element[S]   // childrenOptional; zero Element when absent
}

func singleChildren[S any](c Element[S]) childSet[S] {
	return childSet[S]{kind: childrenSingle, one: c}
}

func listChildren[S any](cs []Element[S]) childSet[S] {
	return childSet[S]{kind: childrenList, list: cs}
}

func optionalChildren[S any](c Element[S]) childSet[S] {
	return childSet[S]{kind: childrenOptional, opt: c}
}

// pair composes the receiver with a new group. An empty receiver collapses
// to the new group directly.
func (cs childSet[S]) pair(next childSet[S]) childSet[S] {
	if cs.kind == childrenEmpty {
		return next
	}
	a, b := cs, next
	return childSet[S]{kind: childrenPair, a: &a, b: &b}
}

// stamp assigns keys to every present child, depth-first, left-to-right.
// Every slot (single, each list item, and an optional child whether or
// not it is present) consumes exactly one sibling position, so structure
// changes in one slot never re-key the others.
func (cs *childSet[S]) stamp(st *stamper, parent Key, parentPath string, parentIdx int32) {
	pos := 0
	cs.stampSlots(st, parent, parentPath, parentIdx, &pos)
}

func (cs *childSet[S]) stampSlots(st *stamper, parent Key, parentPath string, parentIdx int32, pos *int) {
	switch cs.kind {
	case childrenEmpty:
	case childrenSingle:
		if cs.one.present() {
			cs.one.n.stamp(st, parent, parentPath, parentIdx, *pos)
		}
		*pos++
	case childrenPair:
		cs.a.stampSlots(st, parent, parentPath, parentIdx, pos)
		cs.b.stampSlots(st, parent, parentPath, parentIdx, pos)
	case childrenList:
		for _, c := range cs.list {
			if c.present() {
				c.n.stamp(st, parent, parentPath, parentIdx, *pos)
			}
			*pos++
		}
	case childrenOptional:
		if cs.opt.present() {
			cs.opt.n.stamp(st, parent, parentPath, parentIdx, *pos)
		}
		*pos++
	}
}

// collect appends every present child node in declaration order.
func (cs *childSet[S]) collect(out []node[S]) []node[S] {
	switch cs.kind {
	case childrenSingle:
		if cs.one.present() {
			out = append(out, cs.one.n)
		}
	case childrenPair:
		out = cs.a.collect(out)
		out = cs.b.collect(out)
	case childrenList:
		for _, c := range cs.list {
			if c.present() {
				out = append(out, c.n)
			}
		}
	case childrenOptional:
		if cs.opt.present() {
			out = append(out, cs.opt.n)
		}
	}
	return out
}
