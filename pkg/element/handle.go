package element

// SceneNode is an opaque reference to a native node owned by the external
// renderer. The engine never inspects it; it only threads the value from a
// parent's Handle into the CreateInfo of its children.
type SceneNode any

// Handle is the live native resource backing one keyed element. It is
// created by Leaf.Create, owned exclusively by the HandleMap, and released
// exactly once when its key leaves the tree.
type Handle interface {
	// SceneNode returns the native node new children should parent under.
	SceneNode() SceneNode

	// Release frees all native-side state held by the handle. Removal from
	// the HandleMap is the sole destruction signal a leaf can rely on;
	// any background work owned by the handle must be cancelled here.
	Release()
}

// HandleMap is the key-to-handle store. Exactly one live handle exists per
// key currently present in the tree. The map is exposed to leaf
// implementations for inspection; the reconciler is the only writer.
type HandleMap struct {
	m map[Key]Handle
}

// NewHandleMap returns an empty handle map.
func NewHandleMap() *HandleMap {
	return &HandleMap{m: make(map[Key]Handle)}
}

// Insert stores the handle for key, releasing any handle it displaces.
func (hm *HandleMap) Insert(k Key, h Handle) {
	if old, ok := hm.m[k]; ok && old != h {
		old.Release()
	}
	hm.m[k] = h
}

// Get returns the live handle for key, if any.
func (hm *HandleMap) Get(k Key) (Handle, bool) {
	h, ok := hm.m[k]
	return h, ok
}

// Remove deletes the handle for key and releases it. Removing an absent
// key is a no-op.
func (hm *HandleMap) Remove(k Key) {
	h, ok := hm.m[k]
	if !ok {
		return
	}
	delete(hm.m, k)
	h.Release()
}

// Len reports the number of live handles.
func (hm *HandleMap) Len() int {
	return len(hm.m)
}
