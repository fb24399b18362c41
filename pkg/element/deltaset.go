package element

// DeltaSet tracks the symmetric difference between successive generations
// of a set. Push the previous generation, then the current one: Added
// holds what appeared, Removed what vanished, Current the latest
// generation. The reconciler uses it for keyed children diffing; leaves
// can use it for their own multi-valued parameter diffing.
type DeltaSet[T comparable] struct {
	added   map[T]struct{}
	current map[T]struct{}
	removed map[T]struct{}
}

// Push replaces the current generation and recomputes Added and Removed
// against the generation it displaces.
func (d *DeltaSet[T]) Push(items ...T) {
	next := make(map[T]struct{}, len(items))
	for _, it := range items {
		next[it] = struct{}{}
	}
	d.added = make(map[T]struct{})
	for it := range next {
		if _, ok := d.current[it]; !ok {
			d.added[it] = struct{}{}
		}
	}
	d.removed = make(map[T]struct{})
	for it := range d.current {
		if _, ok := next[it]; !ok {
			d.removed[it] = struct{}{}
		}
	}
	d.current = next
}

// Added returns the items new in the current generation.
func (d *DeltaSet[T]) Added() map[T]struct{} { return d.added }

// Current returns the current generation.
func (d *DeltaSet[T]) Current() map[T]struct{} { return d.current }

// Removed returns the items dropped by the current generation.
func (d *DeltaSet[T]) Removed() map[T]struct{} { return d.removed }
