package element

import (
	"log/slog"

	"github.com/reify-dev/reify/internal/errors"
)

// FlatNode is one stamped element in the flattened tree: the stable key,
// the declared type label, the element path, and the index of the parent
// FlatNode (-1 for the root). The flat tree is what observers and the
// inspect server see; it carries no parameters and no handles.
type FlatNode struct {
	Key    Key
	Type   string
	Path   string
	Parent int32
}

// treeArena is the arena-of-indices behind one tick's flattened tree.
// Nodes live in one contiguous slice and reference their parent by index,
// never by pointer. A View owns two arenas and swaps them every tick: the
// previous tick's arena stays alive only long enough to be reset and
// refilled, so steady-state ticks allocate nothing here.
type treeArena struct {
	nodes []FlatNode
}

// reset empties the arena, keeping its backing storage.
func (a *treeArena) reset() {
	a.nodes = a.nodes[:0]
}

// push appends one stamped node and returns its index.
func (a *treeArena) push(parent int32, k Key, typeName, path string) int32 {
	a.nodes = append(a.nodes, FlatNode{Key: k, Type: typeName, Path: path, Parent: parent})
	return int32(len(a.nodes) - 1)
}

// len reports the number of stamped nodes.
func (a *treeArena) len() int {
	return len(a.nodes)
}

// snapshot returns an independent copy for publication outside the tick.
func (a *treeArena) snapshot() []FlatNode {
	out := make([]FlatNode, len(a.nodes))
	copy(out, a.nodes)
	return out
}

// checkCollisions scans for sibling nodes that hashed to the same key.
// A collision is a usage error: two children of the same type at the same
// position need distinct explicit identities. The diff silently treats
// colliding nodes as one, so it is reported loudly here rather than
// "handled".
func (a *treeArena) checkCollisions(log *slog.Logger) int {
	type slot struct {
		parent int32
		key    Key
	}
	seen := make(map[slot]string, len(a.nodes))
	collisions := 0
	for _, n := range a.nodes {
		s := slot{parent: n.Parent, key: n.Key}
		if prev, ok := seen[s]; ok {
			collisions++
			log.Error("sibling key collision",
				"code", errors.CodeKeyCollision,
				"key", n.Key,
				"path", n.Path,
				"collides_with", prev)
			continue
		}
		seen[s] = n.Path
	}
	return collisions
}
