package element

import "testing"

func TestArenaPushAndParentIndices(t *testing.T) {
	a := &treeArena{}
	root := a.push(-1, Key(1), "Group", "/Group_1")
	child := a.push(root, Key(2), "Model", "/Group_1/Model_2")

	if root != 0 || child != 1 {
		t.Fatalf("indices = %d, %d; want 0, 1", root, child)
	}
	if a.nodes[1].Parent != 0 {
		t.Errorf("child parent index = %d, want 0", a.nodes[1].Parent)
	}
	if a.len() != 2 {
		t.Errorf("len = %d, want 2", a.len())
	}
}

func TestArenaResetKeepsCapacity(t *testing.T) {
	a := &treeArena{}
	for i := 0; i < 16; i++ {
		a.push(-1, Key(i), "X", "/x")
	}
	before := cap(a.nodes)
	a.reset()

	if a.len() != 0 {
		t.Errorf("len after reset = %d, want 0", a.len())
	}
	if cap(a.nodes) != before {
		t.Errorf("reset dropped capacity: %d -> %d", before, cap(a.nodes))
	}
}

func TestArenaSnapshotIsIndependent(t *testing.T) {
	a := &treeArena{}
	a.push(-1, Key(1), "X", "/x")
	snap := a.snapshot()
	a.reset()
	a.push(-1, Key(2), "Y", "/y")

	if len(snap) != 1 || snap[0].Key != Key(1) {
		t.Errorf("snapshot mutated by later arena writes: %+v", snap)
	}
}

func TestArenaCollisionsScopedToParent(t *testing.T) {
	a := &treeArena{}
	p1 := a.push(-1, Key(1), "Group", "/g1")
	p2 := a.push(-1, Key(2), "Group", "/g2")
	// same key under different parents is fine
	a.push(p1, Key(9), "X", "/g1/x")
	a.push(p2, Key(9), "X", "/g2/x")

	if got := a.checkCollisions(discardLogger()); got != 0 {
		t.Errorf("cross-parent keys reported as collision: %d", got)
	}

	a.push(p1, Key(9), "X", "/g1/x2")
	if got := a.checkCollisions(discardLogger()); got != 1 {
		t.Errorf("sibling collision count = %d, want 1", got)
	}
}
