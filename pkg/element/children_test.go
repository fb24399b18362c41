package element

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/reify-dev/reify/internal/errors"
)

func TestChildSetComposition(t *testing.T) {
	e := Group[int]().
		Child(Build[int](fakeLeaf{})).
		Children(Build[int](otherLeaf{}), Build[int](fakeLeaf{})).
		MaybeChild(Element[int]{})

	ln, ok := e.n.(*leafNode[int])
	if !ok {
		t.Fatal("group is not a leaf node")
	}
	kids := ln.children.collect(nil)
	if len(kids) != 3 {
		t.Fatalf("collect returned %d children, want 3", len(kids))
	}
}

func TestEmptyChildSetCollapses(t *testing.T) {
	var cs childSet[int]
	got := cs.pair(singleChildren(Build[int](fakeLeaf{})))
	if got.kind != childrenSingle {
		t.Errorf("pairing onto empty gave kind %v, want %v", got.kind, childrenSingle)
	}
}

func TestCollectPreservesDeclarationOrder(t *testing.T) {
	a := Build[int](fakeLeaf{}).Identify(1)
	b := Build[int](otherLeaf{}).Identify(2)
	c := Build[int](fakeLeaf{}).Identify(3)

	e := Group[int]().Child(a).Children(b, c)
	stampTree(t, e)

	ln := e.n.(*leafNode[int])
	kids := ln.children.collect(nil)
	want := []Key{a.n.key(), b.n.key(), c.n.key()}
	for i, k := range want {
		if kids[i].key() != k {
			t.Errorf("child %d key = %v, want %v", i, kids[i].key(), k)
		}
	}
}

func TestAbsentOptionalNotCollected(t *testing.T) {
	e := Group[int]().MaybeChild(Element[int]{}).Child(Build[int](fakeLeaf{}))
	ln := e.n.(*leafNode[int])
	if got := len(ln.children.collect(nil)); got != 1 {
		t.Errorf("collect returned %d children, want 1", got)
	}
}

func TestChildOnProjectedElementIgnored(t *testing.T) {
	lens := Project(Build[int](fakeLeaf{}), func(s *int) *int { return s })
	// misuse: children cannot attach through a lens; must not panic
	got := lens.Child(Build[int](fakeLeaf{}))
	if _, ok := got.n.(*mappedNode[int, int]); !ok {
		t.Error("combinator misuse should leave the element unchanged")
	}
}

func TestChildOnProjectedElementWarnsViaStampLogger(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	lens := Project(Build[int](fakeLeaf{}), func(s *int) *int { return s }).
		Child(Build[int](fakeLeaf{}))
	root := Group[int]().Child(lens)

	st := &stamper{arena: &treeArena{}, log: log}
	root.n.stamp(st, 0, "", -1, 0)

	if !strings.Contains(buf.String(), errors.CodeBadCombinator) {
		t.Errorf("stamp log missing %s warning:\n%s", errors.CodeBadCombinator, buf.String())
	}
}

func TestChildThroughDynamic(t *testing.T) {
	e := Dynamic(Build[int](fakeLeaf{})).Child(Build[int](otherLeaf{}))
	dn, ok := e.n.(*dynamicNode[int])
	if !ok {
		t.Fatal("Dynamic did not wrap the element")
	}
	ln, ok := dn.wrapped.(*leafNode[int])
	if !ok {
		t.Fatal("Dynamic does not wrap a leaf")
	}
	if got := len(ln.children.collect(nil)); got != 1 {
		t.Errorf("child did not attach through Dynamic: %d children", got)
	}
}
