// Package element provides the declarative reconciliation engine for Reify.
//
// Application state is turned into an immutable tree of elements once per
// tick ("reify"). The engine stamps every node with a stable 64-bit key,
// diffs the new tree against the previous tick's tree, and applies the
// minimal set of create/update/destroy calls against a stateful external
// renderer. Native resources keep their identity across ticks as long as
// their key survives the diff.
//
// # Core Types
//
// Element is the opaque, boxed node of the per-tick description tree. Leaf
// is the contract implemented by declared-parameter structs; a leaf owns
// the imperative calls against the renderer. Handle is the live native
// resource backing one keyed element; HandleMap is the only place handles
// live. Registry holds one shared Resource singleton per leaf type.
//
// # Building Trees
//
// Trees are built with combinators:
//
//	Build(Model{Path: "grid.glb"}).
//	    Child(Build(Label{Text: "hello"})).
//	    Children(rows).
//	    MaybeChild(tooltip)
//
// Identify opts a node out of positional keying so it keeps its identity
// when siblings are reordered. Project scopes a subtree to a narrowed view
// of the application state. Dynamic opts a node into runtime type checking
// so its concrete leaf type may change between ticks.
//
// # Driving
//
// View owns the live tree. The host's tick callback calls View.Update once
// per tick to reconcile, and View.Frame to deliver the per-tick callback to
// every live node. Both passes are synchronous and single-threaded; a pass
// runs to completion before the next tick begins.
package element
