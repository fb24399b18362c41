// Package elementtest provides a recording renderer for exercising the
// reconciliation engine without a real renderer session.
//
// Probe and Beacon are leaf types whose lifecycle calls (create, update,
// frame, release) are appended to a shared Recorder in application order,
// so tests can assert not just counts but ordering, e.g. that every
// removal under a parent completes before any creation begins. FailCreate
// scripts creation failures to exercise the non-fatal error path.
//
//	rec := elementtest.NewRecorder()
//	view := element.NewView(reify, &state, elementtest.FakeNode{Name: "root"})
//	...
//	if got := rec.Sequence(); !cmp.Equal(got, want) { ... }
package elementtest
