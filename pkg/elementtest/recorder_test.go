package elementtest

import (
	"errors"
	"testing"
)

func TestRecorderSequenceAndIndex(t *testing.T) {
	rec := NewRecorder()
	rec.record(Op{Kind: "create", Name: "a"})
	rec.record(Op{Kind: "update", Name: "a"})
	rec.record(Op{Kind: "create", Name: "b"})

	want := []string{"create:a", "update:a", "create:b"}
	got := rec.Sequence()
	if len(got) != len(want) {
		t.Fatalf("sequence length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sequence[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if rec.Index("create", "b") != 2 {
		t.Errorf("Index(create, b) = %d, want 2", rec.Index("create", "b"))
	}
	if rec.Index("release", "a") != -1 {
		t.Errorf("Index on missing op = %d, want -1", rec.Index("release", "a"))
	}
	if rec.Count("create") != 2 || rec.CountOf("create", "a") != 1 {
		t.Error("counts disagree with the recorded stream")
	}
}

func TestRecorderScriptedFailures(t *testing.T) {
	rec := NewRecorder()
	boom := errors.New("boom")
	rec.FailCreate("x", boom)

	if err := rec.createErr("x"); err != boom {
		t.Errorf("createErr = %v, want scripted error", err)
	}
	rec.PassCreate("x")
	if err := rec.createErr("x"); err != nil {
		t.Errorf("createErr after PassCreate = %v, want nil", err)
	}
}

func TestRecorderResetKeepsScripts(t *testing.T) {
	rec := NewRecorder()
	rec.FailCreate("x", errors.New("boom"))
	rec.record(Op{Kind: "create", Name: "a"})
	rec.Reset()

	if len(rec.Ops()) != 0 {
		t.Error("Reset did not clear the op stream")
	}
	if rec.createErr("x") == nil {
		t.Error("Reset dropped the scripted failure")
	}
}
