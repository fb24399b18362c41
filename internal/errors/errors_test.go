package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestNewFromRegistry(t *testing.T) {
	err := New(CodeKeyCollision)
	if err.Code != CodeKeyCollision {
		t.Errorf("Code = %q, want %q", err.Code, CodeKeyCollision)
	}
	if err.Category != CategoryUsage {
		t.Errorf("Category = %q, want %q", err.Category, CategoryUsage)
	}
	if err.Message == "" || err.Detail == "" {
		t.Error("registered error missing message or detail")
	}
	if !strings.HasPrefix(err.Error(), CodeKeyCollision+": ") {
		t.Errorf("Error() = %q, want code prefix", err.Error())
	}
}

func TestNewUnknownCode(t *testing.T) {
	err := New("E999")
	if err.Code != "E999" {
		t.Errorf("Code = %q, want E999", err.Code)
	}
	if err.Message != "Unknown error" {
		t.Errorf("Message = %q", err.Message)
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	cause := stderrors.New("disk on fire")
	err := New(CodeConfigRead).Wrap(cause)

	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause not reachable via errors.Is")
	}
	if !strings.Contains(err.Error(), "disk on fire") {
		t.Errorf("Error() = %q, cause missing", err.Error())
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, CodeConfigRead) != nil {
		t.Error("FromError(nil) should be nil")
	}
	cause := stderrors.New("boom")
	err := FromError(cause, CodeConfigRead)
	if err == nil || err.Wrapped != cause {
		t.Errorf("FromError did not wrap the cause: %+v", err)
	}
}

func TestFormatRendersDetailAndCause(t *testing.T) {
	err := New(CodeConfigInvalid).
		WithDetail("sim.nodes must be at least 1").
		Wrap(stderrors.New("got 0"))

	out := err.Format()
	for _, want := range []string{"ERROR " + CodeConfigInvalid, "sim.nodes", "caused by: got 0"} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}
}

func TestTemplateLookup(t *testing.T) {
	if _, ok := Template(CodeCreateFailed); !ok {
		t.Error("registered code not found")
	}
	if _, ok := Template("E999"); ok {
		t.Error("unregistered code found")
	}
}
