package element

import "time"

// OpKind classifies one reconciliation side effect.
type OpKind uint8

const (
	OpCreate       OpKind = iota // native resource created
	OpUpdate                     // live resource updated in place
	OpDestroy                    // resource removed and released
	OpCreateFailed               // creation failed; node absent this tick
)

// String returns the string representation of the OpKind.
func (k OpKind) String() string {
	switch k {
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpDestroy:
		return "destroy"
	case OpCreateFailed:
		return "create_failed"
	default:
		return "unknown"
	}
}

// OpEvent describes one applied operation.
type OpEvent struct {
	Kind OpKind
	Key  Key
	Type string // declared type label of the element
	Path string // element path; empty on destroy of unstamped nodes
	Err  error  // set for OpCreateFailed
}

// PassKind distinguishes the two per-tick passes.
type PassKind uint8

const (
	PassReconcile PassKind = iota // reify + stamp + diff
	PassFrame                     // per-tick callback walk
)

// String returns the string representation of the PassKind.
func (k PassKind) String() string {
	switch k {
	case PassReconcile:
		return "reconcile"
	case PassFrame:
		return "frame"
	default:
		return "unknown"
	}
}

// PassStats summarizes one completed pass.
type PassStats struct {
	Kind     PassKind
	Tick     uint64
	Start    time.Time
	Duration time.Duration

	Creates  int // successful creations
	Updates  int // in-place updates
	Destroys int // removals
	Failures int // failed creations
	Frames   int // per-tick callbacks delivered (frame pass only)
	Nodes    int // stamped nodes in the current tree
}

// Observer receives reconciliation telemetry. Implementations must not
// block: both callbacks run inside the tick. The metrics, trace, and
// inspect packages all attach here.
type Observer interface {
	// Op is called for every applied operation, in application order.
	Op(e OpEvent)

	// Pass is called once at the end of each reconcile or frame pass.
	Pass(p PassStats)
}

// multiObserver fans telemetry out to several observers.
type multiObserver []Observer

func (m multiObserver) Op(e OpEvent) {
	for _, o := range m {
		o.Op(e)
	}
}

func (m multiObserver) Pass(p PassStats) {
	for _, o := range m {
		o.Pass(p)
	}
}
