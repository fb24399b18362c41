// Package trace emits an OpenTelemetry span per reconciliation pass.
//
// Observer implements element.Observer. Each completed pass becomes a
// span named "reify.reconcile" or "reify.frame", back-dated to the pass
// start time and carrying the operation counts as attributes. Operation
// events are folded into the owning pass span rather than emitted
// individually, keeping trace volume proportional to ticks, not nodes.
package trace
