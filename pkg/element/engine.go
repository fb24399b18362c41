package element

import (
	"log/slog"
	"reflect"

	"github.com/reify-dev/reify/internal/errors"
)

// engine bundles the stores and telemetry sinks a pass threads through the
// tree. One engine lives per View; its fields never change after
// construction except stats, which is swapped per pass.
type engine struct {
	ctx      *Context
	handles  *HandleMap
	registry *Registry
	obs      Observer // nil when nobody listens
	log      *slog.Logger

	stats *PassStats // the pass currently running
}

func (e *engine) op(kind OpKind, k Key, tag reflect.Type, path string, err error) {
	switch kind {
	case OpCreate:
		e.stats.Creates++
	case OpUpdate:
		e.stats.Updates++
	case OpDestroy:
		e.stats.Destroys++
	case OpCreateFailed:
		e.stats.Failures++
	}
	if e.obs != nil {
		e.obs.Op(OpEvent{Kind: kind, Key: k, Type: typeLabel(tag), Path: path, Err: err})
	}
}

func (e *engine) createFailed(k Key, tag reflect.Type, path string, err error) {
	e.op(OpCreateFailed, k, tag, path, err)
	e.log.Warn("element creation failed",
		"code", errors.CodeCreateFailed,
		"element", typeLabel(tag),
		"path", path,
		"err", err)
}
