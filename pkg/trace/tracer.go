package trace

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/reify-dev/reify/pkg/element"
)

// Default tracer name for reify views.
const defaultTracerName = "reify"

// Config configures the pass tracer.
type Config struct {
	// TracerName is the name of the tracer (default: "reify").
	TracerName string

	// Provider supplies the tracer. Default: the global otel provider.
	Provider trace.TracerProvider

	// Filter determines which passes to trace. Return true to trace the
	// pass, false to skip. If nil, all passes are traced.
	Filter func(p element.PassStats) bool

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// Option configures the pass tracer.
type Option func(*Config)

// WithTracerName sets the tracer name.
func WithTracerName(name string) Option {
	return func(c *Config) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Config) {
		c.Provider = tp
	}
}

// WithPassFilter sets a filter function for passes.
func WithPassFilter(filter func(p element.PassStats) bool) Option {
	return func(c *Config) {
		c.Filter = filter
	}
}

func defaultConfig() Config {
	return Config{
		TracerName: defaultTracerName,
	}
}

// Observer turns completed passes into OpenTelemetry spans.
type Observer struct {
	config Config
}

// New builds a pass-tracing observer.
func New(opts ...Option) *Observer {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.Provider != nil {
		config.tracer = config.Provider.Tracer(config.TracerName)
	} else {
		config.tracer = otel.Tracer(config.TracerName)
	}
	return &Observer{config: config}
}

// Op implements element.Observer. Individual operations are aggregated
// into the pass span, so nothing is emitted here.
func (o *Observer) Op(element.OpEvent) {}

// Pass implements element.Observer.
func (o *Observer) Pass(p element.PassStats) {
	if o.config.Filter != nil && !o.config.Filter(p) {
		return
	}

	name := "reify.frame"
	attrs := []attribute.KeyValue{
		attribute.Int64("reify.tick", int64(p.Tick)),
		attribute.Int("reify.nodes", p.Nodes),
	}
	if p.Kind == element.PassReconcile {
		name = "reify.reconcile"
		attrs = append(attrs,
			attribute.Int("reify.creates", p.Creates),
			attribute.Int("reify.updates", p.Updates),
			attribute.Int("reify.destroys", p.Destroys),
			attribute.Int("reify.failures", p.Failures),
		)
	} else {
		attrs = append(attrs, attribute.Int("reify.frames", p.Frames))
	}

	// Passes are reported after the fact, so both ends of the span are
	// back-dated from the recorded stats.
	_, span := o.config.tracer.Start(context.Background(), name,
		trace.WithTimestamp(p.Start),
		trace.WithAttributes(attrs...),
	)
	span.End(trace.WithTimestamp(p.Start.Add(p.Duration)))
}
