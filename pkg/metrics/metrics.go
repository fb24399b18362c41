package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/reify-dev/reify/pkg/element"
)

// Config configures the Prometheus collector.
type Config struct {
	// Namespace is the metrics namespace (default: "reify").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for pass duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the Prometheus collector.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "reify",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Collector is an element.Observer backed by Prometheus metrics.
type Collector struct {
	opsTotal     *prometheus.CounterVec
	passDuration *prometheus.HistogramVec
	passesTotal  *prometheus.CounterVec
	framesTotal  prometheus.Counter
	liveNodes    prometheus.Gauge
}

// New builds a collector and registers its metrics.
func New(opts ...Option) *Collector {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Collector{
		opsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "ops_total",
			Help:        "Reconciliation operations applied, by operation and element type",
			ConstLabels: config.ConstLabels,
		}, []string{"op", "element"}),

		passDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "pass_duration_seconds",
			Help:        "Duration of reconcile and frame passes in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"pass"}),

		passesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "passes_total",
			Help:        "Completed reconcile and frame passes",
			ConstLabels: config.ConstLabels,
		}, []string{"pass"}),

		framesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "frames_total",
			Help:        "Per-tick callbacks delivered to live elements",
			ConstLabels: config.ConstLabels,
		}),

		liveNodes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "live_nodes",
			Help:        "Stamped nodes in the current tree",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Op implements element.Observer.
func (c *Collector) Op(e element.OpEvent) {
	c.opsTotal.WithLabelValues(e.Kind.String(), e.Type).Inc()
}

// Pass implements element.Observer.
func (c *Collector) Pass(p element.PassStats) {
	pass := p.Kind.String()
	c.passesTotal.WithLabelValues(pass).Inc()
	c.passDuration.WithLabelValues(pass).Observe(p.Duration.Seconds())
	c.framesTotal.Add(float64(p.Frames))
	if p.Kind == element.PassReconcile {
		c.liveNodes.Set(float64(p.Nodes))
	}
}
