// Package metrics exposes reconciliation telemetry as Prometheus metrics.
//
// Collector implements element.Observer: attach it to a View with
// element.WithObserver and scrape the registry it was built against.
//
//	reg := prometheus.NewRegistry()
//	col := metrics.New(metrics.WithRegistry(reg))
//	view := element.NewView(reify, &state, root, element.WithObserver(col))
package metrics
