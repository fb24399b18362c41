// Package inspect serves a live view of a running reconciler over HTTP.
//
// The server exposes the current stamped tree as JSON, Prometheus
// metrics, and a WebSocket stream of reconciliation operations. It
// implements element.Observer so it can be attached to a View directly:
//
//	srv := inspect.New()
//	view := element.NewView(reify, &state, root, element.WithObserver(srv))
//	srv.Watch(view)
//	go srv.Start(":7878")
//
// The observer path never blocks the tick: operation events are buffered
// and dropped when the stream falls behind, and tree reads work against
// the View's published snapshot rather than the live arena.
package inspect
