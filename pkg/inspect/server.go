package inspect

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/reify-dev/reify/internal/errors"
	"github.com/reify-dev/reify/pkg/element"
)

// Snapshotter supplies the most recently published tree. element.View
// implements it.
type Snapshotter interface {
	Snapshot() []element.FlatNode
}

// opBuffer is how many operation events the stream buffers before
// dropping. Dropping is deliberate: a slow inspector must never stall
// the tick.
const opBuffer = 256

// Config configures the inspect server.
type Config struct {
	// Logger receives server lifecycle and drop warnings.
	// Default: slog.Default().
	Logger *slog.Logger

	// Gatherer backs the /metrics endpoint.
	// Default: prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer

	// ShutdownTimeout bounds graceful shutdown (default: 5s).
	ShutdownTimeout time.Duration
}

// Option configures the inspect server.
type Option func(*Config)

// WithLogger sets the server logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = log
	}
}

// WithGatherer sets the Prometheus gatherer for /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(c *Config) {
		c.Gatherer = g
	}
}

// WithShutdownTimeout sets the graceful shutdown bound.
func WithShutdownTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.ShutdownTimeout = d
	}
}

func defaultConfig() Config {
	return Config{
		Logger:          slog.Default(),
		Gatherer:        prometheus.DefaultGatherer,
		ShutdownTimeout: 5 * time.Second,
	}
}

// opMessage is one operation event on the WebSocket stream.
type opMessage struct {
	Kind    string `json:"kind"`
	Key     string `json:"key"`
	Type    string `json:"type"`
	Path    string `json:"path"`
	Error   string `json:"error,omitempty"`
	Dropped int    `json:"dropped,omitempty"`
}

// Server exposes a running view for inspection. It implements
// element.Observer; attach it with element.WithObserver, point it at
// the view with Watch, then Start it.
type Server struct {
	config Config
	router chi.Router

	mu      sync.RWMutex
	source  Snapshotter
	clients map[*websocket.Conn]bool
	dropped int

	ops      chan opMessage
	done     chan struct{}
	upgrader websocket.Upgrader

	httpServer *http.Server
}

// New creates an inspect server.
func New(opts ...Option) *Server {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	s := &Server{
		config:  config,
		clients: make(map[*websocket.Conn]bool),
		ops:     make(chan opMessage, opBuffer),
		done:    make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // local inspection tool
			},
		},
	}

	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealth)
	r.Get("/tree", s.handleTree)
	r.Get("/ws", s.handleWebSocket)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(config.Gatherer, promhttp.HandlerOpts{}))
	s.router = r

	go s.pump()
	return s
}

// Watch sets the snapshot source served by /tree.
func (s *Server) Watch(src Snapshotter) {
	s.mu.Lock()
	s.source = src
	s.mu.Unlock()
}

// Router returns the HTTP handler, for embedding or httptest.
func (s *Server) Router() http.Handler {
	return s.router
}

// Op implements element.Observer. Never blocks: events beyond the
// buffer are counted and reported on the next delivered message.
func (s *Server) Op(e element.OpEvent) {
	msg := opMessage{
		Kind: e.Kind.String(),
		Key:  e.Key.String(),
		Type: e.Type,
		Path: e.Path,
	}
	if e.Err != nil {
		msg.Error = e.Err.Error()
	}

	s.mu.Lock()
	msg.Dropped = s.dropped
	select {
	case s.ops <- msg:
		s.dropped = 0
	default:
		s.dropped++
	}
	s.mu.Unlock()
}

// Pass implements element.Observer. Pass stats are served via /metrics,
// not the stream.
func (s *Server) Pass(element.PassStats) {}

// Start serves the inspect API on addr and blocks until Shutdown or a
// listener error.
func (s *Server) Start(addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	s.config.Logger.Info("inspect server starting", "address", addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.New(errors.CodeInspectServe).Wrap(err).WithDetail("address: " + addr)
	}
	return nil
}

// Shutdown stops the stream pump and gracefully shuts the listener down.
func (s *Server) Shutdown(ctx context.Context) error {
	close(s.done)

	s.mu.Lock()
	for client := range s.clients {
		client.Close()
		delete(s.clients, client)
	}
	s.mu.Unlock()

	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.config.Logger.Error("inspect shutdown error", "error", err)
			return err
		}
	}
	return nil
}

// ClientCount returns the number of connected stream clients.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	src := s.source
	s.mu.RUnlock()

	var nodes []element.FlatNode
	if src != nil {
		nodes = src.Snapshot()
	}
	if nodes == nil {
		nodes = []element.FlatNode{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(nodes); err != nil {
		s.config.Logger.Error("tree encode failed", "error", err)
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()

	// Keep connection alive until client disconnects
	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			break
		}
	}

	s.mu.Lock()
	delete(s.clients, conn)
	s.mu.Unlock()
	conn.Close()
}

// pump fans buffered operation events out to connected clients.
func (s *Server) pump() {
	for {
		select {
		case <-s.done:
			return
		case msg := <-s.ops:
			s.broadcast(msg)
		}
	}
}

func (s *Server) broadcast(msg opMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	s.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(s.clients))
	for client := range s.clients {
		clients = append(clients, client)
	}
	s.mu.RUnlock()

	for _, client := range clients {
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			s.mu.Lock()
			delete(s.clients, client)
			s.mu.Unlock()
			client.Close()
		}
	}
}
