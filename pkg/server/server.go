package server

import (
	"context"
	"net"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/vango-dev/vtree/internal/logging"
	"github.com/vango-dev/vtree/pkg/protocol"
	"github.com/vango-dev/vtree/pkg/render"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// TracerName is the instrumentation name of the default tracer.
const TracerName = "github.com/vango-dev/vtree/pkg/server"

// Server serves one tree to any number of websocket clients.
type Server struct {
	cfg      Config
	logger   *zap.Logger
	tracer   trace.Tracer
	registry *prometheus.Registry
	metrics  *metrics
	router   chi.Router
	upgrader websocket.Upgrader

	// mu serializes tree access and broadcasts.
	mu      sync.Mutex
	tree    *vdom.Tree
	pending []protocol.Record
	clients map[*client]struct{}
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger. Default: logging.L() named "server".
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithRegistry sets the registry metrics are registered on and served
// from. Default: a fresh registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = reg
	}
}

// WithTracer sets the tracer. Default: the global provider's tracer.
func WithTracer(t trace.Tracer) Option {
	return func(s *Server) {
		s.tracer = t
	}
}

// New creates a server for tree. The server subscribes to the tree's
// change notifications; mutate the tree only through Update.
func New(tree *vdom.Tree, cfg Config, opts ...Option) *Server {
	s := &Server{
		cfg:     cfg.withDefaults(),
		tree:    tree,
		clients: make(map[*client]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.Named("server")
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(TracerName)
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	s.metrics = newMetrics(s.registry)
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     s.cfg.CheckOrigin,
	}
	s.router = s.routes()
	tree.OnTreeChange(s.observe)
	return s
}

// Handler returns the HTTP handler serving pages, the client script, the
// websocket endpoint and metrics.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Config returns the effective configuration.
func (s *Server) Config() Config {
	return s.cfg
}

// Clients returns the number of connected websocket clients.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Update runs fn with exclusive access to the tree and broadcasts the
// changes it made. Changes made before fn fails are still broadcast.
func (s *Server) Update(ctx context.Context, fn func(t *vdom.Tree) error) error {
	_, span := s.tracer.Start(ctx, "vtree.update")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	before := topLevelIDs(s.tree)
	err := fn(s.tree)
	if !slices.Equal(before, topLevelIDs(s.tree)) {
		s.pending = []protocol.Record{s.resetRecord()}
	}
	n := s.flush()
	span.SetAttributes(attribute.Int("vtree.records", n))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// Refresh sends every client a reset carrying the whole document.
func (s *Server) Refresh(ctx context.Context) {
	_, span := s.tracer.Start(ctx, "vtree.refresh")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = []protocol.Record{s.resetRecord()}
	s.flush()
}

// flush broadcasts pending records. Callers hold mu.
func (s *Server) flush() int {
	records := s.pending
	s.pending = nil
	if len(records) == 0 {
		return 0
	}
	for c := range s.clients {
		s.sendRecords(c, records)
	}
	return len(records)
}

// sendRecords queues one records frame for c. Callers hold mu.
func (s *Server) sendRecords(c *client, records []protocol.Record) {
	c.seq++
	rf := &protocol.RecordsFrame{Seq: c.seq, Records: records}
	f, err := rf.Encode()
	if err != nil {
		s.logger.Error("encode records", zap.Error(err))
		return
	}
	s.queue(c, f)
}

// queue hands f to c's writer, dropping c when its buffer is full.
// Callers hold mu.
func (s *Server) queue(c *client, f *protocol.Frame) {
	select {
	case c.send <- f.Encode():
		s.metrics.framesSent.WithLabelValues(f.Type.String()).Inc()
	default:
		s.logger.Warn("client too slow, dropping", zap.String("client", c.id))
		s.dropLocked(c)
	}
}

// ListenAndServe listens on cfg.Addr and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", s.cfg.Addr)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully: new
// requests are refused, clients are disconnected and in-flight requests get
// ShutdownTimeout to finish.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	hs := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", ln.Addr().String()))
		errCh <- hs.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "serve")
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	s.Close()
	if err := hs.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	s.logger.Info("server shutdown complete")
	return nil
}

// Close disconnects every client.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		s.dropLocked(c)
	}
}

func topLevelIDs(t *vdom.Tree) []vdom.NodeID {
	top := t.TopLevel()
	ids := make([]vdom.NodeID, len(top))
	for i, e := range top {
		ids[i] = e.NodeID()
	}
	return ids
}

// materializer returns a materializer over a fresh HTML host. Hosts keep a
// wrapper per node, so they are not reused across renders.
func (s *Server) materializer() *render.Materializer {
	return render.NewMaterializer(render.NewHTMLHost(), s.cfg.Render)
}

// renderFragment renders the whole tree. Callers hold mu.
func (s *Server) renderFragment(target string) (string, error) {
	timer := prometheus.NewTimer(s.metrics.renderDuration.WithLabelValues(target))
	defer timer.ObserveDuration()
	return render.RenderString(s.materializer().ToDocumentFragment(s.tree))
}

// renderElement renders e and its subtree. Callers hold mu.
func (s *Server) renderElement(e *vdom.Element) string {
	timer := prometheus.NewTimer(s.metrics.renderDuration.WithLabelValues("element"))
	defer timer.ObserveDuration()
	m := s.materializer()
	out, err := render.RenderString(m.ToNativeElement(e, s.cfg.Render.ConvertShadow))
	if err != nil {
		s.logger.Error("render element", zap.Stringer("element", e), zap.Error(err))
	}
	return out
}

func (s *Server) resetRecord() protocol.Record {
	html, err := s.renderFragment("reset")
	if err != nil {
		s.logger.Error("render reset", zap.Error(err))
	}
	return protocol.Record{Op: protocol.OpReset, HTML: html}
}
