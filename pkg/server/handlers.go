package server

import (
	"bytes"
	_ "embed"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/vango-dev/vtree/pkg/render"
)

//go:embed static/client.js
var clientJS []byte

// ClientScriptPath is where the client script is served.
const ClientScriptPath = "/client.js"

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handlePage)
	r.Get("/fragment", s.handleFragment)
	r.Get(ClientScriptPath, s.handleClientScript)
	r.Get(s.cfg.WSPath, s.handleWebSocket)
	if s.cfg.MetricsPath != "" {
		r.Handle(s.cfg.MetricsPath, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	return r
}

// logRequests logs each request at debug level with its request ID.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	_, span := s.tracer.Start(r.Context(), "vtree.render_page")
	defer span.End()

	s.mu.Lock()
	body := s.materializer().ToDocumentFragment(s.tree)
	s.mu.Unlock()

	script := ClientScriptPath + "?ws=" + url.QueryEscape(s.cfg.WSPath)
	var buf bytes.Buffer
	err := render.RenderPage(&buf, render.PageData{
		Body:    body,
		Title:   s.cfg.Title,
		Scripts: []string{script},
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Error("render page", zap.Error(err))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) handleFragment(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	html, err := s.renderFragment("fragment")
	s.mu.Unlock()
	if err != nil {
		s.logger.Error("render fragment", zap.Error(err))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

func (s *Server) handleClientScript(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(clientJS)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	c := newClient(conn, s.cfg.SendBuffer)
	s.attach(c)
	go s.writeLoop(c)
	s.readLoop(r.Context(), c)
}
