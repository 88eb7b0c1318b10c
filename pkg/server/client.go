package server

import (
	"context"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	vterrors "github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/protocol"
	"github.com/vango-dev/vtree/pkg/vdom"
)

var clientSeq atomic.Uint64

// client is one websocket connection.
type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte

	// seq is the last records sequence number sent; guarded by Server.mu.
	seq uint64

	closeOnce sync.Once
	done      chan struct{}
}

func newClient(conn *websocket.Conn, buffer int) *client {
	return &client{
		id:   strconv.FormatUint(clientSeq.Add(1), 10),
		conn: conn,
		send: make(chan []byte, buffer),
		done: make(chan struct{}),
	}
}

func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// attach registers c and queues the hello frame and an initial reset, so a
// client that loaded a stale page converges.
func (s *Server) attach(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clients[c] = struct{}{}
	s.metrics.clients.Inc()
	hello := &protocol.Hello{Version: protocol.Version, IDAttribute: s.cfg.Render.IDAttribute}
	s.queue(c, hello.Encode())
	s.sendRecords(c, []protocol.Record{s.resetRecord()})
	s.logger.Info("client connected", zap.String("client", c.id), zap.Int("clients", len(s.clients)))
}

// dropLocked unregisters and closes c. Callers hold mu.
func (s *Server) dropLocked(c *client) {
	if _, ok := s.clients[c]; !ok {
		return
	}
	delete(s.clients, c)
	s.metrics.clients.Dec()
	c.close()
	s.logger.Info("client disconnected", zap.String("client", c.id), zap.Int("clients", len(s.clients)))
}

func (s *Server) drop(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dropLocked(c)
}

// readLoop decodes frames from c until the connection fails.
func (s *Server) readLoop(ctx context.Context, c *client) {
	defer s.drop(c)

	c.conn.SetReadLimit(protocol.FrameHeaderSize + 64*1024)
	extend := func() {
		if s.cfg.PingInterval > 0 {
			c.conn.SetReadDeadline(time.Now().Add(2 * s.cfg.PingInterval))
		}
	}
	extend()
	c.conn.SetPongHandler(func(string) error {
		extend()
		return nil
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure) {
				s.logger.Warn("read error", zap.String("client", c.id), zap.Error(err))
			}
			return
		}
		extend()

		f, err := protocol.DecodeFrame(msg)
		if err != nil {
			s.metrics.clientEvents.WithLabelValues("invalid").Inc()
			s.reportError(c, err)
			continue
		}
		switch f.Type {
		case protocol.FrameEvent:
			s.handleEvent(ctx, c, f.Payload)
		default:
			s.reportError(c, vterrors.New(vterrors.CodeInvalidFrame).
				WithDetailf("unexpected %s frame from client", f.Type))
		}
	}
}

// writeLoop sends queued frames and pings until c closes.
func (s *Server) writeLoop(c *client) {
	ticker := time.NewTicker(max(s.cfg.PingInterval, time.Second))
	defer ticker.Stop()

	for {
		select {
		case msg := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.BinaryMessage, msg); err != nil {
				s.logger.Warn("write error", zap.String("client", c.id), zap.Error(err))
				s.drop(c)
				return
			}
		case <-ticker.C:
			deadline := time.Now().Add(10 * time.Second)
			if err := c.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				s.drop(c)
				return
			}
		case <-c.done:
			return
		}
	}
}

// handleEvent dispatches a client event as a trusted host event and
// broadcasts what the listeners changed.
func (s *Server) handleEvent(ctx context.Context, c *client, payload []byte) {
	ev, err := protocol.DecodeClientEvent(payload)
	if err != nil {
		s.metrics.clientEvents.WithLabelValues("invalid").Inc()
		s.reportError(c, vterrors.New(vterrors.CodeInvalidFrame).Wrap(err))
		return
	}

	_, span := s.tracer.Start(ctx, "vtree.client_event")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("vtree.node_id", int64(ev.NodeID)),
		attribute.String("vtree.event_type", ev.Type),
	)

	s.mu.Lock()
	err = s.dispatchLocked(ev)
	s.flush()
	s.mu.Unlock()

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.reportError(c, err)
	}
}

// dispatchLocked delivers ev to its target. Callers hold mu.
func (s *Server) dispatchLocked(ev *protocol.ClientEvent) error {
	target := s.tree.Lookup(vdom.NodeID(ev.NodeID))
	if target == nil {
		s.metrics.clientEvents.WithLabelValues("unknown_node").Inc()
		return vterrors.New(vterrors.CodeUnknownNode).WithDetailf("node %d", ev.NodeID)
	}
	listeners := target.Listeners(ev.Type)
	if len(listeners) == 0 {
		s.metrics.clientEvents.WithLabelValues("no_listeners").Inc()
		return vterrors.New(vterrors.CodeNoListeners).WithDetailf("%q on %s", ev.Type, target)
	}

	before := topLevelIDs(s.tree)
	vdom.Deliver(target, vdom.HostEvent(ev.Type, ev.Detail), listeners)
	if !slices.Equal(before, topLevelIDs(s.tree)) {
		s.pending = []protocol.Record{s.resetRecord()}
	}
	s.metrics.clientEvents.WithLabelValues("ok").Inc()
	s.logger.Debug("client event",
		zap.Uint64("node", ev.NodeID),
		zap.String("type", ev.Type),
		zap.Int("records", len(s.pending)))
	return nil
}

// reportError sends err to c as an error frame.
func (s *Server) reportError(c *client, err error) {
	s.logger.Debug("client error", zap.String("client", c.id), zap.Error(err))
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[c]; ok {
		s.queue(c, protocol.NewErrorMessage(err).Encode())
	}
}
