// Package ws provides the WebSocket acceptor that feeds client messages to
// the relay core. Framing and JSON are handled here; the core only sees
// typed envelopes and a Sender capability per connection.
package ws

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/noahzinx22/nextbot-multiplayer-server/internal/config"
	"github.com/noahzinx22/nextbot-multiplayer-server/internal/relay"
)

const shutdownTimeout = 5 * time.Second

// Server accepts WebSocket connections on /ws and pumps their messages into
// the relay. It implements server.Service.
type Server struct {
	cfg      config.ServerConfig
	logger   *zap.Logger
	relay    *relay.Relay
	upgrader websocket.Upgrader
	httpSrv  *http.Server
}

// NewServer creates a Server for the given relay.
//
// Precondition: logger and r must be non-nil.
func NewServer(cfg config.ServerConfig, logger *zap.Logger, r *relay.Relay) *Server {
	s := &Server{
		cfg:    cfg,
		logger: logger,
		relay:  r,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			// Game clients connect from arbitrary origins.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	s.httpSrv = &http.Server{
		Addr:    cfg.Addr(),
		Handler: s.Handler(),
	}
	return s
}

// Handler returns the HTTP handler serving the /ws endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	return mux
}

// Start listens on the configured address and blocks until Stop is called.
//
// Postcondition: Returns nil after a graceful Stop, or the bind/serve error.
func (s *Server) Start() error {
	s.logger.Info("websocket server listening", zap.String("addr", s.cfg.Addr()))
	err := s.httpSrv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop gracefully shuts the listener down.
func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpSrv.Shutdown(ctx); err != nil {
		s.logger.Warn("websocket server shutdown", zap.Error(err))
	}
}

// handleWebSocket upgrades one connection and runs its read loop. The relay
// session lives exactly as long as the loop.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}
	if s.cfg.MaxMessageBytes > 0 {
		wsConn.SetReadLimit(s.cfg.MaxMessageBytes)
	}

	c := newConn(wsConn)
	sess := s.relay.Register(c)
	defer func() {
		s.relay.Disconnect(sess)
		c.Close()
	}()

	for {
		_, data, err := wsConn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("websocket read error",
					zap.String("conn", sess.ID),
					zap.Error(err),
				)
			}
			return
		}
		s.relay.HandleMessage(sess, data)
	}
}
