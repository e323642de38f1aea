package ws

import (
	"errors"
	"sync"

	"github.com/gorilla/websocket"
)

var errClosed = errors.New("websocket connection closed")

// conn adapts a gorilla websocket connection to the relay's Sender
// capability. Writes are serialized with a mutex because gorilla permits
// only one concurrent writer.
type conn struct {
	mu     sync.Mutex
	ws     *websocket.Conn
	closed bool
}

func newConn(ws *websocket.Conn) *conn {
	return &conn{ws: ws}
}

// Send writes v as one JSON text message, best-effort.
func (c *conn) Send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errClosed
	}
	return c.ws.WriteJSON(v)
}

// IsOpen reports whether the transport can still accept writes.
func (c *conn) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closed
}

// Close marks the transport closed and closes the underlying socket.
// Idempotent.
func (c *conn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	_ = c.ws.Close()
}
