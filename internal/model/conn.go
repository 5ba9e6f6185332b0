package model

import (
	"sync"

	"github.com/gofiber/websocket/v2"
)

// Conn is the part of a websocket connection a session writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// SyncConn serializes writes to a connection. The websocket library allows a single
// writer at a time, and a board's broadcasts share the connection with the read loop's replies.
type SyncConn struct {
	conn Conn
	mu   sync.Mutex
}

// NewSyncConn wraps conn, returning it unchanged if it is already wrapped.
func NewSyncConn(conn Conn) *SyncConn {
	if sc, ok := conn.(*SyncConn); ok {
		return sc
	}
	return &SyncConn{conn: conn}
}

func (sc *SyncConn) WriteJSON(v interface{}) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.conn.WriteJSON(v)
}

func (sc *SyncConn) WriteMessage(messageType int, data []byte) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.conn.WriteMessage(messageType, data)
}

func (sc *SyncConn) Close() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.conn.Close()
}

// CloseWithReason sends a close frame before closing the connection.
func (sc *SyncConn) CloseWithReason(reason string) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.conn.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason),
	)
	sc.conn.Close()
}
