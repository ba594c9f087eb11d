package client

import (
	"fmt"
	"sync"
	"time"

	"mt5-bridge/src/models"

	"github.com/gorilla/websocket"
)

// -----------------------------------------------------------------------------
// BridgeClient
//
// Minimal Go caller for the bridge's WebSocket surface: send one command
// envelope, wait for the response correlated by id. Safe for use from
// multiple goroutines; calls are serialized on the single connection.
// -----------------------------------------------------------------------------

type BridgeClient struct {
	conn   *websocket.Conn
	mu     sync.Mutex
	nextID uint64
}

// -----------------------------------------------------------------------------

// Dial connects to a bridge at a ws:// or wss:// URL.
func Dial(url string) (*BridgeClient, error) {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("ws dial: %w", err)
	}
	return &BridgeClient{conn: conn}, nil
}

// -----------------------------------------------------------------------------

// Call sends one command and blocks until its response arrives. The id is
// generated here and checked on the way back; a null-id response (the
// server's parse-error shape) is returned as-is.
func (c *BridgeClient) Call(command string, args ...interface{}) (*models.MResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	id := c.nextID
	if args == nil {
		args = []interface{}{}
	}
	cmd := models.MCommand{ID: id, Command: command, Args: args}
	if err := c.conn.WriteJSON(cmd); err != nil {
		return nil, err
	}

	for {
		var result models.MResult
		if err := c.conn.ReadJSON(&result); err != nil {
			return nil, err
		}
		if result.ID == nil || matchesID(result.ID, id) {
			return &result, nil
		}
		// Response for an older call; keep reading.
	}
}

// -----------------------------------------------------------------------------

// SendRaw writes a raw text frame. Used to exercise the server's handling of
// malformed input.
func (c *BridgeClient) SendRaw(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// -----------------------------------------------------------------------------

// Read blocks for the next response envelope.
func (c *BridgeClient) Read() (*models.MResult, error) {
	var result models.MResult
	if err := c.conn.ReadJSON(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// -----------------------------------------------------------------------------

func (c *BridgeClient) Close() error {
	return c.conn.Close()
}

// -----------------------------------------------------------------------------

// matchesID compares the echoed id with the one sent. JSON numbers come back
// as float64, so compare by rendering.
func matchesID(echoed interface{}, sent uint64) bool {
	return fmt.Sprintf("%v", echoed) == fmt.Sprintf("%v", sent)
}
