package server

import (
	"encoding/json"
	"net/http"

	"mt5-bridge/src/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// -----------------------------------------------------------------------------
// Hub Pattern Implementation
// -----------------------------------------------------------------------------

// run owns the client membership set for the process lifetime.
func (s *BridgeServer) run() {
	for {
		select {
		case client := <-s.register:
			s.clientsMu.Lock()
			s.clients[client] = struct{}{}
			s.clientsMu.Unlock()

		case client := <-s.unregister:
			s.clientsMu.Lock()
			if _, ok := s.clients[client]; ok {
				delete(s.clients, client)
				close(client.send)
			}
			s.clientsMu.Unlock()
		}
	}
}

// -----------------------------------------------------------------------------
// WebSocket Handlers
// -----------------------------------------------------------------------------

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// -----------------------------------------------------------------------------

func (s *BridgeServer) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.Logger.Info("Failed to upgrade websocket: %v", err)
		return
	}
	s.Logger.Info("Client connected from %s", conn.RemoteAddr())

	client := &Client{
		hub:  s,
		conn: conn,
		// Buffered so a slow peer cannot stall command dispatch
		send: make(chan models.MResult, 16),
	}

	s.register <- client

	go client.writePump()
	go client.readPump()
}

// -----------------------------------------------------------------------------
// Client Message Handling
// -----------------------------------------------------------------------------

// handleClientMessage decodes one envelope and answers it. A decode failure
// is answered with a null-id parse error; the connection stays open.
// Execution failures (including recovered panics inside the runner) are
// answered with the command's own id. Nothing here may take the loop down.
func (s *BridgeServer) handleClientMessage(client *Client, message []byte) {
	var cmd models.MCommand
	if err := json.Unmarshal(message, &cmd); err != nil {
		client.send <- models.MResult{ID: nil, Success: false, Error: "Invalid JSON format"}
		return
	}

	s.Logger.Info("Processing command: %s with args: %v", cmd.Command, cmd.Args)

	payload, err := s.Runner.Run(cmd.Command, cmd.ArgStrings())
	if err != nil {
		s.Logger.Error("Command %s failed: %v", cmd.Command, err)
	}
	client.send <- models.NewResult(cmd.ID, payload, err)
}
