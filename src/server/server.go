package server

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"mt5-bridge/src/bridge"
	"mt5-bridge/src/interfaces"
	"mt5-bridge/src/logger"
	"mt5-bridge/src/models"
	"mt5-bridge/src/utils"

	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------
// BridgeServer
//
// Long-running front-end: accepts concurrent WebSocket clients and serves
// the shared command surface without tearing down the terminal session
// between requests. One session process-wide; a change made by one client
// (switching accounts, shutdown) is visible to all others.
// -----------------------------------------------------------------------------

type BridgeServer struct {
	Config *models.MConfig
	Logger *logger.Logger
	Runner interfaces.ICommandRunner
	engine *gin.Engine

	// WebSocket clients
	clients    map[*Client]struct{}
	clientsMu  sync.RWMutex
	register   chan *Client
	unregister chan *Client

	hubOnce sync.Once
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

func NewBridgeServer(cfg *models.MConfig, log *logger.Logger, runner interfaces.ICommandRunner) *BridgeServer {
	// Set Gin mode
	if cfg.LogLevel != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &BridgeServer{
		Config:     cfg,
		Logger:     log,
		Runner:     runner,
		engine:     gin.Default(),
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}

	// Add CORS Middleware
	s.engine.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if strings.HasPrefix(origin, "http://127.0.0.1:") || strings.HasPrefix(origin, "http://localhost:") {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	s.setupRoutes()
	return s
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *BridgeServer) setupRoutes() {
	// REST introspection endpoints
	s.engine.GET("/api/health", s.getHealth)
	s.engine.GET("/api/commands", s.getCommands)
	s.engine.GET("/api/sessions", s.getSessions)

	// WebSocket endpoint
	s.engine.GET("/ws", s.handleWebSocket)
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

// Handler exposes the HTTP handler (and makes sure the hub loop is running);
// tests mount it on httptest.
func (s *BridgeServer) Handler() http.Handler {
	s.hubOnce.Do(func() { go s.run() })
	return s.engine
}

// -----------------------------------------------------------------------------

func (s *BridgeServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.Config.Host, s.Config.Port)
	s.Logger.Info("Starting bridge server on %s", addr)

	handler := s.Handler()
	return http.ListenAndServe(addr, handler)
}

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

func (s *BridgeServer) getHealth(c *gin.Context) {
	s.clientsMu.RLock()
	connections := len(s.clients)
	s.clientsMu.RUnlock()

	c.JSON(200, gin.H{
		"status":             "ok",
		"connections":        connections,
		"terminal_connected": s.Runner.Connected(),
	})
}

// -----------------------------------------------------------------------------

func (s *BridgeServer) getCommands(c *gin.Context) {
	c.JSON(200, gin.H{
		"commands": bridge.Commands(),
	})
}

// -----------------------------------------------------------------------------

func (s *BridgeServer) getSessions(c *gin.Context) {
	c.JSON(200, gin.H{
		"sessions": utils.MarketSessions(time.Now()),
	})
}
