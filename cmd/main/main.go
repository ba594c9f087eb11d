package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"mt5-bridge/src/bridge"
	"mt5-bridge/src/config"
	"mt5-bridge/src/interfaces"
	"mt5-bridge/src/logger"
	"mt5-bridge/src/server"
	"mt5-bridge/src/storage"
	"mt5-bridge/src/terminal"

	"github.com/joho/godotenv"
)

// -----------------------------------------------------------------------------

func main() {

	// Credentials may live in a .env next to the binary
	godotenv.Load()

	// Parse command line flags
	configPath := flag.String("config", "config/default.yaml", "path to config file")
	flag.Parse()

	// Load config from YAML file
	config, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	appLogger := logger.NewLogger(config.MConfig, config.Name)

	// 2. Setup Journal
	var journal interfaces.IJournal

	if config.Journal.Enabled {
		switch config.Journal.DBType {
		case "postgres":
			journal, err = storage.NewPostgresJournal(config.MConfig, appLogger)
		default:
			// Default to SQLite
			journal, err = storage.NewSQLiteJournal(config.MConfig, appLogger)
		}
	} else {
		journal = storage.NewNopJournal()
	}

	if err != nil {
		appLogger.Critical("Failed to init journal: %v", err)
	}
	if err := journal.Initialize(); err != nil {
		appLogger.Critical("Failed to migrate journal: %v", err)
	}

	// 3. Setup Terminal Backend
	var term interfaces.ITerminal

	switch config.Terminal.Mode {
	case "none":
		term = terminal.NewDisconnectedTerminal()
	default:
		term = terminal.NewSimTerminal(&config.Terminal)
	}

	adapter := bridge.NewAdapter(term, config.MConfig, appLogger, journal)

	// 4. Initial Terminal Session
	// A failed connect is not fatal: clients can still issue
	// connect_with_credentials once the terminal becomes reachable.
	if _, err := adapter.Connect(); err != nil {
		appLogger.Warning("Initial terminal connect failed: %v", err)
	} else {
		appLogger.Info("Terminal session established")
	}

	// 5. Start Server
	srv := server.NewBridgeServer(config.MConfig, appLogger, adapter)

	go func() {
		if err := srv.Start(); err != nil {
			appLogger.Critical("Server failed: %v", err)
		}
	}()

	// 6. Wait for Shutdown Signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down...")
	adapter.Shutdown()
	if err := journal.Close(); err != nil {
		appLogger.Warning("Journal close failed: %v", err)
	}
}
