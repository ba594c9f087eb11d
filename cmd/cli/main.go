package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"mt5-bridge/src/bridge"
	"mt5-bridge/src/config"
	"mt5-bridge/src/helpers"
	"mt5-bridge/src/interfaces"
	"mt5-bridge/src/logger"
	"mt5-bridge/src/models"
	"mt5-bridge/src/storage"
	"mt5-bridge/src/terminal"

	"github.com/joho/godotenv"
)

// -----------------------------------------------------------------------------
// One-shot command executor
//
// Usage: bridge-cli [-config path] <command> [args...]
//
// Runs exactly one command against a fresh terminal session and prints a
// single JSON object to stdout. stdout carries nothing else (logging is
// discarded), the session is always released before exit, and the exit code
// is always 0: failures are reported inside the JSON, not via the process
// status.
// -----------------------------------------------------------------------------

func main() {
	godotenv.Load()

	configPath := flag.String("config", "config/default.yaml", "path to config file")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		emit(nil, err)
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		emit(nil, &helpers.ParseError{BridgeError: helpers.BridgeError{
			Message: "No command provided",
		}})
		return
	}

	// stdout is reserved for the result
	appLogger := logger.NewLoggerTo(io.Discard, cfg, "bridge-cli")

	var term interfaces.ITerminal
	var termCfg *models.MTerminalConfig
	if cfg != nil {
		termCfg = &cfg.Terminal
	}
	if termCfg != nil && termCfg.Mode == "none" {
		term = terminal.NewDisconnectedTerminal()
	} else {
		term = terminal.NewSimTerminal(termCfg)
	}

	adapter := bridge.NewAdapter(term, cfg, appLogger, storage.NewNopJournal())
	emit(execute(adapter, args[0], args[1:]))
}

// -----------------------------------------------------------------------------

// execute connects, runs the one command, and guarantees the session is
// released on every path out, including a panicking command.
func execute(adapter *bridge.Adapter, command string, args []string) (payload models.MPayload, err error) {
	defer adapter.Shutdown()
	defer func() {
		if r := recover(); r != nil {
			payload = nil
			err = &helpers.BridgeError{Message: fmt.Sprintf("unexpected failure: %v", r)}
		}
	}()

	// Implicit session for every command, even the ones that reset or tear
	// it down themselves: a failed connect short-circuits the invocation.
	if _, err := adapter.Connect(); err != nil {
		return nil, err
	}

	return adapter.Run(command, args)
}

// -----------------------------------------------------------------------------

// loadConfig reads the YAML config when present. A missing file is not an
// error for the one-shot executor; built-in defaults apply.
func loadConfig(path string) (*models.MConfig, error) {
	if _, statErr := os.Stat(path); statErr != nil {
		return nil, nil
	}
	cfg, err := config.NewConfig(path)
	if err != nil {
		return nil, &helpers.BridgeError{Message: fmt.Sprintf("Config error: %v", err)}
	}
	return cfg.MConfig, nil
}

// -----------------------------------------------------------------------------

// emit prints the single result object. Marshal failures should not happen
// for these payloads; if one does, fall back to a plain error object.
func emit(payload models.MPayload, err error) {
	result := models.ResolvePayload(payload, err)
	data, marshalErr := json.Marshal(result)
	if marshalErr != nil {
		fmt.Println(`{"success": false, "error": "failed to encode result"}`)
		return
	}
	fmt.Println(string(data))
}
