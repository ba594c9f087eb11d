package bridge

import (
	"fmt"
	"strconv"
	"time"

	"mt5-bridge/src/helpers"
	"mt5-bridge/src/models"
)

// -----------------------------------------------------------------------------
// Command table
//
// One shared surface for both front-ends: command name plus positional
// string arguments in, JSON payload or error out. All values are
// string-typed at the boundary; numeric parsing happens here.
// -----------------------------------------------------------------------------

// Run executes one command. Truly unexpected conditions are caught here and
// reported like any other failure; Run never panics into the caller. Every
// execution is recorded to the journal (best effort).
func (a *Adapter) Run(command string, args []string) (payload models.MPayload, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			payload = nil
			err = &helpers.BridgeError{Message: fmt.Sprintf("unexpected failure: %v", r)}
		}
		a.record(command, args, time.Since(start), err)
	}()

	payload, err = a.dispatch(command, args)
	return payload, err
}

// -----------------------------------------------------------------------------

func (a *Adapter) dispatch(command string, args []string) (models.MPayload, error) {
	switch command {

	case "test_connection":
		account, err := a.Connect()
		if err != nil {
			return nil, err
		}
		return models.MPayload{"account": account}, nil

	case "connect_with_credentials":
		if len(args) < 3 {
			return nil, &helpers.ParseError{BridgeError: helpers.BridgeError{
				Message: "connect_with_credentials requires login, password, server",
			}}
		}
		login, err := parseIntArg("login", args[0])
		if err != nil {
			return nil, err
		}
		account, err := a.ConnectWithCredentials(login, args[1], args[2])
		if err != nil {
			return nil, err
		}
		return models.MPayload{"account": account}, nil

	case "get_symbols":
		symbols, err := a.Symbols()
		if err != nil {
			return nil, err
		}
		return models.MPayload{"symbols": symbols}, nil

	case "get_market_data":
		symbol := argOr(args, 0, a.defaultSymbol())
		timeframe := argOr(args, 1, a.defaultTimeframe())
		count, err := parseIntArg("count", argOr(args, 2, strconv.Itoa(a.defaultBars())))
		if err != nil {
			return nil, err
		}
		bars, err := a.MarketData(symbol, timeframe, int(count))
		if err != nil {
			return nil, err
		}
		return models.MPayload{"data": bars}, nil

	case "get_tick":
		tick, err := a.Tick(argOr(args, 0, a.defaultSymbol()))
		if err != nil {
			return nil, err
		}
		return models.MPayload{"tick": tick}, nil

	case "place_order":
		if len(args) < 3 {
			return nil, &helpers.ParseError{BridgeError: helpers.BridgeError{
				Message: "place_order requires symbol, side, volume",
			}}
		}
		side, err := parseIntArg("side", args[1])
		if err != nil {
			return nil, err
		}
		volume, err := parseFloatArg("volume", args[2])
		if err != nil {
			return nil, err
		}
		price, err := parseFloatArg("price", argOr(args, 3, "0"))
		if err != nil {
			return nil, err
		}
		stopLoss, err := parseFloatArg("sl", argOr(args, 4, "0"))
		if err != nil {
			return nil, err
		}
		takeProfit, err := parseFloatArg("tp", argOr(args, 5, "0"))
		if err != nil {
			return nil, err
		}
		order, err := a.PlaceOrder(args[0], int(side), volume, price, stopLoss, takeProfit, argOr(args, 6, ""))
		if err != nil {
			return nil, err
		}
		return models.MPayload{"order": order}, nil

	case "get_positions":
		positions, err := a.Positions()
		if err != nil {
			return nil, err
		}
		return models.MPayload{"positions": positions}, nil

	case "close_position":
		if len(args) < 1 {
			return nil, &helpers.ParseError{BridgeError: helpers.BridgeError{
				Message: "close_position requires ticket",
			}}
		}
		ticket, err := parseIntArg("ticket", args[0])
		if err != nil {
			return nil, err
		}
		closed, err := a.ClosePosition(uint64(ticket))
		if err != nil {
			return nil, err
		}
		return models.MPayload{"closed_ticket": closed}, nil

	case "shutdown":
		a.Shutdown()
		return models.MPayload{"message": "terminal connection closed"}, nil

	default:
		return nil, &helpers.BridgeError{Message: fmt.Sprintf("Unknown command: %s", command)}
	}
}

// -----------------------------------------------------------------------------

// Commands lists the command surface for the introspection endpoint.
func Commands() []models.MCommandInfo {
	return []models.MCommandInfo{
		{Name: "test_connection", Args: []string{}},
		{Name: "connect_with_credentials", Args: []string{"login", "password", "server"}},
		{Name: "get_symbols", Args: []string{}},
		{Name: "get_market_data", Args: []string{"symbol", "timeframe", "count"}},
		{Name: "get_tick", Args: []string{"symbol"}},
		{Name: "place_order", Args: []string{"symbol", "side", "volume", "price", "sl", "tp", "comment"}},
		{Name: "get_positions", Args: []string{}},
		{Name: "close_position", Args: []string{"ticket"}},
		{Name: "shutdown", Args: []string{}},
	}
}

// -----------------------------------------------------------------------------
// Argument helpers
// -----------------------------------------------------------------------------

func argOr(args []string, i int, def string) string {
	if i < len(args) && args[i] != "" {
		return args[i]
	}
	return def
}

func parseIntArg(name, value string) (int64, error) {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, &helpers.ParseError{BridgeError: helpers.BridgeError{
			Message: fmt.Sprintf("invalid %s: %q", name, value),
		}}
	}
	return n, nil
}

func parseFloatArg(name, value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, &helpers.ParseError{BridgeError: helpers.BridgeError{
			Message: fmt.Sprintf("invalid %s: %q", name, value),
		}}
	}
	return f, nil
}

// -----------------------------------------------------------------------------
// Defaults
// -----------------------------------------------------------------------------

func (a *Adapter) defaultSymbol() string {
	if a.Config != nil && a.Config.Defaults.Symbol != "" {
		return a.Config.Defaults.Symbol
	}
	return "EURUSD"
}

func (a *Adapter) defaultTimeframe() string {
	if a.Config != nil && a.Config.Defaults.Timeframe != "" {
		return a.Config.Defaults.Timeframe
	}
	return "M1"
}

func (a *Adapter) defaultBars() int {
	if a.Config != nil && a.Config.Defaults.Bars > 0 {
		return a.Config.Defaults.Bars
	}
	return 100
}

// -----------------------------------------------------------------------------

func (a *Adapter) record(command string, args []string, elapsed time.Duration, runErr error) {
	if a.Journal == nil {
		return
	}
	entry := models.MJournalEntry{
		Command:   command,
		Args:      args,
		Success:   runErr == nil,
		ElapsedMS: float64(elapsed.Microseconds()) / 1000.0,
		CreatedAt: time.Now().Unix(),
	}
	if runErr != nil {
		entry.Error = runErr.Error()
	}
	if err := a.Journal.Record(entry); err != nil && a.Logger != nil {
		a.Logger.Warning("journal record failed: %v", err)
	}
}
