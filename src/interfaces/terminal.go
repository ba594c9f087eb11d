package interfaces

import "mt5-bridge/src/terminal"

// -----------------------------------------------------------------------------
// ITerminal is the native trading-terminal boundary: session lifecycle,
// read-only queries, and the single order-submission call used both for new
// orders and for closing positions. Every call is synchronous and blocks
// until the terminal answers; the boundary is single-session and NOT safe
// for concurrent use — callers must serialize access.
// -----------------------------------------------------------------------------

type ITerminal interface {

	// -----------------------------------------------------------------------------
	// Session lifecycle

	// Initialize establishes the terminal session. The returned error carries
	// the native error code.
	Initialize() error

	// Login authenticates the session with explicit credentials.
	Login(login int64, password, server string) error

	// Shutdown releases the session. Safe to call when none exists.
	Shutdown()

	// -----------------------------------------------------------------------------
	// Read-only queries

	AccountInfo() (*terminal.AccountInfo, error)

	SymbolsGet() ([]terminal.SymbolInfo, error)

	// CopyRatesFromPos returns count bars of history ending start bars before
	// the present, ordered oldest to newest.
	CopyRatesFromPos(symbol string, timeframe, start, count int) ([]terminal.Rate, error)

	SymbolInfoTick(symbol string) (*terminal.Tick, error)

	// -----------------------------------------------------------------------------
	// Order execution

	// OrderSend submits a trade request. A non-nil result with a retcode other
	// than TradeRetcodeDone is a rejection, not an error.
	OrderSend(req terminal.TradeRequest) (*terminal.TradeResult, error)

	PositionsGet() ([]terminal.Position, error)

	PositionGet(ticket uint64) (*terminal.Position, error)
}
