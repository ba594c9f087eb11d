package bridge

import (
	"fmt"
	"strings"
	"sync"

	"mt5-bridge/src/helpers"
	"mt5-bridge/src/interfaces"
	"mt5-bridge/src/logger"
	"mt5-bridge/src/models"
	"mt5-bridge/src/terminal"
)

// -----------------------------------------------------------------------------
// Adapter
//
// Translates each logical operation into one call (or a short fixed sequence
// of calls) against the terminal's native interface and normalizes the
// result into plain JSON projections. The terminal boundary is not safe for
// concurrent use, so a single mutex serializes every operation: exactly one
// logical caller at a time, process-wide.
// -----------------------------------------------------------------------------

type Adapter struct {
	Config  *models.MConfig
	Logger  *logger.Logger
	Journal interfaces.IJournal

	mu        sync.Mutex
	terminal  interfaces.ITerminal
	connected bool
}

// -----------------------------------------------------------------------------

func NewAdapter(term interfaces.ITerminal, cfg *models.MConfig, log *logger.Logger, journal interfaces.IJournal) *Adapter {
	return &Adapter{
		Config:   cfg,
		Logger:   log,
		Journal:  journal,
		terminal: term,
	}
}

// -----------------------------------------------------------------------------

// Connected reports whether the shared session is established.
func (a *Adapter) Connected() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.connected
}

// -----------------------------------------------------------------------------
// Connect (implicit)
// -----------------------------------------------------------------------------

// Connect ensures the terminal is initialized and returns a fresh account
// snapshot. Never cached.
func (a *Adapter) Connect() (*models.MAccount, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.connect()
}

func (a *Adapter) connect() (*models.MAccount, error) {
	if err := a.terminal.Initialize(); err != nil {
		a.connected = false
		return nil, &helpers.ConnectionError{BridgeError: helpers.BridgeError{
			Message: fmt.Sprintf("initialize() failed, error code = %v", err),
		}}
	}
	info, err := a.terminal.AccountInfo()
	if err != nil {
		a.connected = false
		return nil, &helpers.ConnectionError{BridgeError: helpers.BridgeError{
			Message: "Failed to get account info",
		}}
	}
	a.connected = true
	return mapAccount(info), nil
}

// -----------------------------------------------------------------------------
// Connect With Credentials
// -----------------------------------------------------------------------------

// ConnectWithCredentials tears down any existing session, re-initializes and
// authenticates. On any failure the session is shut down again so no
// residual authenticated session survives.
func (a *Adapter) ConnectWithCredentials(login int64, password, server string) (*models.MAccount, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.terminal.Shutdown()
	a.connected = false

	if err := a.terminal.Initialize(); err != nil {
		return nil, &helpers.ConnectionError{BridgeError: helpers.BridgeError{
			Message: fmt.Sprintf("initialize() failed, error code = %v", err),
		}}
	}
	if err := a.terminal.Login(login, password, server); err != nil {
		a.terminal.Shutdown()
		return nil, &helpers.AuthError{BridgeError: helpers.BridgeError{
			Message: fmt.Sprintf("Login failed, error code = %v", err),
		}}
	}
	info, err := a.terminal.AccountInfo()
	if err != nil {
		a.terminal.Shutdown()
		return nil, &helpers.ConnectionError{BridgeError: helpers.BridgeError{
			Message: "Failed to get account info after login",
		}}
	}
	a.connected = true
	return mapAccount(info), nil
}

// -----------------------------------------------------------------------------
// List Symbols
// -----------------------------------------------------------------------------

// Symbols returns the instruments passing the configured predicate: visible
// only (when visible_only) and name containing the filter substring. The
// default predicate is visible USD instruments. An empty filtered result is
// a valid success; only a missing symbol list is an error.
func (a *Adapter) Symbols() ([]models.MSymbol, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	symbols, err := a.terminal.SymbolsGet()
	if err != nil || symbols == nil {
		return nil, &helpers.DataError{BridgeError: helpers.BridgeError{
			Message: "No symbols found",
		}}
	}

	filter := "USD"
	visibleOnly := true
	if a.Config != nil {
		filter = a.Config.Symbols.Filter
		visibleOnly = a.Config.Symbols.VisibleOnly
	}

	out := make([]models.MSymbol, 0, len(symbols))
	for _, sym := range symbols {
		if visibleOnly && !sym.Visible {
			continue
		}
		if filter != "" && !strings.Contains(sym.Name, filter) {
			continue
		}
		out = append(out, models.MSymbol{
			Name:        sym.Name,
			Description: sym.Description,
			Spread:      sym.Spread,
			VolumeMin:   sym.VolumeMin,
			VolumeMax:   sym.VolumeMax,
		})
	}
	return out, nil
}

// -----------------------------------------------------------------------------
// Get Market Data
// -----------------------------------------------------------------------------

// MarketData returns the most recent count bars for symbol, oldest to
// newest. Unrecognized timeframe names fall back to M1.
func (a *Adapter) MarketData(symbol, timeframe string, count int) ([]models.MBar, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	code := terminal.TimeframeFromName(timeframe)
	rates, err := a.terminal.CopyRatesFromPos(symbol, code, 0, count)
	if err != nil || rates == nil {
		return nil, &helpers.DataError{BridgeError: helpers.BridgeError{
			Message: fmt.Sprintf("Failed to get rates for %s", symbol),
		}}
	}

	bars := make([]models.MBar, 0, len(rates))
	for _, r := range rates {
		bars = append(bars, models.MBar{
			Time:       r.Time,
			Open:       r.Open,
			High:       r.High,
			Low:        r.Low,
			Close:      r.Close,
			TickVolume: r.TickVolume,
			Spread:     r.Spread,
		})
	}
	return bars, nil
}

// -----------------------------------------------------------------------------
// Get Tick
// -----------------------------------------------------------------------------

func (a *Adapter) Tick(symbol string) (*models.MTick, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	tick, err := a.terminal.SymbolInfoTick(symbol)
	if err != nil || tick == nil {
		return nil, &helpers.DataError{BridgeError: helpers.BridgeError{
			Message: fmt.Sprintf("Failed to get tick for %s", symbol),
		}}
	}
	return &models.MTick{
		Symbol: symbol,
		Bid:    tick.Bid,
		Ask:    tick.Ask,
		Last:   tick.Last,
		Volume: tick.Volume,
		Time:   tick.Time,
	}, nil
}

// -----------------------------------------------------------------------------
// Place Order
// -----------------------------------------------------------------------------

// PlaceOrder submits a market-or-pending execution request. Price, stop-loss
// and take-profit are included only when strictly greater than zero; zero is
// the sentinel for "unset". Duration is always GTC, fill policy always IOC.
func (a *Adapter) PlaceOrder(symbol string, side int, volume, price, stopLoss, takeProfit float64, comment string) (*models.MOrder, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	req := terminal.TradeRequest{
		Action:      terminal.TradeActionDeal,
		Symbol:      symbol,
		Volume:      volume,
		Type:        side,
		Comment:     comment,
		TypeTime:    terminal.OrderTimeGTC,
		TypeFilling: terminal.OrderFillingIOC,
	}
	if price > 0 {
		req.Price = price
	}
	if stopLoss > 0 {
		req.SL = stopLoss
	}
	if takeProfit > 0 {
		req.TP = takeProfit
	}

	result, err := a.terminal.OrderSend(req)
	if err != nil || result == nil {
		return nil, &helpers.OrderError{BridgeError: helpers.BridgeError{
			Message: "Order send failed",
		}}
	}
	if result.Retcode != terminal.TradeRetcodeDone {
		return nil, &helpers.OrderError{BridgeError: helpers.BridgeError{
			Message: fmt.Sprintf("Order failed: %s", result.Comment),
		}}
	}
	return &models.MOrder{
		Ticket:  result.Order,
		Volume:  result.Volume,
		Price:   result.Price,
		Comment: result.Comment,
	}, nil
}

// -----------------------------------------------------------------------------
// List Positions
// -----------------------------------------------------------------------------

// Positions returns all open positions. No open positions — including the
// terminal reporting nothing at all — is success with an empty list.
func (a *Adapter) Positions() ([]models.MPosition, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	positions, err := a.terminal.PositionsGet()
	if err != nil || positions == nil {
		return []models.MPosition{}, nil
	}

	out := make([]models.MPosition, 0, len(positions))
	for _, pos := range positions {
		out = append(out, models.MPosition{
			Ticket:       pos.Ticket,
			Symbol:       pos.Symbol,
			Type:         pos.Type,
			Volume:       pos.Volume,
			PriceOpen:    pos.PriceOpen,
			PriceCurrent: pos.PriceCurrent,
			Profit:       pos.Profit,
			Swap:         pos.Swap,
			Commission:   pos.Commission,
		})
	}
	return out, nil
}

// -----------------------------------------------------------------------------
// Close Position
// -----------------------------------------------------------------------------

// ClosePosition closes the full volume of the position identified by ticket
// with an inverse-side deal. Partial closes are out of scope.
func (a *Adapter) ClosePosition(ticket uint64) (uint64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	pos, err := a.terminal.PositionGet(ticket)
	if err != nil || pos == nil {
		return 0, &helpers.NotFoundError{BridgeError: helpers.BridgeError{
			Message: fmt.Sprintf("Position %d not found", ticket),
		}}
	}

	side := terminal.OrderTypeSell
	if pos.Type == terminal.OrderTypeSell {
		side = terminal.OrderTypeBuy
	}
	req := terminal.TradeRequest{
		Action:      terminal.TradeActionDeal,
		Symbol:      pos.Symbol,
		Volume:      pos.Volume,
		Type:        side,
		Position:    pos.Ticket,
		Comment:     "position closed by bridge",
		TypeTime:    terminal.OrderTimeGTC,
		TypeFilling: terminal.OrderFillingIOC,
	}

	result, err := a.terminal.OrderSend(req)
	if err != nil || result == nil {
		return 0, &helpers.OrderError{BridgeError: helpers.BridgeError{
			Message: "Close failed: order send failed",
		}}
	}
	if result.Retcode != terminal.TradeRetcodeDone {
		return 0, &helpers.OrderError{BridgeError: helpers.BridgeError{
			Message: fmt.Sprintf("Close failed: %s", result.Comment),
		}}
	}
	return ticket, nil
}

// -----------------------------------------------------------------------------
// Shutdown
// -----------------------------------------------------------------------------

// Shutdown releases the session unconditionally. Idempotent; always succeeds
// from the caller's perspective.
func (a *Adapter) Shutdown() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.terminal.Shutdown()
	a.connected = false
}

// -----------------------------------------------------------------------------

func mapAccount(info *terminal.AccountInfo) *models.MAccount {
	return &models.MAccount{
		Login:    info.Login,
		Balance:  info.Balance,
		Equity:   info.Equity,
		Margin:   info.Margin,
		Server:   info.Server,
		Leverage: info.Leverage,
		Currency: info.Currency,
	}
}
