package terminal

import (
	"math"
	"time"

	"mt5-bridge/src/models"
)

// -----------------------------------------------------------------------------
// SimTerminal
//
// In-memory simulated terminal. It keeps the real terminal's observable
// behavior: single session per process, numeric error codes, positions that
// only change through OrderSend, and settled history bars that are identical
// across reads. Prices follow a deterministic curve so tests are repeatable.
// -----------------------------------------------------------------------------

const simContractSize = 100000.0

type SimTerminal struct {
	// Clock is injectable for tests; defaults to time.Now.
	Clock func() time.Time

	initialized bool
	account     AccountInfo
	symbols     []SymbolInfo
	positions   map[uint64]*Position
	nextTicket  uint64

	acceptLogin    int64
	acceptPassword string
	acceptServer   string
}

// -----------------------------------------------------------------------------

// NewSimTerminal builds a simulated terminal. When the config carries
// credentials those are the only ones Login accepts; otherwise the built-in
// demo account applies.
func NewSimTerminal(cfg *models.MTerminalConfig) *SimTerminal {
	s := &SimTerminal{
		Clock:          time.Now,
		positions:      make(map[uint64]*Position),
		nextTicket:     100000,
		acceptLogin:    5000001,
		acceptPassword: "demo",
		acceptServer:   "BridgeSim-Demo",
	}
	if cfg != nil && cfg.Login != 0 {
		s.acceptLogin = cfg.Login
		s.acceptPassword = cfg.Password
		s.acceptServer = cfg.Server
	}
	s.symbols = []SymbolInfo{
		{Name: "EURUSD", Description: "Euro vs US Dollar", Spread: 12, VolumeMin: 0.01, VolumeMax: 500, Visible: true, Point: 0.00001},
		{Name: "GBPUSD", Description: "Great Britain Pound vs US Dollar", Spread: 18, VolumeMin: 0.01, VolumeMax: 500, Visible: true, Point: 0.00001},
		{Name: "USDJPY", Description: "US Dollar vs Japanese Yen", Spread: 14, VolumeMin: 0.01, VolumeMax: 500, Visible: true, Point: 0.001},
		{Name: "XAUUSD", Description: "Gold vs US Dollar", Spread: 35, VolumeMin: 0.01, VolumeMax: 100, Visible: true, Point: 0.01},
		{Name: "EURGBP", Description: "Euro vs Great Britain Pound", Spread: 16, VolumeMin: 0.01, VolumeMax: 500, Visible: true, Point: 0.00001},
		{Name: "USDSEK", Description: "US Dollar vs Swedish Krona", Spread: 40, VolumeMin: 0.01, VolumeMax: 500, Visible: false, Point: 0.00001},
	}
	return s
}

// -----------------------------------------------------------------------------
// Session lifecycle
// -----------------------------------------------------------------------------

func (s *SimTerminal) Initialize() error {
	if !s.initialized {
		s.initialized = true
		s.account = AccountInfo{
			Login:    s.acceptLogin,
			Balance:  10000,
			Margin:   0,
			Server:   s.acceptServer,
			Leverage: 100,
			Currency: "USD",
		}
	}
	return nil
}

// -----------------------------------------------------------------------------

func (s *SimTerminal) Login(login int64, password, server string) error {
	if !s.initialized {
		return &Error{Code: -10004, Desc: "No IPC connection"}
	}
	if login != s.acceptLogin || password != s.acceptPassword || server != s.acceptServer {
		return &Error{Code: -6, Desc: "Terminal: Authorization failed"}
	}
	s.account.Login = login
	s.account.Server = server
	return nil
}

// -----------------------------------------------------------------------------

// Shutdown releases the session. Open positions live on the trade server
// side and survive a reconnect, so the positions map is kept.
func (s *SimTerminal) Shutdown() {
	s.initialized = false
}

// -----------------------------------------------------------------------------
// Read-only queries
// -----------------------------------------------------------------------------

func (s *SimTerminal) AccountInfo() (*AccountInfo, error) {
	if !s.initialized {
		return nil, &Error{Code: -10004, Desc: "No IPC connection"}
	}
	info := s.account
	info.Equity = info.Balance
	for _, pos := range s.positions {
		info.Equity += s.floatingProfit(pos)
	}
	return &info, nil
}

// -----------------------------------------------------------------------------

func (s *SimTerminal) SymbolsGet() ([]SymbolInfo, error) {
	if !s.initialized {
		return nil, &Error{Code: -10004, Desc: "No IPC connection"}
	}
	out := make([]SymbolInfo, len(s.symbols))
	copy(out, s.symbols)
	return out, nil
}

// -----------------------------------------------------------------------------

func (s *SimTerminal) CopyRatesFromPos(symbol string, timeframe, start, count int) ([]Rate, error) {
	if !s.initialized {
		return nil, &Error{Code: -10004, Desc: "No IPC connection"}
	}
	info := s.symbolInfo(symbol)
	if info == nil {
		return nil, &Error{Code: -2, Desc: "Invalid symbol"}
	}
	if count <= 0 {
		return nil, &Error{Code: -3, Desc: "Invalid count"}
	}

	period := TimeframeSeconds(timeframe)
	now := s.Clock().Unix()
	lastStart := now - now%period

	rates := make([]Rate, 0, count)
	for i := count - 1; i >= 0; i-- {
		barStart := lastStart - (int64(start)+int64(i))*period
		rates = append(rates, s.bar(info, barStart, period, now))
	}
	return rates, nil
}

// -----------------------------------------------------------------------------

func (s *SimTerminal) SymbolInfoTick(symbol string) (*Tick, error) {
	if !s.initialized {
		return nil, &Error{Code: -10004, Desc: "No IPC connection"}
	}
	info := s.symbolInfo(symbol)
	if info == nil {
		return nil, &Error{Code: -2, Desc: "Invalid symbol"}
	}
	now := s.Clock().Unix()
	bid := s.priceAt(info, now)
	return &Tick{
		Bid:    bid,
		Ask:    bid + float64(info.Spread)*info.Point,
		Last:   bid,
		Volume: 1 + now%100,
		Time:   now,
	}, nil
}

// -----------------------------------------------------------------------------
// Order execution
// -----------------------------------------------------------------------------

func (s *SimTerminal) OrderSend(req TradeRequest) (*TradeResult, error) {
	if !s.initialized {
		return nil, &Error{Code: -10004, Desc: "No IPC connection"}
	}
	info := s.symbolInfo(req.Symbol)
	if info == nil {
		return &TradeResult{Retcode: TradeRetcodeInvalid, Comment: "Unknown symbol"}, nil
	}
	if req.Volume < info.VolumeMin || req.Volume > info.VolumeMax {
		return &TradeResult{Retcode: TradeRetcodeInvalidVolume, Comment: "Invalid volume"}, nil
	}

	if req.Position != 0 {
		return s.closeFill(req)
	}
	return s.openFill(info, req)
}

// -----------------------------------------------------------------------------

func (s *SimTerminal) openFill(info *SymbolInfo, req TradeRequest) (*TradeResult, error) {
	now := s.Clock().Unix()
	fill := s.priceAt(info, now)
	if req.Type == OrderTypeBuy {
		fill += float64(info.Spread) * info.Point
	}
	if req.Price > 0 {
		fill = req.Price
	}

	s.nextTicket++
	ticket := s.nextTicket
	s.positions[ticket] = &Position{
		Ticket:     ticket,
		Symbol:     req.Symbol,
		Type:       req.Type,
		Volume:     req.Volume,
		PriceOpen:  fill,
		Commission: -req.Volume * 4,
	}
	return &TradeResult{
		Retcode: TradeRetcodeDone,
		Order:   ticket,
		Volume:  req.Volume,
		Price:   fill,
		Comment: "Request executed",
	}, nil
}

// -----------------------------------------------------------------------------

func (s *SimTerminal) closeFill(req TradeRequest) (*TradeResult, error) {
	pos, ok := s.positions[req.Position]
	if !ok {
		return &TradeResult{Retcode: TradeRetcodeInvalid, Comment: "Position not found"}, nil
	}
	s.account.Balance += s.floatingProfit(pos) + pos.Commission
	delete(s.positions, req.Position)

	now := s.Clock().Unix()
	info := s.symbolInfo(pos.Symbol)
	return &TradeResult{
		Retcode: TradeRetcodeDone,
		Order:   req.Position,
		Volume:  pos.Volume,
		Price:   s.priceAt(info, now),
		Comment: "Request executed",
	}, nil
}

// -----------------------------------------------------------------------------

func (s *SimTerminal) PositionsGet() ([]Position, error) {
	if !s.initialized {
		return nil, &Error{Code: -10004, Desc: "No IPC connection"}
	}
	out := make([]Position, 0, len(s.positions))
	for _, pos := range s.positions {
		out = append(out, s.positionView(pos))
	}
	return out, nil
}

// -----------------------------------------------------------------------------

func (s *SimTerminal) PositionGet(ticket uint64) (*Position, error) {
	if !s.initialized {
		return nil, &Error{Code: -10004, Desc: "No IPC connection"}
	}
	pos, ok := s.positions[ticket]
	if !ok {
		return nil, &Error{Code: -2, Desc: "Position not found"}
	}
	view := s.positionView(pos)
	return &view, nil
}

// -----------------------------------------------------------------------------
// Price model
// -----------------------------------------------------------------------------

var simBasePrices = map[string]float64{
	"EURUSD": 1.1000,
	"GBPUSD": 1.2700,
	"USDJPY": 155.00,
	"XAUUSD": 2400.0,
	"EURGBP": 0.8600,
	"USDSEK": 10.500,
}

// priceAt is a deterministic continuous curve: two superimposed sine waves
// around the symbol's base price. Same symbol and second, same price.
func (s *SimTerminal) priceAt(info *SymbolInfo, t int64) float64 {
	base := simBasePrices[info.Name]
	if base == 0 {
		base = 1.0
	}
	slow := math.Sin(2 * math.Pi * float64(t) / 3600)
	fast := math.Sin(2 * math.Pi * float64(t) / 420)
	return base * (1 + 0.0015*slow + 0.0005*fast)
}

// -----------------------------------------------------------------------------

// bar builds one OHLC bar. Settled bars close at their period boundary and
// therefore never change; the currently forming bar closes at "now".
func (s *SimTerminal) bar(info *SymbolInfo, barStart, period, now int64) Rate {
	end := barStart + period
	if end > now {
		end = now
	}
	open := s.priceAt(info, barStart)
	closeP := s.priceAt(info, end)
	high := math.Max(open, closeP) * 1.0002
	low := math.Min(open, closeP) * 0.9998
	return Rate{
		Time:       barStart,
		Open:       open,
		High:       high,
		Low:        low,
		Close:      closeP,
		TickVolume: 40 + (barStart/period)%211,
		Spread:     info.Spread,
	}
}

// -----------------------------------------------------------------------------

func (s *SimTerminal) floatingProfit(pos *Position) float64 {
	info := s.symbolInfo(pos.Symbol)
	if info == nil {
		return 0
	}
	current := s.priceAt(info, s.Clock().Unix())
	direction := 1.0
	if pos.Type == OrderTypeSell {
		direction = -1.0
	}
	return (current - pos.PriceOpen) * direction * pos.Volume * simContractSize
}

// -----------------------------------------------------------------------------

func (s *SimTerminal) positionView(pos *Position) Position {
	view := *pos
	info := s.symbolInfo(pos.Symbol)
	if info != nil {
		view.PriceCurrent = s.priceAt(info, s.Clock().Unix())
	}
	view.Profit = s.floatingProfit(pos)
	return view
}

// -----------------------------------------------------------------------------

func (s *SimTerminal) symbolInfo(name string) *SymbolInfo {
	for i := range s.symbols {
		if s.symbols[i].Name == name {
			return &s.symbols[i]
		}
	}
	return nil
}
