package models

// -----------------------------------------------------------------------------
// Terminal Adapter projections (field names fixed by the wire contract)
// -----------------------------------------------------------------------------

// MAccount is the account snapshot produced on every connect-type command.
type MAccount struct {
	Login    int64   `json:"login"`
	Balance  float64 `json:"balance"`
	Equity   float64 `json:"equity"`
	Margin   float64 `json:"margin"`
	Server   string  `json:"server"`
	Leverage int64   `json:"leverage"`
	Currency string  `json:"currency"`
}

// -----------------------------------------------------------------------------

// MSymbol is one tradeable instrument as reported by get_symbols.
type MSymbol struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Spread      int     `json:"spread"`
	VolumeMin   float64 `json:"volume_min"`
	VolumeMax   float64 `json:"volume_max"`
}

// -----------------------------------------------------------------------------

// MBar is one OHLC bar. Time is the bar start as a unix epoch.
type MBar struct {
	Time       int64   `json:"time"`
	Open       float64 `json:"open"`
	High       float64 `json:"high"`
	Low        float64 `json:"low"`
	Close      float64 `json:"close"`
	TickVolume int64   `json:"tick_volume"`
	Spread     int     `json:"spread"`
}

// -----------------------------------------------------------------------------

// MTick is the latest quote for a symbol.
type MTick struct {
	Symbol string  `json:"symbol"`
	Bid    float64 `json:"bid"`
	Ask    float64 `json:"ask"`
	Last   float64 `json:"last"`
	Volume int64   `json:"volume"`
	Time   int64   `json:"time"`
}

// -----------------------------------------------------------------------------

// MOrder is the result of a successful place_order.
type MOrder struct {
	Ticket  uint64  `json:"ticket"`
	Volume  float64 `json:"volume"`
	Price   float64 `json:"price"`
	Comment string  `json:"comment"`
}

// -----------------------------------------------------------------------------

// MPosition is a read-only view of one open position.
// Type carries the terminal's side encoding: 0 = buy, 1 = sell.
type MPosition struct {
	Ticket       uint64  `json:"ticket"`
	Symbol       string  `json:"symbol"`
	Type         int     `json:"type"`
	Volume       float64 `json:"volume"`
	PriceOpen    float64 `json:"price_open"`
	PriceCurrent float64 `json:"price_current"`
	Profit       float64 `json:"profit"`
	Swap         float64 `json:"swap"`
	Commission   float64 `json:"commission"`
}

// -----------------------------------------------------------------------------

// MCommandInfo describes one command for the introspection endpoint.
type MCommandInfo struct {
	Name string   `json:"name"`
	Args []string `json:"args"`
}

// -----------------------------------------------------------------------------

// MMarketSession reports whether a major trading venue is currently open.
type MMarketSession struct {
	Venue string `json:"venue"`
	MIC   string `json:"mic"`
	Open  bool   `json:"open"`
}
