package terminal

import "fmt"

// -----------------------------------------------------------------------------
// Native result shapes. These never cross the adapter boundary; the adapter
// maps them field by field onto the plain JSON projections in src/models.
// -----------------------------------------------------------------------------

// Error is a native terminal error: numeric code plus description, rendered
// the way the terminal's own diagnostics print them.
type Error struct {
	Code int
	Desc string
}

func (e *Error) Error() string {
	return fmt.Sprintf("(%d, %s)", e.Code, e.Desc)
}

// -----------------------------------------------------------------------------

type AccountInfo struct {
	Login    int64
	Balance  float64
	Equity   float64
	Margin   float64
	Server   string
	Leverage int64
	Currency string
}

// -----------------------------------------------------------------------------

type SymbolInfo struct {
	Name        string
	Description string
	Spread      int
	VolumeMin   float64
	VolumeMax   float64
	Visible     bool
	Point       float64
}

// -----------------------------------------------------------------------------

// Rate is one native history bar.
type Rate struct {
	Time       int64
	Open       float64
	High       float64
	Low        float64
	Close      float64
	TickVolume int64
	Spread     int
}

// -----------------------------------------------------------------------------

type Tick struct {
	Bid    float64
	Ask    float64
	Last   float64
	Volume int64
	Time   int64
}

// -----------------------------------------------------------------------------

// TradeRequest is the order-submission request. Zero is the sentinel for
// "unset" on Price, SL, TP and Position; a zero field is omitted from the
// request the terminal sees.
type TradeRequest struct {
	Action      int
	Symbol      string
	Volume      float64
	Type        int
	Price       float64
	SL          float64
	TP          float64
	Position    uint64
	Comment     string
	TypeTime    int
	TypeFilling int
}

// -----------------------------------------------------------------------------

type TradeResult struct {
	Retcode int
	Order   uint64
	Volume  float64
	Price   float64
	Comment string
}

// -----------------------------------------------------------------------------

type Position struct {
	Ticket       uint64
	Symbol       string
	Type         int
	Volume       float64
	PriceOpen    float64
	PriceCurrent float64
	Profit       float64
	Swap         float64
	Commission   float64
}
