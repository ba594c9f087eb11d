package terminal

// -----------------------------------------------------------------------------
// Native numeric vocabulary of the trading terminal. The codes are part of
// the wire contract (side 0/1 in particular) and must not be renumbered.
// -----------------------------------------------------------------------------

// Timeframe codes.
const (
	TimeframeM1  = 1
	TimeframeM5  = 5
	TimeframeM15 = 15
	TimeframeH1  = 16385
	TimeframeH4  = 16388
	TimeframeD1  = 16408
)

// -----------------------------------------------------------------------------

// Order side codes at the boundary: 0 = buy, 1 = sell.
const (
	OrderTypeBuy  = 0
	OrderTypeSell = 1
)

// -----------------------------------------------------------------------------

// Trade request constants.
const (
	TradeActionDeal = 1

	OrderTimeGTC    = 0
	OrderFillingIOC = 1
)

// -----------------------------------------------------------------------------

// Trade result status codes.
const (
	TradeRetcodeDone          = 10009
	TradeRetcodeInvalid       = 10013
	TradeRetcodeInvalidVolume = 10014
	TradeRetcodeMarketClosed  = 10018
)

// -----------------------------------------------------------------------------

var timeframeNames = map[string]int{
	"M1":  TimeframeM1,
	"M5":  TimeframeM5,
	"M15": TimeframeM15,
	"H1":  TimeframeH1,
	"H4":  TimeframeH4,
	"D1":  TimeframeD1,
}

// TimeframeFromName maps a timeframe name to its native code. Unrecognized
// names fall back to M1; this is the documented default, not an error.
func TimeframeFromName(name string) int {
	if code, ok := timeframeNames[name]; ok {
		return code
	}
	return TimeframeM1
}

// -----------------------------------------------------------------------------

// TimeframeSeconds returns the bar period in seconds for a timeframe code.
func TimeframeSeconds(code int) int64 {
	switch code {
	case TimeframeM5:
		return 5 * 60
	case TimeframeM15:
		return 15 * 60
	case TimeframeH1:
		return 60 * 60
	case TimeframeH4:
		return 4 * 60 * 60
	case TimeframeD1:
		return 24 * 60 * 60
	default:
		return 60
	}
}
