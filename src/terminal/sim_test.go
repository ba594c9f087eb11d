package terminal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------

func fixedClock(sec int64) func() time.Time {
	return func() time.Time { return time.Unix(sec, 0) }
}

// -----------------------------------------------------------------------------

func TestSimTerminalRequiresInitialize(t *testing.T) {
	sim := NewSimTerminal(nil)

	_, err := sim.AccountInfo()
	require.Error(t, err)
	assert.Equal(t, "(-10004, No IPC connection)", err.Error())

	_, err = sim.SymbolsGet()
	assert.Error(t, err)

	_, err = sim.OrderSend(TradeRequest{Symbol: "EURUSD", Volume: 0.1})
	assert.Error(t, err)
}

// -----------------------------------------------------------------------------

func TestSimTerminalLogin(t *testing.T) {
	tests := []struct {
		name     string
		login    int64
		password string
		server   string
		wantErr  string
	}{
		{name: "valid demo credentials", login: 5000001, password: "demo", server: "BridgeSim-Demo"},
		{name: "wrong login", login: 42, password: "demo", server: "BridgeSim-Demo", wantErr: "(-6, Terminal: Authorization failed)"},
		{name: "wrong password", login: 5000001, password: "nope", server: "BridgeSim-Demo", wantErr: "(-6, Terminal: Authorization failed)"},
		{name: "wrong server", login: 5000001, password: "demo", server: "Other", wantErr: "(-6, Terminal: Authorization failed)"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sim := NewSimTerminal(nil)
			require.NoError(t, sim.Initialize())

			err := sim.Login(tc.login, tc.password, tc.server)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tc.wantErr, err.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// -----------------------------------------------------------------------------

func TestSimTerminalSettledBarsAreStable(t *testing.T) {
	sim := NewSimTerminal(nil)
	sim.Clock = fixedClock(1_700_000_000)
	require.NoError(t, sim.Initialize())

	first, err := sim.CopyRatesFromPos("EURUSD", TimeframeM5, 0, 10)
	require.NoError(t, err)
	require.Len(t, first, 10)

	// Same question, later in the same forming bar: settled bars identical.
	sim.Clock = fixedClock(1_700_000_030)
	second, err := sim.CopyRatesFromPos("EURUSD", TimeframeM5, 0, 10)
	require.NoError(t, err)
	require.Len(t, second, 10)

	for i := 0; i < 9; i++ {
		assert.Equal(t, first[i], second[i], "settled bar %d changed", i)
	}

	// Bars come oldest to newest, aligned to the period.
	for i := 1; i < len(first); i++ {
		assert.Equal(t, first[i-1].Time+300, first[i].Time)
		assert.Zero(t, first[i].Time%300)
	}
}

// -----------------------------------------------------------------------------

func TestSimTerminalTickDeterministic(t *testing.T) {
	sim := NewSimTerminal(nil)
	sim.Clock = fixedClock(1_700_000_000)
	require.NoError(t, sim.Initialize())

	a, err := sim.SymbolInfoTick("EURUSD")
	require.NoError(t, err)
	b, err := sim.SymbolInfoTick("EURUSD")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Greater(t, a.Ask, a.Bid)

	_, err = sim.SymbolInfoTick("NOPE")
	assert.Error(t, err)
}

// -----------------------------------------------------------------------------

func TestSimTerminalOrderLifecycle(t *testing.T) {
	sim := NewSimTerminal(nil)
	sim.Clock = fixedClock(1_700_000_000)
	require.NoError(t, sim.Initialize())

	result, err := sim.OrderSend(TradeRequest{
		Action:      TradeActionDeal,
		Symbol:      "EURUSD",
		Volume:      0.5,
		Type:        OrderTypeBuy,
		TypeTime:    OrderTimeGTC,
		TypeFilling: OrderFillingIOC,
	})
	require.NoError(t, err)
	require.Equal(t, TradeRetcodeDone, result.Retcode)
	assert.NotZero(t, result.Order)
	assert.Equal(t, 0.5, result.Volume)

	positions, err := sim.PositionsGet()
	require.NoError(t, err)
	require.Len(t, positions, 1)
	assert.Equal(t, result.Order, positions[0].Ticket)
	assert.Equal(t, OrderTypeBuy, positions[0].Type)

	// Close the full volume with the inverse side.
	closeRes, err := sim.OrderSend(TradeRequest{
		Action:   TradeActionDeal,
		Symbol:   "EURUSD",
		Volume:   0.5,
		Type:     OrderTypeSell,
		Position: result.Order,
	})
	require.NoError(t, err)
	assert.Equal(t, TradeRetcodeDone, closeRes.Retcode)

	positions, err = sim.PositionsGet()
	require.NoError(t, err)
	assert.Empty(t, positions)
}

// -----------------------------------------------------------------------------

func TestSimTerminalOrderRejections(t *testing.T) {
	sim := NewSimTerminal(nil)
	require.NoError(t, sim.Initialize())

	res, err := sim.OrderSend(TradeRequest{Symbol: "EURUSD", Volume: 10000, Type: OrderTypeBuy})
	require.NoError(t, err)
	assert.Equal(t, TradeRetcodeInvalidVolume, res.Retcode)

	res, err = sim.OrderSend(TradeRequest{Symbol: "NOPE", Volume: 0.1, Type: OrderTypeBuy})
	require.NoError(t, err)
	assert.Equal(t, TradeRetcodeInvalid, res.Retcode)

	res, err = sim.OrderSend(TradeRequest{Symbol: "EURUSD", Volume: 0.1, Type: OrderTypeSell, Position: 999})
	require.NoError(t, err)
	assert.Equal(t, TradeRetcodeInvalid, res.Retcode)
	assert.Equal(t, "Position not found", res.Comment)
}

// -----------------------------------------------------------------------------

func TestSimTerminalPositionsSurviveShutdown(t *testing.T) {
	sim := NewSimTerminal(nil)
	require.NoError(t, sim.Initialize())

	res, err := sim.OrderSend(TradeRequest{Symbol: "GBPUSD", Volume: 0.1, Type: OrderTypeSell})
	require.NoError(t, err)
	require.Equal(t, TradeRetcodeDone, res.Retcode)

	sim.Shutdown()
	_, err = sim.PositionsGet()
	assert.Error(t, err)

	require.NoError(t, sim.Initialize())
	positions, err := sim.PositionsGet()
	require.NoError(t, err)
	assert.Len(t, positions, 1)
}

// -----------------------------------------------------------------------------

func TestSimTerminalEquityTracksFloatingProfit(t *testing.T) {
	sim := NewSimTerminal(nil)
	sim.Clock = fixedClock(1_700_000_000)
	require.NoError(t, sim.Initialize())

	before, err := sim.AccountInfo()
	require.NoError(t, err)
	assert.Equal(t, before.Balance, before.Equity)

	res, err := sim.OrderSend(TradeRequest{Symbol: "EURUSD", Volume: 1, Type: OrderTypeBuy})
	require.NoError(t, err)
	require.Equal(t, TradeRetcodeDone, res.Retcode)

	sim.Clock = fixedClock(1_700_000_900)
	after, err := sim.AccountInfo()
	require.NoError(t, err)
	assert.NotEqual(t, after.Balance, after.Equity)
}

// -----------------------------------------------------------------------------

func TestTimeframeFromName(t *testing.T) {
	assert.Equal(t, TimeframeM1, TimeframeFromName("M1"))
	assert.Equal(t, TimeframeH1, TimeframeFromName("H1"))
	assert.Equal(t, TimeframeD1, TimeframeFromName("D1"))
	// Unknown names fall back to M1
	assert.Equal(t, TimeframeM1, TimeframeFromName("W1"))
	assert.Equal(t, TimeframeM1, TimeframeFromName(""))
}
