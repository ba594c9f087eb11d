package terminal

import (
	"sync"
	"sync/atomic"
	"time"
)

// -----------------------------------------------------------------------------
// RecorderTerminal
//
// Wraps a SimTerminal and records every native call: the call sequence, the
// trade requests as the terminal saw them, and the highest number of calls
// that were ever in flight at once. The terminal boundary is not safe for
// concurrent use, so tests assert MaxConcurrent() == 1 under load.
// -----------------------------------------------------------------------------

type RecorderTerminal struct {
	Sim *SimTerminal

	// Delay stretches each call so overlap would actually be observed.
	Delay time.Duration

	mu       sync.Mutex
	calls    []string
	requests []TradeRequest

	active        int32
	maxConcurrent int32
}

// -----------------------------------------------------------------------------

func NewRecorderTerminal(sim *SimTerminal) *RecorderTerminal {
	return &RecorderTerminal{Sim: sim}
}

// -----------------------------------------------------------------------------

func (r *RecorderTerminal) enter(name string) {
	n := atomic.AddInt32(&r.active, 1)
	for {
		m := atomic.LoadInt32(&r.maxConcurrent)
		if n <= m || atomic.CompareAndSwapInt32(&r.maxConcurrent, m, n) {
			break
		}
	}
	r.mu.Lock()
	r.calls = append(r.calls, name)
	r.mu.Unlock()
	if r.Delay > 0 {
		time.Sleep(r.Delay)
	}
}

func (r *RecorderTerminal) exit() {
	atomic.AddInt32(&r.active, -1)
}

// -----------------------------------------------------------------------------

func (r *RecorderTerminal) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	copy(out, r.calls)
	return out
}

func (r *RecorderTerminal) Requests() []TradeRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]TradeRequest, len(r.requests))
	copy(out, r.requests)
	return out
}

func (r *RecorderTerminal) LastRequest() *TradeRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.requests) == 0 {
		return nil
	}
	req := r.requests[len(r.requests)-1]
	return &req
}

func (r *RecorderTerminal) MaxConcurrent() int {
	return int(atomic.LoadInt32(&r.maxConcurrent))
}

// -----------------------------------------------------------------------------
// ITerminal passthrough
// -----------------------------------------------------------------------------

func (r *RecorderTerminal) Initialize() error {
	r.enter("Initialize")
	defer r.exit()
	return r.Sim.Initialize()
}

func (r *RecorderTerminal) Login(login int64, password, server string) error {
	r.enter("Login")
	defer r.exit()
	return r.Sim.Login(login, password, server)
}

func (r *RecorderTerminal) Shutdown() {
	r.enter("Shutdown")
	defer r.exit()
	r.Sim.Shutdown()
}

func (r *RecorderTerminal) AccountInfo() (*AccountInfo, error) {
	r.enter("AccountInfo")
	defer r.exit()
	return r.Sim.AccountInfo()
}

func (r *RecorderTerminal) SymbolsGet() ([]SymbolInfo, error) {
	r.enter("SymbolsGet")
	defer r.exit()
	return r.Sim.SymbolsGet()
}

func (r *RecorderTerminal) CopyRatesFromPos(symbol string, timeframe, start, count int) ([]Rate, error) {
	r.enter("CopyRatesFromPos")
	defer r.exit()
	return r.Sim.CopyRatesFromPos(symbol, timeframe, start, count)
}

func (r *RecorderTerminal) SymbolInfoTick(symbol string) (*Tick, error) {
	r.enter("SymbolInfoTick")
	defer r.exit()
	return r.Sim.SymbolInfoTick(symbol)
}

func (r *RecorderTerminal) OrderSend(req TradeRequest) (*TradeResult, error) {
	r.enter("OrderSend")
	defer r.exit()
	r.mu.Lock()
	r.requests = append(r.requests, req)
	r.mu.Unlock()
	return r.Sim.OrderSend(req)
}

func (r *RecorderTerminal) PositionsGet() ([]Position, error) {
	r.enter("PositionsGet")
	defer r.exit()
	return r.Sim.PositionsGet()
}

func (r *RecorderTerminal) PositionGet(ticket uint64) (*Position, error) {
	r.enter("PositionGet")
	defer r.exit()
	return r.Sim.PositionGet(ticket)
}
